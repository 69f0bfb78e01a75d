package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSlot keeps the slot as <basePath>/<name>.json
type FileSlot struct {
	path string
}

// NewFileSlot creates the base directory and returns the slot.
func NewFileSlot(basePath, name string) (*FileSlot, error) {
	if basePath == "" {
		basePath = "./data"
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}

	return &FileSlot{path: filepath.Join(basePath, name+".json")}, nil
}

// Load reads the slot file.
func (s *FileSlot) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Save replaces the slot file. The data is written to a temp file and renamed over the old one
// so a crash never leaves a half-written slot.
func (s *FileSlot) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}

// Close is a no-op for files.
func (s *FileSlot) Close() error {
	return nil
}
