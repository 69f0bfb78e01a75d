package signup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/AlexZinkM/trader-ranker/internal/model"
	"github.com/AlexZinkM/trader-ranker/internal/storage"
)

// LocalBackend appends signups to a JSON array kept in a storage slot.
// Each email is stored at most once; records keep signup order.
type LocalBackend struct {
	slot storage.Slot

	// mu makes load-check-append-save atomic within the process.
	mu sync.Mutex
}

// NewLocalBackend creates a fallback backend over slot.
func NewLocalBackend(slot storage.Slot) *LocalBackend {
	return &LocalBackend{slot: slot}
}

func (b *LocalBackend) Name() string {
	return NameLocal
}

// Submit appends the signup unless its email is already stored.
func (b *LocalBackend) Submit(ctx context.Context, s Signup) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	records, err := b.load(ctx)
	if err != nil {
		return err
	}

	for _, r := range records {
		if r.Email == s.Email {
			return ErrDuplicateEmail
		}
	}

	records = append(records, model.SignupRecord{
		Email:         s.Email,
		Timestamp:     s.Timestamp.UTC().Format(time.RFC3339),
		WalletAddress: s.WalletAddress,
	})

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal signups: %w", err)
	}
	if err := b.slot.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to save signups: %w", err)
	}
	return nil
}

// Records returns all stored signups in signup order.
func (b *LocalBackend) Records(ctx context.Context) ([]model.SignupRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.load(ctx)
}

// Count returns the number of stored signups.
func (b *LocalBackend) Count(ctx context.Context) (int, error) {
	records, err := b.Records(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (b *LocalBackend) load(ctx context.Context) ([]model.SignupRecord, error) {
	data, err := b.slot.Load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []model.SignupRecord{}, nil
		}
		return nil, fmt.Errorf("failed to load signups: %w", err)
	}
	if len(data) == 0 {
		return []model.SignupRecord{}, nil
	}

	var records []model.SignupRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal signups: %w", err)
	}
	return records, nil
}
