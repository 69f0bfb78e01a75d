// Package storage holds the named slot the local waitlist fallback persists into.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Load when the slot has never been written.
var ErrNotFound = errors.New("slot not found")

// Slot is a single named value holding an opaque document.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Close() error
}

// Kinds of slot storage
const (
	KindFile  = "file"
	KindBolt  = "bolt"
	KindRedis = "redis"
)

// Options selects and configures a slot implementation.
type Options struct {
	Kind          string
	Path          string // base directory for file and bolt slots
	Name          string // slot name: file name, bolt key or redis key
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open creates the slot described by opts.
func Open(ctx context.Context, opts Options) (Slot, error) {
	if strings.TrimSpace(opts.Name) == "" {
		return nil, fmt.Errorf("slot name is required")
	}

	switch strings.ToLower(opts.Kind) {
	case "", KindFile:
		return NewFileSlot(opts.Path, opts.Name)
	case KindBolt:
		return OpenBoltSlot(opts.Path, opts.Name)
	case KindRedis:
		return NewRedisSlot(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.Name)
	default:
		return nil, fmt.Errorf("unknown store kind %q", opts.Kind)
	}
}
