package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSlot keeps the slot as one redis string key without expiry.
type RedisSlot struct {
	client *redis.Client
	key    string
}

// NewRedisSlot connects to redis and checks the connection with PING.
func NewRedisSlot(ctx context.Context, addr, password string, db int, key string) (*RedisSlot, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis %s: %w", addr, err)
	}

	return &RedisSlot{client: client, key: key}, nil
}

// Load reads the slot value.
func (s *RedisSlot) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", s.key, err)
	}
	return data, nil
}

// Save replaces the slot value.
func (s *RedisSlot) Save(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", s.key, err)
	}
	return nil
}

// Close closes the redis client.
func (s *RedisSlot) Close() error {
	return s.client.Close()
}
