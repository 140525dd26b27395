package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
)

// redisKeyValueStore implements adapter.KeyValueStore over plain Redis strings.
type redisKeyValueStore struct {
	client *redis.Client
	prefix string
}

// NewRedisKeyValueStore creates a key-value store backed by Redis.
// Keys never expire.
func NewRedisKeyValueStore(client *redis.Client, prefix string) adapter.KeyValueStore {
	return &redisKeyValueStore{
		client: client,
		prefix: prefix,
	}
}

// Get returns the value stored under key.
func (s *redisKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domainerror.ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key.
func (s *redisKeyValueStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *redisKeyValueStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Ping checks the Redis connection.
func (s *redisKeyValueStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
