package prefs

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"moneyguard/pkg/platform/sentinel"
)

// RedisStore persists preferences in Redis so they survive process restarts
// and are shared across instances. Keys are namespaced per user.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedis wraps an existing client. The prefix scopes all keys, typically
// "prefs:<user-id>".
func NewRedis(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(key string) string {
	return s.prefix + ":" + key
}

func (s *RedisStore) get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("prefs key %q: %w", key, sentinel.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("prefs get %q: %w", key, err)
	}
	return v, nil
}

func (s *RedisStore) set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("prefs set %q: %w", key, err)
	}
	return nil
}

func (s *RedisStore) GetString(ctx context.Context, key string) (string, error) {
	return s.get(ctx, key)
}

func (s *RedisStore) SetString(ctx context.Context, key, value string) error {
	return s.set(ctx, key, value)
}

func (s *RedisStore) GetBool(ctx context.Context, key string) (bool, error) {
	raw, err := s.get(ctx, key)
	if err != nil {
		return false, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("prefs key %q: parse bool: %w", key, err)
	}
	return v, nil
}

func (s *RedisStore) SetBool(ctx context.Context, key string, value bool) error {
	return s.set(ctx, key, strconv.FormatBool(value))
}

func (s *RedisStore) GetInt(ctx context.Context, key string) (int, error) {
	raw, err := s.get(ctx, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("prefs key %q: parse int: %w", key, err)
	}
	return v, nil
}

func (s *RedisStore) SetInt(ctx context.Context, key string, value int) error {
	return s.set(ctx, key, strconv.Itoa(value))
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("prefs delete %q: %w", key, err)
	}
	return nil
}
