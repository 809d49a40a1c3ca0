package signupstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"donation-hub/internal/config"
	"donation-hub/internal/domain/signup"

	"github.com/redis/go-redis/v9"
)

const pendingSignupKeyPrefix = "signup:pending:"

// RedisStore holds pending signups in Redis with a per-entry TTL, so a
// registration that is never verified expires on its own.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg *config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Put(ctx context.Context, token string, pending *signup.PendingSignup, ttl time.Duration) error {
	payload, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to encode pending signup: %w", err)
	}

	key := pendingSignupKeyPrefix + token
	if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store pending signup: %w", err)
	}

	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*signup.PendingSignup, error) {
	key := pendingSignupKeyPrefix + token
	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, signup.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending signup: %w", err)
	}

	var pending signup.PendingSignup
	if err := json.Unmarshal(payload, &pending); err != nil {
		return nil, fmt.Errorf("failed to decode pending signup: %w", err)
	}

	return &pending, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	key := pendingSignupKeyPrefix + token
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete pending signup: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
