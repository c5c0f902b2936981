package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists embeddings in Redis under "<prefix><model>:<sha256(text)>"
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisStore creates a store from a redis:// URL and verifies connectivity.
// A zero ttl keeps entries forever.
func NewRedisStore(ctx context.Context, url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisStore{
		client:    client,
		keyPrefix: "embedding:",
		ttl:       ttl,
	}, nil
}

func (s *RedisStore) buildKey(model, text string) string {
	return s.keyPrefix + model + ":" + TextHash(text)
}

// Get implements Store
func (s *RedisStore) Get(ctx context.Context, model, text string) ([]float64, bool, error) {
	raw, err := s.client.Get(ctx, s.buildKey(model, text)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read embedding from redis: %w", err)
	}

	var vec []float64
	if err := json.Unmarshal(raw, &vec); err != nil {
		return nil, false, fmt.Errorf("corrupted embedding in redis: %w", err)
	}
	return vec, true, nil
}

// Put implements Store
func (s *RedisStore) Put(ctx context.Context, model, text string, vec []float64) error {
	raw, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding: %w", err)
	}
	if err := s.client.Set(ctx, s.buildKey(model, text), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write embedding to redis: %w", err)
	}
	return nil
}

// Close closes the redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
