package services

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"orgadmin-service/internal/config"
)

// IdempotencyStore remembers mutation idempotency keys for their TTL.
// Claim returns false when the key was already claimed.
type IdempotencyStore interface {
	Claim(ctx context.Context, key string) (bool, error)
}

// RedisIdempotencyStore backs the store with redis SETNX so replayed
// mutations are rejected across instances.
type RedisIdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisIdempotencyStore(cfg *config.Config) *RedisIdempotencyStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	return &RedisIdempotencyStore{
		client: client,
		ttl:    cfg.IdempotencyTTL,
	}
}

func (s *RedisIdempotencyStore) Claim(ctx context.Context, key string) (bool, error) {
	return s.client.SetNX(ctx, "idempotency:"+key, "1", s.ttl).Result()
}

// MemoryIdempotencyStore is the in-process fallback used by tests.
type MemoryIdempotencyStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{seen: make(map[string]struct{})}
}

func (s *MemoryIdempotencyStore) Claim(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[key]; ok {
		return false, nil
	}
	s.seen[key] = struct{}{}
	return true, nil
}
