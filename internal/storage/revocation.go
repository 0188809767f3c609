package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "jwt:revoked:"

// RedisRevocation keeps revoked tokens as keys that expire with the token.
type RedisRevocation struct {
	client redis.Cmdable
}

func NewRedisRevocation(client redis.Cmdable) *RedisRevocation {
	return &RedisRevocation{client: client}
}

func (r *RedisRevocation) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedKeyPrefix+token, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to store revoked token: %w", err)
	}
	return nil
}

func (r *RedisRevocation) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("failed to look up revoked token: %w", err)
	}
	return n > 0, nil
}

// MemoryRevocation is the in-process fallback when Redis is not configured.
type MemoryRevocation struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocation() *MemoryRevocation {
	return &MemoryRevocation{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (m *MemoryRevocation) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	m.entries[token] = m.now().Add(ttl)
	m.mu.Unlock()
	return nil
}

func (m *MemoryRevocation) IsRevoked(_ context.Context, token string) (bool, error) {
	m.mu.RLock()
	expiresAt, ok := m.entries[token]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if m.now().After(expiresAt) {
		m.mu.Lock()
		delete(m.entries, token)
		m.mu.Unlock()
		return false, nil
	}

	return true, nil
}

// NewRedisClient returns nil when addr is empty.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}

	return client, nil
}
