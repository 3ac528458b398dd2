package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "admissions:revoked:"

// SessionRepository tracks revoked staff tokens until they expire.
type SessionRepository interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository stores revocations in Redis with per-key expiry.
func NewRedisSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepository{client: client}
}

func (r *redisSessionRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedTokenPrefix+tokenID, "1", ttl).Err()
}

func (r *redisSessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.client.Get(ctx, revokedTokenPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MemorySessionRepository is the in-process fallback used without Redis.
type MemorySessionRepository struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemorySessionRepository creates an empty revocation list.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{revoked: make(map[string]time.Time), now: time.Now}
}

func (r *MemorySessionRepository) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[tokenID] = r.now().Add(ttl)
	return nil
}

func (r *MemorySessionRepository) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if r.now().After(until) {
		delete(r.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
