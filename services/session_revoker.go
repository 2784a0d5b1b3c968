package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRevoker remembers logged-out token ids until the token would have expired anyway.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type RedisRevoker struct {
	client *redis.Client
	prefix string
}

func NewRedisRevoker(client *redis.Client) *RedisRevoker {
	return &RedisRevoker{client: client, prefix: "pos:revoked:"}
}

func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 || tokenID == "" {
		return nil
	}
	return r.client.Set(ctx, r.prefix+tokenID, "1", ttl).Err()
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	n, err := r.client.Exists(ctx, r.prefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// NoopRevoker is used when redis is not configured; logout then only clears cookies.
type NoopRevoker struct{}

func (NoopRevoker) Revoke(context.Context, string, time.Time) error  { return nil }
func (NoopRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }
