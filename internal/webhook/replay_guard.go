package webhook

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const replayKeyPrefix = "ratrace:webhook:delivery:"

// RedisReplayGuard remembers accepted deliveries so that a re-sent signature is
// processed at most once while it is still inside the signature window.
type RedisReplayGuard struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisReplayGuard keeps delivery keys for twice the signature window.
func NewRedisReplayGuard(client redis.Cmdable, window time.Duration) *RedisReplayGuard {
	if window <= 0 {
		window = DefaultMaxAge
	}
	return &RedisReplayGuard{client: client, ttl: 2 * window}
}

// Acquire claims the delivery identified by signature. It returns false when
// the delivery was already claimed.
func (g *RedisReplayGuard) Acquire(ctx context.Context, signature string) (bool, error) {
	ok, err := g.client.SetNX(ctx, deliveryKey(signature), time.Now().Unix(), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim delivery: %w", err)
	}
	return ok, nil
}

// Release forgets the delivery so the provider's retry is processed.
func (g *RedisReplayGuard) Release(ctx context.Context, signature string) error {
	if err := g.client.Del(ctx, deliveryKey(signature)).Err(); err != nil {
		return fmt.Errorf("release delivery: %w", err)
	}
	return nil
}

func deliveryKey(signature string) string {
	sum := sha256.Sum256([]byte(signature))
	return replayKeyPrefix + hex.EncodeToString(sum[:])
}

// NopReplayGuard accepts every delivery.
type NopReplayGuard struct{}

// Acquire always succeeds.
func (NopReplayGuard) Acquire(context.Context, string) (bool, error) { return true, nil }

// Release does nothing.
func (NopReplayGuard) Release(context.Context, string) error { return nil }
