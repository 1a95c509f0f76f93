// Package lock provides distributed per-entry locks backed by Redis.
package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/acctflow/acctflow_backend/internal/apperrors"
	portssvc "github.com/acctflow/acctflow_backend/internal/core/ports/services"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "acctflow:lock:"

// DefaultTTL bounds how long a crashed holder can block an entry.
const DefaultTTL = 30 * time.Second

// RedisLocker obtains short-lived exclusive locks with redislock.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
}

var _ portssvc.EntryLocker = (*RedisLocker)(nil)

// NewRedisClient parses a redis:// URL and checks the server is reachable.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	slog.Info("Connected to Redis", slog.String("addr", opts.Addr))
	return rdb, nil
}

// NewRedisLocker wraps an existing client. A non-positive ttl uses DefaultTTL.
func NewRedisLocker(rdb redis.UniversalClient, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisLocker{client: redislock.New(rdb), ttl: ttl}
}

// Acquire takes the lock for key without waiting. A lock held elsewhere
// returns an error wrapping apperrors.ErrConflict.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	lk, err := l.client.Obtain(ctx, keyPrefix+key, l.ttl, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, fmt.Errorf("%w: %s is locked by another request", apperrors.ErrConflict, key)
		}
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}

	return func(ctx context.Context) error {
		if err := lk.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return fmt.Errorf("failed to release lock %s: %w", key, err)
		}
		return nil
	}, nil
}
