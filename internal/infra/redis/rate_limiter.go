package redis

import (
	"context"
	"fmt"
	"time"
)

// RateLimiter counts hits per key in fixed windows shared by every bot
// replica using the same Redis. Each window gets its own counter key, so a
// lost EXPIRE can never block a user beyond the current window.
type RateLimiter struct {
	client RedisClient
	now    func() time.Time
}

func NewRateLimiter(client RedisClient) *RateLimiter {
	return &RateLimiter{client: client, now: time.Now}
}

// Allow reports whether key may act again inside window. limit <= 0 disables
// limiting.
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 || window <= 0 {
		return true, nil
	}
	bucket := windowKey(key, r.now(), window)
	hits, err := r.client.Incr(ctx, bucket)
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if hits == 1 {
		// one extra window of slack covers clock skew between replicas
		if err := r.client.Expire(ctx, bucket, 2*window); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return hits <= int64(limit), nil
}

func windowKey(key string, now time.Time, window time.Duration) string {
	return fmt.Sprintf("rate_limit:%s:%d", key, now.UnixNano()/int64(window))
}
