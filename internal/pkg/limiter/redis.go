package limiter

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisFixedWindow shares one fixed window per key across replicas, backed
// by INCR + EXPIRE. When Redis is unreachable it fails open: the write path
// stays available and the fault is logged, enforcement resumes when Redis
// comes back.
type RedisFixedWindow struct {
	rdb redis.UniversalClient
	now func() time.Time
}

func NewRedis(rdb redis.UniversalClient) *RedisFixedWindow {
	return &RedisFixedWindow{rdb: rdb, now: time.Now}
}

func (l *RedisFixedWindow) Check(ctx context.Context, identity, action string, limit Limit) (Result, error) {
	key := fmt.Sprintf("limit:%s:%s", action, identity)
	now := l.now()

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, limit.Window)
	ttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("limiter: redis unavailable, failing open: %v", err)
		return Result{Allowed: true, Remaining: limit.Rate, ResetAt: now.Add(limit.Window)}, nil
	}

	count := int(incr.Val())
	resetAt := now.Add(ttl.Val())

	if count > limit.Rate {
		return Result{
			Allowed:    false,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: retryIn(resetAt, now),
		}, nil
	}

	remaining := limit.Rate - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{Allowed: true, Remaining: remaining, ResetAt: resetAt}, nil
}
