package limiter

import (
	"context"

	"github.com/go-redis/redis_rate/v10"
	tklimiter "github.com/hiendaovinh/toolkit/pkg/limiter"
	"github.com/redis/go-redis/v9"
)

// AllowLimiter guards the outer API surface with GCRA. The pipeline's own
// per-caller windows live in FixedWindow; this one only sheds bursts at the
// edge, keyed by client IP.
type AllowLimiter struct {
	instance *redis_rate.Limiter
}

func NewLimiter(rdb redis.UniversalClient) (*AllowLimiter, error) {
	return &AllowLimiter{redis_rate.NewLimiter(rdb)}, nil
}

func (l *AllowLimiter) Allow(ctx context.Context, key string, limit redis_rate.Limit) error {
	res, err := l.instance.Allow(ctx, key, limit)
	if err != nil {
		return err
	}
	if res.Allowed == 0 {
		return tklimiter.ErrRateLimited
	}
	return nil
}
