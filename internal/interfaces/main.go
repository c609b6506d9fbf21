package interfaces

import (
	"context"

	"kindlog/internal/pkg/limiter"

	"github.com/go-redis/redis_rate/v10"
)

// Limiter is the pipeline's per-caller fixed-window counter. Implementations
// must fail open when their backing store is down.
type Limiter interface {
	Check(ctx context.Context, identity, action string, limit limiter.Limit) (limiter.Result, error)
}

// EdgeLimiter shields the HTTP surface, keyed by client IP.
type EdgeLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) error
}
