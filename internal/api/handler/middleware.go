package handler

import (
	"context"
	"errors"
	"strings"

	"kindlog/internal/interfaces"
	"kindlog/internal/models"

	"github.com/go-redis/redis_rate/v10"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type ctxKey string

var ctxKeyAuthUser ctxKey = "AUTH_USER"

const EDGE_RATE_LIMIT_PER_MINUTE = 120

func Authn(verifier interface {
	Validate(token string) (*models.UserFromAuth, error)
},
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			parts := strings.Split(header, "Bearer")
			if len(parts) != 2 {
				return next(c)
			}

			token := strings.TrimSpace(parts[1])
			if len(token) == 0 {
				return next(c)
			}

			user, err := verifier.Validate(token)
			if err != nil {
				// although it's a client error, we don't want to leak details
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(errors.New("invalid access token"), errorx.Authn), -1)
				return nil
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, ctxKeyAuthUser, user)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func ResolveValidUser(ctx context.Context) (*models.UserFromAuth, error) {
	userAuth, ok := ctx.Value(ctxKeyAuthUser).(*models.UserFromAuth)
	if !ok {
		return nil, errorx.Wrap(errors.New("missing session"), errorx.Authn)
	}

	return userAuth, nil
}

// EdgeRateLimit sheds bursts per client IP before any handler runs. The
// per-caller action windows are enforced deeper in the services.
func EdgeRateLimit(container *do.Injector) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			edge, err := do.Invoke[interfaces.EdgeLimiter](container)
			if err != nil {
				return next(c)
			}

			err = edge.Allow(c.Request().Context(), "edge:"+c.RealIP(), redis_rate.PerMinute(EDGE_RATE_LIMIT_PER_MINUTE))
			if err != nil {
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(errors.New("too many requests"), errorx.RateLimiting), -1)
				return nil
			}

			return next(c)
		}
	}
}
