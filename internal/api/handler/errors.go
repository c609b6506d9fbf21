package handler

import (
	"errors"
	"fmt"

	"kindlog/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/labstack/echo/v4"
)

// wrapServiceErr translates service sentinels into response kinds. Rate
// limit rejections also get a Retry-After header so well behaved clients
// know when to come back.
func wrapServiceErr(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *services.RateLimitError
	if errors.As(err, &rateLimitErr) {
		c.Response().Header().Set("Retry-After", fmt.Sprintf("%.0f", rateLimitErr.RetryAfter.Seconds()))
		return errorx.Wrap(err, errorx.RateLimiting)
	}

	switch {
	case errors.Is(err, services.ErrRateLimited):
		return errorx.Wrap(err, errorx.RateLimiting)
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrActionNotFound),
		errors.Is(err, services.ErrClapNotFound),
		errors.Is(err, services.ErrChallengeNotFound):
		return errorx.Wrap(err, errorx.NotExist)
	case errors.Is(err, services.ErrDuplicateClap),
		errors.Is(err, services.ErrSelfClap),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrUsernameTaken):
		return errorx.Wrap(err, errorx.Invalid)
	default:
		return errorx.Wrap(err, errorx.Service)
	}
}
