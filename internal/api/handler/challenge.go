package handler

import (
	"kindlog/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupChallenge struct {
	container *do.Injector
}

func (gr *groupChallenge) List(c echo.Context) error {
	ctx := c.Request().Context()

	serviceChallenge, err := do.Invoke[*services.ServiceChallenge](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	challenges, err := serviceChallenge.ListActive(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, wrapServiceErr(c, err))
	}

	return httpx.RestAbort(c, challenges, nil)
}

func (gr *groupChallenge) Suggested(c echo.Context) error {
	ctx := c.Request().Context()

	serviceChallenge, err := do.Invoke[*services.ServiceChallenge](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	challenges, err := serviceChallenge.Suggested(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, wrapServiceErr(c, err))
	}

	return httpx.RestAbort(c, challenges, nil)
}
