package handler

import (
	"kindlog/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupAuth struct {
	container *do.Injector
}

func (gr *groupAuth) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var params services.RegisterParams
	if err := c.Bind(&params); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceUser, err := do.Invoke[*services.ServiceUser](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	session, err := serviceUser.Register(ctx, c.RealIP(), params)
	if err != nil {
		return httpx.RestAbort(c, nil, wrapServiceErr(c, err))
	}

	return httpx.RestAbort(c, session, nil)
}

func (gr *groupAuth) Recover(c echo.Context) error {
	ctx := c.Request().Context()

	var params struct {
		Identity string `json:"identity"`
	}
	if err := c.Bind(&params); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceUser, err := do.Invoke[*services.ServiceUser](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	session, err := serviceUser.Recover(ctx, c.RealIP(), params.Identity)
	if err != nil {
		return httpx.RestAbort(c, nil, wrapServiceErr(c, err))
	}

	return httpx.RestAbort(c, session, nil)
}
