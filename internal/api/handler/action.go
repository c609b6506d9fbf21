package handler

import (
	"kindlog/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupAction struct {
	container *do.Injector
}

func (gr *groupAction) Record(c echo.Context) error {
	ctx := c.Request().Context()

	userAuth, err := ResolveValidUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var params services.RecordActionParams
	if err := c.Bind(&params); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceAction, err := do.Invoke[*services.ServiceAction](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result, err := serviceAction.RecordAction(ctx, userAuth.ID, params)
	if err != nil {
		return httpx.RestAbort(c, nil, wrapServiceErr(c, err))
	}

	return httpx.RestAbort(c, result, nil)
}

func (gr *groupAction) AddClap(c echo.Context) error {
	ctx := c.Request().Context()

	userAuth, err := ResolveValidUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceClap, err := do.Invoke[*services.ServiceClap](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	action, err := serviceClap.AddClap(ctx, userAuth.ID, c.Param("id"))
	if err != nil {
		return httpx.RestAbort(c, nil, wrapServiceErr(c, err))
	}

	return httpx.RestAbort(c, action, nil)
}

func (gr *groupAction) RemoveClap(c echo.Context) error {
	ctx := c.Request().Context()

	userAuth, err := ResolveValidUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceClap, err := do.Invoke[*services.ServiceClap](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	action, err := serviceClap.RemoveClap(ctx, userAuth.ID, c.Param("id"))
	if err != nil {
		return httpx.RestAbort(c, nil, wrapServiceErr(c, err))
	}

	return httpx.RestAbort(c, action, nil)
}
