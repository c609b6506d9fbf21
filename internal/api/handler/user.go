package handler

import (
	"strconv"
	"time"

	"kindlog/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupUser struct {
	container *do.Injector
}

func (gr *groupUser) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userAuth, err := ResolveValidUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceUser, err := do.Invoke[*services.ServiceUser](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	user, err := serviceUser.Me(ctx, userAuth.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, wrapServiceErr(c, err))
	}

	return httpx.RestAbort(c, user, nil)
}

func (gr *groupUser) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	userAuth, err := ResolveValidUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceUser, err := do.Invoke[*services.ServiceUser](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	stats, err := serviceUser.Stats(ctx, userAuth.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, wrapServiceErr(c, err))
	}

	return httpx.RestAbort(c, stats, nil)
}

type achievementView struct {
	Key         string     `json:"key"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Requirement int        `json:"requirement"`
	Current     int        `json:"current"`
	Percent     int        `json:"percent"`
	Earned      bool       `json:"earned"`
	EarnedAt    *time.Time `json:"earned_at,omitempty"`
}

func (gr *groupUser) Achievements(c echo.Context) error {
	ctx := c.Request().Context()

	userAuth, err := ResolveValidUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceUser, err := do.Invoke[*services.ServiceUser](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	serviceAchievement, err := do.Invoke[*services.ServiceAchievement](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	stats, err := serviceUser.Stats(ctx, userAuth.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, wrapServiceErr(c, err))
	}

	progress, err := serviceAchievement.Progress(ctx, userAuth.ID, stats)
	if err != nil {
		return httpx.RestAbort(c, nil, wrapServiceErr(c, err))
	}

	views := make([]achievementView, 0, len(progress))
	for _, entry := range progress {
		// display percentage is capped here, the rules never see it
		percent := 100
		if !entry.Earned && entry.Definition.Requirement > 0 {
			percent = entry.Current * 100 / entry.Definition.Requirement
			if percent > 100 {
				percent = 100
			}
		}
		views = append(views, achievementView{
			Key:         entry.Definition.Key,
			Name:        entry.Definition.Name,
			Description: entry.Definition.Description,
			Category:    entry.Definition.Category,
			Requirement: entry.Definition.Requirement,
			Current:     entry.Current,
			Percent:     percent,
			Earned:      entry.Earned,
			EarnedAt:    entry.EarnedAt,
		})
	}

	return httpx.RestAbort(c, views, nil)
}

func (gr *groupUser) Actions(c echo.Context) error {
	ctx := c.Request().Context()

	userAuth, err := ResolveValidUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	limit := 20
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, _ = strconv.Atoi(limitStr)
		if limit > 100 {
			limit = 100
		}
		if limit < 1 {
			limit = 20
		}
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 0 {
		page = 0
	}

	serviceAction, err := do.Invoke[*services.ServiceAction](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	actions, err := serviceAction.ListUserActions(ctx, userAuth.ID, limit, page*limit)
	if err != nil {
		return httpx.RestAbort(c, nil, wrapServiceErr(c, err))
	}

	return httpx.RestAbort(c, actions, nil)
}
