package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strconv"

	"kindlog/internal/datastore"
	"kindlog/internal/interfaces"
	"kindlog/internal/models"
	"kindlog/internal/pkg"
	"kindlog/internal/pkg/caching"
	"kindlog/internal/pkg/limiter"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceClap struct {
	container  *do.Injector
	postgresDB *bun.DB
	cache      caching.Cache
	limiter    interfaces.Limiter
	clock      pkg.Clock
}

func NewServiceClap(container *do.Injector) (*ServiceClap, error) {
	db, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	limit, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	clock, err := do.Invoke[pkg.Clock](container)
	if err != nil {
		return nil, err
	}

	return &ServiceClap{container, db, cache, limit, clock}, nil
}

// AddClap applauds someone else's action. At most one clap per (user, action)
// pair; duplicates roll back without moving any counter.
func (service *ServiceClap) AddClap(ctx context.Context, userID int64, actionUUID string) (*models.Action, error) {
	result, err := service.limiter.Check(ctx, strconv.FormatInt(userID, 10), limiter.ActionApplause, limiter.LimitApplause)
	if err != nil {
		log.Printf("clap: limiter check failed, allowing: %v", err)
	} else if !result.Allowed {
		return nil, &RateLimitError{RetryAfter: result.RetryAfter}
	}

	action, err := datastore.FindActionByUUID(ctx, service.postgresDB, actionUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActionNotFound
		}
		return nil, err
	}

	if action.UserID == userID {
		return nil, ErrSelfClap
	}

	err = datastore.InsertClap(ctx, service.postgresDB, action.ID, userID, action.UserID, service.clock.Now())
	if err != nil {
		if errors.Is(err, datastore.ErrDuplicate) {
			return nil, ErrDuplicateClap
		}
		return nil, err
	}
	action.ClapsCount++

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyMe(action.UserID))

	return action, nil
}

// RemoveClap withdraws a previous clap. Removing a clap that was never given
// is an error and leaves every counter alone.
func (service *ServiceClap) RemoveClap(ctx context.Context, userID int64, actionUUID string) (*models.Action, error) {
	action, err := datastore.FindActionByUUID(ctx, service.postgresDB, actionUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActionNotFound
		}
		return nil, err
	}

	err = datastore.DeleteClap(ctx, service.postgresDB, action.ID, userID, action.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClapNotFound
		}
		return nil, err
	}
	if action.ClapsCount > 0 {
		action.ClapsCount--
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyMe(action.UserID))

	return action, nil
}
