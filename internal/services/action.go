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

type ServiceAction struct {
	container   *do.Injector
	postgresDB  *bun.DB
	cache       caching.Cache
	limiter     interfaces.Limiter
	clock       pkg.Clock
	achievement *ServiceAchievement
	config      *ServiceConfig
}

func NewServiceAction(container *do.Injector) (*ServiceAction, error) {
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

	achievement, err := do.Invoke[*ServiceAchievement](container)
	if err != nil {
		return nil, err
	}

	config, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceAction{container, db, cache, limit, clock, achievement, config}, nil
}

type RecordActionParams struct {
	Category    string  `json:"category"`
	Text        *string `json:"text"`
	Location    *string `json:"location"`
	ChallengeID *int64  `json:"challenge_id"`
}

type RecordActionResult struct {
	Action        *models.Action                 `json:"action"`
	TotalActions  int                            `json:"total_actions"`
	CurrentStreak int                            `json:"current_streak"`
	LongestStreak int                            `json:"longest_streak"`
	NewlyAwarded  []models.AchievementDefinition `json:"newly_awarded"`
}

// RecordAction runs the full completion pipeline: rate limit, validate,
// persist counters and streak in one transaction, then award achievements
// off the fresh snapshot.
func (service *ServiceAction) RecordAction(ctx context.Context, userID int64, params RecordActionParams) (*RecordActionResult, error) {
	dailyLimit, _ := service.config.GetIntConfig(ctx, CONFIG_RECORD_ACTION_DAILY_LIMIT, RECORD_ACTION_DEFAULT_DAILY_LIMIT)

	result, err := service.limiter.Check(ctx, strconv.FormatInt(userID, 10), limiter.ActionRecordAction, limiter.PerDay(dailyLimit))
	if err != nil {
		// limiter backends fail open themselves, this is belt and braces
		log.Printf("action: limiter check failed, allowing: %v", err)
	} else if !result.Allowed {
		return nil, &RateLimitError{RetryAfter: result.RetryAfter}
	}

	if !models.ValidCategory(params.Category) {
		return nil, ErrInvalidCategory
	}

	if params.ChallengeID != nil {
		if _, err := datastore.FindChallengeByID(ctx, service.postgresDB, *params.ChallengeID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrChallengeNotFound
			}
			return nil, err
		}
	}

	now := service.clock.Now()
	action, user, err := datastore.RecordAction(ctx, service.postgresDB, datastore.RecordActionInput{
		UserID:      userID,
		ChallengeID: params.ChallengeID,
		Category:    params.Category,
		Text:        params.Text,
		Location:    params.Location,
		CompletedAt: now,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	stats, err := buildStats(ctx, service.postgresDB, user, service.clock)
	if err != nil {
		return nil, err
	}

	newlyAwarded, err := service.achievement.AwardNew(ctx, userID, stats, now)
	if err != nil {
		return nil, err
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyMe(userID))
	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyUserStats(userID))

	return &RecordActionResult{
		Action:        action,
		TotalActions:  user.TotalActions,
		CurrentStreak: user.CurrentStreak,
		LongestStreak: user.LongestStreak,
		NewlyAwarded:  newlyAwarded,
	}, nil
}

func (service *ServiceAction) GetAction(ctx context.Context, actionUUID string) (*models.Action, error) {
	action, err := datastore.FindActionByUUID(ctx, service.postgresDB, actionUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActionNotFound
		}
		return nil, err
	}

	return action, nil
}

func (service *ServiceAction) ListUserActions(ctx context.Context, userID int64, limit, offset int) ([]*models.Action, error) {
	return datastore.GetActionsByUser(ctx, service.postgresDB, userID, limit, offset)
}
