package services

import (
	"context"
	"time"

	"kindlog/internal/datastore"
	"kindlog/internal/models"
	"kindlog/internal/pkg/caching"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceAchievement struct {
	container  *do.Injector
	postgresDB *bun.DB
	cache      caching.Cache
}

func NewServiceAchievement(container *do.Injector) (*ServiceAchievement, error) {
	db, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceAchievement{container, db, cache}, nil
}

// metricValue reads the one stat a definition is keyed on.
func metricValue(definition models.AchievementDefinition, stats models.UserStats) int {
	switch definition.Metric {
	case models.MetricTotalActions:
		return stats.TotalActions
	case models.MetricLongestStreak:
		return stats.LongestStreak
	case models.MetricUniqueCategories:
		return stats.UniqueCategoriesUsed
	case models.MetricCategoryCount:
		return stats.CategoryCount(definition.TargetCategory)
	}
	return 0
}

// Evaluate returns every definition the snapshot satisfies. Pure over its
// inputs: no clock, no randomness, no I/O. Whether the user already holds an
// achievement is the awarder's concern, not the rules'.
func Evaluate(definitions []models.AchievementDefinition, stats models.UserStats) []models.AchievementDefinition {
	met := make([]models.AchievementDefinition, 0)
	for _, definition := range definitions {
		if metricValue(definition, stats) >= definition.Requirement {
			met = append(met, definition)
		}
	}

	return met
}

func (service *ServiceAchievement) Definitions(ctx context.Context) ([]models.AchievementDefinition, error) {
	callback := func() ([]models.AchievementDefinition, error) {
		return datastore.ListAchievementDefinitions(ctx, service.postgresDB)
	}

	return caching.UseCache(ctx, service.cache, DBKeyAchievementDefinitions(), CACHE_TTL_1_HOUR, callback)
}

// AwardNew evaluates the snapshot and grants whatever the user does not hold
// yet. The unique index behind the insert makes this idempotent, so two
// concurrent completions both calling AwardNew report each new achievement
// exactly once between them.
func (service *ServiceAchievement) AwardNew(ctx context.Context, userID int64, stats models.UserStats, now time.Time) ([]models.AchievementDefinition, error) {
	definitions, err := service.Definitions(ctx)
	if err != nil {
		return nil, err
	}

	met := Evaluate(definitions, stats)
	if len(met) == 0 {
		return nil, nil
	}

	earned, err := datastore.ListUserAchievements(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, err
	}
	held := make(map[int64]bool, len(earned))
	for _, grant := range earned {
		held[grant.AchievementID] = true
	}

	missing := make([]int64, 0)
	for _, definition := range met {
		if !held[definition.ID] {
			missing = append(missing, definition.ID)
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}

	inserted, err := datastore.InsertUserAchievements(ctx, service.postgresDB, userID, missing, now)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.AchievementDefinition, len(definitions))
	for _, definition := range definitions {
		byID[definition.ID] = definition
	}

	newlyAwarded := make([]models.AchievementDefinition, 0, len(inserted))
	for _, grant := range inserted {
		newlyAwarded = append(newlyAwarded, byID[grant.AchievementID])
	}

	if len(newlyAwarded) > 0 {
		//nolint:errcheck
		service.cache.Delete(ctx, DBKeyUserAchievements(userID))
	}

	return newlyAwarded, nil
}

// AchievementProgress pairs a definition with where the user stands on it.
// Current is the raw metric value; turning it into a display percentage is
// left to the API layer.
type AchievementProgress struct {
	Definition models.AchievementDefinition `json:"definition"`
	Current    int                          `json:"current"`
	Earned     bool                         `json:"earned"`
	EarnedAt   *time.Time                   `json:"earned_at,omitempty"`
}

func (service *ServiceAchievement) Progress(ctx context.Context, userID int64, stats models.UserStats) ([]AchievementProgress, error) {
	definitions, err := service.Definitions(ctx)
	if err != nil {
		return nil, err
	}

	earned, err := datastore.ListUserAchievements(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, err
	}
	earnedAt := make(map[int64]time.Time, len(earned))
	for _, grant := range earned {
		earnedAt[grant.AchievementID] = grant.EarnedAt
	}

	progress := make([]AchievementProgress, 0, len(definitions))
	for _, definition := range definitions {
		entry := AchievementProgress{
			Definition: definition,
			Current:    metricValue(definition, stats),
		}
		if at, ok := earnedAt[definition.ID]; ok {
			entry.Earned = true
			at := at
			entry.EarnedAt = &at
		}
		progress = append(progress, entry)
	}

	return progress, nil
}
