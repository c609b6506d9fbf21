package services

import (
	"context"

	"kindlog/internal/datastore"
	"kindlog/internal/models"
	"kindlog/internal/pkg"

	"github.com/uptrace/bun"
)

// buildStats assembles a snapshot from a fresh user row. Counters come off
// the row itself; only the category breakdown needs another query.
func buildStats(ctx context.Context, db *bun.DB, user *models.User, clock pkg.Clock) (models.UserStats, error) {
	breakdown, err := datastore.GetCategoryBreakdown(ctx, db, user.ID)
	if err != nil {
		return models.UserStats{}, err
	}

	return models.UserStats{
		TotalActions:         user.TotalActions,
		CurrentStreak:        user.CurrentStreak,
		LongestStreak:        user.LongestStreak,
		CategoryBreakdown:    breakdown,
		UniqueCategoriesUsed: len(breakdown),
		DaysSinceJoined:      pkg.DaysBetween(user.CreatedAt, clock.Now()),
	}, nil
}
