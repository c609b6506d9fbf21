package datastore

import (
	"context"
	"time"

	"kindlog/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableAchievement(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.AchievementDefinition)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.AchievementDefinition)(nil)).Index("index_achievement_definition_key").IfNotExists().Unique().Column("key").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateTable().Model((*models.UserAchievement)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.UserAchievement)(nil)).Index("index_user_achievement_user_id_achievement_id").IfNotExists().Unique().Column("user_id", "achievement_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func SeedAchievementDefinitions(ctx context.Context, db *bun.DB) error {
	definitions := models.DefaultAchievementCatalog()
	_, err := db.NewInsert().Model(&definitions).On("conflict (key) DO nothing").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func ListAchievementDefinitions(ctx context.Context, db *bun.DB) ([]models.AchievementDefinition, error) {
	var definitions []models.AchievementDefinition
	err := db.NewSelect().Model(&definitions).Order("sort_order ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return definitions, nil
}

func ListUserAchievements(ctx context.Context, db *bun.DB, userID int64) ([]models.UserAchievement, error) {
	var earned []models.UserAchievement
	err := db.NewSelect().Model(&earned).Where("user_id = ?", userID).Order("earned_at ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return earned, nil
}

// InsertUserAchievements grants the given definitions, skipping any the user
// already holds. Only rows the insert actually created come back, so a
// concurrent grant of the same achievement is reported by exactly one caller.
func InsertUserAchievements(ctx context.Context, db *bun.DB, userID int64, achievementIDs []int64, earnedAt time.Time) ([]models.UserAchievement, error) {
	if len(achievementIDs) == 0 {
		return nil, nil
	}

	grants := make([]models.UserAchievement, 0, len(achievementIDs))
	for _, id := range achievementIDs {
		grants = append(grants, models.UserAchievement{
			UserID:        userID,
			AchievementID: id,
			EarnedAt:      earnedAt,
		})
	}

	var inserted []models.UserAchievement
	_, err := db.NewInsert().
		Model(&grants).
		On("conflict (user_id, achievement_id) DO nothing").
		Returning("*").
		Exec(ctx, &inserted)
	if err != nil {
		return nil, err
	}

	return inserted, nil
}
