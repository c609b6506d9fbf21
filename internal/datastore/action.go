package datastore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"kindlog/internal/models"
	"kindlog/internal/pkg"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func CreateTableAction(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Action)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Action)(nil)).Index("index_action_uuid").IfNotExists().Unique().Column("uuid").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Action)(nil)).Index("index_action_user_id_completed_at").IfNotExists().Column("user_id", "completed_at").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Action)(nil)).Index("index_action_category").IfNotExists().Column("category").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

type RecordActionInput struct {
	UserID      int64
	ChallengeID *int64
	Category    string
	Text        *string
	Location    *string
	CompletedAt time.Time
}

// RecordAction inserts the action and moves every counter it touches in one
// transaction. The user row is updated first with a RETURNING clause, which
// takes the row lock and serializes concurrent completions by the same user;
// the streak read below therefore never sees a stale previous action.
func RecordAction(ctx context.Context, db *bun.DB, in RecordActionInput) (*models.Action, *models.User, error) {
	action := &models.Action{
		UUID:        uuid.NewString(),
		UserID:      in.UserID,
		ChallengeID: in.ChallengeID,
		Category:    in.Category,
		Text:        in.Text,
		Location:    in.Location,
		CompletedAt: in.CompletedAt,
		CreatedAt:   in.CompletedAt,
	}

	var user models.User
	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(&user).
			Set("total_actions = total_actions + 1").
			Set("updated_at = ?", in.CompletedAt).
			Where("id = ?", in.UserID).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return sql.ErrNoRows
		}

		var prev models.Action
		hasPrev := true
		err = tx.NewSelect().
			Model(&prev).
			Where("user_id = ?", in.UserID).
			Order("completed_at DESC").
			Limit(1).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			hasPrev = false
		} else if err != nil {
			return err
		}

		update := models.NextStreak(user.CurrentStreak, user.LongestStreak, pkg.DayOf(prev.CompletedAt), pkg.DayOf(in.CompletedAt), hasPrev)
		if _, err := tx.NewUpdate().
			Model((*models.User)(nil)).
			Set("current_streak = ?", update.Current).
			Set("longest_streak = ?", update.Longest).
			Where("id = ?", in.UserID).
			Exec(ctx); err != nil {
			return err
		}
		user.CurrentStreak = update.Current
		user.LongestStreak = update.Longest

		if _, err := tx.NewInsert().Model(action).Exec(ctx); err != nil {
			return err
		}

		if in.ChallengeID != nil {
			if _, err := tx.NewUpdate().
				Model((*models.Challenge)(nil)).
				Set("times_used = times_used + 1").
				Where("id = ?", *in.ChallengeID).
				Exec(ctx); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return action, &user, nil
}

func FindActionByUUID(ctx context.Context, db *bun.DB, actionUUID string) (*models.Action, error) {
	var action models.Action
	err := db.NewSelect().Model(&action).Where("uuid = ?", actionUUID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &action, nil
}

func GetActionsByUser(ctx context.Context, db *bun.DB, userID int64, limit, offset int) ([]*models.Action, error) {
	var actions []*models.Action
	err := db.NewSelect().
		Model(&actions).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return actions, nil
}

func CountActionsByUser(ctx context.Context, db *bun.DB, userID int64) (int, error) {
	count, err := db.NewSelect().Model((*models.Action)(nil)).Where("user_id = ?", userID).Count(ctx)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func SetActionClapsCount(ctx context.Context, db *bun.DB, actionID int64, count int) error {
	_, err := db.NewUpdate().
		Model((*models.Action)(nil)).
		Set("claps_count = ?", count).
		Where("id = ?", actionID).
		Exec(ctx)
	return err
}

type categoryCount struct {
	Category string `bun:"category"`
	Count    int    `bun:"count"`
}

func GetCategoryBreakdown(ctx context.Context, db *bun.DB, userID int64) (map[string]int, error) {
	var rows []categoryCount
	err := db.NewSelect().
		Model((*models.Action)(nil)).
		ColumnExpr("category, COUNT(*) AS count").
		Where("user_id = ?", userID).
		GroupExpr("category").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	breakdown := make(map[string]int, len(rows))
	for _, row := range rows {
		breakdown[row.Category] = row.Count
	}

	return breakdown, nil
}
