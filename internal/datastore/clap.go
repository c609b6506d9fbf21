package datastore

import (
	"context"
	"database/sql"
	"time"

	"kindlog/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableClap(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Clap)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Clap)(nil)).Index("index_clap_action_id_user_id").IfNotExists().Unique().Column("action_id", "user_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

// InsertClap records one clap and bumps both counters atomically. The unique
// index on (action_id, user_id) is the real duplicate guard; a violation
// rolls everything back and surfaces as ErrDuplicate, so repeat claps never
// move a counter.
func InsertClap(ctx context.Context, db *bun.DB, actionID, userID, ownerID int64, at time.Time) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		clap := &models.Clap{
			ActionID:  actionID,
			UserID:    userID,
			CreatedAt: at,
		}
		if _, err := tx.NewInsert().Model(clap).Exec(ctx); err != nil {
			if IsUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}

		if _, err := tx.NewUpdate().
			Model((*models.Action)(nil)).
			Set("claps_count = claps_count + 1").
			Where("id = ?", actionID).
			Exec(ctx); err != nil {
			return err
		}

		if _, err := tx.NewUpdate().
			Model((*models.User)(nil)).
			Set("claps_received = claps_received + 1").
			Where("id = ?", ownerID).
			Exec(ctx); err != nil {
			return err
		}

		return nil
	})
}

// DeleteClap is the exact inverse of InsertClap. When no clap row exists the
// delete affects nothing and the counters stay untouched.
func DeleteClap(ctx context.Context, db *bun.DB, actionID, userID, ownerID int64) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().
			Model((*models.Clap)(nil)).
			Where("action_id = ?", actionID).
			Where("user_id = ?", userID).
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

		if _, err := tx.NewUpdate().
			Model((*models.Action)(nil)).
			Set("claps_count = claps_count - 1").
			Where("id = ?", actionID).
			Where("claps_count > 0").
			Exec(ctx); err != nil {
			return err
		}

		if _, err := tx.NewUpdate().
			Model((*models.User)(nil)).
			Set("claps_received = claps_received - 1").
			Where("id = ?", ownerID).
			Where("claps_received > 0").
			Exec(ctx); err != nil {
			return err
		}

		return nil
	})
}

func CountClapsByAction(ctx context.Context, db *bun.DB, actionID int64) (int, error) {
	count, err := db.NewSelect().Model((*models.Clap)(nil)).Where("action_id = ?", actionID).Count(ctx)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func CountClapsReceivedByUser(ctx context.Context, db *bun.DB, userID int64) (int, error) {
	count, err := db.NewSelect().
		Model((*models.Clap)(nil)).
		Join("JOIN action ON action.id = clap.action_id").
		Where("action.user_id = ?", userID).
		Count(ctx)
	if err != nil {
		return 0, err
	}

	return count, nil
}
