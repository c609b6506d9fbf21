package datastore

import (
	"context"

	"kindlog/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableChallenge(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Challenge)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Challenge)(nil)).Index("index_challenge_category").IfNotExists().Column("category").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindChallengeByID(ctx context.Context, db *bun.DB, challengeID int64) (*models.Challenge, error) {
	var challenge models.Challenge
	err := db.NewSelect().Model(&challenge).Where("id = ?", challengeID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &challenge, nil
}

func ListActiveChallenges(ctx context.Context, db *bun.DB) ([]*models.Challenge, error) {
	var challenges []*models.Challenge
	err := db.NewSelect().Model(&challenges).Where("active = true").Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return challenges, nil
}

func InsertChallenge(ctx context.Context, db *bun.DB, challenge *models.Challenge) (*models.Challenge, error) {
	_, err := db.NewInsert().Model(challenge).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return challenge, nil
}
