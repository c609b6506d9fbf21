package services

import (
	"context"
	"database/sql"
	"errors"

	"kindlog/internal/datastore"
	"kindlog/internal/models"
	"kindlog/internal/pkg/caching"

	"github.com/mroth/weightedrand/v2"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceChallenge struct {
	container  *do.Injector
	postgresDB *bun.DB
	cache      caching.Cache
	config     *ServiceConfig
}

func NewServiceChallenge(container *do.Injector) (*ServiceChallenge, error) {
	db, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	config, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceChallenge{container, db, cache, config}, nil
}

func (service *ServiceChallenge) ListActive(ctx context.Context) ([]*models.Challenge, error) {
	callback := func() ([]*models.Challenge, error) {
		return datastore.ListActiveChallenges(ctx, service.postgresDB)
	}

	return caching.UseCache(ctx, service.cache, DBKeyChallenges(), CACHE_TTL_5_MINS, callback)
}

func (service *ServiceChallenge) GetChallenge(ctx context.Context, challengeID int64) (*models.Challenge, error) {
	challenge, err := datastore.FindChallengeByID(ctx, service.postgresDB, challengeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}

	return challenge, nil
}

// Suggested draws a few distinct challenges, weighted toward the least used
// so the catalog rotates instead of the same three always surfacing.
func (service *ServiceChallenge) Suggested(ctx context.Context) ([]*models.Challenge, error) {
	challenges, err := service.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(challenges) == 0 {
		return nil, nil
	}

	count, _ := service.config.GetIntConfig(ctx, CONFIG_CHALLENGE_SUGGESTION_COUNT, CHALLENGE_SUGGESTION_DEFAULT)
	if count >= len(challenges) {
		return challenges, nil
	}

	maxUsed := 0
	for _, challenge := range challenges {
		if challenge.TimesUsed > maxUsed {
			maxUsed = challenge.TimesUsed
		}
	}

	choices := []weightedrand.Choice[*models.Challenge, int]{}
	for _, challenge := range challenges {
		weight := maxUsed + 1 - challenge.TimesUsed
		if weight < 1 {
			weight = 1
		}
		choices = append(choices, weightedrand.NewChoice(challenge, weight))
	}

	picker, err := NewServicePicker(choices)
	if err != nil {
		return nil, err
	}

	picked := make([]*models.Challenge, 0, count)
	seen := make(map[int64]bool, count)
	for len(picked) < count {
		challenge := picker.Pick()
		if seen[challenge.ID] {
			continue
		}
		seen[challenge.ID] = true
		picked = append(picked, challenge)
	}

	return picked, nil
}
