package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"

	"kindlog/internal/datastore"
	"kindlog/internal/interfaces"
	"kindlog/internal/models"
	"kindlog/internal/pkg"
	"kindlog/internal/pkg/caching"
	"kindlog/internal/pkg/limiter"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceUser struct {
	container  *do.Injector
	postgresDB *bun.DB
	cache      caching.Cache
	limiter    interfaces.Limiter
	clock      pkg.Clock
	auth       *Authentication
}

func NewServiceUser(container *do.Injector) (*ServiceUser, error) {
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

	auth, err := do.Invoke[*Authentication](container)
	if err != nil {
		return nil, err
	}

	return &ServiceUser{container, db, cache, limit, clock, auth}, nil
}

type RegisterParams struct {
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	Email       *string `json:"email"`
}

type SessionResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates an account and hands back a session token. Limited per
// source IP, not per account, since there is no account yet.
func (service *ServiceUser) Register(ctx context.Context, sourceIP string, params RegisterParams) (*SessionResult, error) {
	result, err := service.limiter.Check(ctx, sourceIP, limiter.ActionCreateAccount, limiter.LimitCreateAccount)
	if err != nil {
		log.Printf("user: limiter check failed, allowing: %v", err)
	} else if !result.Allowed {
		return nil, &RateLimitError{RetryAfter: result.RetryAfter}
	}

	username := strings.TrimSpace(strings.ToLower(params.Username))
	if username == "" {
		return nil, errors.New("username required")
	}

	now := service.clock.Now()
	user := &models.User{
		Username:    username,
		DisplayName: params.DisplayName,
		Email:       params.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	user, err = datastore.CreateUser(ctx, service.postgresDB, user)
	if err != nil {
		if errors.Is(err, datastore.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	token, err := service.auth.CreateToken(&models.UserFromAuth{ID: user.ID, Username: user.Username}, now)
	if err != nil {
		return nil, err
	}

	return &SessionResult{User: user, Token: token}, nil
}

// Recover reissues a session token for an existing account, looked up by
// username or email. Tightly limited per source IP to slow enumeration.
func (service *ServiceUser) Recover(ctx context.Context, sourceIP string, identity string) (*SessionResult, error) {
	result, err := service.limiter.Check(ctx, sourceIP, limiter.ActionRecoverAccount, limiter.LimitRecoverAccount)
	if err != nil {
		log.Printf("user: limiter check failed, allowing: %v", err)
	} else if !result.Allowed {
		return nil, &RateLimitError{RetryAfter: result.RetryAfter}
	}

	identity = strings.TrimSpace(strings.ToLower(identity))
	user, err := datastore.FindUserByUsername(ctx, service.postgresDB, identity)
	if errors.Is(err, sql.ErrNoRows) && strings.Contains(identity, "@") {
		user, err = datastore.FindUserByEmail(ctx, service.postgresDB, identity)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	token, err := service.auth.CreateToken(&models.UserFromAuth{ID: user.ID, Username: user.Username}, service.clock.Now())
	if err != nil {
		return nil, err
	}

	return &SessionResult{User: user, Token: token}, nil
}

func (service *ServiceUser) Me(ctx context.Context, userID int64) (*models.User, error) {
	callback := func() (*models.User, error) {
		return datastore.FindUserByID(ctx, service.postgresDB, userID)
	}

	user, err := caching.UseCache(ctx, service.cache, DBKeyMe(userID), CACHE_TTL_15_SECONDS, callback)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (service *ServiceUser) Stats(ctx context.Context, userID int64) (models.UserStats, error) {
	callback := func() (models.UserStats, error) {
		user, err := datastore.FindUserByID(ctx, service.postgresDB, userID)
		if err != nil {
			return models.UserStats{}, err
		}
		return buildStats(ctx, service.postgresDB, user, service.clock)
	}

	stats, err := caching.UseCache(ctx, service.cache, DBKeyUserStats(userID), CACHE_TTL_15_SECONDS, callback)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserStats{}, ErrUserNotFound
		}
		return models.UserStats{}, err
	}

	return stats, nil
}
