package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrActionNotFound = errors.New("action not found")
var ErrClapNotFound = errors.New("clap not found")
var ErrDuplicateClap = errors.New("already clapped for this action")
var ErrSelfClap = errors.New("cannot clap for your own action")
var ErrUsernameTaken = errors.New("username already taken")
var ErrInvalidCategory = errors.New("unknown action category")
var ErrChallengeNotFound = errors.New("challenge not found")
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimitError carries the wait callers should honor before retrying.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}

const (
	CONFIG_SERVER_MODE                = "SERVER_MODE"
	CONFIG_RECORD_ACTION_DAILY_LIMIT  = "RECORD_ACTION_DAILY_LIMIT"
	CONFIG_CRONJOB_TIME_RECONCILE     = "CRONJOB_TIME_RECONCILE"
	CONFIG_CHALLENGE_SUGGESTION_COUNT = "CHALLENGE_SUGGESTION_COUNT"

	SERVER_MODE_DEVELOPMENT = "development"
	SERVER_MODE_STAGING     = "staging"
	SERVER_MODE_PRODUCTION  = "production"

	RECORD_ACTION_DEFAULT_DAILY_LIMIT = 50
	CHALLENGE_SUGGESTION_DEFAULT      = 3

	CACHE_TTL_5_SECONDS  = 5 * time.Second
	CACHE_TTL_15_SECONDS = 15 * time.Second
	CACHE_TTL_1_MIN      = 1 * time.Minute
	CACHE_TTL_5_MINS     = 5 * time.Minute
	CACHE_TTL_15_MINS    = 15 * time.Minute
	CACHE_TTL_1_HOUR     = 1 * time.Hour
	CACHE_TTL_1_DAY      = 24 * time.Hour
)

func LockKeyReconcile() string {
	return "lock:reconcile-counters"
}

// db
func DBKeyMe(userID int64) string {
	return fmt.Sprintf("me:%d", userID)
}

func DBKeyUserStats(userID int64) string {
	return fmt.Sprintf("user:%d:stats", userID)
}

func DBKeyUserAchievements(userID int64) string {
	return fmt.Sprintf("user:%d:achievements", userID)
}

func DBKeyAchievementDefinitions() string {
	return "achievements:definitions"
}

func DBKeyChallenges() string {
	return "challenges:active"
}

func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", strings.ToLower(key))
}
