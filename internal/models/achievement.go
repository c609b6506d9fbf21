package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	AchievementCategoryStarter  = "STARTER"
	AchievementCategoryStreak   = "STREAK"
	AchievementCategoryImpact   = "IMPACT"
	AchievementCategoryCategory = "CATEGORY"
)

// Metrics an achievement definition can read from a stats snapshot.
// Each definition declares exactly one.
const (
	MetricTotalActions     = "total_actions"
	MetricLongestStreak    = "longest_streak"
	MetricUniqueCategories = "unique_categories"
	MetricCategoryCount    = "category_count"
)

// AchievementDefinition is a static catalog row, seeded once and read-only
// at runtime.
type AchievementDefinition struct {
	bun.BaseModel  `bun:"table:achievement_definition"`
	ID             int64     `bun:"id,pk,autoincrement" json:"id"`
	Key            string    `bun:"key,notnull" json:"key"`
	Name           string    `bun:"name,notnull" json:"name"`
	Description    string    `bun:"description" json:"description"`
	Category       string    `bun:"category,notnull" json:"category"`
	Metric         string    `bun:"metric,notnull" json:"-"`
	TargetCategory string    `bun:"target_category" json:"-"`
	Requirement    int       `bun:"requirement,notnull" json:"requirement"`
	SortOrder      int       `bun:"sort_order" json:"sort_order"`
	CreatedAt      time.Time `bun:"created_at,default:current_timestamp" json:"-"`
}

// UserAchievement is the earned join row, unique per (user, achievement).
// Earning is monotonic, rows are never deleted.
type UserAchievement struct {
	bun.BaseModel `bun:"table:user_achievement"`
	UserID        int64     `bun:"user_id,notnull" json:"user_id"`
	AchievementID int64     `bun:"achievement_id,notnull" json:"achievement_id"`
	EarnedAt      time.Time `bun:"earned_at,notnull" json:"earned_at"`
}

func DefaultAchievementCatalog() []AchievementDefinition {
	return []AchievementDefinition{
		{Key: "FIRST_ACTION", Name: "First Step", Description: "Record your first act of kindness", Category: AchievementCategoryStarter, Metric: MetricTotalActions, Requirement: 1, SortOrder: 1},
		{Key: "WELL_ROUNDED", Name: "Well Rounded", Description: "Record an action in every category", Category: AchievementCategoryStarter, Metric: MetricUniqueCategories, Requirement: 4, SortOrder: 2},

		{Key: "HELPER", Name: "Helper", Description: "Record 10 actions", Category: AchievementCategoryImpact, Metric: MetricTotalActions, Requirement: 10, SortOrder: 10},
		{Key: "DO_GOODER", Name: "Do-Gooder", Description: "Record 25 actions", Category: AchievementCategoryImpact, Metric: MetricTotalActions, Requirement: 25, SortOrder: 11},
		{Key: "CHANGEMAKER", Name: "Changemaker", Description: "Record 50 actions", Category: AchievementCategoryImpact, Metric: MetricTotalActions, Requirement: 50, SortOrder: 12},
		{Key: "HUMANITARIAN", Name: "Humanitarian", Description: "Record 100 actions", Category: AchievementCategoryImpact, Metric: MetricTotalActions, Requirement: 100, SortOrder: 13},

		{Key: "STREAK_3", Name: "On a Roll", Description: "Keep a 3-day streak", Category: AchievementCategoryStreak, Metric: MetricLongestStreak, Requirement: 3, SortOrder: 20},
		{Key: "STREAK_7", Name: "One Kind Week", Description: "Keep a 7-day streak", Category: AchievementCategoryStreak, Metric: MetricLongestStreak, Requirement: 7, SortOrder: 21},
		{Key: "STREAK_30", Name: "Kindness Habit", Description: "Keep a 30-day streak", Category: AchievementCategoryStreak, Metric: MetricLongestStreak, Requirement: 30, SortOrder: 22},

		{Key: "COMMUNITY_CHAMPION", Name: "Community Champion", Description: "Record 10 community actions", Category: AchievementCategoryCategory, Metric: MetricCategoryCount, TargetCategory: CategoryCommunity, Requirement: 10, SortOrder: 30},
		{Key: "EARTH_ALLY", Name: "Earth Ally", Description: "Record 10 environment actions", Category: AchievementCategoryCategory, Metric: MetricCategoryCount, TargetCategory: CategoryEnvironment, Requirement: 10, SortOrder: 31},
		{Key: "FAMILY_FIRST", Name: "Family First", Description: "Record 10 family actions", Category: AchievementCategoryCategory, Metric: MetricCategoryCount, TargetCategory: CategoryFamily, Requirement: 10, SortOrder: 32},
		{Key: "KIND_STRANGER", Name: "Kind Stranger", Description: "Record 10 actions for strangers", Category: AchievementCategoryCategory, Metric: MetricCategoryCount, TargetCategory: CategoryStrangers, Requirement: 10, SortOrder: 33},
	}
}
