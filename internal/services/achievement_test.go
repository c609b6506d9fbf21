package services

import (
	"testing"

	"kindlog/internal/models"

	"github.com/stretchr/testify/assert"
)

func keys(definitions []models.AchievementDefinition) []string {
	out := make([]string, 0, len(definitions))
	for _, definition := range definitions {
		out = append(out, definition.Key)
	}
	return out
}

func TestEvaluate(t *testing.T) {
	catalog := models.DefaultAchievementCatalog()

	tests := []struct {
		name     string
		stats    models.UserStats
		expected []string
	}{
		{
			name:     "zero stats earn nothing",
			stats:    models.UserStats{},
			expected: []string{},
		},
		{
			name: "first action",
			stats: models.UserStats{
				TotalActions:         1,
				CurrentStreak:        1,
				LongestStreak:        1,
				CategoryBreakdown:    map[string]int{models.CategoryFamily: 1},
				UniqueCategoriesUsed: 1,
			},
			expected: []string{"FIRST_ACTION"},
		},
		{
			name: "ten actions split across two categories",
			stats: models.UserStats{
				TotalActions:         10,
				CurrentStreak:        1,
				LongestStreak:        2,
				CategoryBreakdown:    map[string]int{models.CategoryFamily: 5, models.CategoryCommunity: 5},
				UniqueCategoriesUsed: 2,
			},
			expected: []string{"FIRST_ACTION", "HELPER"},
		},
		{
			name: "category achievement needs ten in that category",
			stats: models.UserStats{
				TotalActions:         10,
				LongestStreak:        1,
				CategoryBreakdown:    map[string]int{models.CategoryEnvironment: 10},
				UniqueCategoriesUsed: 1,
			},
			expected: []string{"FIRST_ACTION", "HELPER", "EARTH_ALLY"},
		},
		{
			name: "streak rules read longest, not current",
			stats: models.UserStats{
				TotalActions:         8,
				CurrentStreak:        1,
				LongestStreak:        7,
				CategoryBreakdown:    map[string]int{models.CategoryFamily: 8},
				UniqueCategoriesUsed: 1,
			},
			expected: []string{"FIRST_ACTION", "STREAK_3", "STREAK_7"},
		},
		{
			name: "all four categories",
			stats: models.UserStats{
				TotalActions:  4,
				CurrentStreak: 1,
				LongestStreak: 1,
				CategoryBreakdown: map[string]int{
					models.CategoryCommunity:   1,
					models.CategoryEnvironment: 1,
					models.CategoryFamily:      1,
					models.CategoryStrangers:   1,
				},
				UniqueCategoriesUsed: 4,
			},
			expected: []string{"FIRST_ACTION", "WELL_ROUNDED"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			met := Evaluate(catalog, tt.stats)
			assert.ElementsMatch(t, tt.expected, keys(met))
		})
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	catalog := models.DefaultAchievementCatalog()
	stats := models.UserStats{
		TotalActions:         25,
		LongestStreak:        3,
		CategoryBreakdown:    map[string]int{models.CategoryStrangers: 25},
		UniqueCategoriesUsed: 1,
	}

	first := Evaluate(catalog, stats)
	second := Evaluate(catalog, stats)
	assert.Equal(t, first, second)
}
