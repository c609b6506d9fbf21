package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextStreak(t *testing.T) {
	tests := []struct {
		name        string
		current     int
		longest     int
		previousDay time.Time
		latestDay   time.Time
		hasPrevious bool
		expected    StreakUpdate
	}{
		{
			name:      "first action ever starts at one",
			latestDay: day(2026, 3, 10),
			expected:  StreakUpdate{Current: 1, Longest: 1},
		},
		{
			name:        "consecutive day extends",
			current:     3,
			longest:     5,
			previousDay: day(2026, 3, 9),
			latestDay:   day(2026, 3, 10),
			hasPrevious: true,
			expected:    StreakUpdate{Current: 4, Longest: 5},
		},
		{
			name:        "extension can set a new longest",
			current:     5,
			longest:     5,
			previousDay: day(2026, 3, 9),
			latestDay:   day(2026, 3, 10),
			hasPrevious: true,
			expected:    StreakUpdate{Current: 6, Longest: 6},
		},
		{
			name:        "same day keeps an established streak",
			current:     4,
			longest:     4,
			previousDay: day(2026, 3, 10),
			latestDay:   day(2026, 3, 10),
			hasPrevious: true,
			expected:    StreakUpdate{Current: 4, Longest: 4},
		},
		{
			name:        "same day lifts a zero streak to one",
			current:     0,
			longest:     2,
			previousDay: day(2026, 3, 10),
			latestDay:   day(2026, 3, 10),
			hasPrevious: true,
			expected:    StreakUpdate{Current: 1, Longest: 2},
		},
		{
			name:        "one missed day resets to one",
			current:     7,
			longest:     7,
			previousDay: day(2026, 3, 8),
			latestDay:   day(2026, 3, 10),
			hasPrevious: true,
			expected:    StreakUpdate{Current: 1, Longest: 7},
		},
		{
			name:        "long gap resets to one",
			current:     30,
			longest:     30,
			previousDay: day(2026, 1, 1),
			latestDay:   day(2026, 3, 10),
			hasPrevious: true,
			expected:    StreakUpdate{Current: 1, Longest: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextStreak(tt.current, tt.longest, tt.previousDay, tt.latestDay, tt.hasPrevious)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNextStreakLongestNeverShrinks(t *testing.T) {
	update := NextStreak(10, 10, day(2026, 3, 1), day(2026, 3, 20), true)
	assert.Equal(t, 1, update.Current)
	assert.Equal(t, 10, update.Longest)
}
