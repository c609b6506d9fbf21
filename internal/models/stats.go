package models

// UserStats is a point-in-time snapshot of everything the achievement
// rules can read. Building it is I/O, consuming it is not.
type UserStats struct {
	TotalActions         int            `json:"total_actions"`
	CurrentStreak        int            `json:"current_streak"`
	LongestStreak        int            `json:"longest_streak"`
	CategoryBreakdown    map[string]int `json:"category_breakdown"`
	UniqueCategoriesUsed int            `json:"unique_categories_used"`
	DaysSinceJoined      int            `json:"days_since_joined"`
}

func (stats UserStats) CategoryCount(category string) int {
	return stats.CategoryBreakdown[category]
}
