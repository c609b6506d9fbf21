package models

import "time"

type StreakUpdate struct {
	Current int `json:"current_streak"`
	Longest int `json:"longest_streak"`
}

// NextStreak advances a user's streak after a new action. previousDay and
// latestDay must already be truncated to calendar days in the reference
// timezone; hasPrevious is false when the new action is the first ever.
//
// Same-day repeats neither grow nor reset the streak; a gap of more than
// one day restarts it at 1.
func NextStreak(current, longest int, previousDay, latestDay time.Time, hasPrevious bool) StreakUpdate {
	next := current
	switch {
	case !hasPrevious:
		next = 1
	default:
		dayDiff := int(latestDay.Sub(previousDay).Hours() / 24)
		switch {
		case dayDiff == 1:
			next = current + 1
		case dayDiff == 0:
			if next < 1 {
				next = 1
			}
		default:
			next = 1
		}
	}

	if longest < next {
		longest = next
	}
	return StreakUpdate{Current: next, Longest: longest}
}
