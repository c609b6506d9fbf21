package pkg

import "time"

// Clock is the single source of "now" for the engagement pipeline so tests
// can pin it.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

func SystemClock() Clock {
	return ClockFunc(time.Now)
}

// DayOf truncates a timestamp to its UTC calendar day. All streak math uses
// this one reference timezone.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole-day distance between two timestamps'
// calendar days, later minus earlier.
func DaysBetween(earlier, later time.Time) int {
	return int(DayOf(later).Sub(DayOf(earlier)).Hours() / 24)
}
