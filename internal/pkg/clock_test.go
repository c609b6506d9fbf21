package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayOf(t *testing.T) {
	// 23:30 in UTC+2 is 21:30 UTC, still the same UTC day
	loc := time.FixedZone("UTC+2", 2*60*60)
	at := time.Date(2026, 3, 10, 23, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), DayOf(at))

	// 01:00 in UTC+2 crosses back to the previous UTC day
	at = time.Date(2026, 3, 10, 1, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), DayOf(at))
}

func TestDaysBetween(t *testing.T) {
	earlier := time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC)
	later := time.Date(2026, 3, 10, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(earlier, later))

	assert.Equal(t, 0, DaysBetween(later, later))
	assert.Equal(t, 31, DaysBetween(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), time.Date(2026, 2, 1, 6, 0, 0, 0, time.UTC)))
}

func TestClockFunc(t *testing.T) {
	fixed := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	var clock Clock = ClockFunc(func() time.Time { return fixed })
	assert.Equal(t, fixed, clock.Now())
}
