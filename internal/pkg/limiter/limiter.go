package limiter

import "time"

// Actions the pipeline rate-limits. The window key is action:identity.
const (
	ActionApplause       = "applause"
	ActionRecordAction   = "record_action"
	ActionCreateAccount  = "create_account"
	ActionRecoverAccount = "recover_account"
)

type Limit struct {
	Rate   int
	Window time.Duration
}

func Per(rate int, window time.Duration) Limit {
	return Limit{Rate: rate, Window: window}
}

func PerHour(rate int) Limit {
	return Per(rate, time.Hour)
}

func PerDay(rate int) Limit {
	return Per(rate, 24*time.Hour)
}

// Caller presets. Abuse deterrence, not hard quotas: a fixed window lets
// through up to 2x the nominal rate across a window boundary.
var (
	LimitApplause       = PerHour(100)
	LimitRecordAction   = PerDay(50)
	LimitCreateAccount  = PerHour(5)
	LimitRecoverAccount = Per(5, 15*time.Minute)
)

type Result struct {
	Allowed    bool          `json:"allowed"`
	Remaining  int           `json:"remaining"`
	ResetAt    time.Time     `json:"reset_at"`
	RetryAfter time.Duration `json:"retry_after,omitempty"`
}

// retryIn rounds the remaining window up to whole seconds, so callers never
// retry a hair too early.
func retryIn(resetAt, now time.Time) time.Duration {
	d := resetAt.Sub(now)
	if d <= 0 {
		return time.Second
	}
	if rem := d % time.Second; rem > 0 {
		d += time.Second - rem
	}
	return d
}
