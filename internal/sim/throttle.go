package sim

import "time"

// Throttle is a last-update rate limiter: Allow returns true at most once per
// Interval of wall-clock time. The first call is always allowed.
type Throttle struct {
	Interval time.Duration
	last     time.Time
}

func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{Interval: interval}
}

func (t *Throttle) Allow(now time.Time) bool {
	if !t.last.IsZero() && now.Sub(t.last) < t.Interval {
		return false
	}
	t.last = now
	return true
}

func (t *Throttle) Reset() { t.last = time.Time{} }

