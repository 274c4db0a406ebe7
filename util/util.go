// Package util holds small helpers shared by the simulation loops.
package util

import "time"

// SkipThrottler lets an event through at most once per period and skips the rest.
type SkipThrottler struct {
	d    time.Duration
	last time.Time
	now  func() time.Time
}

func NewSkipThrottler(d time.Duration) *SkipThrottler {
	return newSkipThrottler(d, time.Now)
}

func newSkipThrottler(d time.Duration, now func() time.Time) *SkipThrottler {
	return &SkipThrottler{d: d, now: now}
}

// Ok reports whether the period has elapsed since the last accepted event, and if so records now as the
// last event. The first call always succeeds.
func (tt *SkipThrottler) Ok() bool {
	now := tt.now()
	if !tt.last.IsZero() && now.Before(tt.last.Add(tt.d)) {
		return false
	}

	tt.last = now
	return true
}
