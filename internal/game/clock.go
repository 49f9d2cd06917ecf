package game

import "time"

// Clock turns readings of a monotonic clock into whole elapsed seconds for Tick.
// Sub-second remainders carry over, so the countdown does not depend on how
// often the host polls.
type Clock struct {
	last  time.Time
	carry time.Duration
}

// NewClock starts a clock at now. Pass values from time.Now so comparisons use
// the monotonic reading.
func NewClock(now time.Time) *Clock {
	return &Clock{last: now}
}

// Elapsed returns the whole seconds since the previous call (or NewClock).
func (c *Clock) Elapsed(now time.Time) int {
	d := now.Sub(c.last) + c.carry
	c.last = now
	if d < 0 {
		c.carry = 0
		return 0
	}
	secs := d / time.Second
	c.carry = d - secs*time.Second
	return int(secs)
}
