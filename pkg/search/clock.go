package search

import "time"

// yieldInterval is the maximum wall-clock spacing between cooperative yields (spec section
// 4.6 Cooperative yielding, section 5: "≤ 30 ms between yields").
const yieldInterval = 30 * time.Millisecond

// Clock tracks an absolute search deadline and drives cooperative yielding. The search checks
// Expired before expanding every node and calls Tick at bounded intervals so that a
// single-threaded host (e.g. an interactive UI) stays responsive (spec section 9 Design Notes:
// "replace promise-resolution yields with a pluggable should-yield callback... plus an
// absolute-deadline clock").
type Clock struct {
	// Deadline is the absolute wall-clock time the search must stop expanding new nodes by.
	// The zero value means no deadline.
	Deadline time.Time

	// Yield is invoked at bounded spacing to let the host scheduler run. May be nil, in which
	// case yielding is a no-op -- appropriate on a platform with preemptive scheduling (spec
	// section 9).
	Yield func()

	last time.Time
}

// Expired reports whether the deadline has passed. A zero Deadline never expires.
func (c *Clock) Expired() bool {
	return !c.Deadline.IsZero() && !time.Now().Before(c.Deadline)
}

// Tick calls Yield if at least yieldInterval has elapsed since the last call.
func (c *Clock) Tick() {
	if c.Yield == nil {
		return
	}
	now := time.Now()
	if now.Sub(c.last) >= yieldInterval {
		c.last = now
		c.Yield()
	}
}

// Remaining returns the time left before the deadline, or a large positive duration if there is
// none.
func (c *Clock) Remaining() time.Duration {
	if c.Deadline.IsZero() {
		return time.Hour
	}
	return time.Until(c.Deadline)
}
