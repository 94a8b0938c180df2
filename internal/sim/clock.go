// Package sim provides the simulation timeline: a freezable game clock and a
// scheduler for delayed effects that fire on that clock.
package sim

// Clock tracks game time in seconds. Game time only advances while the
// clock is running; freezing it is how the game pauses and how a finished
// level stops simulating.
type Clock struct {
	now    float64
	frozen bool
}

// NewClock returns a running clock at time zero.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the current game time.
func (c *Clock) Now() float64 {
	return c.now
}

// Advance moves game time forward by the real elapsed dt and returns the
// game-time delta actually applied (zero while frozen or for negative dt).
func (c *Clock) Advance(dt float64) float64 {
	if c.frozen || dt <= 0 {
		return 0
	}
	c.now += dt
	return dt
}

// Freeze stops game time.
func (c *Clock) Freeze() {
	c.frozen = true
}

// Unfreeze resumes game time.
func (c *Clock) Unfreeze() {
	c.frozen = false
}

// Frozen reports whether game time is stopped.
func (c *Clock) Frozen() bool {
	return c.frozen
}
