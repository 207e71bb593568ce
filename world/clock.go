package world

import "time"

// Clock is a manually advanced simulation clock in seconds.
type Clock struct {
	now float64
}

// Now returns the current simulation time.
func (c *Clock) Now() float64 { return c.now }

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	if d > 0 {
		c.now += d.Seconds()
	}
}

// Set jumps the clock to t seconds.
func (c *Clock) Set(t float64) { c.now = t }
