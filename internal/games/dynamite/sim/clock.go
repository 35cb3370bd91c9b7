package sim

import "time"

// Clock is the simulation clock threaded through every StepTick call.
// Now is the sim time at the start of the tick being processed and Step is
// the time that tick covers.
//
// A clock from NewClock derives Now from the tick count, so sixty ticks at
// 60 per second add up to exactly one second even though no single step
// does. A literal Clock{Step: d} advances by d.
type Clock struct {
	Now    time.Duration
	Step   time.Duration
	Paused bool

	rate  int
	ticks int64
}

// NewClock returns a clock at zero advancing tickRate times per second.
func NewClock(tickRate int) Clock {
	if tickRate <= 0 {
		tickRate = 50
	}
	c := Clock{rate: tickRate}
	c.Step = c.at(1)
	return c
}

// at returns the sim time after n ticks.
func (c Clock) at(n int64) time.Duration {
	return time.Duration(n) * time.Second / time.Duration(c.rate)
}

// Advance returns the clock for the following tick.
// A paused clock does not move.
func (c Clock) Advance() Clock {
	if c.Paused {
		return c
	}
	if c.rate == 0 {
		c.Now += c.Step
		return c
	}
	c.ticks++
	c.Now = c.at(c.ticks)
	c.Step = c.at(c.ticks+1) - c.Now
	return c
}

// WithPaused returns a copy with the pause gate set.
func (c Clock) WithPaused(paused bool) Clock {
	c.Paused = paused
	return c
}
