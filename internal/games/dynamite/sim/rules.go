package sim

import "time"

// Rules are the tunable constants of the simulation.
type Rules struct {
	Fuse           time.Duration // Timed and Freeze bomb fuse
	FreezeDuration time.Duration
	FlowPeriod     time.Duration // time to drift one cell
	CarryCapacity  int
}

// DefaultRules returns the stock game tuning.
func DefaultRules() Rules {
	return Rules{
		Fuse:           3 * time.Second,
		FreezeDuration: 5 * time.Second,
		FlowPeriod:     time.Second,
		CarryCapacity:  2,
	}
}

// normalized replaces unset fields with defaults.
func (r Rules) normalized() Rules {
	d := DefaultRules()
	if r.Fuse <= 0 {
		r.Fuse = d.Fuse
	}
	if r.FreezeDuration <= 0 {
		r.FreezeDuration = d.FreezeDuration
	}
	if r.FlowPeriod <= 0 {
		r.FlowPeriod = d.FlowPeriod
	}
	if r.CarryCapacity <= 0 {
		r.CarryCapacity = d.CarryCapacity
	}
	return r
}
