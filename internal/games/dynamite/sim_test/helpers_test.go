package sim_test

import (
	"testing"
	"time"

	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/sim"
)

const step = 100 * time.Millisecond

// landLayout returns a w x h field of land with the player in the top-left
// corner and a spare dam in the bottom-right so a level does not end early.
func landLayout(w, h int) *sim.Layout {
	l := sim.NewLayout(w, h)
	l.Player = sim.C(0, 0)
	l.Add(sim.DamAt(sim.C(w-1, h-1)))
	return l
}

func build(t *testing.T, l *sim.Layout) *sim.State {
	t.Helper()
	st, err := sim.NewState(l, sim.DefaultRules())
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	return st
}

// runner owns the clock for a test and fails on any engine defect.
type runner struct {
	t   *testing.T
	st  *sim.State
	clk sim.Clock
}

func newRunner(t *testing.T, st *sim.State) *runner {
	return &runner{t: t, st: st, clk: sim.Clock{Step: step}}
}

// tick runs one tick with the given commands.
func (r *runner) tick(cmds ...sim.Command) sim.TickResult {
	r.t.Helper()
	res, err := r.st.StepTick(r.clk, cmds...)
	if err != nil {
		r.t.Fatalf("Tick failed: %v", err)
	}
	r.clk = r.clk.Advance()
	return res
}

// ticks runs n empty ticks and returns every result.
func (r *runner) ticks(n int) []sim.TickResult {
	r.t.Helper()
	out := make([]sim.TickResult, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, r.tick())
	}
	return out
}

func kindAt(st *sim.State, c sim.Coord) (sim.EntityKind, bool) {
	e, ok := st.EntityAt(c)
	return e.Kind, ok
}

func detonations(results []sim.TickResult) []sim.DetonationEvent {
	var out []sim.DetonationEvent
	for _, r := range results {
		out = append(out, r.Detonations...)
	}
	return out
}
