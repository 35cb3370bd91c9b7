package sim_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/sim"
)

func TestBlastIsOrthogonalOnly(t *testing.T) {
	l := landLayout(5, 5)
	l.Add(sim.ArmedBombAt(sim.C(2, 2), sim.BombTimed, step))
	for _, c := range []sim.Coord{
		sim.C(1, 1), sim.C(2, 1), sim.C(3, 1),
		sim.C(1, 2), sim.C(3, 2),
		sim.C(1, 3), sim.C(2, 3), sim.C(3, 3),
	} {
		l.Add(sim.BushAt(c))
	}
	st := build(t, l)
	r := newRunner(t, st)

	res := r.tick()
	if len(res.Destroyed) != 4 {
		t.Errorf("Destroyed = %d, expected 4", len(res.Destroyed))
	}

	tests := []struct {
		at      sim.Coord
		survive bool
	}{
		{sim.C(2, 1), false},
		{sim.C(3, 2), false},
		{sim.C(2, 3), false},
		{sim.C(1, 2), false},
		{sim.C(1, 1), true},
		{sim.C(3, 1), true},
		{sim.C(1, 3), true},
		{sim.C(3, 3), true},
	}
	for _, tt := range tests {
		_, ok := st.EntityAt(tt.at)
		if ok != tt.survive {
			t.Errorf("bush at %v present = %v, expected %v", tt.at, ok, tt.survive)
		}
	}
}

func TestDestroyingLastDamWins(t *testing.T) {
	l := sim.NewLayout(5, 5)
	l.Add(sim.DamAt(sim.C(2, 1)))
	l.Add(sim.ArmedBombAt(sim.C(2, 2), sim.BombTimed, step))
	st := build(t, l)
	r := newRunner(t, st)

	if st.Dams != 1 {
		t.Fatalf("Dams = %d, expected 1", st.Dams)
	}
	res := r.tick()
	if st.Dams != 0 {
		t.Errorf("Dams = %d, expected 0", st.Dams)
	}
	if res.Outcome != sim.Won {
		t.Errorf("Outcome = %v, expected Won", res.Outcome)
	}
}

func TestBlastKillsPlayerEvenOnWinningTick(t *testing.T) {
	l := sim.NewLayout(5, 5)
	l.Player = sim.C(1, 2)
	l.Add(sim.DamAt(sim.C(3, 2)))
	l.Add(sim.ArmedBombAt(sim.C(2, 2), sim.BombTimed, step))
	st := build(t, l)
	r := newRunner(t, st)

	res := r.tick()
	if res.Outcome != sim.Lost {
		t.Errorf("Outcome = %v, expected Lost", res.Outcome)
	}
	if st.Loss != sim.LossBlasted {
		t.Errorf("Loss = %v, expected Blasted", st.Loss)
	}
}

func TestFreezeOnPlayerLoses(t *testing.T) {
	l := landLayout(5, 5)
	l.Player = sim.C(2, 1)
	l.Add(sim.ArmedBombAt(sim.C(2, 2), sim.BombFreeze, step))
	st := build(t, l)
	r := newRunner(t, st)

	r.tick()
	if st.Outcome != sim.Lost || st.Loss != sim.LossFrozen {
		t.Errorf("Outcome = %v/%v, expected Lost/Frozen", st.Outcome, st.Loss)
	}
}

func TestChainReactionThroughContactBomb(t *testing.T) {
	l := landLayout(5, 4)
	l.Add(sim.ArmedBombAt(sim.C(1, 1), sim.BombTimed, step))
	l.Add(sim.ArmedBombAt(sim.C(2, 1), sim.BombContact, 0))
	l.Add(sim.DecorAt(sim.C(3, 1), sim.DecorRock))
	l.Add(sim.BushAt(sim.C(2, 2)))
	st := build(t, l)
	r := newRunner(t, st)

	res := r.tick()
	if len(res.Detonations) != 2 {
		t.Fatalf("Detonations = %d, expected 2", len(res.Detonations))
	}
	if res.Detonations[1].Cause != sim.CauseImpact {
		t.Errorf("second Cause = %v, expected Impact", res.Detonations[1].Cause)
	}
	if res.Detonations[1].At != sim.C(2, 1) {
		t.Errorf("contact bomb detonated at %v, expected (2,1)", res.Detonations[1].At)
	}
	if k, ok := kindAt(st, sim.C(3, 1)); !ok || k != sim.KindDecoration {
		t.Error("rock should survive both blasts")
	}
	if _, ok := st.EntityAt(sim.C(2, 2)); ok {
		t.Error("bush next to the contact bomb should be destroyed")
	}
}

func TestEachBombDetonatesOnce(t *testing.T) {
	l := landLayout(6, 3)
	l.Add(sim.ArmedBombAt(sim.C(1, 1), sim.BombTimed, step))
	l.Add(sim.ArmedBombAt(sim.C(2, 1), sim.BombTimed, step))
	st := build(t, l)
	r := newRunner(t, st)

	res := r.tick()
	if len(res.Detonations) != 2 {
		t.Fatalf("Detonations = %d, expected 2", len(res.Detonations))
	}
	if res.Detonations[0].ID == res.Detonations[1].ID {
		t.Error("the same bomb detonated twice")
	}
	// The second bomb was flung before its own event resolved.
	if res.Detonations[1].At != sim.C(3, 1) {
		t.Errorf("second detonation at %v, expected (3,1)", res.Detonations[1].At)
	}
}

func TestLostIsTerminal(t *testing.T) {
	l := landLayout(5, 5)
	l.Player = sim.C(2, 1)
	l.Add(sim.ArmedBombAt(sim.C(2, 2), sim.BombTimed, step))
	l.Add(sim.ArmedBombAt(sim.C(0, 4), sim.BombTimed, time.Second))
	st := build(t, l)
	r := newRunner(t, st)

	r.tick()
	if st.Outcome != sim.Lost {
		t.Fatalf("Outcome = %v, expected Lost", st.Outcome)
	}
	before := st.Snapshot()
	for _, res := range r.ticks(20) {
		if len(res.Detonations) != 0 {
			t.Error("no detonation should happen after the level is lost")
		}
		if res.Outcome != sim.Lost {
			t.Errorf("Outcome = %v, expected Lost", res.Outcome)
		}
	}
	if st.Snapshot() != before {
		t.Error("state changed after a terminal outcome")
	}
}

func TestWonIsTerminal(t *testing.T) {
	l := sim.NewLayout(5, 5)
	l.Player = sim.C(0, 0)
	l.Add(sim.DamAt(sim.C(3, 0)))
	l.Add(sim.ArmedBombAt(sim.C(3, 1), sim.BombTimed, step))
	l.Add(sim.ArmedBombAt(sim.C(0, 1), sim.BombTimed, time.Second))
	st := build(t, l)
	r := newRunner(t, st)

	r.tick()
	if st.Outcome != sim.Won {
		t.Fatalf("Outcome = %v, expected Won", st.Outcome)
	}
	before := st.Snapshot()
	results := append(r.ticks(20), r.tick(sim.CmdMoveRight, sim.CmdDrop))
	for _, res := range results {
		if len(res.Detonations) != 0 {
			t.Error("the bomb next to the player went off after the level was won")
		}
		if res.Outcome != sim.Won {
			t.Errorf("Outcome = %v, expected Won", res.Outcome)
		}
	}
	if st.Loss != sim.LossNone {
		t.Errorf("Loss = %v, expected None", st.Loss)
	}
	if st.Snapshot() != before {
		t.Error("state changed after a terminal outcome")
	}
}

func TestBackwardsClockIsDefect(t *testing.T) {
	st := build(t, landLayout(3, 3))

	if _, err := st.StepTick(sim.Clock{Now: time.Second, Step: step}); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	_, err := st.StepTick(sim.Clock{Now: 0, Step: step})
	if !errors.Is(err, sim.ErrDefect) {
		t.Fatalf("Tick() error = %v, expected ErrDefect", err)
	}
	var de *sim.DefectError
	if !errors.As(err, &de) || de.Op != "tick" {
		t.Errorf("expected DefectError with Op tick, got %v", err)
	}
	if _, err := st.StepTick(sim.Clock{Now: 2 * time.Second, Step: step}); !errors.Is(err, sim.ErrDefect) {
		t.Error("a defective state should keep reporting the defect")
	}
}
