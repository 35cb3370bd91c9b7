package sim_test

import (
	"testing"

	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/sim"
)

func TestTriggerDetonatesRemotesInOrder(t *testing.T) {
	l := landLayout(7, 3)
	l.Player = sim.C(0, 2)
	l.Add(sim.ArmedBombAt(sim.C(1, 0), sim.BombRemote, 0))
	l.Add(sim.ArmedBombAt(sim.C(3, 0), sim.BombRemote, 0))
	l.Add(sim.ArmedBombAt(sim.C(5, 0), sim.BombRemote, 0))
	st := build(t, l)
	r := newRunner(t, st)

	if got := len(st.RemoteQueue()); got != 3 {
		t.Fatalf("RemoteQueue() = %d bombs, expected 3", got)
	}

	r.ticks(20)
	if got := len(st.Entities()); got != 4 {
		t.Fatalf("remote bombs went off without a trigger, %d entities left", got)
	}

	expected := []sim.Coord{sim.C(1, 0), sim.C(3, 0), sim.C(5, 0)}
	for i, at := range expected {
		res := r.tick(sim.CmdTrigger)
		if len(res.Detonations) != 1 {
			t.Fatalf("trigger %d: Detonations = %d, expected 1", i, len(res.Detonations))
		}
		d := res.Detonations[0]
		if d.At != at {
			t.Errorf("trigger %d: At = %v, expected %v", i, d.At, at)
		}
		if d.Cause != sim.CauseTrigger {
			t.Errorf("trigger %d: Cause = %v, expected Trigger", i, d.Cause)
		}
	}

	res := r.tick(sim.CmdTrigger)
	if len(res.Detonations) != 0 {
		t.Errorf("trigger on an empty queue detonated %d bombs", len(res.Detonations))
	}
}

func TestTriggerFollowsDropOrder(t *testing.T) {
	l := landLayout(6, 3)
	l.Player = sim.C(2, 1)
	l.Facing = sim.DirRight
	l.Carry = []sim.BombKind{sim.BombRemote, sim.BombRemote}
	st := build(t, l)
	r := newRunner(t, st)

	r.tick(sim.CmdDrop)
	r.tick(sim.CmdMoveLeft)
	r.tick(sim.CmdDrop)
	r.tick(sim.CmdMoveUp)

	first := r.tick(sim.CmdTrigger)
	if len(first.Detonations) != 1 || first.Detonations[0].At != sim.C(3, 1) {
		t.Fatalf("first trigger = %+v, expected the bomb at (3,1)", first.Detonations)
	}
	second := r.tick(sim.CmdTrigger)
	if len(second.Detonations) != 1 || second.Detonations[0].At != sim.C(0, 1) {
		t.Fatalf("second trigger = %+v, expected the bomb at (0,1)", second.Detonations)
	}
	if st.Outcome != sim.InProgress {
		t.Errorf("Outcome = %v, expected InProgress", st.Outcome)
	}
}

func TestTriggerWithoutRemotesIsNoop(t *testing.T) {
	l := landLayout(4, 4)
	l.Add(sim.BombAt(sim.C(2, 1), sim.BombRemote))
	st := build(t, l)
	r := newRunner(t, st)

	res := r.tick(sim.CmdTrigger)
	if len(res.Detonations) != 0 {
		t.Errorf("Detonations = %d, expected 0", len(res.Detonations))
	}
	if _, ok := st.EntityAt(sim.C(2, 1)); !ok {
		t.Error("unarmed remote bomb should stay put")
	}
}

func TestRemoteQueue(t *testing.T) {
	var q sim.RemoteQueue
	q.Push(3)
	q.Push(5)
	q.Push(8)

	ids := q.IDs()
	ids[0] = 99
	if q.IDs()[0] != 3 {
		t.Error("IDs() should return a copy")
	}
	if q.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", q.Len())
	}
}
