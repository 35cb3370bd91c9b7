package sim_test

import (
	"testing"

	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/sim"
)

func TestBlastFlingsBombOneCell(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		obstacle    *sim.Spawn
		water       bool
		expectAt    sim.Coord
		expectHit   bool
		expectFloat bool
	}{
		{name: "free land", width: 6, expectAt: sim.C(3, 1)},
		{name: "onto water floats", width: 6, water: true, expectAt: sim.C(3, 1), expectFloat: true},
		{name: "clamped by decoration", width: 6, obstacle: &sim.Spawn{At: sim.C(3, 1), Kind: sim.KindDecoration}, expectAt: sim.C(2, 1), expectHit: true},
		{name: "clamped at grid edge", width: 3, expectAt: sim.C(2, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := sim.NewLayout(tt.width, 3)
			l.Add(sim.DamAt(sim.C(0, 2)))
			l.Add(sim.ArmedBombAt(sim.C(1, 1), sim.BombTimed, step))
			l.Add(sim.BombAt(sim.C(2, 1), sim.BombTimed))
			if tt.obstacle != nil {
				l.Add(*tt.obstacle)
			}
			if tt.water {
				l.SetTile(sim.C(3, 1), sim.Water())
			}
			st := build(t, l)
			r := newRunner(t, st)

			res := r.tick()
			if len(res.Flings) != 1 {
				t.Fatalf("Flings = %d, expected 1", len(res.Flings))
			}
			f := res.Flings[0]
			if f.To != tt.expectAt {
				t.Errorf("fling To = %v, expected %v", f.To, tt.expectAt)
			}
			if f.Impact != tt.expectHit {
				t.Errorf("fling Impact = %v, expected %v", f.Impact, tt.expectHit)
			}
			b, ok := st.EntityAt(tt.expectAt)
			if !ok || b.Kind != sim.KindBomb {
				t.Fatalf("bomb not found at %v", tt.expectAt)
			}
			if b.Floating != tt.expectFloat {
				t.Errorf("Floating = %v, expected %v", b.Floating, tt.expectFloat)
			}
			if len(res.Detonations) != 1 {
				t.Errorf("unarmed bomb should not detonate, got %d detonations", len(res.Detonations))
			}
		})
	}
}

func TestFrozenContactBombIgnoresImpact(t *testing.T) {
	l := landLayout(5, 4)
	l.Add(sim.ArmedBombAt(sim.C(2, 0), sim.BombFreeze, step))
	l.Add(sim.ArmedBombAt(sim.C(2, 1), sim.BombContact, 0))
	l.Add(sim.DecorAt(sim.C(3, 1), sim.DecorRock))
	l.Add(sim.ArmedBombAt(sim.C(1, 1), sim.BombTimed, 3*step))
	st := build(t, l)
	r := newRunner(t, st)

	all := r.ticks(3)
	d := detonations(all)
	if len(d) != 2 {
		t.Fatalf("Detonations = %d, expected 2 (freeze and timed)", len(d))
	}
	for _, ev := range d {
		if ev.Kind == sim.BombContact {
			t.Error("frozen contact bomb must not detonate on impact")
		}
	}
	c, ok := st.EntityAt(sim.C(2, 1))
	if !ok || c.Bomb.Kind != sim.BombContact {
		t.Fatal("contact bomb should stay clamped against the rock")
	}
	if !c.Bomb.Frozen(st.Now) {
		t.Error("contact bomb should still be frozen")
	}
}

func TestBlastedRemoteBombLeavesQueue(t *testing.T) {
	l := landLayout(6, 3)
	l.Add(sim.ArmedBombAt(sim.C(2, 1), sim.BombRemote, 0))
	l.Add(sim.ArmedBombAt(sim.C(1, 1), sim.BombTimed, step))
	st := build(t, l)
	r := newRunner(t, st)

	if len(st.RemoteQueue()) != 1 {
		t.Fatalf("RemoteQueue() = %v, expected one bomb", st.RemoteQueue())
	}
	r.tick()
	if q := st.RemoteQueue(); len(q) != 0 {
		t.Errorf("RemoteQueue() = %v, expected empty", q)
	}
	if _, ok := st.EntityAt(sim.C(3, 1)); !ok {
		t.Fatal("remote bomb should have been flung to (3,1)")
	}

	res := r.tick(sim.CmdTrigger)
	if len(res.Detonations) != 0 {
		t.Error("a blasted remote bomb must not answer the trigger")
	}
}
