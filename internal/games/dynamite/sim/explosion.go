package sim

import "github.com/zyedidia/generic/mapset"

type detonation struct {
	id    EntityID
	cause Cause
}

// resolver runs the detonation chain of one tick to a fixed point.
type resolver struct {
	s     *State
	res   *TickResult
	queue []detonation
	seen  mapset.Set[EntityID] // each bomb detonates at most once per tick
	freed mapset.Set[Coord]    // cells vacated by pickups, blasts and flings
	hitBy LossCause
}

func newResolver(s *State, res *TickResult) *resolver {
	return &resolver{
		s:     s,
		res:   res,
		seen:  mapset.New[EntityID](),
		freed: mapset.New[Coord](),
	}
}

// enqueue schedules an armed bomb. Repeat requests for the same bomb are ignored.
func (r *resolver) enqueue(id EntityID, cause Cause) {
	if r.seen.Has(id) {
		return
	}
	e, ok := r.s.entities.get(id)
	if !ok || e.Kind != KindBomb || !e.Bomb.Armed {
		return
	}
	r.seen.Put(id)
	r.queue = append(r.queue, detonation{id: id, cause: cause})
}

// run drains the work queue. Effects may enqueue further detonations.
func (r *resolver) run() {
	limit := r.s.entities.size()
	for processed := 0; len(r.queue) > 0; processed++ {
		if processed > limit {
			r.s.fail("resolve", "detonation chain exceeded %d events", limit)
			return
		}
		ev := r.queue[0]
		r.queue = r.queue[1:]

		e, ok := r.s.entities.get(ev.id)
		if !ok {
			continue
		}
		src, kind := e.Pos, e.Bomb.Kind
		r.res.Detonations = append(r.res.Detonations, DetonationEvent{
			ID:    ev.id,
			Kind:  kind,
			At:    src,
			Cause: ev.cause,
		})

		effects[kind](r, src)
		r.s.remove(ev.id)
		r.freed.Put(src)
		if r.s.defect != nil {
			return
		}
	}
}

// blast destroys bushes and dams, flings bombs and kills the player
// on the four orthogonal neighbors of src.
func (r *resolver) blast(src Coord) {
	s := r.s
	for _, d := range Dirs {
		c := src.Step(d)
		if !s.Grid.InBounds(c) {
			continue
		}
		if s.Player.Pos == c {
			r.hit(LossBlasted)
		}
		e, ok := s.entities.get(s.Grid.Occupant(c))
		if !ok {
			continue
		}
		switch e.Kind {
		case KindBush, KindDam:
			r.destroy(e)
		case KindBomb:
			// A blasted remote bomb can no longer be triggered.
			if traits[e.Bomb.Kind].remote {
				s.remote.remove(e.ID)
			}
			r.fling(e, d)
		}
	}
}

// freeze holds every non-immune bomb next to src for the freeze duration.
func (r *resolver) freeze(src Coord) {
	s := r.s
	until := s.Now + s.rules.FreezeDuration
	for _, d := range Dirs {
		c := src.Step(d)
		if !s.Grid.InBounds(c) {
			continue
		}
		if s.Player.Pos == c {
			r.hit(LossFrozen)
		}
		e, ok := s.entities.get(s.Grid.Occupant(c))
		if !ok || e.Kind != KindBomb {
			continue
		}
		if e.Bomb.freezeUntil(until) {
			r.res.Frozen = append(r.res.Frozen, e.ID)
		}
	}
}

func (r *resolver) destroy(e *Entity) {
	if e.Kind == KindDam {
		r.s.Dams--
	}
	r.res.Destroyed = append(r.res.Destroyed, DestroyedEvent{ID: e.ID, Kind: e.Kind, At: e.Pos})
	r.freed.Put(e.Pos)
	r.s.remove(e.ID)
}

// hit keeps the first way the player was struck this tick.
func (r *resolver) hit(cause LossCause) {
	if r.hitBy == LossNone {
		r.hitBy = cause
	}
}
