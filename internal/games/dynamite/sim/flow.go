package sim

import (
	"time"

	"github.com/zyedidia/generic/mapset"
)

// flow carries floating entities along currents at one cell per FlowPeriod.
// Movers whose destination is free advance; the rest are retried in passes
// so that a train of logs moves together. Whatever still cannot move is
// stuck and keeps its progress until the way clears. A stuck entity whose
// blocker vanished this tick (freed) resumes on the following tick.
func (s *State) flow(step time.Duration, res *TickResult, freed mapset.Set[Coord]) {
	period := s.rules.FlowPeriod
	var due []EntityID

	s.entities.each(func(e *Entity) {
		if !e.Floating || s.Grid.Tile(e.Pos).Terrain != TerrainFlow {
			e.Progress = 0
			e.Stuck = false
			return
		}
		if e.Progress < period {
			e.Progress += step
		}
		if e.Progress < period {
			return
		}
		if e.Stuck && freed.Has(e.Pos.Step(s.Grid.Tile(e.Pos).Flow)) {
			return
		}
		due = append(due, e.ID)
	})

	for moved := true; moved && len(due) > 0; {
		moved = false
		next := make([]EntityID, 0, len(due))
		for _, id := range due {
			if s.drift(id, res) {
				moved = true
			} else {
				next = append(next, id)
			}
		}
		due = next
	}

	queued := mapset.New[EntityID]()
	for _, id := range s.pending {
		queued.Put(id)
	}
	for _, id := range due {
		e, ok := s.entities.get(id)
		if !ok {
			continue
		}
		if !e.Stuck {
			e.Stuck = true
			res.Drifts = append(res.Drifts, DriftEvent{ID: id, From: e.Pos, To: e.Pos, Stuck: true})
		}
		ahead := e.Pos.Step(s.Grid.Tile(e.Pos).Flow)
		if s.Grid.Occupant(ahead) != NoEntity && s.impactArmed(e) && !queued.Has(id) {
			queued.Put(id)
			s.pending = append(s.pending, id)
		}
	}
}

// drift moves one due entity a cell downstream if the way is clear.
// A player standing on the entity rides along.
func (s *State) drift(id EntityID, res *TickResult) bool {
	e, ok := s.entities.get(id)
	if !ok {
		return false
	}
	from := e.Pos
	to := from.Step(s.Grid.Tile(from).Flow)
	if !s.Grid.InBounds(to) || !s.Grid.Tile(to).IsWater() || s.Grid.Occupant(to) != NoEntity {
		return false
	}

	riding := s.Player.Pos == from
	s.relocate(e, to)
	e.Progress -= s.rules.FlowPeriod
	if e.Progress < 0 {
		e.Progress = 0
	}
	e.Stuck = false
	if riding {
		s.Player.Pos = to
	}
	res.Drifts = append(res.Drifts, DriftEvent{ID: id, From: from, To: to})
	return true
}

// Transit reports where a drifting entity is heading and how far along it is,
// as a fraction in [0,1). Stationary and stuck entities report ok=false.
func (s *State) Transit(id EntityID) (to Coord, frac float64, ok bool) {
	e, found := s.entities.get(id)
	if !found || !e.Floating || e.Stuck {
		return Coord{}, 0, false
	}
	t := s.Grid.Tile(e.Pos)
	if t.Terrain != TerrainFlow {
		return Coord{}, 0, false
	}
	frac = float64(e.Progress) / float64(s.rules.FlowPeriod)
	if frac >= 1 {
		frac = 0.999
	}
	return e.Pos.Step(t.Flow), frac, true
}
