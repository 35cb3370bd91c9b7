package sim

// fling pushes a blasted bomb one cell along d, away from the blast.
// Off-grid destinations clamp silently. An occupied destination or the
// player clamps as an impact, which sets off live Contact bombs.
func (r *resolver) fling(e *Entity, d Dir) {
	s := r.s
	from := e.Pos
	to := from.Step(d)
	impact := false

	switch {
	case !s.Grid.InBounds(to):
		to = from
	case s.Grid.Occupant(to) != NoEntity || s.Player.Pos == to:
		to = from
		impact = true
	default:
		s.relocate(e, to)
		r.freed.Put(from)
		e.Progress = 0
		e.Stuck = false
	}

	r.res.Flings = append(r.res.Flings, FlingEvent{ID: e.ID, From: from, To: to, Impact: impact})

	if impact && s.impactArmed(e) {
		r.enqueue(e.ID, CauseImpact)
	}
}

// impactArmed reports whether a collision would set e off right now.
func (s *State) impactArmed(e *Entity) bool {
	return e.Kind == KindBomb &&
		e.Bomb.Armed &&
		traits[e.Bomb.Kind].impactSensitive &&
		!e.Bomb.Frozen(s.Now)
}

// skippable reports whether a dropped bomb hops over e. Floating logs and
// live floating bombs are skipped; unarmed bombs can be picked up instead.
func skippable(e *Entity) bool {
	if !e.Floating {
		return false
	}
	return e.Kind != KindBomb || e.Bomb.Armed
}

// landing walks the skip chain from c along d and returns where a dropped
// bomb comes to rest and how many floating objects it jumped.
func (s *State) landing(c Coord, d Dir) (Coord, int, bool) {
	skipped := 0
	for {
		if !s.Grid.InBounds(c) || c == s.Player.Pos {
			return Coord{}, 0, false
		}
		e, ok := s.entities.get(s.Grid.Occupant(c))
		if !ok {
			return c, skipped, true
		}
		if !skippable(e) {
			return Coord{}, 0, false
		}
		skipped++
		c = c.Step(d)
	}
}
