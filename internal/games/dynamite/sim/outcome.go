package sim

// evaluate settles the outcome once the tick's effects are applied.
// A loss beats a simultaneous win.
func (s *State) evaluate(r *resolver) {
	switch {
	case r.hitBy != LossNone:
		s.Outcome, s.Loss = Lost, r.hitBy
	case s.drowning():
		s.Outcome, s.Loss = Lost, LossDrowned
	case s.Dams <= 0:
		s.Outcome = Won
	}
}

// drowning reports whether the player stands on water with nothing to float on.
func (s *State) drowning() bool {
	p := s.Player.Pos
	if !s.Grid.Tile(p).IsWater() {
		return false
	}
	e, ok := s.entities.get(s.Grid.Occupant(p))
	return !ok || !e.Floating
}
