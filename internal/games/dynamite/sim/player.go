package sim

// apply runs one player command against the state.
func (s *State) apply(cmd Command, r *resolver) {
	switch cmd {
	case CmdMoveUp, CmdMoveRight, CmdMoveDown, CmdMoveLeft:
		s.movePlayer(Dir(cmd - CmdMoveUp))
	case CmdInteract:
		s.interact(r)
	case CmdDrop:
		s.drop(r.res)
	case CmdTrigger:
		s.trigger(r)
	}
}

// walkable reports whether the player can stand on c: free land, or any
// cell whose occupant floats and can be ridden.
func (s *State) walkable(c Coord) bool {
	if !s.Grid.InBounds(c) {
		return false
	}
	e, ok := s.entities.get(s.Grid.Occupant(c))
	if !ok {
		return s.Grid.Tile(c).Terrain == TerrainLand
	}
	return e.Floating
}

// movePlayer turns the player toward d and steps if possible. A single
// cell of open water with free land behind it is leapt over.
func (s *State) movePlayer(d Dir) {
	p := &s.Player
	p.Facing = d
	to := p.Pos.Step(d)
	if s.walkable(to) {
		p.Pos = to
		return
	}
	if !s.Grid.InBounds(to) || !s.Grid.Tile(to).IsWater() || s.Grid.Occupant(to) != NoEntity {
		return
	}
	beyond := to.Step(d)
	if s.Grid.InBounds(beyond) && s.Grid.Tile(beyond).Terrain == TerrainLand && s.Grid.Occupant(beyond) == NoEntity {
		p.Pos = beyond
	}
}

// interact takes a bomb from the faced dispenser or picks up the faced
// unarmed bomb. Nothing happens when the carry is full.
func (s *State) interact(r *resolver) {
	p := &s.Player
	if len(p.Carry) >= s.rules.CarryCapacity {
		return
	}
	e, ok := s.entities.get(s.Grid.Occupant(p.Pos.Step(p.Facing)))
	if !ok {
		return
	}
	switch e.Kind {
	case KindDispenser:
		if e.Supply == 0 {
			return
		}
		if e.Supply > 0 {
			e.Supply--
		}
		p.Carry = append(p.Carry, e.Dispense)
	case KindBomb:
		if e.Bomb.Armed {
			return
		}
		p.Carry = append(p.Carry, e.Bomb.Kind)
		r.freed.Put(e.Pos)
		s.remove(e.ID)
	}
}

// drop releases the earliest carried bomb into the faced cell, armed.
// Floating objects in the way are skipped. A blocked drop keeps the bomb.
func (s *State) drop(res *TickResult) {
	p := &s.Player
	if len(p.Carry) == 0 {
		return
	}
	start := p.Pos.Step(p.Facing)
	at, skipped, ok := s.landing(start, p.Facing)
	if !ok {
		return
	}
	kind := p.Carry[0]
	p.Carry = p.Carry[1:]

	b := Bomb{Kind: kind}
	b.arm(s.rules.Fuse)
	id := s.place(Entity{
		Kind:     KindBomb,
		Pos:      at,
		Floating: s.Grid.Tile(at).IsWater(),
		Bomb:     b,
	})
	if id == NoEntity {
		return
	}
	if traits[kind].remote {
		s.remote.Push(id)
	}
	if skipped > 0 {
		res.Flings = append(res.Flings, FlingEvent{ID: id, From: start, To: at, Skipped: skipped})
	}
}
