package sim

import (
	"fmt"
	"hash/fnv"
	"time"
)

// Outcome is the level result. Won and Lost are terminal.
type Outcome uint8

const (
	InProgress Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "InProgress"
	case Won:
		return "Won"
	case Lost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further ticks change the state.
func (o Outcome) Terminal() bool {
	return o == Won || o == Lost
}

// LossCause records how the player lost.
type LossCause uint8

const (
	LossNone LossCause = iota
	LossBlasted
	LossFrozen
	LossDrowned
)

func (c LossCause) String() string {
	switch c {
	case LossNone:
		return "None"
	case LossBlasted:
		return "Blasted"
	case LossFrozen:
		return "Frozen"
	case LossDrowned:
		return "Drowned"
	default:
		return "Unknown"
	}
}

// Player is the single controllable agent.
type Player struct {
	Pos    Coord
	Facing Dir
	Carry  []BombKind // FIFO, index 0 is dropped first
}

// State is the complete mutable state of one level attempt.
type State struct {
	Grid    *Grid
	Player  Player
	Dams    int // dams still standing
	Outcome Outcome
	Loss    LossCause
	Tick    uint64        // ticks processed
	Now     time.Duration // sim time of the last processed tick

	rules    Rules
	entities arena
	remote   RemoteQueue
	pending  []EntityID // impact detonations carried into the next tick
	defect   error
}

// NewState builds the initial state of a level.
func NewState(l *Layout, rules Rules) (*State, error) {
	if l.W <= 0 || l.H <= 0 {
		return nil, fmt.Errorf("sim: invalid layout size %dx%d", l.W, l.H)
	}
	if len(l.Tiles) != l.W*l.H {
		return nil, fmt.Errorf("sim: layout has %d tiles, expected %d", len(l.Tiles), l.W*l.H)
	}
	if !l.InBounds(l.Player) {
		return nil, fmt.Errorf("sim: player start %v is off the grid", l.Player)
	}
	if len(l.Carry) > rules.normalized().CarryCapacity {
		return nil, fmt.Errorf("sim: starting inventory of %d exceeds carry capacity", len(l.Carry))
	}

	rules = rules.normalized()
	g := NewGrid(l.W, l.H)
	copy(g.Tiles, l.Tiles)

	s := &State{
		Grid:     g,
		Player:   Player{Pos: l.Player, Facing: l.Facing},
		rules:    rules,
		entities: newArena(),
	}
	s.Player.Carry = append([]BombKind(nil), l.Carry...)

	for i, sp := range l.Spawns {
		if !g.InBounds(sp.At) {
			return nil, fmt.Errorf("sim: spawn %d at %v is off the grid", i, sp.At)
		}
		if occ := g.Occupant(sp.At); occ != NoEntity {
			return nil, fmt.Errorf("sim: spawn %d at %v overlaps entity %d", i, sp.At, occ)
		}
		e := Entity{
			Kind:     sp.Kind,
			Pos:      sp.At,
			Floating: sp.Kind.floats() && g.Tile(sp.At).IsWater(),
			Decor:    sp.Decor,
		}
		switch sp.Kind {
		case KindBomb:
			e.Bomb = Bomb{Kind: sp.Bomb}
			if sp.Armed {
				fuse := sp.Fuse
				if fuse <= 0 {
					fuse = rules.Fuse
				}
				e.Bomb.arm(fuse)
			}
		case KindDispenser:
			e.Dispense = sp.Bomb
			e.Supply = sp.Supply
			if e.Supply <= 0 {
				e.Supply = -1
			}
		case KindDam:
			s.Dams++
		}
		id := s.entities.add(e)
		g.setOccupant(sp.At, id)
		if e.Kind == KindBomb && e.Bomb.Armed && traits[e.Bomb.Kind].remote {
			s.remote.Push(id)
		}
	}

	if s.drowning() {
		return nil, fmt.Errorf("sim: player starts on open water at %v", l.Player)
	}
	return s, nil
}

// Rules returns the tuning this state runs with.
func (s *State) Rules() Rules {
	return s.rules
}

// Err returns the defect that halted the state, if any.
func (s *State) Err() error {
	return s.defect
}

// Entity returns a copy of a live entity.
func (s *State) Entity(id EntityID) (Entity, bool) {
	e, ok := s.entities.get(id)
	if !ok {
		return Entity{}, false
	}
	return *e, true
}

// EntityAt returns a copy of the entity occupying c.
func (s *State) EntityAt(c Coord) (Entity, bool) {
	return s.Entity(s.Grid.Occupant(c))
}

// Entities returns copies of every live entity in handle order.
func (s *State) Entities() []Entity {
	out := make([]Entity, 0, s.entities.size())
	s.entities.each(func(e *Entity) {
		out = append(out, *e)
	})
	return out
}

// RemoteQueue returns the armed remote bombs in trigger order.
func (s *State) RemoteQueue() []EntityID {
	return s.remote.IDs()
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := *s
	c.Grid = s.Grid.Clone()
	c.Player.Carry = append([]BombKind(nil), s.Player.Carry...)
	c.entities = s.entities.clone()
	c.remote = s.remote.clone()
	c.pending = append([]EntityID(nil), s.pending...)
	return &c
}

// Snapshot returns a hash of the full state, for determinism checks.
func (s *State) Snapshot() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "t=%d now=%d o=%d l=%d dams=%d;", s.Tick, s.Now, s.Outcome, s.Loss, s.Dams)
	fmt.Fprintf(h, "p=%d,%d,%d,%v;", s.Player.Pos.X, s.Player.Pos.Y, s.Player.Facing, s.Player.Carry)
	fmt.Fprintf(h, "rc=%v;pend=%v;", s.remote.ids, s.pending)
	s.entities.each(func(e *Entity) {
		fmt.Fprintf(h, "e%d:%d@%d,%d f=%t d=%d s=%d p=%d st=%t",
			e.ID, e.Kind, e.Pos.X, e.Pos.Y, e.Floating, e.Decor, e.Supply, e.Progress, e.Stuck)
		if e.Kind == KindBomb {
			b := e.Bomb
			fmt.Fprintf(h, " b=%d a=%t t=%d/%t fz=%d/%t", b.Kind, b.Armed, b.Timer, b.HasTimer, b.FrozenUntil, b.HasFreeze)
		}
		h.Write([]byte{';'})
	})
	return h.Sum64()
}

// remove takes an entity off the grid and kills its handle.
func (s *State) remove(id EntityID) {
	e, ok := s.entities.get(id)
	if !ok {
		return
	}
	if s.Grid.Occupant(e.Pos) == id {
		s.Grid.setOccupant(e.Pos, NoEntity)
	}
	e.Alive = false
	s.remote.remove(id)
}

// place adds a new entity on a free cell.
func (s *State) place(e Entity) EntityID {
	if !s.Grid.InBounds(e.Pos) {
		s.fail("place", "%s placed off the grid at %v", e.Kind, e.Pos)
		return NoEntity
	}
	if occ := s.Grid.Occupant(e.Pos); occ != NoEntity {
		s.fail("place", "%s placed on %v already held by entity %d", e.Kind, e.Pos, occ)
		return NoEntity
	}
	id := s.entities.add(e)
	s.Grid.setOccupant(e.Pos, id)
	return id
}

// relocate moves an entity to a free cell and updates its floating flag.
func (s *State) relocate(e *Entity, to Coord) {
	if !s.Grid.InBounds(to) {
		s.fail("move", "entity %d moved off the grid to %v", e.ID, to)
		return
	}
	if occ := s.Grid.Occupant(to); occ != NoEntity && occ != e.ID {
		s.fail("move", "entity %d cannot enter %v held by entity %d", e.ID, to, occ)
		return
	}
	if s.Grid.Occupant(e.Pos) == e.ID {
		s.Grid.setOccupant(e.Pos, NoEntity)
	}
	s.Grid.setOccupant(to, e.ID)
	e.Pos = to
	e.Floating = e.Kind.floats() && s.Grid.Tile(to).IsWater()
}
