package sim

import "time"

// EntityID is a stable handle into the entity arena.
type EntityID int32

// NoEntity marks a free cell or a missing handle.
const NoEntity EntityID = 0

// EntityKind tags what an entity is.
type EntityKind uint8

const (
	KindBomb EntityKind = iota
	KindLog
	KindDam
	KindBush
	KindDecoration
	KindDispenser
)

func (k EntityKind) String() string {
	switch k {
	case KindBomb:
		return "Bomb"
	case KindLog:
		return "Log"
	case KindDam:
		return "Dam"
	case KindBush:
		return "Bush"
	case KindDecoration:
		return "Decoration"
	case KindDispenser:
		return "Dispenser"
	default:
		return "Unknown"
	}
}

// floats reports whether entities of this kind ride on water.
func (k EntityKind) floats() bool {
	return k == KindBomb || k == KindLog
}

// DecorKind distinguishes indestructible scenery.
type DecorKind uint8

const (
	DecorTree DecorKind = iota
	DecorRock
	DecorBeaver
	DecorBullrush
)

func (d DecorKind) String() string {
	switch d {
	case DecorTree:
		return "Tree"
	case DecorRock:
		return "Rock"
	case DecorBeaver:
		return "Beaver"
	case DecorBullrush:
		return "Bullrush"
	default:
		return "Unknown"
	}
}

// Entity is one occupant of the grid. Kind selects which fields apply.
type Entity struct {
	ID       EntityID
	Kind     EntityKind
	Pos      Coord
	Alive    bool
	Floating bool

	Decor    DecorKind // KindDecoration
	Bomb     Bomb      // KindBomb
	Dispense BombKind  // KindDispenser
	Supply   int       // KindDispenser; negative means unlimited

	// Flow transport. Progress accumulates toward the next cell.
	Progress time.Duration
	Stuck    bool
}

// arena stores entities by handle. Slot 0 is never used so that
// the zero EntityID can mean "none". Dead entities keep their slot.
type arena struct {
	items []Entity
}

func newArena() arena {
	return arena{items: make([]Entity, 1, 32)}
}

func (a *arena) add(e Entity) EntityID {
	e.ID = EntityID(len(a.items))
	e.Alive = true
	a.items = append(a.items, e)
	return e.ID
}

// get returns a live entity. The pointer stays valid until the next add.
func (a *arena) get(id EntityID) (*Entity, bool) {
	if id <= NoEntity || int(id) >= len(a.items) {
		return nil, false
	}
	e := &a.items[id]
	if !e.Alive {
		return nil, false
	}
	return e, true
}

// size counts every slot ever allocated.
func (a *arena) size() int {
	return len(a.items) - 1
}

// each visits live entities in ascending handle order.
func (a *arena) each(fn func(e *Entity)) {
	for i := 1; i < len(a.items); i++ {
		if a.items[i].Alive {
			fn(&a.items[i])
		}
	}
}

func (a *arena) clone() arena {
	items := make([]Entity, len(a.items))
	copy(items, a.items)
	return arena{items: items}
}
