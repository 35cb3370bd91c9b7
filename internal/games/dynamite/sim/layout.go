package sim

import "time"

// Spawn places one entity when a level starts.
type Spawn struct {
	At     Coord
	Kind   EntityKind
	Decor  DecorKind
	Bomb   BombKind      // KindBomb, or the kind a dispenser hands out
	Supply int           // dispensers; 0 means unlimited
	Armed  bool          // bombs that start live
	Fuse   time.Duration // overrides Rules.Fuse for armed spawns when positive
}

// Layout is the static description a level state is built from.
// Restarting a level builds a fresh State from the same Layout.
type Layout struct {
	W      int
	H      int
	Tiles  []Tile
	Spawns []Spawn
	Player Coord
	Facing Dir
	Carry  []BombKind // starting inventory, front dropped first
}

// NewLayout creates a layout of the given size covered in land.
func NewLayout(w, h int) *Layout {
	return &Layout{W: w, H: h, Tiles: make([]Tile, w*h), Facing: DirDown}
}

// InBounds reports whether c lies on the layout.
func (l *Layout) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < l.W && c.Y >= 0 && c.Y < l.H
}

// SetTile sets the terrain at c. Off-layout coordinates are ignored.
func (l *Layout) SetTile(c Coord, t Tile) {
	if !l.InBounds(c) {
		return
	}
	l.Tiles[c.Y*l.W+c.X] = t
}

// Tile returns the terrain at c.
func (l *Layout) Tile(c Coord) Tile {
	if !l.InBounds(c) {
		return Land()
	}
	return l.Tiles[c.Y*l.W+c.X]
}

// Add appends a spawn. Spawn order fixes entity handles and RC queue order.
func (l *Layout) Add(s Spawn) *Layout {
	l.Spawns = append(l.Spawns, s)
	return l
}

// BombAt returns an unarmed bomb spawn.
func BombAt(c Coord, k BombKind) Spawn {
	return Spawn{At: c, Kind: KindBomb, Bomb: k}
}

// ArmedBombAt returns a bomb spawn that is live from the first tick.
func ArmedBombAt(c Coord, k BombKind, fuse time.Duration) Spawn {
	return Spawn{At: c, Kind: KindBomb, Bomb: k, Armed: true, Fuse: fuse}
}

// LogAt returns a floating log spawn.
func LogAt(c Coord) Spawn { return Spawn{At: c, Kind: KindLog} }

// DamAt returns a dam spawn.
func DamAt(c Coord) Spawn { return Spawn{At: c, Kind: KindDam} }

// BushAt returns a bush spawn.
func BushAt(c Coord) Spawn { return Spawn{At: c, Kind: KindBush} }

// DecorAt returns an indestructible decoration spawn.
func DecorAt(c Coord, d DecorKind) Spawn {
	return Spawn{At: c, Kind: KindDecoration, Decor: d}
}

// DispenserAt returns a bomb dispenser spawn. supply 0 means unlimited.
func DispenserAt(c Coord, k BombKind, supply int) Spawn {
	return Spawn{At: c, Kind: KindDispenser, Bomb: k, Supply: supply}
}
