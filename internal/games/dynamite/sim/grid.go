package sim

// Grid is the tile map plus the occupancy layer.
// Tiles never change once a level is built; Occ holds at most one entity per cell.
type Grid struct {
	W     int
	H     int
	Tiles []Tile     // row-major, shared between clones
	Occ   []EntityID // row-major, NoEntity when the cell is free
}

// NewGrid creates a grid of the given size covered in land.
func NewGrid(w, h int) *Grid {
	return &Grid{
		W:     w,
		H:     h,
		Tiles: make([]Tile, w*h),
		Occ:   make([]EntityID, w*h),
	}
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within grid bounds.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// Tile returns the terrain at c. Off-grid cells read as land.
func (g *Grid) Tile(c Coord) Tile {
	if !g.InBounds(c) {
		return Land()
	}
	return g.Tiles[g.index(c)]
}

// Occupant returns the entity holding c, or NoEntity.
func (g *Grid) Occupant(c Coord) EntityID {
	if !g.InBounds(c) {
		return NoEntity
	}
	return g.Occ[g.index(c)]
}

func (g *Grid) setOccupant(c Coord, id EntityID) {
	g.Occ[g.index(c)] = id
}

// Clone copies the occupancy layer. Tiles are immutable and shared.
func (g *Grid) Clone() *Grid {
	occ := make([]EntityID, len(g.Occ))
	copy(occ, g.Occ)
	return &Grid{W: g.W, H: g.H, Tiles: g.Tiles, Occ: occ}
}
