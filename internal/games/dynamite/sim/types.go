// Package sim is the deterministic simulation engine for Dynamite Valley.
// It owns the tile grid, entities, bombs, water flow and the level outcome.
// It knows nothing about terminals, key presses or level files.
package sim

import "strings"

// Dir represents one of the four grid directions.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// Dirs lists every direction in the fixed order used for neighbor scans.
var Dirs = [4]Dir{DirUp, DirRight, DirDown, DirLeft}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	return (d + 2) % 4
}

// ParseDir accepts up/right/down/left in any case.
func ParseDir(s string) (Dir, bool) {
	switch strings.ToLower(s) {
	case "up", "north", "n":
		return DirUp, true
	case "right", "east", "e":
		return DirRight, true
	case "down", "south", "s":
		return DirDown, true
	case "left", "west", "w":
		return DirLeft, true
	}
	return DirUp, false
}

// Terrain is the static kind of a tile.
type Terrain uint8

const (
	TerrainLand Terrain = iota
	TerrainWater
	TerrainFlow // water with a current
)

func (t Terrain) String() string {
	switch t {
	case TerrainLand:
		return "Land"
	case TerrainWater:
		return "Water"
	case TerrainFlow:
		return "Flow"
	default:
		return "Unknown"
	}
}

// Tile is one cell of terrain. Flow is meaningful only for TerrainFlow.
type Tile struct {
	Terrain Terrain
	Flow    Dir
}

// Land returns a land tile.
func Land() Tile { return Tile{Terrain: TerrainLand} }

// Water returns a still water tile.
func Water() Tile { return Tile{Terrain: TerrainWater} }

// Flowing returns a water tile whose current points in d.
func Flowing(d Dir) Tile { return Tile{Terrain: TerrainFlow, Flow: d} }

// IsWater reports whether the tile is still or flowing water.
func (t Tile) IsWater() bool {
	return t.Terrain != TerrainLand
}
