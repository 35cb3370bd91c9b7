// Package formats provides pluggable level file parsers.
package formats

import (
	"errors"
	"unicode/utf8"

	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/sim"
)

// Every level map has exactly this many columns and rows.
const (
	MapWidth  = 12
	MapHeight = 13
)

// EndOfCampaign is the next value of the final level.
const EndOfCampaign = "end"

// Level is a parsed, validated level ready to be played.
type Level struct {
	Name   string // file name without extension
	Title  string
	Hint   string
	Author string
	Next   string
	Map    []string
	Layout *sim.Layout
}

// DisplayTitle returns the title, or the name when the level has none.
func (l Level) DisplayTitle() string {
	if l.Title != "" {
		return l.Title
	}
	return l.Name
}

// Final reports whether winning this level ends the campaign.
func (l Level) Final() bool {
	return l.Next == EndOfCampaign
}

// source is the format-neutral content of a level file. Both parsers fill
// one in and hand it to build for validation.
type source struct {
	name     string
	rows     []string
	rowLine  func(row int) int // 1-based file line of a map row, 0 if unknown
	legend   map[rune]string
	legLine  map[rune]int
	metadata map[string]string
}

// build validates a source and turns it into a Level.
func build(src source) (Level, error) {
	line := func(row int) int {
		if src.rowLine == nil {
			return 0
		}
		return src.rowLine(row)
	}

	if len(src.rows) != MapHeight {
		return Level{}, loadErr(CodeBadDimensions, line(0), "map has %d rows, expected %d", len(src.rows), MapHeight)
	}
	for y, row := range src.rows {
		if n := utf8.RuneCountInString(row); n != MapWidth {
			return Level{}, loadErr(CodeBadDimensions, line(y), "map row %d has %d columns, expected %d", y+1, n, MapWidth)
		}
	}

	defs := make(map[rune]Definition, len(DefaultLegend)+len(src.legend))
	for code, text := range DefaultLegend {
		d, err := ParseDefinition(text)
		if err != nil {
			return Level{}, err
		}
		defs[code] = d
	}
	for code, text := range src.legend {
		d, err := ParseDefinition(text)
		if err != nil {
			var le *LoadError
			if errors.As(err, &le) {
				return Level{}, loadErr(le.Code, src.legLine[code], "code %q: %s", code, le.Message)
			}
			return Level{}, err
		}
		defs[code] = d
	}

	next, ok := src.metadata["next"]
	if !ok || next == "" {
		return Level{}, loadErr(CodeMissingNext, 0, "level %q has no :next: metadata", src.name)
	}

	layout := sim.NewLayout(MapWidth, MapHeight)
	players := 0
	for y, row := range src.rows {
		x := 0
		for _, code := range row {
			d, ok := defs[code]
			if !ok {
				return Level{}, loadErr(CodeUnknownSymbol, line(y), "symbol %q at column %d is not in the legend", code, x+1)
			}
			at := sim.C(x, y)
			layout.SetTile(at, d.Tile)
			if d.Spawn != nil {
				sp := *d.Spawn
				sp.At = at
				layout.Add(sp)
			}
			if d.Player {
				players++
				if players > 1 {
					return Level{}, loadErr(CodeMultiplePlayers, line(y), "second player at column %d", x+1)
				}
				layout.Player = at
				layout.Facing = d.Facing
			}
			x++
		}
	}
	if players == 0 {
		return Level{}, loadErr(CodeNoPlayer, 0, "level %q has no player position", src.name)
	}
	// A level without dams would be won before the first move.
	dams := 0
	for _, sp := range layout.Spawns {
		if sp.Kind == sim.KindDam {
			dams++
		}
	}
	if dams == 0 {
		return Level{}, loadErr(CodeNoDams, 0, "level %q has no dams", src.name)
	}

	return Level{
		Name:   src.name,
		Title:  src.metadata["title"],
		Hint:   src.metadata["hint"],
		Author: src.metadata["author"],
		Next:   next,
		Map:    append([]string(nil), src.rows...),
		Layout: layout,
	}, nil
}
