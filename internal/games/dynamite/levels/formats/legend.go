package formats

import (
	"strconv"
	"strings"

	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/sim"
)

// DefaultLegend holds the codes every level can use without defining them.
// A level's own legend overrides entries here.
var DefaultLegend = map[rune]string{
	'.': "land",
	'~': "water",
	'^': "flow up",
	'>': "flow right",
	'v': "flow down",
	'<': "flow left",
	'T': "land tree",
	'R': "land rock",
	'B': "land beaver",
	'|': "water bullrush",
	'*': "land bush",
	'D': "water dam",
	'=': "water log",
	'P': "land player",
	't': "land bomb timed",
	'c': "land bomb contact",
	'f': "land bomb freeze",
	'r': "land bomb remote",
	'1': "land dispenser timed",
	'2': "land dispenser contact",
	'3': "land dispenser freeze",
	'4': "land dispenser remote",
}

// Definition is one parsed legend entry.
type Definition struct {
	Tile   sim.Tile
	Spawn  *sim.Spawn // nil for bare terrain; At is filled in by the map
	Player bool
	Facing sim.Dir
}

// ParseDefinition parses "<terrain> [entity]".
//
//	terrain: land | water | flow <up|right|down|left>
//	entity:  tree | rock | beaver | bullrush | bush | dam | log
//	         bomb <kind> [armed] | dispenser <kind> [supply] | player [facing]
func ParseDefinition(def string) (Definition, error) {
	fields := strings.Fields(strings.ToLower(def))
	if len(fields) == 0 {
		return Definition{}, loadErr(CodeBadLegend, 0, "empty definition")
	}

	var d Definition
	rest := fields[1:]
	switch fields[0] {
	case "land":
		d.Tile = sim.Land()
	case "water":
		d.Tile = sim.Water()
	case "flow":
		if len(rest) == 0 {
			return Definition{}, loadErr(CodeBadLegend, 0, "flow needs a direction")
		}
		dir, ok := sim.ParseDir(rest[0])
		if !ok {
			return Definition{}, loadErr(CodeBadLegend, 0, "unknown flow direction %q", rest[0])
		}
		d.Tile = sim.Flowing(dir)
		rest = rest[1:]
	default:
		return Definition{}, loadErr(CodeBadLegend, 0, "unknown terrain %q", fields[0])
	}

	if len(rest) == 0 {
		return d, nil
	}
	if err := d.parseEntity(rest[0], rest[1:]); err != nil {
		return Definition{}, err
	}
	return d, nil
}

var decorations = map[string]sim.DecorKind{
	"tree":     sim.DecorTree,
	"rock":     sim.DecorRock,
	"beaver":   sim.DecorBeaver,
	"bullrush": sim.DecorBullrush,
}

func (d *Definition) parseEntity(name string, args []string) error {
	maxArgs := 0
	switch name {
	case "tree", "rock", "beaver", "bullrush":
		d.Spawn = &sim.Spawn{Kind: sim.KindDecoration, Decor: decorations[name]}
	case "bush":
		d.Spawn = &sim.Spawn{Kind: sim.KindBush}
	case "dam":
		d.Spawn = &sim.Spawn{Kind: sim.KindDam}
	case "log":
		d.Spawn = &sim.Spawn{Kind: sim.KindLog}
	case "bomb":
		kind, err := bombKind(name, args)
		if err != nil {
			return err
		}
		d.Spawn = &sim.Spawn{Kind: sim.KindBomb, Bomb: kind}
		if len(args) > 1 {
			if args[1] != "armed" {
				return loadErr(CodeBadLegend, 0, "unknown bomb option %q", args[1])
			}
			d.Spawn.Armed = true
		}
		maxArgs = 2
	case "dispenser":
		kind, err := bombKind(name, args)
		if err != nil {
			return err
		}
		d.Spawn = &sim.Spawn{Kind: sim.KindDispenser, Bomb: kind}
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 0 {
				return loadErr(CodeBadLegend, 0, "bad dispenser supply %q", args[1])
			}
			d.Spawn.Supply = n
		}
		maxArgs = 2
	case "player":
		d.Player = true
		d.Facing = sim.DirDown
		if len(args) > 0 {
			dir, ok := sim.ParseDir(args[0])
			if !ok {
				return loadErr(CodeBadLegend, 0, "unknown facing %q", args[0])
			}
			d.Facing = dir
		}
		maxArgs = 1
	default:
		return loadErr(CodeBadLegend, 0, "unknown entity %q", name)
	}

	if len(args) > maxArgs {
		return loadErr(CodeBadLegend, 0, "too many arguments for %s", name)
	}
	return nil
}

func bombKind(entity string, args []string) (sim.BombKind, error) {
	if len(args) == 0 {
		return 0, loadErr(CodeBadLegend, 0, "%s needs a bomb kind", entity)
	}
	kind, ok := sim.ParseBombKind(args[0])
	if !ok {
		return 0, loadErr(CodeBadLegend, 0, "unknown bomb kind %q", args[0])
	}
	return kind, nil
}
