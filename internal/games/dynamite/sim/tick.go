package sim

import (
	"fmt"
	"strings"
	"time"
)

// Command is one player intent applied at the start of a tick.
type Command uint8

const (
	CmdNone Command = iota
	CmdMoveUp
	CmdMoveRight
	CmdMoveDown
	CmdMoveLeft
	CmdInteract
	CmdDrop
	CmdTrigger
)

// Move returns the movement command for d.
func Move(d Dir) Command {
	return CmdMoveUp + Command(d)
}

func (c Command) String() string {
	switch c {
	case CmdNone:
		return "none"
	case CmdMoveUp:
		return "up"
	case CmdMoveRight:
		return "right"
	case CmdMoveDown:
		return "down"
	case CmdMoveLeft:
		return "left"
	case CmdInteract:
		return "interact"
	case CmdDrop:
		return "drop"
	case CmdTrigger:
		return "trigger"
	default:
		return "unknown"
	}
}

// ParseCommand is the inverse of Command.String.
func ParseCommand(s string) (Command, error) {
	for c := CmdNone; c <= CmdTrigger; c++ {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return CmdNone, fmt.Errorf("unknown command %q", s)
}

// Cause says what set a detonation off.
type Cause uint8

const (
	CauseTimer Cause = iota
	CauseTrigger
	CauseImpact
)

func (c Cause) String() string {
	switch c {
	case CauseTimer:
		return "Timer"
	case CauseTrigger:
		return "Trigger"
	case CauseImpact:
		return "Impact"
	default:
		return "Unknown"
	}
}

// DetonationEvent records a bomb going off.
type DetonationEvent struct {
	ID    EntityID
	Kind  BombKind
	At    Coord
	Cause Cause
}

// DestroyedEvent records a bush or dam blown away.
type DestroyedEvent struct {
	ID   EntityID
	Kind EntityKind
	At   Coord
}

// FlingEvent records a bomb displaced by a blast or a skip-chain drop.
type FlingEvent struct {
	ID      EntityID
	From    Coord
	To      Coord
	Skipped int  // floating objects jumped over by a drop
	Impact  bool // the fling was stopped by an obstacle
}

// DriftEvent records flow transport. Stuck events fire once per obstruction.
type DriftEvent struct {
	ID    EntityID
	From  Coord
	To    Coord
	Stuck bool
}

// TickResult contains everything that happened during one tick.
type TickResult struct {
	Tick        uint64
	Now         time.Duration
	Paused      bool
	Detonations []DetonationEvent
	Destroyed   []DestroyedEvent
	Flings      []FlingEvent
	Frozen      []EntityID
	Drifts      []DriftEvent
	Outcome     Outcome
}

// StepTick advances the level by one fixed step of clk.
//
// Phases run in a fixed order: player commands, bomb timers, the detonation
// chain (with blast flings), water flow, then win/loss evaluation.
// A paused clock or a terminal outcome makes StepTick a no-op. A non-nil error
// is always an engine defect; the state must be discarded.
func (s *State) StepTick(clk Clock, cmds ...Command) (TickResult, error) {
	res := TickResult{Tick: s.Tick, Now: clk.Now, Outcome: s.Outcome}
	if s.defect != nil {
		return res, s.defect
	}
	if clk.Paused {
		res.Paused = true
		return res, nil
	}
	if s.Outcome.Terminal() {
		return res, nil
	}
	if clk.Now < s.Now {
		s.fail("tick", "clock ran backwards from %v to %v", s.Now, clk.Now)
		return res, s.defect
	}
	s.Now = clk.Now

	r := newResolver(s, &res)
	for _, id := range s.pending {
		r.enqueue(id, CauseImpact)
	}
	s.pending = s.pending[:0]

	for _, cmd := range cmds {
		s.apply(cmd, r)
	}
	s.advanceTimers(clk.Step, r)
	r.run()
	if s.defect != nil {
		return res, s.defect
	}

	s.flow(clk.Step, &res, r.freed)
	if s.defect != nil {
		return res, s.defect
	}

	s.evaluate(r)
	s.Tick++
	res.Outcome = s.Outcome
	return res, nil
}
