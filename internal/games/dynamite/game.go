// Package dynamite binds the level loader, the simulation engine and the
// progress store into a game the terminal platform can drive.
package dynamite

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/dynamite-valley/internal/core"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/levels"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/levels/formats"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/replay"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/sim"
	"github.com/vovakirdan/dynamite-valley/internal/storage"
)

// Progress is the subset of the store the game writes to.
type Progress interface {
	SetLastLevel(level string) error
	RecordCompletion(c storage.Completion) (int64, error)
}

// Options configures a Game.
type Options struct {
	Rules    sim.Rules
	Loader   *levels.Loader   // nil means the built-in campaign
	Start    string           // first level to play
	Progress Progress         // optional
	Logger   *log.Logger      // optional
	Recorder *replay.Recorder // optional, captures the current attempt
}

// flashTime is how long a blast stays on screen.
const flashTime = 300 * time.Millisecond

type flash struct {
	at     sim.Coord
	freeze bool
	until  time.Duration
}

// Game implements Dynamite Valley on top of the platform interfaces.
type Game struct {
	rules    sim.Rules
	loader   *levels.Loader
	start    string
	progress Progress
	logger   *log.Logger
	recorder *replay.Recorder

	runID    string
	tickRate int
	screenW  int
	screenH  int

	level   formats.Level
	state   *sim.State
	clock   sim.Clock
	loadErr error
	defect  error

	paused    bool
	finished  bool
	recorded  bool
	bombsUsed int
	flashes   []flash
	status    string
}

// New creates a game. Reset must be called before the first Step.
func New(opts Options) *Game {
	if opts.Loader == nil {
		opts.Loader = levels.Builtin()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Game{
		rules:    opts.Rules,
		loader:   opts.Loader,
		start:    opts.Start,
		progress: opts.Progress,
		logger:   opts.Logger.WithPrefix("dynamite"),
		recorder: opts.Recorder,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "dynamite"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Dynamite Valley"
}

// Reset starts a new run at the configured start level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tickRate = cfg.TickRate
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.runID = uuid.NewString()
	g.finished = false
	g.defect = nil

	g.logger.Info("new run", "run", g.runID, "start", g.start, "tick_rate", g.tickRate)
	g.load(g.start)
}

// load replaces the current level. On failure the game shows the error
// and waits for a restart or quit.
func (g *Game) load(name string) {
	lvl, err := g.loader.LoadByName(name)
	if err != nil {
		g.fail(name, err)
		return
	}
	g.level = lvl
	g.loadErr = nil

	if err := g.restart(); err != nil {
		g.fail(name, err)
		return
	}

	if g.progress != nil {
		if err := g.progress.SetLastLevel(lvl.Name); err != nil {
			g.logger.Warn("saving progress failed", "level", lvl.Name, "err", err)
		}
	}
	g.logger.Info("level loaded", "level", lvl.Name, "title", lvl.Title, "dams", g.state.Dams)
}

func (g *Game) fail(name string, err error) {
	g.logger.Error("level failed to load", "level", name, "err", err)
	g.level = formats.Level{Name: name}
	g.state = nil
	g.loadErr = err
}

// restart rebuilds the current level from its layout.
func (g *Game) restart() error {
	st, err := levels.NewState(g.level, g.rules)
	if err != nil {
		return err
	}
	g.state = st
	g.clock = sim.NewClock(g.tickRate)
	g.paused = false
	g.recorded = false
	g.bombsUsed = 0
	g.flashes = nil
	g.status = g.level.Hint
	if g.recorder != nil {
		g.recorder.Start(g.level.Name, g.tickRate)
	}
	return nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.defect != nil {
		return core.StepResult{State: g.State(), Err: g.defect}
	}

	for _, a := range in.Actions {
		switch a {
		case core.ActionRestart:
			g.handleRestart()
			return core.StepResult{State: g.State()}
		case core.ActionNext:
			if g.state != nil && g.state.Outcome == sim.Won && !g.level.Final() {
				g.load(g.level.Next)
				return core.StepResult{State: g.State()}
			}
		case core.ActionPause:
			if g.state != nil && !g.state.Outcome.Terminal() {
				g.paused = !g.paused
			}
		}
	}

	if g.state == nil {
		return core.StepResult{State: g.State()}
	}

	g.clock = g.clock.WithPaused(g.paused)
	cmds := Commands(in)
	before := g.state.Tick
	res, err := g.state.StepTick(g.clock, cmds...)
	if err != nil {
		g.defect = fmt.Errorf("level %s tick %d: %w", g.level.Name, g.state.Tick, err)
		g.logger.Error("simulation halted", "level", g.level.Name, "tick", g.state.Tick, "err", err)
		return core.StepResult{State: g.State(), Err: g.defect}
	}
	g.clock = g.clock.Advance()
	if g.recorder != nil && g.state.Tick > before {
		g.recorder.Record(before, cmds)
	}

	g.observe(res)
	return core.StepResult{State: g.State()}
}

func (g *Game) handleRestart() {
	if g.loadErr != nil {
		g.load(g.level.Name)
		return
	}
	if g.state == nil {
		return
	}
	if err := g.restart(); err != nil {
		g.fail(g.level.Name, err)
		return
	}
	g.logger.Debug("level restarted", "level", g.level.Name)
}

// Commands maps the movement and bomb actions of a frame to simulation
// commands, keeping their order.
func Commands(in core.InputFrame) []sim.Command {
	var cmds []sim.Command
	for _, a := range in.Actions {
		switch a {
		case core.ActionUp:
			cmds = append(cmds, sim.CmdMoveUp)
		case core.ActionRight:
			cmds = append(cmds, sim.CmdMoveRight)
		case core.ActionDown:
			cmds = append(cmds, sim.CmdMoveDown)
		case core.ActionLeft:
			cmds = append(cmds, sim.CmdMoveLeft)
		case core.ActionInteract:
			cmds = append(cmds, sim.CmdInteract)
		case core.ActionDrop:
			cmds = append(cmds, sim.CmdDrop)
		case core.ActionTrigger:
			cmds = append(cmds, sim.CmdTrigger)
		}
	}
	return cmds
}

// observe turns tick events into log lines, blast flashes and progress.
func (g *Game) observe(res sim.TickResult) {
	if res.Paused {
		return
	}

	live := g.flashes[:0]
	for _, f := range g.flashes {
		if f.until > res.Now {
			live = append(live, f)
		}
	}
	g.flashes = live

	for _, d := range res.Detonations {
		g.bombsUsed++
		g.flashes = append(g.flashes, flash{at: d.At, freeze: d.Kind == sim.BombFreeze, until: res.Now + flashTime})
		g.logger.Debug("detonation", "kind", d.Kind, "at", d.At, "cause", d.Cause, "tick", res.Tick)
	}
	for _, d := range res.Destroyed {
		if d.Kind == sim.KindDam {
			g.status = fmt.Sprintf("Dam destroyed! %d left.", g.state.Dams)
			g.logger.Info("dam destroyed", "level", g.level.Name, "at", d.At, "remaining", g.state.Dams)
		}
	}

	switch g.state.Outcome {
	case sim.Won:
		g.complete()
	case sim.Lost:
		if g.status != lossMessage(g.state.Loss) {
			g.status = lossMessage(g.state.Loss)
			g.logger.Info("level lost", "level", g.level.Name, "cause", g.state.Loss, "tick", g.state.Tick)
		}
	}
}

// complete records a won level once.
func (g *Game) complete() {
	if g.recorded {
		return
	}
	g.recorded = true
	g.finished = g.level.Final()
	g.status = "All dams destroyed!"
	g.logger.Info("level won", "level", g.level.Name, "ticks", g.state.Tick, "bombs", g.bombsUsed)

	if g.progress == nil {
		return
	}
	_, err := g.progress.RecordCompletion(storage.Completion{
		RunID:     g.runID,
		Level:     g.level.Name,
		Ticks:     int(g.state.Tick),
		BombsUsed: g.bombsUsed,
	})
	if err != nil {
		g.logger.Warn("recording completion failed", "level", g.level.Name, "err", err)
	}
	if !g.finished {
		if err := g.progress.SetLastLevel(g.level.Next); err != nil {
			g.logger.Warn("saving progress failed", "level", g.level.Next, "err", err)
		}
	}
}

func lossMessage(c sim.LossCause) string {
	switch c {
	case sim.LossBlasted:
		return "You were caught in the blast."
	case sim.LossFrozen:
		return "You were frozen solid."
	case sim.LossDrowned:
		return "You fell in the water."
	default:
		return "You lost."
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Level:    g.level.Name,
		Paused:   g.paused,
		Finished: g.finished,
	}
	if g.state != nil {
		st.Tick = g.state.Tick
		st.Won = g.state.Outcome == sim.Won
		st.GameOver = g.state.Outcome.Terminal()
	}
	return st
}

// Sim exposes the running simulation state, nil when no level is loaded.
func (g *Game) Sim() *sim.State {
	return g.state
}

// Level returns the level being played.
func (g *Game) Level() formats.Level {
	return g.level
}

// LoadErr returns why the current level could not be loaded.
func (g *Game) LoadErr() error {
	return g.loadErr
}

// IsDefect reports whether err came from the simulation engine.
func IsDefect(err error) bool {
	return errors.Is(err, sim.ErrDefect)
}
