package dynamite_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/vovakirdan/dynamite-valley/internal/core"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/levels"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/replay"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/sim"
	"github.com/vovakirdan/dynamite-valley/internal/storage"
)

type fakeProgress struct {
	last        []string
	completions []storage.Completion
}

func (p *fakeProgress) SetLastLevel(level string) error {
	p.last = append(p.last, level)
	return nil
}

func (p *fakeProgress) RecordCompletion(c storage.Completion) (int64, error) {
	p.completions = append(p.completions, c)
	return int64(len(p.completions)), nil
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func runtimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10}
}

// stepUntilOver steps empty frames until the level ends or max ticks pass.
func stepUntilOver(t *testing.T, g *dynamite.Game, max int) core.GameState {
	t.Helper()
	for i := 0; i < max; i++ {
		res := g.Step(core.NewInputFrame())
		if res.Err != nil {
			t.Fatalf("Step() error: %v", res.Err)
		}
		if res.State.GameOver {
			return res.State
		}
	}
	return g.State()
}

// miniLevel builds a 12x13 text level from the rows given for the top of
// the map; the rest is land.
func miniLevel(top []string, legend, next string) string {
	rows := make([]string, 13)
	for i := range rows {
		if i < len(top) {
			rows[i] = top[i]
		} else {
			rows[i] = strings.Repeat(".", 12)
		}
	}
	out := strings.Join(rows, "\n") + "\n\n"
	if legend != "" {
		out += legend + "\n\n"
	}
	return out + ":title: Mini\n:hint: Watch out\n:next: " + next + "\n"
}

func miniLoader() *levels.Loader {
	return levels.NewLoader(fstest.MapFS{
		"boom.lvl": {Data: []byte(miniLevel([]string{
			"............",
			".Px.........",
			"............",
			"............",
			"............",
			"~~~~~~~~~~~D",
		}, "x land bomb timed armed", "end"))},
		"flood.lvl": {Data: []byte(miniLevel([]string{
			"............",
			".P..........",
			"............",
			"............",
			"............",
			"~~~~xD~~~~~~",
		}, "x water bomb timed armed", "end"))},
	})
}

func fastRules() sim.Rules {
	r := sim.DefaultRules()
	r.Fuse = 200 * time.Millisecond
	return r
}

func TestGameIdentity(t *testing.T) {
	g := dynamite.New(dynamite.Options{Start: "level01"})
	if g.ID() != "dynamite" {
		t.Errorf("ID() = %q, expected %q", g.ID(), "dynamite")
	}
	if g.Title() != "Dynamite Valley" {
		t.Errorf("Title() = %q, expected %q", g.Title(), "Dynamite Valley")
	}
}

func TestCommandsKeepOrder(t *testing.T) {
	in := frame(core.ActionPause, core.ActionInteract, core.ActionLeft, core.ActionDrop, core.ActionTrigger, core.ActionUp)
	got := dynamite.Commands(in)
	expected := []sim.Command{sim.CmdInteract, sim.CmdMoveLeft, sim.CmdDrop, sim.CmdTrigger, sim.CmdMoveUp}

	if len(got) != len(expected) {
		t.Fatalf("Commands() = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Commands()[%d] = %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestResetLoadsStartLevel(t *testing.T) {
	progress := &fakeProgress{}
	g := dynamite.New(dynamite.Options{Rules: sim.DefaultRules(), Start: "level01", Progress: progress})
	g.Reset(runtimeConfig())

	st := g.State()
	if st.Level != "level01" {
		t.Errorf("Level = %q, expected level01", st.Level)
	}
	if st.GameOver || st.Paused || st.Tick != 0 {
		t.Errorf("fresh state = %+v", st)
	}
	if g.Sim() == nil || g.Sim().Player.Pos != sim.C(2, 1) {
		t.Errorf("player not at level01 start")
	}
	if len(progress.last) != 1 || progress.last[0] != "level01" {
		t.Errorf("SetLastLevel calls = %v, expected [level01]", progress.last)
	}
}

func TestPauseStopsTheClock(t *testing.T) {
	g := dynamite.New(dynamite.Options{Start: "level01"})
	g.Reset(runtimeConfig())

	g.Step(frame())
	g.Step(frame(core.ActionPause))
	paused := g.State()
	if !paused.Paused {
		t.Fatalf("Paused = false after pause action")
	}

	for i := 0; i < 5; i++ {
		g.Step(frame(core.ActionRight))
	}
	if g.State().Tick != paused.Tick {
		t.Errorf("Tick advanced while paused: %d -> %d", paused.Tick, g.State().Tick)
	}
	if g.Sim().Player.Pos != sim.C(2, 1) {
		t.Errorf("player moved while paused to %v", g.Sim().Player.Pos)
	}

	g.Step(frame(core.ActionPause))
	g.Step(frame(core.ActionRight))
	if g.State().Paused {
		t.Errorf("Paused = true after second pause action")
	}
	if g.Sim().Player.Pos != sim.C(3, 1) {
		t.Errorf("player = %v after unpause, expected (3,1)", g.Sim().Player.Pos)
	}
}

func TestWinningFirstLevel(t *testing.T) {
	progress := &fakeProgress{}
	g := dynamite.New(dynamite.Options{Rules: sim.DefaultRules(), Start: "level01", Progress: progress})
	g.Reset(runtimeConfig())

	moves := []core.Action{
		core.ActionRight, core.ActionRight, core.ActionDown, core.ActionInteract,
		core.ActionDown, core.ActionRight, core.ActionDown, core.ActionDrop,
		core.ActionUp, core.ActionUp,
	}
	for _, a := range moves {
		if res := g.Step(frame(a)); res.Err != nil {
			t.Fatalf("Step(%v) error: %v", a, res.Err)
		}
	}

	st := stepUntilOver(t, g, 100)
	if !st.Won {
		t.Fatalf("level01 not won: %+v", st)
	}
	if st.Finished {
		t.Errorf("Finished = true on a level with a successor")
	}

	// Extra ticks after the win must not record twice.
	g.Step(frame())
	g.Step(frame())
	if len(progress.completions) != 1 {
		t.Fatalf("completions = %d, expected 1", len(progress.completions))
	}
	c := progress.completions[0]
	if c.Level != "level01" || c.BombsUsed != 1 || c.Ticks != int(st.Tick) || c.RunID == "" {
		t.Errorf("completion = %+v", c)
	}
	if last := progress.last[len(progress.last)-1]; last != "level02" {
		t.Errorf("last level = %q, expected level02", last)
	}

	g.Step(frame(core.ActionNext))
	if g.State().Level != "level02" || g.State().GameOver {
		t.Errorf("after next: %+v", g.State())
	}
}

func TestNextIgnoredBeforeWin(t *testing.T) {
	g := dynamite.New(dynamite.Options{Start: "level01"})
	g.Reset(runtimeConfig())

	g.Step(frame(core.ActionNext))
	if g.State().Level != "level01" {
		t.Errorf("Level = %q, expected level01", g.State().Level)
	}
}

func TestLosingAndRestart(t *testing.T) {
	progress := &fakeProgress{}
	g := dynamite.New(dynamite.Options{Rules: fastRules(), Loader: miniLoader(), Start: "boom", Progress: progress})
	g.Reset(runtimeConfig())

	st := stepUntilOver(t, g, 20)
	if !st.GameOver || st.Won {
		t.Fatalf("state = %+v, expected a loss", st)
	}
	if g.Sim().Loss != sim.LossBlasted {
		t.Errorf("Loss = %v, expected Blasted", g.Sim().Loss)
	}
	if len(progress.completions) != 0 {
		t.Errorf("a lost level recorded a completion")
	}

	g.Step(frame(core.ActionRestart))
	st = g.State()
	if st.GameOver || st.Tick != 0 {
		t.Errorf("after restart: %+v", st)
	}
	if _, ok := g.Sim().EntityAt(sim.C(2, 1)); !ok {
		t.Errorf("restart did not restore the bomb")
	}
}

func TestWinningFinalLevel(t *testing.T) {
	progress := &fakeProgress{}
	g := dynamite.New(dynamite.Options{Rules: fastRules(), Loader: miniLoader(), Start: "flood", Progress: progress})
	g.Reset(runtimeConfig())

	st := stepUntilOver(t, g, 20)
	if !st.Won || !st.Finished {
		t.Fatalf("state = %+v, expected the campaign finished", st)
	}
	if len(progress.last) != 1 {
		t.Errorf("SetLastLevel calls = %v, expected only the load", progress.last)
	}

	g.Step(frame(core.ActionNext))
	if g.State().Level != "flood" {
		t.Errorf("next after the final level moved to %q", g.State().Level)
	}
}

func TestMissingStartLevel(t *testing.T) {
	g := dynamite.New(dynamite.Options{Loader: miniLoader(), Start: "nowhere"})
	g.Reset(runtimeConfig())

	if !errors.Is(g.LoadErr(), levels.ErrNotFound) {
		t.Errorf("LoadErr() = %v, expected ErrNotFound", g.LoadErr())
	}
	res := g.Step(frame(core.ActionRight))
	if res.Err != nil {
		t.Errorf("Step() error = %v, a load failure is not a defect", res.Err)
	}
	if res.State.Level != "nowhere" {
		t.Errorf("Level = %q, expected nowhere", res.State.Level)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Level failed to load") {
		t.Errorf("render does not show the load error")
	}
}

func TestRender(t *testing.T) {
	g := dynamite.New(dynamite.Options{Start: "level01"})
	g.Reset(runtimeConfig())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Dynamite Valley", "First Blast", "Dams: 1", "@v", "○t", "▓▓"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := dynamite.New(dynamite.Options{Start: "level01"})
	g.Reset(runtimeConfig())

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("small screen not reported")
	}
}

func TestRecordingReplaysToSameState(t *testing.T) {
	rec := replay.NewRecorder()
	g := dynamite.New(dynamite.Options{Rules: sim.DefaultRules(), Start: "level01", Recorder: rec})
	g.Reset(runtimeConfig())

	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionPause))
	g.Step(frame(core.ActionRight)) // ignored while paused
	g.Step(frame(core.ActionPause))
	g.Step(frame(core.ActionRight, core.ActionDown))
	g.Step(frame(core.ActionInteract))

	script := rec.Script()
	if script.Level != "level01" || script.Ticks != g.State().Tick {
		t.Fatalf("script = %s/%d, game tick %d", script.Level, script.Ticks, g.State().Tick)
	}

	res, err := replay.Run(g.Level(), script, sim.DefaultRules(), 0)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.Hash != g.Sim().Snapshot() {
		t.Errorf("replayed hash %x, expected %x", res.Hash, g.Sim().Snapshot())
	}
}
