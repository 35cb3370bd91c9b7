package replay_test

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/levels"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/levels/formats"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/replay"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/sim"
)

func loadLevel(t *testing.T, name string) formats.Level {
	t.Helper()
	lvl, err := levels.Builtin().LoadByName(name)
	if err != nil {
		t.Fatalf("LoadByName(%s) error: %v", name, err)
	}
	return lvl
}

func TestRunSolvesFirstLevel(t *testing.T) {
	script, err := replay.LoadScript("testdata/level01.yaml")
	if err != nil {
		t.Fatalf("LoadScript() error: %v", err)
	}

	res, err := replay.Run(loadLevel(t, script.Level), script, sim.DefaultRules(), 50)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if res.Outcome != sim.Won {
		t.Errorf("Outcome = %v, expected Won", res.Outcome)
	}
	if res.Dams != 0 {
		t.Errorf("Dams = %d, expected 0", res.Dams)
	}
	if res.Detonations != 1 {
		t.Errorf("Detonations = %d, expected 1", res.Detonations)
	}
	if res.Ticks >= script.Ticks {
		t.Errorf("Ticks = %d, run did not stop at the win", res.Ticks)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	script, err := replay.LoadScript("testdata/level01.yaml")
	if err != nil {
		t.Fatalf("LoadScript() error: %v", err)
	}
	lvl := loadLevel(t, script.Level)

	first, err := replay.Run(lvl, script, sim.DefaultRules(), 0)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := replay.Run(lvl, script, sim.DefaultRules(), 0)
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if again != first {
			t.Errorf("run %d = %+v, expected %+v", i, again, first)
		}
	}
}

func TestRunWithoutInputsTimesOut(t *testing.T) {
	script := replay.Script{Level: "level01", Ticks: 30}
	res, err := replay.Run(loadLevel(t, "level01"), script, sim.DefaultRules(), 10)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.Outcome != sim.InProgress || res.Ticks != 30 || res.Dams != 1 {
		t.Errorf("Run() = %+v, expected 30 idle ticks", res)
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", "level: [x"},
		{"no level", "ticks: 10\n"},
		{"no ticks", "level: level01\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := replay.ParseScript([]byte(tt.data)); err == nil {
				t.Errorf("ParseScript(%q) should fail", tt.data)
			}
		})
	}
}

func TestRunRejectsBadInputs(t *testing.T) {
	lvl := loadLevel(t, "level01")

	tests := []struct {
		name   string
		script replay.Script
	}{
		{"unknown command", replay.Script{Level: "level01", Ticks: 5, Inputs: []replay.Input{{Tick: 1, Commands: []string{"jump"}}}}},
		{"past the end", replay.Script{Level: "level01", Ticks: 5, Inputs: []replay.Input{{Tick: 5, Commands: []string{"up"}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := replay.Run(lvl, tt.script, sim.DefaultRules(), 10); err == nil {
				t.Errorf("Run() should fail")
			}
		})
	}
}

func TestRecorderRoundTrip(t *testing.T) {
	rec := replay.NewRecorder()
	rec.Start("level01", 10)
	rec.Record(0, []sim.Command{sim.CmdMoveRight})
	rec.Record(1, nil)
	rec.Record(2, []sim.Command{sim.CmdInteract, sim.CmdDrop})

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := rec.Script().Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	s, err := replay.LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript() error: %v", err)
	}

	if s.Level != "level01" || s.TickRate != 10 || s.Ticks != 3 {
		t.Errorf("script header = %s/%d/%d", s.Level, s.TickRate, s.Ticks)
	}
	if len(s.Inputs) != 2 {
		t.Fatalf("len(Inputs) = %d, expected 2", len(s.Inputs))
	}
	if s.Inputs[1].Tick != 2 || len(s.Inputs[1].Commands) != 2 || s.Inputs[1].Commands[1] != "drop" {
		t.Errorf("Inputs[1] = %+v", s.Inputs[1])
	}

	rec.Start("level02", 10)
	if got := rec.Script(); got.Level != "level02" || got.Ticks != 0 || len(got.Inputs) != 0 {
		t.Errorf("Start() did not clear the recording: %+v", got)
	}
}
