// Package replay runs recorded input scripts against a level without a
// terminal. Running the same script twice yields the same state hash.
package replay

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/levels"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/levels/formats"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/sim"
)

// Input is the list of commands applied at one tick.
type Input struct {
	Tick     uint64   `yaml:"tick"`
	Commands []string `yaml:"commands,flow"`
}

// Script is a recorded play session for one level.
type Script struct {
	Level    string  `yaml:"level"`
	TickRate int     `yaml:"tick_rate,omitempty"` // 0 means the caller's rate
	Ticks    uint64  `yaml:"ticks"`               // upper bound on ticks to run
	Inputs   []Input `yaml:"inputs"`
}

// Result summarizes a finished run.
type Result struct {
	Outcome     sim.Outcome
	Loss        sim.LossCause
	Ticks       uint64
	Dams        int
	Detonations int
	Hash        uint64
}

// ParseScript decodes a YAML script.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if s.Level == "" {
		return Script{}, fmt.Errorf("script has no level")
	}
	if s.Ticks == 0 {
		return Script{}, fmt.Errorf("script has no ticks")
	}
	return s, nil
}

// LoadScript reads a script file.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("reading script %s: %w", path, err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return Script{}, fmt.Errorf("parsing script %s: %w", path, err)
	}
	return s, nil
}

// Save writes the script as YAML.
func (s Script) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing script %s: %w", path, err)
	}
	return nil
}

// schedule turns the inputs into commands keyed by tick.
func (s Script) schedule() (map[uint64][]sim.Command, error) {
	out := make(map[uint64][]sim.Command, len(s.Inputs))
	for _, in := range s.Inputs {
		if in.Tick >= s.Ticks {
			return nil, fmt.Errorf("input at tick %d is past the last tick %d", in.Tick, s.Ticks-1)
		}
		for _, name := range in.Commands {
			cmd, err := sim.ParseCommand(name)
			if err != nil {
				return nil, fmt.Errorf("tick %d: %w", in.Tick, err)
			}
			out[in.Tick] = append(out[in.Tick], cmd)
		}
	}
	return out, nil
}

// Run plays the script on lvl. It stops at the first terminal outcome or
// after Ticks ticks. A returned error is either a bad script or an engine
// defect.
func Run(lvl formats.Level, s Script, rules sim.Rules, tickRate int) (Result, error) {
	cmds, err := s.schedule()
	if err != nil {
		return Result{}, err
	}
	if s.TickRate > 0 {
		tickRate = s.TickRate
	}

	st, err := levels.NewState(lvl, rules)
	if err != nil {
		return Result{}, err
	}

	var res Result
	clk := sim.NewClock(tickRate)
	for st.Tick < s.Ticks && !st.Outcome.Terminal() {
		tr, err := st.StepTick(clk, cmds[st.Tick]...)
		if err != nil {
			return Result{}, fmt.Errorf("level %s tick %d: %w", lvl.Name, st.Tick, err)
		}
		res.Detonations += len(tr.Detonations)
		clk = clk.Advance()
	}

	res.Outcome = st.Outcome
	res.Loss = st.Loss
	res.Ticks = st.Tick
	res.Dams = st.Dams
	res.Hash = st.Snapshot()
	return res, nil
}

// Recorder captures the commands of one level attempt as a Script.
type Recorder struct {
	level    string
	tickRate int
	inputs   map[uint64][]string
	last     uint64
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{inputs: make(map[uint64][]string)}
}

// Start discards what was recorded and begins a new attempt.
func (r *Recorder) Start(level string, tickRate int) {
	r.level = level
	r.tickRate = tickRate
	r.inputs = make(map[uint64][]string)
	r.last = 0
}

// Record notes the commands applied at tick.
func (r *Recorder) Record(tick uint64, cmds []sim.Command) {
	if tick+1 > r.last {
		r.last = tick + 1
	}
	for _, c := range cmds {
		r.inputs[tick] = append(r.inputs[tick], c.String())
	}
}

// Script returns the recording. Ticks covers every tick seen so far.
func (r *Recorder) Script() Script {
	s := Script{Level: r.level, TickRate: r.tickRate, Ticks: r.last}
	for tick, cmds := range r.inputs {
		s.Inputs = append(s.Inputs, Input{Tick: tick, Commands: append([]string(nil), cmds...)})
	}
	sort.Slice(s.Inputs, func(i, j int) bool { return s.Inputs[i].Tick < s.Inputs[j].Tick })
	return s
}
