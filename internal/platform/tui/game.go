package tui

import "github.com/vovakirdan/dynamite-valley/internal/core"

// Game is what the terminal front end drives. Games hold pure logic with no
// Bubble Tea dependency; the platform owns input mapping, timing and drawing.
type Game interface {
	// ID returns a stable identifier, used for screenshot names.
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Reset starts a new run.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick. A non-nil
	// StepResult.Err stops the program.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns the current status.
	State() core.GameState
}
