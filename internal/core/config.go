package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 50,
	}
}

// GameState is the status a game reports to the platform after each tick.
type GameState struct {
	Level    string // current level name
	Tick     uint64
	Paused   bool
	Won      bool
	GameOver bool // the level ended, won or lost
	Finished bool // the last level of the campaign was won
}

// StepResult is returned by Game.Step after each simulation tick.
// A non-nil Err means the game cannot continue.
type StepResult struct {
	State GameState
	Err   error
}
