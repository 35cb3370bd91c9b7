package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/dynamite.yaml
var defaultYAML []byte

// DefaultConfig returns the hard-coded configuration, used when even the
// embedded YAML cannot be decoded.
func DefaultConfig() Config {
	return Config{
		Simulation: SimulationConfig{
			TickRate:      50,
			Fuse:          3 * time.Second,
			Freeze:        5 * time.Second,
			FlowPeriod:    time.Second,
			CarryCapacity: 2,
		},
		Levels: LevelsConfig{
			Start: "level01",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
