// Package config loads Dynamite Valley settings from YAML or TOML files,
// falling back to an embedded default.
package config

import (
	"time"

	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/sim"
)

// Config is the complete application configuration.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation" toml:"simulation"`
	Levels     LevelsConfig     `yaml:"levels" toml:"levels"`
	Storage    StorageConfig    `yaml:"storage" toml:"storage"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
}

// SimulationConfig holds the engine tuning.
type SimulationConfig struct {
	TickRate      int           `yaml:"tick_rate" toml:"tick_rate"` // ticks per second
	Fuse          time.Duration `yaml:"fuse" toml:"fuse"`
	Freeze        time.Duration `yaml:"freeze" toml:"freeze"`
	FlowPeriod    time.Duration `yaml:"flow_period" toml:"flow_period"`
	CarryCapacity int           `yaml:"carry_capacity" toml:"carry_capacity"`
}

// LevelsConfig says where levels come from.
type LevelsConfig struct {
	Dir   string `yaml:"dir" toml:"dir"`     // empty means the built-in campaign
	Start string `yaml:"start" toml:"start"` // first level of a new campaign
}

// StorageConfig locates the progress database.
type StorageConfig struct {
	Path string `yaml:"path" toml:"path"` // empty means ~/.dynamite/progress.db
}

// LoggingConfig controls the charm logger.
type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"` // log file used while the TUI owns the terminal
}

// Rules converts the simulation section into engine rules.
func (c SimulationConfig) Rules() sim.Rules {
	return sim.Rules{
		Fuse:           c.Fuse,
		FreezeDuration: c.Freeze,
		FlowPeriod:     c.FlowPeriod,
		CarryCapacity:  c.CarryCapacity,
	}
}
