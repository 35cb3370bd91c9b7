package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads the configuration.
// Search order: customPath -> ~/.dynamite/config.yaml -> ./configs/dynamite.yaml -> embedded default
// Files only need the keys they change; everything else keeps its default.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data, filepath.Ext(customPath))
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg.normalized(), nil
	}

	for _, path := range []string{userConfigPath("config.yaml"), userConfigPath("config.toml"), filepath.Join("configs", "dynamite.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decode(data, filepath.Ext(path)); err == nil {
			return cfg.normalized(), nil
		}
	}

	cfg, err := decode(defaultYAML, ".yaml")
	if err != nil {
		return DefaultConfig(), nil
	}
	return cfg.normalized(), nil
}

// decode layers a YAML or TOML document over the embedded defaults.
func decode(data []byte, ext string) (Config, error) {
	cfg := DefaultConfig()
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, err
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// normalized fills zero or negative values with defaults.
func (c Config) normalized() Config {
	d := DefaultConfig()
	s := &c.Simulation
	if s.TickRate <= 0 {
		s.TickRate = d.Simulation.TickRate
	}
	if s.Fuse <= 0 {
		s.Fuse = d.Simulation.Fuse
	}
	if s.Freeze <= 0 {
		s.Freeze = d.Simulation.Freeze
	}
	if s.FlowPeriod <= 0 {
		s.FlowPeriod = d.Simulation.FlowPeriod
	}
	if s.CarryCapacity <= 0 {
		s.CarryCapacity = d.Simulation.CarryCapacity
	}
	if c.Levels.Start == "" {
		c.Levels.Start = d.Levels.Start
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	return c
}

// Dir returns ~/.dynamite, or "" if the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dynamite")
}

func userConfigPath(filename string) string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, filename)
}

// StoragePath resolves the database location.
func (c Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	if dir := Dir(); dir != "" {
		return filepath.Join(dir, "progress.db")
	}
	return "dynamite.db"
}

// LogPath resolves the log file used during play.
func (c Config) LogPath() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	if dir := Dir(); dir != "" {
		return filepath.Join(dir, "dynamite.log")
	}
	return "dynamite.log"
}
