// dynamite is a terminal puzzle game: carry bombs, ride logs and blow up
// every dam in the valley.
//
// Usage:
//
//	dynamite play [level]        - Play, resuming the campaign by default
//	dynamite levels              - List levels and any load errors
//	dynamite check <files...>    - Validate level files
//	dynamite replay <script>     - Run a recorded input script headless
//	dynamite progress            - Show completions; progress reset clears them
//
// Global flags:
//
//	--fps <rate>         - Simulation tick rate (default from config: 50)
//	--db <path>          - Progress database (default: ~/.dynamite/progress.db)
//	--config <path>      - YAML or TOML config file
//	--levels <dir>       - Level directory (default: built-in campaign)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dynamite-valley/internal/config"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/levels"
	"github.com/vovakirdan/dynamite-valley/internal/storage"
)

var (
	flagFPS        int
	flagDBPath     string
	flagConfigPath string
	flagLevelsDir  string
	flagLogLevel   string

	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dynamite",
	Short: "Dynamite Valley - blow up the dams in your terminal",
	Long: `Dynamite Valley is a tile puzzle game. Pick up bombs, drop them next to
the beaver dams and stay clear of the blast. Logs and bombs drift with the
current, freeze bombs stop timers and remote bombs wait for your trigger.

Examples:
  dynamite play
  dynamite play level03
  dynamite play --pick
  dynamite levels --levels ./my-levels
  dynamite check ./my-levels/*.lvl
  dynamite replay solution.yaml`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Simulation tick rate (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to a YAML or TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of level files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(progressCmd)
}

// setup loads the config and applies flag overrides before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfigPath)
	if err != nil {
		return err
	}
	cfg = loaded

	if flagFPS > 0 {
		cfg.Simulation.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLevelsDir != "" {
		cfg.Levels.Dir = flagLevelsDir
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}

	logger, err = newLogger(os.Stderr)
	return err
}

// newLogger builds the charm logger at the configured level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "dynamite",
		Level:           level,
	}), nil
}

// levelLoader returns the configured level source.
func levelLoader() *levels.Loader {
	if cfg.Levels.Dir != "" {
		return levels.DirLoader(cfg.Levels.Dir)
	}
	return levels.Builtin()
}

// openStore opens the progress database. Play continues without one.
func openStore() *storage.Store {
	store, err := storage.Open(cfg.StoragePath())
	if err != nil {
		logger.Warn("could not open progress database", "path", cfg.StoragePath(), "err", err)
		return nil
	}
	if version, err := store.SchemaVersion(); err == nil {
		logger.Debug("progress database ready", "path", cfg.StoragePath(), "schema", version)
	}
	return store
}
