package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dynamite-valley/internal/config"
	"github.com/vovakirdan/dynamite-valley/internal/core"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/levels"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/replay"
	"github.com/vovakirdan/dynamite-valley/internal/platform/tui"
	"github.com/vovakirdan/dynamite-valley/internal/storage"
)

var (
	flagPick   bool
	flagRecord string
	flagFresh  bool
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the campaign or a single level",
	Long: `Start playing. Without a level name the campaign resumes at the last
level you reached.

Controls:
  Arrows/WASD  - Move (walking into water next to the shore leaps over it)
  E/Enter      - Pick up a bomb or take one from a dispenser
  Space/X      - Drop the oldest carried bomb in front of you
  T            - Detonate the earliest remote bomb
  P/Esc        - Pause
  R            - Restart the level
  N            - Next level (after a win)
  Ctrl+S       - Save a screenshot
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Examples:
  dynamite play
  dynamite play level02
  dynamite play --pick
  dynamite play --fresh
  dynamite play level01 --record run.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagPick, "pick", false, "Choose the level from a menu")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Write the last attempt as a replay script")
	playCmd.Flags().BoolVar(&flagFresh, "fresh", false, "Ignore saved progress and start the campaign over")
}

func runPlay(_ *cobra.Command, args []string) error {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	rcfg := core.RuntimeConfig{ScreenW: width, ScreenH: height, TickRate: cfg.Simulation.TickRate}

	loader := levelLoader()
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	start, err := startLevel(args, loader, store, rcfg)
	if err != nil {
		return err
	}
	if start == "" {
		return nil
	}
	if _, err := loader.LoadByName(start); err != nil {
		return fmt.Errorf("cannot load level %s: %w", start, err)
	}

	// The TUI owns the terminal, so log to a file while playing.
	logFile, err := openLogFile(cfg.LogPath())
	if err != nil {
		return err
	}
	defer logFile.Close()
	playLogger, err := newLogger(logFile)
	if err != nil {
		return err
	}

	opts := dynamite.Options{
		Rules:  cfg.Simulation.Rules(),
		Loader: loader,
		Start:  start,
		Logger: playLogger,
	}
	if store != nil {
		opts.Progress = store
	}
	var rec *replay.Recorder
	if flagRecord != "" {
		rec = replay.NewRecorder()
		opts.Recorder = rec
	}

	game := dynamite.New(opts)
	game.Reset(rcfg)

	state, runErr := tui.Run(game, rcfg, filepath.Join(config.Dir(), "screenshots"))

	if rec != nil {
		if err := rec.Script().Save(flagRecord); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	if runErr != nil {
		if dynamite.IsDefect(runErr) {
			return fmt.Errorf("simulation halted: %w (see %s)", runErr, cfg.LogPath())
		}
		return fmt.Errorf("running game: %w", runErr)
	}
	if state.Finished {
		fmt.Println("You flooded the whole valley. Well done!")
	}
	return nil
}

// startLevel decides which level to open: the argument, a picker choice,
// the saved progress or the configured first level.
func startLevel(args []string, loader *levels.Loader, store *storage.Store, rcfg core.RuntimeConfig) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	resume := ""
	if store != nil && !flagFresh {
		last, err := store.LastLevel()
		if err != nil {
			logger.Warn("could not read progress", "err", err)
		}
		resume = last
	}

	if flagPick {
		entries, err := loader.Scan()
		if err != nil {
			return "", err
		}
		return tui.PickLevel(entries, resume, rcfg)
	}

	if resume != "" {
		if _, err := loader.LoadByName(resume); err == nil {
			return resume, nil
		}
		logger.Warn("saved level is unavailable, starting over", "level", resume)
	}
	return cfg.Levels.Start, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
