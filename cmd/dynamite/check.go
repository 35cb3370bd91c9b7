package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/levels"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/levels/formats"
)

var checkCmd = &cobra.Command{
	Use:   "check <files...>",
	Short: "Validate level files",
	Long: `Parses each file and builds its starting state. Exits with status 1 if
any file is rejected.

Supported extensions: .lvl, .txt, .yaml, .yml

Examples:
  dynamite check level05.lvl
  dynamite check ./my-levels/*`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runCheck(_ *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		if err := checkFile(path); err != nil {
			failed++
			fmt.Printf("FAIL  %s: %v\n", path, err)
			continue
		}
		fmt.Printf("ok    %s\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func checkFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ext := filepath.Ext(path)
	name := strings.TrimSuffix(filepath.Base(path), ext)
	lvl, err := formats.Parse(name, ext, data)
	if err != nil {
		return err
	}
	if _, err := levels.NewState(lvl, cfg.Simulation.Rules()); err != nil {
		return err
	}
	logger.Debug("level ok", "name", lvl.Name, "title", lvl.DisplayTitle(), "next", lvl.Next)
	return nil
}
