package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dynamite-valley/internal/platform/tui"
	"github.com/vovakirdan/dynamite-valley/internal/storage"
)

var flagProgressTUI bool

var progressCmd = &cobra.Command{
	Use:   "progress [level]",
	Short: "Show campaign progress",
	Long: `Shows the level the campaign resumes at and the best results per level.
With a level name, lists the most recent completions of that level.

Examples:
  dynamite progress
  dynamite progress level02
  dynamite progress --tui
  dynamite progress reset`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProgress,
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the saved campaign position",
	Args:  cobra.NoArgs,
	RunE:  runProgressReset,
}

func init() {
	progressCmd.Flags().BoolVar(&flagProgressTUI, "tui", false, "Browse progress interactively")
	progressCmd.AddCommand(progressResetCmd)
}

func openProgressStore() (*storage.Store, error) {
	store, err := storage.Open(cfg.StoragePath())
	if err != nil {
		return nil, fmt.Errorf("opening progress database: %w", err)
	}
	return store, nil
}

func runProgress(_ *cobra.Command, args []string) error {
	store, err := openProgressStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if flagProgressTUI {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		return tui.ShowProgress(store, width, height)
	}

	if len(args) == 1 {
		return printCompletions(store, args[0])
	}

	last, err := store.LastLevel()
	if err != nil {
		return fmt.Errorf("reading progress: %w", err)
	}
	if last == "" {
		fmt.Printf("Campaign resumes at: %s (not started)\n", cfg.Levels.Start)
	} else {
		fmt.Printf("Campaign resumes at: %s\n", last)
	}
	fmt.Println()

	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	if len(stats) == 0 {
		fmt.Println("No levels completed yet.")
		return nil
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("  %-12s  %-4s  %-10s  %-12s  %s\n", "Level", "Wins", "Best Ticks", "Fewest Bombs", "Last Played")
	fmt.Printf("  %-12s  %-4s  %-10s  %-12s  %s\n", "-----", "----", "----------", "------------", "-----------")
	for _, name := range names {
		s := stats[name]
		fmt.Printf("  %-12s  %-4d  %-10d  %-12d  %s\n",
			s.Level, s.Wins, s.BestTicks, s.FewestBombs, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printCompletions(store *storage.Store, level string) error {
	list, err := store.Completions(level, 10)
	if err != nil {
		return fmt.Errorf("retrieving completions: %w", err)
	}

	fmt.Printf("Completions - %s\n", level)
	fmt.Println()
	if len(list) == 0 {
		fmt.Println("No completions recorded yet.")
		return nil
	}

	fmt.Printf("  %-2s  %-6s  %-5s  %s\n", "#", "Ticks", "Bombs", "Date")
	fmt.Printf("  %-2s  %-6s  %-5s  %s\n", "-", "-----", "-----", "----")
	for i, c := range list {
		fmt.Printf("  %-2d  %-6d  %-5d  %s\n", i+1, c.Ticks, c.BombsUsed, c.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := store.BestCompletion(level); err == nil && best != nil {
		fmt.Println()
		fmt.Printf("Best: %d ticks, %d bombs\n", best.Ticks, best.BombsUsed)
	}
	return nil
}

func runProgressReset(_ *cobra.Command, _ []string) error {
	store, err := openProgressStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ResetProgress(); err != nil {
		return err
	}
	fmt.Println("Progress reset. The next 'dynamite play' starts at", cfg.Levels.Start)
	return nil
}
