package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagChain bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List available levels",
	Long: `Shows every level in the level directory (or the built-in campaign),
its title and the level that follows it. Files that fail to load are listed
with their error.

Examples:
  dynamite levels
  dynamite levels --chain
  dynamite levels --levels ./my-levels`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagChain, "chain", false, "Print the campaign order starting at the first level")
}

func runLevels(_ *cobra.Command, _ []string) error {
	loader := levelLoader()

	if flagChain {
		chain, err := loader.Chain(cfg.Levels.Start)
		for i, name := range chain {
			fmt.Printf("  %2d. %s\n", i+1, name)
		}
		return err
	}

	entries, err := loader.Scan()
	if err != nil {
		return fmt.Errorf("scanning levels: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No levels found.")
		return nil
	}

	nameW, titleW := len("Name"), len("Title")
	for _, e := range entries {
		nameW = max(nameW, len(e.Name))
		if e.Err == nil {
			titleW = max(titleW, len(e.Level.DisplayTitle()))
		}
	}

	fmt.Printf("  %-*s  %-*s  %s\n", nameW, "Name", titleW, "Title", "Next")
	fmt.Printf("  %-*s  %-*s  %s\n", nameW, "----", titleW, "-----", "----")

	broken := 0
	for _, e := range entries {
		if e.Err != nil {
			broken++
			fmt.Printf("  %-*s  %s\n", nameW, e.Name, e.Err)
			continue
		}
		fmt.Printf("  %-*s  %-*s  %s\n", nameW, e.Name, titleW, e.Level.DisplayTitle(), e.Level.Next)
	}

	fmt.Println()
	if broken > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d levels failed to load.\n", broken, len(entries))
	}
	fmt.Println("Run 'dynamite play <name>' to play a level.")
	return nil
}
