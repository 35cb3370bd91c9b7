package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/replay"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/sim"
)

var flagExpect string

var replayCmd = &cobra.Command{
	Use:   "replay <script>",
	Short: "Run a recorded input script without a terminal",
	Long: `Loads a replay script (written by 'dynamite play --record'), runs it
against its level and prints the outcome and the final state hash. Two runs
of the same script always print the same hash.

Examples:
  dynamite replay run.yaml
  dynamite replay solution.yaml --expect won`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagExpect, "expect", "", "Fail unless the outcome matches (won, lost, inprogress)")
}

func runReplay(_ *cobra.Command, args []string) error {
	script, err := replay.LoadScript(args[0])
	if err != nil {
		return err
	}
	lvl, err := levelLoader().LoadByName(script.Level)
	if err != nil {
		return fmt.Errorf("cannot load level %s: %w", script.Level, err)
	}

	res, err := replay.Run(lvl, script, cfg.Simulation.Rules(), cfg.Simulation.TickRate)
	if err != nil {
		return err
	}

	fmt.Printf("Level:       %s (%s)\n", lvl.Name, lvl.DisplayTitle())
	fmt.Printf("Outcome:     %s\n", res.Outcome)
	if res.Loss != sim.LossNone {
		fmt.Printf("Cause:       %s\n", res.Loss)
	}
	fmt.Printf("Ticks:       %d\n", res.Ticks)
	fmt.Printf("Dams left:   %d\n", res.Dams)
	fmt.Printf("Detonations: %d\n", res.Detonations)
	fmt.Printf("Hash:        %016x\n", res.Hash)

	if flagExpect != "" && !strings.EqualFold(flagExpect, res.Outcome.String()) {
		return fmt.Errorf("expected outcome %s, got %s", flagExpect, res.Outcome)
	}
	return nil
}
