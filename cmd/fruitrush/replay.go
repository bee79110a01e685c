package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruit-rush/internal/fruit"
	"github.com/vovakirdan/fruit-rush/internal/replay"
)

var flagVerify bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Play back a recorded run",
	Long: `Play a replay file without a terminal UI and print the final breakdown.

With --verify the command fails when the outcome differs from the one
stored in the file.

Examples:
  fruitrush play --seed 42 --record run.json
  fruitrush replay run.json --verify`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagVerify, "verify", false, "Fail when the recorded result is not reproduced")
}

func runReplay(_ *cobra.Command, args []string) {
	rep, err := replay.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	play := replay.Play
	if flagVerify {
		play = replay.Verify
	}
	snap, err := play(rep)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	player := rep.Header.Player
	if player == "" {
		player = "-"
	}
	fmt.Printf("Replay of %s by %s (seed %d, %d ticks)\n", rep.Header.GameID, player, rep.Header.Seed, rep.Ticks)
	fmt.Println()
	printBreakdown(snap)

	if flagVerify {
		fmt.Println()
		fmt.Println("Verified: result matches the recording.")
	}
}

func printBreakdown(snap fruit.Snapshot) {
	fmt.Printf("Status: %s at tick %d\n", snap.Status, snap.Tick)
	if snap.Final == nil {
		fmt.Printf("Score:  %d\n", snap.Score)
		return
	}
	for _, item := range snap.Final.Items {
		fmt.Printf("  %-7s x %-4d %d pts\n", item.Kind, item.Count, item.Points)
	}
	fmt.Printf("  %-7s   %d\n", "Total", snap.Final.Total)
}
