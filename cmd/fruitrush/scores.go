package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fruit-rush/internal/fruit"
	"github.com/vovakirdan/fruit-rush/internal/platform/tui"
	"github.com/vovakirdan/fruit-rush/internal/registry"
	"github.com/vovakirdan/fruit-rush/internal/storage"
)

var (
	flagAllTime     bool
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show the best runs",
	Long: `Display the top 10 runs with the fruit collected in each.

Examples:
  fruitrush scores
  fruitrush scores --all-time
  fruitrush scores --interactive
  fruitrush scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagAllTime, "all-time", false, "Also print fruit totals over all runs")
	scoresCmd.Flags().BoolVar(&flagInteractive, "interactive", false, "Browse scores in a table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run of the game")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := gameArg(args)
	requireGame(gameID)

	game, err := registry.Create(gameID, registry.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all runs for %s.\n", title)
		return
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, gameID, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.TopRuns(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'fruitrush play %s' to set the first high score!\n", gameID)
		return
	}

	// Header
	header := fmt.Sprintf("  %-4s  %-12s  %-8s", "Rank", "Player", "Score")
	rule := fmt.Sprintf("  %-4s  %-12s  %-8s", "----", "------", "-----")
	for _, k := range fruit.Kinds {
		header += fmt.Sprintf("  %-6s", k.String())
		rule += fmt.Sprintf("  %-6s", strings.Repeat("-", len(k.String())))
	}
	fmt.Println(header + "  Date")
	fmt.Println(rule + "  ----")

	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		line := fmt.Sprintf("  %-4d  %-12s  %-8d", i+1, player, r.Score)
		for _, k := range fruit.Kinds {
			line += fmt.Sprintf("  %-6d", itemCount(r.Items, k.String()))
		}
		fmt.Println(line + "  " + r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Runs: %d  Average: %.0f\n", stats.HighScore, stats.RunsCount, stats.AvgScore)
	}

	if flagAllTime {
		totals, err := store.ItemTotals(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving totals: %v\n", err)
			os.Exit(1)
		}
		fmt.Println()
		fmt.Println("All-time fruit:")
		for _, t := range totals {
			fmt.Printf("  %-8s x %-6d %d pts\n", t.Item, t.Count, t.Points)
		}
	}
}

func itemCount(items []storage.RunItem, name string) int {
	for _, it := range items {
		if it.Item == name {
			return it.Count
		}
	}
	return 0
}
