// fruitrush is a terminal arcade game about collecting fruit without
// leaving the field.
//
// Usage:
//
//	fruitrush list              - List available games
//	fruitrush play              - Play in this terminal
//	fruitrush scores            - Show the best runs
//	fruitrush serve             - Serve the game over SSH and WebSocket
//	fruitrush replay <file>     - Play back a recorded run
//
// Global flags:
//
//	--fps <rate>        - Override ticks per second (default: config value)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.fruitrush/scores.db)
//	--log-level <level> - debug, info, warn or error (default: $FRUITRUSH_LOG)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruit-rush/internal/fruit"
	"github.com/vovakirdan/fruit-rush/internal/registry"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fruitrush",
	Short: "Fruit Rush - collect fruit in your terminal",
	Long: `Fruit Rush is a terminal arcade game. Steer the sprite over fruit to score;
the run ends when the sprite leaves the field.

Available commands:
  list     - Show all available games
  play     - Play in this terminal
  scores   - View the best runs
  serve    - Start SSH and WebSocket servers for remote play
  replay   - Play back a recorded run

Examples:
  fruitrush play
  fruitrush play --difficulty hard --record run.json
  fruitrush scores --all-time
  fruitrush serve --ssh :2222 --ws :8080
  fruitrush replay run.json --verify`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Ticks per second (0 = config value)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fruitrush/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
}

// gameArg returns the game named on the command line, or the fruit game.
func gameArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return fruit.GameID
}

// requireGame exits when gameID is not registered.
func requireGame(gameID string) {
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'fruitrush list' to see available games.")
		os.Exit(1)
	}
}
