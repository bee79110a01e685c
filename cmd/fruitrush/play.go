package main

import (
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fruit-rush/internal/core"
	"github.com/vovakirdan/fruit-rush/internal/fruit"
	"github.com/vovakirdan/fruit-rush/internal/logging"
	"github.com/vovakirdan/fruit-rush/internal/platform/tui"
	"github.com/vovakirdan/fruit-rush/internal/registry"
	"github.com/vovakirdan/fruit-rush/internal/replay"
	"github.com/vovakirdan/fruit-rush/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagRecord     string
	flagName       string
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing in this terminal.

Controls:
  Enter/Space      - Start a run
  W/A/S/D, arrows  - Steer
  H                - Toggle help (home screen)
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot
  Q/Esc/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower start, gentle speed ramp
  normal - Configured speeds
  hard   - Faster start, steep speed ramp
  fixed  - No speed ramp

Examples:
  fruitrush play
  fruitrush play --difficulty hard
  fruitrush play --seed 42 --record run.json
  fruitrush play --config ./my-fruit.yaml --log-file fruit.log`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Record the session to a replay file")
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name for the score table (default: OS user)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := gameArg(args)
	requireGame(gameID)

	// Logging to stderr would corrupt the alt screen
	logger, closeLog, err := logging.OpenFile(flagLogFile, "play", flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}

	game, err := registry.Create(gameID, registry.Options{
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	game.Reset(cfg)

	player := playerName()
	opts := tui.Options{Logger: logger, Player: player}

	var rec *replay.Recorder
	fg, isFruit := game.(*fruit.Game)
	if flagRecord != "" {
		if !isFruit {
			fmt.Fprintf(os.Stderr, "Error: game %q cannot be recorded\n", gameID)
			os.Exit(1)
		}
		rec, err = replay.NewRecorder(fg.Config(), fg.Seed(), flagFPS, player)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		opts.Recorder = rec
	}

	// Continue without storage - game still works
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	opts.Store = store

	runErr := tui.Run(game, cfg, opts)

	if store != nil {
		store.Close()
	}

	if rec != nil {
		rec.Finish(fg.Snapshot())
		if err := rec.Save(flagRecord); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving replay: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Replay saved to %s\n", flagRecord)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// playerName returns --name, falling back to the OS user name.
func playerName() string {
	if flagName != "" {
		return flagName
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
