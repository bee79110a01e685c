// Package fruit implements the fruit-collecting arcade game.
// Fruit touched by the player scores points; the run ends as soon as the
// player leaves the field.
package fruit

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fruit-rush/internal/config"
	"github.com/vovakirdan/fruit-rush/internal/core"
	"github.com/vovakirdan/fruit-rush/internal/logging"
	"github.com/vovakirdan/fruit-rush/internal/registry"
)

// GameID is the registry identifier of the game.
const GameID = "fruit"

// Game adapts a Session to the platform's registry.Game interface.
type Game struct {
	cfg      config.FruitConfig // As configured
	runtime  config.FruitConfig // With runtime overrides applied
	session  *Session
	logger   *log.Logger
	showHelp bool
	seed     int64
}

// New creates a game with the default configuration.
func New() *Game {
	return NewWithConfig(config.DefaultFruitConfig())
}

// NewWithConfig creates a game with the given configuration.
// The game is usable right away; Reset re-seeds it.
func NewWithConfig(cfg config.FruitConfig) *Game {
	g := &Game{cfg: cfg, logger: logging.Discard()}
	g.Reset(core.RuntimeConfig{})
	return g
}

func init() {
	registry.Register(GameID, "Fruit Rush", func(opts registry.Options) (registry.Game, error) {
		cfg, err := config.LoadFruit(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		preset, ok := config.ParseDifficulty(opts.Difficulty)
		if !ok {
			return nil, fmt.Errorf("fruit: unknown difficulty %q", opts.Difficulty)
		}
		config.ApplyFruitPreset(&cfg, preset)

		g := NewWithConfig(cfg)
		if opts.Logger != nil {
			g.SetLogger(opts.Logger)
		}
		return g, nil
	})
}

// SetLogger replaces the logger used by this and future sessions.
func (g *Game) SetLogger(l *log.Logger) {
	if l == nil {
		l = logging.Discard()
	}
	g.logger = l
	g.session.logger = l
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Fruit Rush"
}

// Reset discards the current session and creates a fresh one in the
// not-started state. A positive TickRate replaces the configured ticks per second.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = g.cfg
	if cfg.TickRate > 0 {
		g.runtime.Gameplay.TicksPerSecond = cfg.TickRate
	}
	g.seed = cfg.Seed
	g.session = NewSession(g.runtime, rand.New(rand.NewSource(cfg.Seed)), g.logger)
	g.showHelp = false
}

// Step applies this tick's input and advances the session once.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionHelp) && g.session.Status() == StatusNotStarted {
		g.showHelp = !g.showHelp
	}

	if in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) {
		if g.session.Start() {
			g.showHelp = false
		}
	}

	if d, ok := directionFor(in.Direction()); ok {
		g.session.SetDirection(d)
	}

	g.session.Update()

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.session.Score(),
		Ticks:    g.session.Tick(),
		Started:  g.session.Status() != StatusNotStarted,
		GameOver: g.session.Status() == StatusGameOver,
	}
	if b, ok := g.session.Breakdown(); ok {
		st.Items = make([]core.ItemCount, 0, KindCount)
		for _, line := range b.Lines {
			st.Items = append(st.Items, core.ItemCount{
				Name:   line.Kind.String(),
				Count:  line.Count,
				Points: line.Points,
			})
		}
	}
	return st
}

// TickRate returns the ticks per second in effect.
func (g *Game) TickRate() int {
	return g.runtime.Gameplay.TicksPerSecond
}

// Session returns the underlying session.
func (g *Game) Session() *Session {
	return g.session
}

// Config returns the configuration in effect, runtime overrides included.
func (g *Game) Config() config.FruitConfig {
	return g.runtime
}

// Seed returns the seed of the current session.
func (g *Game) Seed() int64 {
	return g.seed
}
