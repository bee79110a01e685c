package fruit

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fruit-rush/internal/config"
	"github.com/vovakirdan/fruit-rush/internal/core"
	"github.com/vovakirdan/fruit-rush/internal/logging"
)

// Status is the session lifecycle state.
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusInProgress:
		return "in_progress"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Line is one fruit's share of a final score.
type Line struct {
	Kind   Kind
	Count  int
	Points int // Points per fruit
}

// Breakdown is the final score of a finished run.
type Breakdown struct {
	Lines [KindCount]Line // Indexed by Kind
	Total int
}

// Session owns one player, one orchard and the lifecycle state machine.
// It is not safe for concurrent use; the tick driver owns it.
type Session struct {
	cfg     config.FruitConfig
	bounds  core.Bounds
	placer  *Placer
	orchard *Orchard
	player  Player
	status  Status
	tick    uint64
	score   int
	logger  *log.Logger
}

// NewSession creates a session in StatusNotStarted. A nil logger discards output.
func NewSession(cfg config.FruitConfig, rng *rand.Rand, logger *log.Logger) *Session {
	if logger == nil {
		logger = logging.Discard()
	}
	minX, maxX, minY, maxY := cfg.Bounds()
	bounds := core.Bounds{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}

	placer := NewPlacer(rng, bounds, cfg.Gameplay.MinDistance)
	placer.MaxAttempts = cfg.Placement.MaxAttempts

	s := &Session{
		cfg:     cfg,
		bounds:  bounds,
		placer:  placer,
		orchard: NewOrchard(cfg.Fruits, placer),
		logger:  logger,
	}
	s.init()
	return s
}

// init puts the session back to its pre-start state.
func (s *Session) init() {
	s.status = StatusNotStarted
	s.tick = 0
	s.score = 0
	s.player = NewPlayer(
		core.Vec{X: s.cfg.Field.Width / 2, Y: s.cfg.Field.Height / 2},
		s.cfg.Player.BaseSpeed,
		s.cfg.Player.SpeedIncrement,
		s.cfg.Gameplay.TicksPerSecond,
		s.cfg.AnimationEvery(),
	)
	s.orchard.ResetCounts()
}

// Start begins a run from StatusNotStarted or StatusGameOver. From game over
// the session is fully re-initialized first. Returns false, changing nothing,
// if a run is already in progress.
func (s *Session) Start() bool {
	switch s.status {
	case StatusInProgress:
		return false
	case StatusGameOver:
		s.init()
	}

	s.status = StatusInProgress
	for _, k := range Kinds {
		s.regenerate(k)
	}
	s.logger.Info("run started", "player", s.player.Pos)
	return true
}

// SetDirection steers the player from the next Update on. Ignored unless a
// run is in progress or if d is not a valid direction.
func (s *Session) SetDirection(d Direction) {
	if s.status != StatusInProgress || !d.Valid() {
		return
	}
	s.player.Dir = d
}

// Update runs one tick. Outside StatusInProgress it does nothing.
//
// Leaving the bounds ends the run, but the pickup pass for that tick still
// runs against the out-of-bounds position.
func (s *Session) Update() {
	if s.status != StatusInProgress {
		return
	}

	s.player.Advance(s.tick)

	if !s.bounds.Contains(s.player.Pos) {
		s.status = StatusGameOver
		s.logger.Info("run over", "tick", s.tick, "score", s.score, "player", s.player.Pos)
	}

	minDist := s.cfg.Gameplay.MinDistance
	for _, k := range Kinds {
		pos, placed := s.orchard.Position(k)
		if !placed || !Collides(s.player.Pos, pos, minDist) {
			continue
		}
		points, err := s.orchard.Collect(k, s.player.Pos)
		s.score += points
		s.logger.Debug("fruit collected", "fruit", k, "points", points, "score", s.score)
		if err != nil {
			s.logger.Warn("fruit not moved", "fruit", k, "error", err)
		} else {
			s.logPlacement(k)
		}
	}

	s.tick++
}

func (s *Session) regenerate(k Kind) {
	if _, err := s.orchard.Regenerate(k, s.player.Pos); err != nil {
		s.logger.Warn("fruit not placed", "fruit", k, "error", err)
		return
	}
	s.logPlacement(k)
}

func (s *Session) logPlacement(k Kind) {
	pos, _ := s.orchard.Position(k)
	s.logger.Debug("fruit generated", "fruit", k, "x", pos.X, "y", pos.Y)
}

// Status returns the lifecycle state.
func (s *Session) Status() Status {
	return s.status
}

// Tick returns the number of ticks simulated in the current run.
func (s *Session) Tick() uint64 {
	return s.tick
}

// Score returns the running total of points awarded.
func (s *Session) Score() int {
	return s.score
}

// Player returns a copy of the player state.
func (s *Session) Player() Player {
	return s.player
}

// Bounds returns the legal range of the player's center.
func (s *Session) Bounds() core.Bounds {
	return s.bounds
}

// Orchard exposes the fruit registry for read access.
func (s *Session) Orchard() *Orchard {
	return s.orchard
}

// Breakdown returns the final per-fruit counts. ok is false until the run is over.
func (s *Session) Breakdown() (b Breakdown, ok bool) {
	if s.status != StatusGameOver {
		return Breakdown{}, false
	}
	for _, k := range Kinds {
		b.Lines[k] = Line{Kind: k, Count: s.orchard.Count(k), Points: s.orchard.Points(k)}
	}
	b.Total = s.score
	return b, true
}
