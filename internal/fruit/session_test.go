package fruit

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/fruit-rush/internal/config"
	"github.com/vovakirdan/fruit-rush/internal/core"
)

const floatTolerance = 1e-9

func newTestSession(seed int64) *Session {
	return NewSession(config.DefaultFruitConfig(), rand.New(rand.NewSource(seed)), nil)
}

func TestNewSessionInitialState(t *testing.T) {
	s := newTestSession(1)

	if s.Status() != StatusNotStarted {
		t.Errorf("expected not_started, got %s", s.Status())
	}
	p := s.Player()
	if p.Pos != (core.Vec{X: 300, Y: 300}) {
		t.Errorf("expected player centered at (300,300), got %v", p.Pos)
	}
	if p.Dir != DirRight {
		t.Errorf("expected initial direction right, got %s", p.Dir)
	}
	if p.Speed != 3 {
		t.Errorf("expected base speed 3, got %f", p.Speed)
	}
	for _, k := range Kinds {
		if _, placed := s.Orchard().Position(k); placed {
			t.Errorf("%s should not be placed before start", k)
		}
	}
	if _, ok := s.Breakdown(); ok {
		t.Error("breakdown should be unavailable before game over")
	}
}

func TestUpdateBeforeStartIsNoop(t *testing.T) {
	s := newTestSession(1)
	before := s.Player()

	for i := 0; i < 10; i++ {
		s.SetDirection(DirUp)
		s.Update()
	}

	if s.Tick() != 0 {
		t.Errorf("tick should stay 0, got %d", s.Tick())
	}
	if s.Player() != before {
		t.Errorf("player changed before start: %+v -> %+v", before, s.Player())
	}
}

func TestStartPlacesAllFruit(t *testing.T) {
	s := newTestSession(3)
	if !s.Start() {
		t.Fatal("Start should succeed from not_started")
	}

	minDist := s.cfg.Gameplay.MinDistance
	player := s.Player().Pos
	for _, k := range Kinds {
		pos, placed := s.Orchard().Position(k)
		if !placed {
			t.Fatalf("%s not placed", k)
		}
		if !ClearOfPlayer(pos, player, minDist) {
			t.Errorf("%s at %v violates the player rule", k, pos)
		}
	}
	assertFruitSpread(t, s)
}

func TestStartIsIdempotentWhileInProgress(t *testing.T) {
	s := newTestSession(5)
	s.Start()
	for i := 0; i < 5; i++ {
		s.Update()
	}

	var positions [KindCount]core.Vec
	for _, k := range Kinds {
		positions[k], _ = s.Orchard().Position(k)
	}
	tick, score := s.Tick(), s.Score()

	if s.Start() {
		t.Error("Start should report false while in progress")
	}
	if s.Tick() != tick || s.Score() != score {
		t.Error("Start while in progress changed the run")
	}
	for _, k := range Kinds {
		if pos, _ := s.Orchard().Position(k); pos != positions[k] {
			t.Errorf("%s moved from %v to %v", k, positions[k], pos)
		}
	}
}

func TestSetDirectionOnlyWhileInProgress(t *testing.T) {
	s := newTestSession(1)
	s.SetDirection(DirUp)
	if s.Player().Dir != DirRight {
		t.Error("direction should be ignored before start")
	}

	s.Start()
	s.SetDirection(DirUp)
	if s.Player().Dir != DirUp {
		t.Error("direction should apply while in progress")
	}
	s.SetDirection(Direction(42))
	if s.Player().Dir != DirUp {
		t.Error("invalid direction should be ignored")
	}
}

func TestPlayerSpeedRamp(t *testing.T) {
	p := NewPlayer(core.Vec{X: 300, Y: 300}, 3, 0.2, 50, 13)

	checks := map[uint64]float64{
		0:   3.2,
		49:  3.2,
		50:  3.4,
		100: 3.6,
	}
	for tick := uint64(0); tick <= 100; tick++ {
		p.Advance(tick)
		if want, ok := checks[tick]; ok && math.Abs(p.Speed-want) > floatTolerance {
			t.Errorf("after tick %d: speed %f, want %f", tick, p.Speed, want)
		}
	}
}

func TestPlayerMovesWithSpeedBeforeRamp(t *testing.T) {
	p := NewPlayer(core.Vec{X: 300, Y: 300}, 3, 0.2, 50, 13)

	p.Advance(0)
	if p.Pos.X != 303 {
		t.Errorf("first tick should move 3 units, got x=%f", p.Pos.X)
	}
	p.Advance(1)
	if math.Abs(p.Pos.X-306.2) > floatTolerance {
		t.Errorf("second tick should move 3.2 units, got x=%f", p.Pos.X)
	}
	if p.Pos.Y != 300 {
		t.Errorf("moving right should not change y, got %f", p.Pos.Y)
	}
}

func TestPlayerHundredTicksRight(t *testing.T) {
	p := NewPlayer(core.Vec{X: 300, Y: 300}, 3, 0.2, 50, 13)

	// Accumulate the same way the simulation does.
	x, speed := 300.0, 3.0
	for tick := uint64(0); tick < 100; tick++ {
		p.Advance(tick)
		x += speed
		if tick%50 == 0 {
			speed += 0.2
		}
	}

	if math.Abs(p.Pos.X-x) > floatTolerance {
		t.Errorf("x = %f, want %f", p.Pos.X, x)
	}
	// 300 + 3 (tick 0) + 49*3.2 (ticks 1-49) + 50*3.4 (ticks 50-99)
	if math.Abs(p.Pos.X-629.8) > 1e-6 {
		t.Errorf("x = %f, want 629.8", p.Pos.X)
	}
	if math.Abs(p.Speed-3.4) > floatTolerance {
		t.Errorf("speed = %f, want 3.4", p.Speed)
	}
}

func TestPlayerAnimationToggle(t *testing.T) {
	p := NewPlayer(core.Vec{}, 3, 0.2, 50, 13)

	p.Advance(0)
	if p.Phase != 1 {
		t.Fatalf("phase should toggle on tick 0, got %d", p.Phase)
	}
	for tick := uint64(1); tick < 13; tick++ {
		p.Advance(tick)
	}
	if p.Phase != 1 {
		t.Errorf("phase should hold until tick 13, got %d", p.Phase)
	}
	p.Advance(13)
	if p.Phase != 0 {
		t.Errorf("phase should toggle on tick 13, got %d", p.Phase)
	}
}

func TestLeavingBoundsEndsRun(t *testing.T) {
	s := newTestSession(9)
	s.Start()

	var last Player
	for i := 0; i < 1000 && s.Status() == StatusInProgress; i++ {
		last = s.Player()
		s.Update()
	}

	if s.Status() != StatusGameOver {
		t.Fatal("run should end after leaving the field")
	}
	maxX := s.Bounds().MaxX
	if s.Player().Pos.X <= maxX {
		t.Errorf("final x %f should be past %f", s.Player().Pos.X, maxX)
	}
	if last.Pos.X > maxX {
		t.Errorf("previous x %f was already out of bounds", last.Pos.X)
	}

	tick := s.Tick()
	s.Update()
	if s.Tick() != tick {
		t.Error("Update after game over should do nothing")
	}
}

func TestBoundaryIsInclusive(t *testing.T) {
	s := newTestSession(1)
	s.Start()
	s.player.Pos = core.Vec{X: s.Bounds().MaxX - s.player.Speed, Y: 300}
	s.Update()

	if s.Status() != StatusInProgress {
		t.Errorf("landing exactly on the boundary should not end the run, x=%f", s.Player().Pos.X)
	}
}

func TestCollectAwardsPointsAndRegenerates(t *testing.T) {
	s := newTestSession(11)
	s.Start()

	// Put the apple where the player lands after one tick.
	target := s.Player().Pos.Add(core.Vec{X: s.Player().Speed})
	s.orchard.slots[Apple].pos = target

	s.Update()

	if s.Orchard().Count(Apple) != 1 {
		t.Fatalf("apple count = %d, want 1", s.Orchard().Count(Apple))
	}
	if s.Score() != 150 {
		t.Errorf("score = %d, want 150", s.Score())
	}
	pos, _ := s.Orchard().Position(Apple)
	if pos == target {
		t.Error("apple should be regenerated after pickup")
	}
	if !ClearOfPlayer(pos, s.Player().Pos, s.cfg.Gameplay.MinDistance) {
		t.Errorf("regenerated apple at %v violates the player rule", pos)
	}
}

func TestCollectStillRunsOnExitTick(t *testing.T) {
	s := newTestSession(13)
	s.Start()

	maxX := s.Bounds().MaxX
	s.player.Pos = core.Vec{X: maxX, Y: 300}
	s.orchard.slots[Orange].pos = core.Vec{X: maxX + s.player.Speed, Y: 300}

	s.Update()

	if s.Status() != StatusGameOver {
		t.Fatal("run should be over")
	}
	if s.Orchard().Count(Orange) != 1 || s.Score() != 100 {
		t.Errorf("orange pickup on the exit tick: count=%d score=%d", s.Orchard().Count(Orange), s.Score())
	}
}

func TestScoreMatchesCounts(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		s := newTestSession(seed)
		s.Start()
		rng := rand.New(rand.NewSource(seed * 31))
		for i := 0; i < 2000 && s.Status() == StatusInProgress; i++ {
			if i%20 == 0 {
				s.SetDirection(steerInward(s, rng))
			}
			s.Update()
			if s.Score() != s.Orchard().Total() {
				t.Fatalf("seed %d tick %d: score %d != Σ count×points %d", seed, s.Tick(), s.Score(), s.Orchard().Total())
			}
			assertFruitSpread(t, s)
		}
	}
}

func TestBreakdownAfterGameOver(t *testing.T) {
	s := newTestSession(17)
	s.Start()
	s.orchard.slots[Grape].pos = s.Player().Pos.Add(core.Vec{X: s.Player().Speed})
	for s.Status() == StatusInProgress {
		s.Update()
	}

	b, ok := s.Breakdown()
	if !ok {
		t.Fatal("breakdown should be available after game over")
	}
	if b.Total != s.Score() {
		t.Errorf("total %d != score %d", b.Total, s.Score())
	}
	sum := 0
	for _, line := range b.Lines {
		sum += line.Count * line.Points
	}
	if sum != b.Total {
		t.Errorf("line sum %d != total %d", sum, b.Total)
	}
	if b.Lines[Grape].Count < 1 {
		t.Errorf("grape should be counted, got %d", b.Lines[Grape].Count)
	}
}

func TestRestartFromGameOver(t *testing.T) {
	s := newTestSession(19)
	s.Start()
	s.orchard.slots[Pine].pos = s.Player().Pos.Add(core.Vec{X: s.Player().Speed})
	for s.Status() == StatusInProgress {
		s.Update()
	}

	if !s.Start() {
		t.Fatal("Start should succeed from game over")
	}
	if s.Status() != StatusInProgress {
		t.Errorf("expected in_progress, got %s", s.Status())
	}
	if s.Score() != 0 || s.Tick() != 0 {
		t.Errorf("restart should clear score and tick, got %d and %d", s.Score(), s.Tick())
	}
	p := s.Player()
	if p.Pos != (core.Vec{X: 300, Y: 300}) || p.Dir != DirRight || p.Speed != 3 {
		t.Errorf("restart should re-center the player, got %+v", p)
	}
	for _, k := range Kinds {
		if s.Orchard().Count(k) != 0 {
			t.Errorf("%s count should be 0 after restart", k)
		}
	}
	assertFruitSpread(t, s)
}

// assertFruitSpread checks the pairwise fruit rule over every placed fruit.
func assertFruitSpread(t *testing.T, s *Session) {
	t.Helper()
	minDist := s.cfg.Gameplay.MinDistance
	for i, a := range Kinds {
		pa, okA := s.Orchard().Position(a)
		for _, b := range Kinds[i+1:] {
			pb, okB := s.Orchard().Position(b)
			if okA && okB && !ClearOfFruit(pa, pb, minDist) {
				t.Fatalf("%s %v and %s %v are too close", a, pa, b, pb)
			}
		}
	}
}

// steerInward picks a random direction that does not face the nearest wall.
func steerInward(s *Session, rng *rand.Rand) Direction {
	p := s.Player().Pos
	b := s.Bounds()
	var options []Direction
	if p.X < b.MaxX-60 {
		options = append(options, DirRight)
	}
	if p.X > b.MinX+60 {
		options = append(options, DirLeft)
	}
	if p.Y < b.MaxY-60 {
		options = append(options, DirDown)
	}
	if p.Y > b.MinY+60 {
		options = append(options, DirUp)
	}
	if len(options) == 0 {
		return s.Player().Dir
	}
	return options[rng.Intn(len(options))]
}
