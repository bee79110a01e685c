package fruit

import (
	"errors"
	"math"
	"math/rand"

	"github.com/vovakirdan/fruit-rush/internal/core"
)

// ErrPlacementExhausted is returned when a capped Placer runs out of attempts.
var ErrPlacementExhausted = errors.New("fruit: no valid placement found")

// Placer finds fruit positions by rejection sampling.
//
// With MaxAttempts == 0 the search is unbounded. It always terminates for a
// configuration that passes config.Validate, but only probabilistically: callers
// that shrink the field or grow the minimum distance must keep a valid spot
// reachable or cap the search.
type Placer struct {
	rng         *rand.Rand
	bounds      core.Bounds
	minDist     float64
	MaxAttempts int
}

// NewPlacer creates a Placer sampling within bounds.
func NewPlacer(rng *rand.Rand, bounds core.Bounds, minDist float64) *Placer {
	return &Placer{rng: rng, bounds: bounds, minDist: minDist}
}

// Place returns a candidate that passes ClearOfPlayer against player and
// ClearOfFruit against every position in others. It reads but never modifies
// its arguments.
func (p *Placer) Place(player core.Vec, others []core.Vec) (core.Vec, error) {
	for attempt := 0; p.MaxAttempts == 0 || attempt < p.MaxAttempts; attempt++ {
		c := core.Vec{
			X: p.randomInt(p.bounds.MinX, p.bounds.MaxX),
			Y: p.randomInt(p.bounds.MinY, p.bounds.MaxY),
		}
		if p.acceptable(c, player, others) {
			return c, nil
		}
	}
	return core.Vec{}, ErrPlacementExhausted
}

func (p *Placer) acceptable(c, player core.Vec, others []core.Vec) bool {
	if !ClearOfPlayer(c, player, p.minDist) {
		return false
	}
	for _, o := range others {
		if !ClearOfFruit(c, o, p.minDist) {
			return false
		}
	}
	return true
}

// randomInt draws floor(u*(max-min)+min), an integer in [min, max) for integral min.
func (p *Placer) randomInt(min, max float64) float64 {
	return math.Floor(p.rng.Float64()*(max-min) + min)
}

// ClearOfPlayer is the spawn rule against the player: the product of the axis
// deltas must reach minDist². A candidate far away on one axis may come
// arbitrarily close on the other. Never replace this with a true distance.
func ClearOfPlayer(c, player core.Vec, minDist float64) bool {
	return math.Abs((c.X-player.X)*(c.Y-player.Y)) >= minDist*minDist
}

// ClearOfFruit is the spawn rule between fruit: Manhattan distance of at least 2*minDist.
func ClearOfFruit(c, other core.Vec, minDist float64) bool {
	return math.Abs(c.X-other.X)+math.Abs(c.Y-other.Y) >= 2*minDist
}

// Collides is the pickup rule: true Euclidean distance below minDist.
// This is not the metric the spawn rules use.
func Collides(player, fruit core.Vec, minDist float64) bool {
	return player.DistSq(fruit) < minDist*minDist
}
