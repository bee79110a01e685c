package fruit

import "github.com/vovakirdan/fruit-rush/internal/core"

// Direction is the player's single discrete facing.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Vector returns the unit step for d.
func (d Direction) Vector() core.Vec {
	switch d {
	case DirUp:
		return core.Vec{X: 0, Y: -1}
	case DirDown:
		return core.Vec{X: 0, Y: 1}
	case DirLeft:
		return core.Vec{X: -1, Y: 0}
	default:
		return core.Vec{X: 1, Y: 0}
	}
}

// Valid reports whether d is one of the four facings.
func (d Direction) Valid() bool {
	return d >= DirRight && d <= DirUp
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection maps "up", "down", "left" or "right" to a Direction.
func ParseDirection(s string) (Direction, bool) {
	for _, d := range [...]Direction{DirRight, DirDown, DirLeft, DirUp} {
		if d.String() == s {
			return d, true
		}
	}
	return 0, false
}

// directionFor maps a steering action to a Direction.
func directionFor(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	}
	return 0, false
}

// Action returns the steering action that selects d.
func (d Direction) Action() core.Action {
	switch d {
	case DirUp:
		return core.ActionUp
	case DirDown:
		return core.ActionDown
	case DirLeft:
		return core.ActionLeft
	case DirRight:
		return core.ActionRight
	}
	return core.ActionNone
}

// Player is the steered sprite.
type Player struct {
	Pos   core.Vec
	Dir   Direction
	Speed float64
	Phase int // Animation frame, 0 or 1

	ticksPerSecond int
	increment      float64
	animEvery      int
}

// NewPlayer creates a player at pos facing right.
func NewPlayer(pos core.Vec, baseSpeed, increment float64, ticksPerSecond, animEvery int) Player {
	return Player{
		Pos:            pos,
		Dir:            DirRight,
		Speed:          baseSpeed,
		ticksPerSecond: max(1, ticksPerSecond),
		increment:      increment,
		animEvery:      max(1, animEvery),
	}
}

// Advance runs one tick of motion. The move uses the speed from before this
// tick; the frame toggle and the speed ramp fire when tick is a multiple of
// their cadence, tick 0 included.
func (p *Player) Advance(tick uint64) {
	p.Pos = p.Pos.Add(p.Dir.Vector().Scale(p.Speed))

	if tick%uint64(p.animEvery) == 0 {
		p.Phase = 1 - p.Phase
	}
	if tick%uint64(p.ticksPerSecond) == 0 {
		p.Speed += p.increment
	}
}
