// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade platform.
package config

import "math"

// FruitConfig contains all configuration for the fruit-collecting game.
type FruitConfig struct {
	Field     FieldConfig     `yaml:"field"`
	Player    PlayerConfig    `yaml:"player"`
	Fruits    FruitTable      `yaml:"fruits"`
	Gameplay  GameplayConfig  `yaml:"gameplay"`
	Placement PlacementConfig `yaml:"placement"`
}

// FieldConfig defines the playfield in field units.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// WidthOffset widens the horizontal legal range past half the sprite width.
	WidthOffset float64 `yaml:"width_offset"`
}

// PlayerConfig defines the player sprite and its speed progression.
type PlayerConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	BaseSpeed      float64 `yaml:"base_speed"`      // Units per tick at the start of a run
	SpeedIncrement float64 `yaml:"speed_increment"` // Added once per second of play
}

// FruitSprite is the footprint and value of one fruit kind.
type FruitSprite struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Points int     `yaml:"points"`
}

// FruitTable holds one entry per fruit kind. The set of kinds is closed.
type FruitTable struct {
	Apple  FruitSprite `yaml:"apple"`
	Grape  FruitSprite `yaml:"grape"`
	Orange FruitSprite `yaml:"orange"`
	Pine   FruitSprite `yaml:"pine"`
}

// GameplayConfig defines the tick cadence and distance thresholds.
type GameplayConfig struct {
	MinDistance    float64 `yaml:"min_distance"`
	TicksPerSecond int     `yaml:"ticks_per_second"`
	AnimationRate  int     `yaml:"animation_rate"` // Player frame switches per second
}

// PlacementConfig tunes the fruit placement sampler.
type PlacementConfig struct {
	// MaxAttempts caps rejection sampling. 0 means unbounded.
	MaxAttempts int `yaml:"max_attempts"`
}

// Bounds returns the legal range of the player's center as min/max pairs.
func (c FruitConfig) Bounds() (minX, maxX, minY, maxY float64) {
	minX = c.Player.Width/2 - c.Field.WidthOffset
	maxX = c.Field.Width - c.Player.Width/2 + c.Field.WidthOffset
	minY = c.Player.Height / 2
	maxY = c.Field.Height - c.Player.Height/2
	return minX, maxX, minY, maxY
}

// AnimationEvery returns the number of ticks between player frame switches.
func (c FruitConfig) AnimationEvery() int {
	rate := c.Gameplay.AnimationRate
	if rate <= 0 {
		rate = 4
	}
	return max(1, int(math.Ceil(float64(c.Gameplay.TicksPerSecond)/float64(rate))))
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty validates a preset name. The empty string maps to normal.
func ParseDifficulty(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), true
	}
	return "", false
}
