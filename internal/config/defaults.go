package config

import (
	_ "embed"
)

//go:embed defaults/fruit.yaml
var defaultFruitYAML []byte

// DefaultFruitConfig returns the default fruit game configuration.
func DefaultFruitConfig() FruitConfig {
	return FruitConfig{
		Field: FieldConfig{
			Width:       600,
			Height:      600,
			WidthOffset: 15,
		},
		Player: PlayerConfig{
			Width:          100,
			Height:         100,
			BaseSpeed:      3.0,
			SpeedIncrement: 0.2,
		},
		Fruits: FruitTable{
			Apple:  FruitSprite{Width: 45, Height: 57, Points: 150},
			Grape:  FruitSprite{Width: 65, Height: 78, Points: 200},
			Orange: FruitSprite{Width: 40, Height: 46, Points: 100},
			Pine:   FruitSprite{Width: 50, Height: 94, Points: 50},
		},
		Gameplay: GameplayConfig{
			MinDistance:    55,
			TicksPerSecond: 50,
			AnimationRate:  4,
		},
		Placement: PlacementConfig{
			MaxAttempts: 0, // unbounded
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "fruit":
		return defaultFruitYAML
	default:
		return nil
	}
}
