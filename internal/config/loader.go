package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid fruit config")

// LoadFruit loads the fruit game configuration.
// Search order: customPath -> ~/.fruitrush/configs/fruit.yaml -> ./configs/fruit.yaml -> embedded default.
// Files are decoded over the defaults, so a file may override only some keys.
func LoadFruit(customPath string) (FruitConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FruitConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseFruit(data)
		if err != nil {
			return FruitConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, Validate(cfg)
	}

	// Try user config directory
	if userCfgPath := userConfigPath("fruit.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseFruit(data); err == nil {
				return cfg, Validate(cfg)
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "fruit.yaml")); err == nil {
		if cfg, err := parseFruit(data); err == nil {
			return cfg, Validate(cfg)
		}
	}

	// Use embedded default YAML
	cfg, err := parseFruit(defaultFruitYAML)
	if err != nil {
		return DefaultFruitConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, Validate(cfg)
}

// parseFruit decodes YAML on top of the hardcoded defaults.
func parseFruit(data []byte) (FruitConfig, error) {
	cfg := DefaultFruitConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FruitConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fruitrush", "configs", filename)
}

// ApplyFruitPreset modifies the config based on a difficulty preset.
func ApplyFruitPreset(cfg *FruitConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.BaseSpeed = 2.5
		cfg.Player.SpeedIncrement = 0.1
	case DifficultyHard:
		cfg.Player.BaseSpeed = 3.5
		cfg.Player.SpeedIncrement = 0.3
	case DifficultyFixed:
		cfg.Player.SpeedIncrement = 0
	}
}

// Validate checks the preconditions the simulation relies on.
//
// Fruit placement samples until it finds a valid spot, so a field that is too
// small for min_distance would never finish. The size check below is a
// conservative heuristic: a legal range wider and taller than four times
// min_distance always leaves room for four fruit and the player.
func Validate(cfg FruitConfig) error {
	if cfg.Field.Width <= 0 || cfg.Field.Height <= 0 {
		return fmt.Errorf("%w: field must have positive size, got %vx%v", ErrInvalidConfig, cfg.Field.Width, cfg.Field.Height)
	}
	if cfg.Player.Width <= 0 || cfg.Player.Height <= 0 {
		return fmt.Errorf("%w: player sprite must have positive size", ErrInvalidConfig)
	}
	if cfg.Gameplay.TicksPerSecond <= 0 {
		return fmt.Errorf("%w: ticks_per_second must be positive, got %d", ErrInvalidConfig, cfg.Gameplay.TicksPerSecond)
	}
	if cfg.Gameplay.MinDistance <= 0 {
		return fmt.Errorf("%w: min_distance must be positive, got %v", ErrInvalidConfig, cfg.Gameplay.MinDistance)
	}
	if cfg.Player.BaseSpeed < 0 || cfg.Player.SpeedIncrement < 0 {
		return fmt.Errorf("%w: speeds must not be negative", ErrInvalidConfig)
	}
	if cfg.Placement.MaxAttempts < 0 {
		return fmt.Errorf("%w: max_attempts must not be negative", ErrInvalidConfig)
	}

	minX, maxX, minY, maxY := cfg.Bounds()
	if maxX <= minX || maxY <= minY {
		return fmt.Errorf("%w: field %vx%v leaves no room for a %vx%v player",
			ErrInvalidConfig, cfg.Field.Width, cfg.Field.Height, cfg.Player.Width, cfg.Player.Height)
	}
	need := 4 * cfg.Gameplay.MinDistance
	if maxX-minX <= need || maxY-minY <= need {
		return fmt.Errorf("%w: legal range %vx%v is too small for min_distance %v",
			ErrInvalidConfig, maxX-minX, maxY-minY, cfg.Gameplay.MinDistance)
	}
	return nil
}
