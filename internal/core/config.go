package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second; 0 keeps the game's configured rate
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 50,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// ItemCount is one line of a final score breakdown.
type ItemCount struct {
	Name   string
	Count  int
	Points int // Points per item
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Current score
	Ticks    uint64 // Simulated ticks in the current run
	Started  bool   // Whether a run has begun
	GameOver bool   // Whether the run has ended

	// Items is the per-item breakdown; only set once GameOver is true.
	Items []ItemCount
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
