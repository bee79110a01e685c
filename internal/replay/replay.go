// Package replay records the input frames of a session and plays them back
// headlessly. A replay is a seed, a configuration and the sparse list of
// non-empty input frames. Playback through the same simulation reproduces the
// run exactly.
package replay

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vovakirdan/fruit-rush/internal/config"
	"github.com/vovakirdan/fruit-rush/internal/core"
	"github.com/vovakirdan/fruit-rush/internal/fruit"
)

// Version is the replay file format version.
const Version = 1

var (
	// ErrVersion is returned for files written by an unknown format version.
	ErrVersion = errors.New("replay: unsupported version")
	// ErrConfigHash is returned when the embedded config does not match its hash.
	ErrConfigHash = errors.New("replay: config hash mismatch")
	// ErrMismatch is returned by Verify when playback diverges from the recording.
	ErrMismatch = errors.New("replay: playback does not match recording")
)

// Header identifies the run a replay belongs to.
type Header struct {
	Version    int                `json:"version"`
	GameID     string             `json:"game_id"`
	Player     string             `json:"player,omitempty"`
	Seed       int64              `json:"seed"`
	TickRate   int                `json:"tick_rate"`
	Config     config.FruitConfig `json:"config"`
	ConfigHash string             `json:"config_hash"`
}

// Frame is one non-empty input frame.
type Frame struct {
	Tick    uint64   `json:"tick"`
	Actions []string `json:"actions"`
}

// Result is what the recording side observed when it stopped.
type Result struct {
	Status string `json:"status"`
	Score  int    `json:"score"`
	Tick   uint64 `json:"tick"`
}

// File is the on-disk replay.
type File struct {
	Header Header  `json:"header"`
	Ticks  uint64  `json:"ticks"` // Total Steps recorded
	Frames []Frame `json:"frames"`
	Final  *Result `json:"final,omitempty"`
}

// Recorder accumulates input frames as a game is stepped.
// It is not safe for concurrent use.
type Recorder struct {
	file File
}

// NewRecorder starts a recording for a game reset with seed and tickRate.
func NewRecorder(cfg config.FruitConfig, seed int64, tickRate int, player string) (*Recorder, error) {
	hash, err := configHash(cfg)
	if err != nil {
		return nil, err
	}
	return &Recorder{file: File{
		Header: Header{
			Version:    Version,
			GameID:     fruit.GameID,
			Player:     player,
			Seed:       seed,
			TickRate:   tickRate,
			Config:     cfg,
			ConfigHash: hash,
		},
	}}, nil
}

// Record appends the input of the next Step. Quit is never recorded.
func (r *Recorder) Record(in core.InputFrame) {
	var actions []string
	for _, a := range in.List() {
		if a == core.ActionQuit {
			continue
		}
		actions = append(actions, a.String())
	}
	if len(actions) > 0 {
		r.file.Frames = append(r.file.Frames, Frame{Tick: r.file.Ticks, Actions: actions})
	}
	r.file.Ticks++
}

// Finish stores the observed end state.
func (r *Recorder) Finish(snap fruit.Snapshot) {
	r.file.Final = &Result{Status: snap.Status, Score: snap.Score, Tick: snap.Tick}
}

// File returns the recording so far.
func (r *Recorder) File() File {
	return r.file
}

// Save writes the recording to path.
func (r *Recorder) Save(path string) error {
	return Save(path, r.file)
}

// Save writes rep as indented JSON. The file is written to a temporary
// sibling first and renamed into place.
func Save(path string, rep File) error {
	if path == "" {
		return errors.New("replay: path is empty")
	}
	if rep.Header.Version != Version {
		return fmt.Errorf("%w: got %d want %d", ErrVersion, rep.Header.Version, Version)
	}
	blob, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("replay: marshal: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("replay: ensure dir: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, blob, 0o644); err != nil {
		return fmt.Errorf("replay: write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replay: rename temp file: %w", err)
	}
	return nil
}

// Load reads and validates a replay file.
func Load(path string) (File, error) {
	if path == "" {
		return File{}, errors.New("replay: path is empty")
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("replay: read file: %w", err)
	}

	var rep File
	if err := json.Unmarshal(blob, &rep); err != nil {
		return File{}, fmt.Errorf("replay: decode file: %w", err)
	}
	if rep.Header.Version != Version {
		return File{}, fmt.Errorf("%w: got %d want %d", ErrVersion, rep.Header.Version, Version)
	}
	hash, err := configHash(rep.Header.Config)
	if err != nil {
		return File{}, err
	}
	if hash != rep.Header.ConfigHash {
		return File{}, ErrConfigHash
	}
	if err := config.Validate(rep.Header.Config); err != nil {
		return File{}, fmt.Errorf("replay: %w", err)
	}
	return rep, nil
}

// Play runs rep through a fresh game and returns the final snapshot.
func Play(rep File) (fruit.Snapshot, error) {
	g := fruit.NewWithConfig(rep.Header.Config)
	g.Reset(core.RuntimeConfig{Seed: rep.Header.Seed, TickRate: rep.Header.TickRate})

	next := 0
	for tick := uint64(0); tick < rep.Ticks; tick++ {
		in := core.NewInputFrame()
		if next < len(rep.Frames) && rep.Frames[next].Tick == tick {
			for _, name := range rep.Frames[next].Actions {
				a, ok := core.ParseAction(name)
				if !ok {
					return fruit.Snapshot{}, fmt.Errorf("replay: unknown action %q at tick %d", name, tick)
				}
				in.Set(a)
			}
			next++
		}
		g.Step(in)
	}
	if next != len(rep.Frames) {
		return fruit.Snapshot{}, fmt.Errorf("replay: frame %d (tick %d) out of order or past the end", next, rep.Frames[next].Tick)
	}
	return g.Snapshot(), nil
}

// Verify plays rep and compares the outcome with the recorded Final.
func Verify(rep File) (fruit.Snapshot, error) {
	snap, err := Play(rep)
	if err != nil {
		return snap, err
	}
	if rep.Final == nil {
		return snap, fmt.Errorf("%w: no final result recorded", ErrMismatch)
	}
	if rep.Final.Score != snap.Score || rep.Final.Status != snap.Status || rep.Final.Tick != snap.Tick {
		return snap, fmt.Errorf("%w: recorded %s score %d tick %d, got %s score %d tick %d",
			ErrMismatch, rep.Final.Status, rep.Final.Score, rep.Final.Tick, snap.Status, snap.Score, snap.Tick)
	}
	return snap, nil
}

func configHash(cfg config.FruitConfig) (string, error) {
	blob, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("replay: marshal config: %w", err)
	}
	sum := sha256.Sum256(blob)
	return hex.EncodeToString(sum[:]), nil
}
