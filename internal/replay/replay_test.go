package replay

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/fruit-rush/internal/config"
	"github.com/vovakirdan/fruit-rush/internal/core"
	"github.com/vovakirdan/fruit-rush/internal/fruit"
)

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// recordRun steps a live game and records every frame it sees.
func recordRun(t *testing.T, seed int64) (*Recorder, fruit.Snapshot) {
	t.Helper()
	cfg := config.DefaultFruitConfig()
	g := fruit.NewWithConfig(cfg)
	g.Reset(core.RuntimeConfig{Seed: seed})

	rec, err := NewRecorder(g.Config(), seed, 0, "tester")
	require.NoError(t, err)

	script := map[int]core.InputFrame{
		0:   frame(core.ActionHelp),
		3:   frame(core.ActionHelp),
		5:   frame(core.ActionConfirm),
		40:  frame(core.ActionUp),
		90:  frame(core.ActionLeft, core.ActionQuit),
		160: frame(core.ActionDown),
		230: frame(core.ActionRight),
	}
	for i := 0; i < 1500; i++ {
		in, ok := script[i]
		if !ok {
			in = core.NewInputFrame()
		}
		rec.Record(in)
		g.Step(in)
	}
	snap := g.Snapshot()
	rec.Finish(snap)
	return rec, snap
}

func TestRecorderIsSparse(t *testing.T) {
	rec, _ := recordRun(t, 1)
	file := rec.File()

	assert.Equal(t, uint64(1500), file.Ticks)
	require.Len(t, file.Frames, 7)
	assert.Equal(t, Frame{Tick: 5, Actions: []string{"Confirm"}}, file.Frames[2])
	assert.Equal(t, []string{"Left"}, file.Frames[4].Actions, "quit must not be recorded")
}

func TestPlayReproducesRun(t *testing.T) {
	rec, live := recordRun(t, 42)

	got, err := Play(rec.File())
	require.NoError(t, err)
	assert.Equal(t, live, got)
}

func TestSaveLoadVerify(t *testing.T) {
	rec, live := recordRun(t, 7)
	path := filepath.Join(t.TempDir(), "nested", "run.json")

	require.NoError(t, rec.Save(path))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, rec.File(), loaded)

	snap, err := Verify(loaded)
	require.NoError(t, err)
	assert.Equal(t, live.Score, snap.Score)
}

func TestVerifyDetectsTampering(t *testing.T) {
	rec, _ := recordRun(t, 9)
	file := rec.File()
	file.Final.Score += 50

	_, err := Verify(file)
	assert.ErrorIs(t, err, ErrMismatch)
}

func TestVerifyWithoutFinal(t *testing.T) {
	rec, _ := recordRun(t, 9)
	file := rec.File()
	file.Final = nil

	_, err := Verify(file)
	assert.ErrorIs(t, err, ErrMismatch)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	rec, _ := recordRun(t, 3)

	t.Run("version", func(t *testing.T) {
		file := rec.File()
		file.Header.Version = 99
		path := writeRaw(t, dir, "version.json", file)
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrVersion)
	})

	t.Run("config hash", func(t *testing.T) {
		file := rec.File()
		file.Header.Config.Gameplay.MinDistance = 10
		path := writeRaw(t, dir, "hash.json", file)
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrConfigHash)
	})

	t.Run("garbage", func(t *testing.T) {
		path := filepath.Join(dir, "garbage.json")
		require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.json"))
		assert.Error(t, err)
	})
}

func TestPlayRejectsUnknownAction(t *testing.T) {
	rec, _ := recordRun(t, 3)
	file := rec.File()
	file.Frames[0].Actions = []string{"Jump"}

	_, err := Play(file)
	assert.Error(t, err)
}

func TestSaveRejectsWrongVersion(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "x.json"), File{})
	assert.ErrorIs(t, err, ErrVersion)
}

// writeRaw bypasses Save's checks so Load can be exercised on bad input.
func writeRaw(t *testing.T, dir, name string, file File) string {
	t.Helper()
	path := filepath.Join(dir, name)
	blob, err := json.Marshal(file)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, blob, 0o644))
	return path
}
