package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func fruitRun(player string, apples, grapes, oranges, pines int) RunRecord {
	items := []RunItem{
		{Item: "apple", Count: apples, Points: 150},
		{Item: "grape", Count: grapes, Points: 200},
		{Item: "orange", Count: oranges, Points: 100},
		{Item: "pine", Count: pines, Points: 50},
	}
	score := 0
	for _, it := range items {
		score += it.Count * it.Points
	}
	return RunRecord{GameID: "fruit", Player: player, Score: score, Ticks: 500, Items: items}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file was not created")
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file was not created in nested directory")
}

func TestStoreSaveAndRetrieveRuns(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveRun(fruitRun("ada", 1, 0, 0, 0)) // 150
	require.NoError(t, err)
	_, err = store.SaveRun(fruitRun("bo", 0, 2, 1, 0)) // 500
	require.NoError(t, err)
	_, err = store.SaveRun(fruitRun("cy", 0, 0, 0, 1)) // 50
	require.NoError(t, err)
	_, err = store.SaveRun(RunRecord{GameID: "other", Score: 9999})
	require.NoError(t, err)

	runs, err := store.TopRuns("fruit", 10)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	assert.Equal(t, []int{500, 150, 50}, []int{runs[0].Score, runs[1].Score, runs[2].Score})
	assert.Equal(t, "bo", runs[0].Player)
	assert.Equal(t, uint64(500), runs[0].Ticks)
	assert.False(t, runs[0].CreatedAt.IsZero())

	require.Len(t, runs[0].Items, 4)
	assert.Equal(t, RunItem{Item: "grape", Count: 2, Points: 200}, runs[0].Items[1])
	assert.Equal(t, RunItem{Item: "orange", Count: 1, Points: 100}, runs[0].Items[2])
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		_, err := store.SaveRun(RunRecord{GameID: "fruit", Score: i * 100})
		require.NoError(t, err)
	}

	runs, err := store.TopRuns("fruit", 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, 500, runs[0].Score)
	assert.Equal(t, 300, runs[2].Score)
	assert.Empty(t, runs[0].Items)
}

func TestStoreSaveRunRequiresGameID(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveRun(RunRecord{Score: 100})
	assert.Error(t, err)
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("fruit")
	require.NoError(t, err)
	assert.Equal(t, 0, high)

	for _, score := range []int{100, 300, 200} {
		_, err := store.SaveRun(RunRecord{GameID: "fruit", Score: score})
		require.NoError(t, err)
	}

	high, err = store.HighScore("fruit")
	require.NoError(t, err)
	assert.Equal(t, 300, high)
}

func TestStoreItemTotals(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveRun(fruitRun("ada", 1, 2, 0, 3))
	require.NoError(t, err)
	_, err = store.SaveRun(fruitRun("ada", 2, 0, 1, 0))
	require.NoError(t, err)

	totals, err := store.ItemTotals("fruit")
	require.NoError(t, err)

	assert.Equal(t, []ItemTotal{
		{Item: "apple", Count: 3, Points: 450},
		{Item: "grape", Count: 2, Points: 400},
		{Item: "orange", Count: 1, Points: 100},
		{Item: "pine", Count: 3, Points: 150},
	}, totals)
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveRun(fruitRun("ada", 1, 0, 0, 0))
	require.NoError(t, err)
	_, err = store.SaveRun(RunRecord{GameID: "other", Score: 300})
	require.NoError(t, err)

	require.NoError(t, store.ClearRuns("fruit"))

	runs, err := store.TopRuns("fruit", 10)
	require.NoError(t, err)
	assert.Empty(t, runs)

	totals, err := store.ItemTotals("fruit")
	require.NoError(t, err)
	assert.Empty(t, totals)

	other, err := store.TopRuns("other", 10)
	require.NoError(t, err)
	assert.Len(t, other, 1, "other games should not be affected")
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("fruit")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.RunsCount)
	assert.True(t, empty.LastPlayed.IsZero())

	for _, score := range []int{100, 300} {
		_, err := store.SaveRun(RunRecord{GameID: "fruit", Score: score})
		require.NoError(t, err)
	}

	stats, err := store.GetGameStats("fruit")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.RunsCount)
	assert.Equal(t, 300, stats.HighScore)
	assert.InDelta(t, 200.0, stats.AvgScore, 1e-9)
	assert.Equal(t, int64(400), stats.TotalScore)
}
