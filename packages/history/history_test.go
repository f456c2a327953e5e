package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestInsertAssignsID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.Insert(&Record{Mode: "unit", ExitCode: 0})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestInsertAndRecentRoundTrip(t *testing.T) {
	store := openTestStore(t)

	rec := &Record{
		StartedAt: time.Now().Truncate(time.Millisecond),
		Duration:  42 * time.Second,
		Mode:      "randomized",
		Browsers:  []string{"Chrome", "Firefox"},
		Seed:      12345,
		FileCount: 7,
		Passed:    20,
		Failed:    1,
		Skipped:   2,
		ExitCode:  1,
	}
	_, err := store.Insert(rec)
	require.NoError(t, err)

	records, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "randomized", got.Mode)
	assert.Equal(t, []string{"Chrome", "Firefox"}, got.Browsers)
	assert.Equal(t, int64(12345), got.Seed)
	assert.Equal(t, 7, got.FileCount)
	assert.Equal(t, 20, got.Passed)
	assert.Equal(t, 1, got.Failed)
	assert.Equal(t, 2, got.Skipped)
	assert.Equal(t, 1, got.ExitCode)
	assert.Equal(t, 42*time.Second, got.Duration)
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		_, err := store.Insert(&Record{
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Mode:      "unit",
		})
		require.NoError(t, err)
	}

	records, err := store.Recent(2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].StartedAt.After(records[1].StartedAt))
}
