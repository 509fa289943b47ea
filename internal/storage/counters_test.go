package storage

import (
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

func TestCounters(t *testing.T) {
	store := openTestStore(t)

	v, err := store.Counter("runs")
	require.NoError(t, err)
	assert.Zero(t, v)

	for want := 1; want <= 3; want++ {
		v, err = store.IncrementCounter("runs")
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}

	require.NoError(t, store.ResetCounter("runs"))
	v, err = store.Counter("runs")
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestSafeModeAfterRepeatedCrashes(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < SafeModeThreshold; i++ {
		safe, err := store.BeginSession()
		require.NoError(t, err)
		assert.False(t, safe, "start %d", i+1)
	}

	safe, err := store.BeginSession()
	require.NoError(t, err)
	assert.True(t, safe)

	require.NoError(t, store.EndSession())
	safe, err = store.BeginSession()
	require.NoError(t, err)
	assert.False(t, safe)
}

func TestCountersSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(path)
	require.NoError(t, err)
	_, err = store.IncrementCounter("unclean_starts")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	v, err := store.Counter("unclean_starts")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}
