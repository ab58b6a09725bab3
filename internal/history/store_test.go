package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	return store
}

func TestStore(t *testing.T) {
	t.Run("records and retrieves tasks in order", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.RecordTask("list files", "simple")
		require.NoError(t, err)
		_, err = store.RecordTask("set up a web server with nginx", "complex")
		require.NoError(t, err)

		entries, err := store.RecentTasks(10)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "list files", entries[0].Input)
		assert.Equal(t, "complex", entries[1].Complexity)
	})

	t.Run("finish marks a task completed", func(t *testing.T) {
		store := newTestStore(t)

		entry, err := store.RecordTask("list files", "simple")
		require.NoError(t, err)
		assert.False(t, entry.Completed)

		_, err = store.FinishTask(entry)
		require.NoError(t, err)

		entries, err := store.RecentTasks(1)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].Completed)
	})

	t.Run("limit caps results", func(t *testing.T) {
		store := newTestStore(t)

		for _, input := range []string{"one", "two", "three"} {
			_, err := store.RecordTask(input, "simple")
			require.NoError(t, err)
		}

		entries, err := store.RecentTasks(2)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}
