package snapshotstore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foldersync/foldersync/pkg/reconciliation/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoadOnEmptyDatabaseReturnsEmptySnapshot(t *testing.T) {
	store := openTestStore(t)

	snapshot, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, snapshot)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	store := openTestStore(t)

	content := core.Snapshot{
		"report.txt": core.FileMetadata{
			Path: "report.txt",
			Left: core.SideView{Exists: true, ModTime: 100.5, Size: 42, Attributes: core.AttributeReadOnly},
			Right: core.SideView{
				Exists: true, ModTime: 100.5, Size: 42,
			},
		},
		"left-only.txt": core.FileMetadata{
			Path: "left-only.txt",
			Left: core.SideView{Exists: true, ModTime: 50, Size: 3},
		},
	}

	require.NoError(t, store.Save(content))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	report := loaded["report.txt"]
	require.True(t, report.Left.Exists)
	require.True(t, report.Right.Exists)
	require.Equal(t, int64(42), report.Left.Size)
	require.Equal(t, uint32(core.AttributeReadOnly), report.Left.Attributes)

	leftOnly := loaded["left-only.txt"]
	require.True(t, leftOnly.Left.Exists)
	require.False(t, leftOnly.Right.Exists)
}

func TestSaveReplacesPreviousContentWholesale(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Save(core.Snapshot{
		"stale.txt": core.FileMetadata{Path: "stale.txt", Left: core.SideView{Exists: true, ModTime: 1, Size: 1}},
	}))
	require.NoError(t, store.Save(core.Snapshot{
		"fresh.txt": core.FileMetadata{Path: "fresh.txt", Left: core.SideView{Exists: true, ModTime: 2, Size: 2}},
	}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	_, hasStale := loaded["stale.txt"]
	require.False(t, hasStale)
	_, hasFresh := loaded["fresh.txt"]
	require.True(t, hasFresh)
}
