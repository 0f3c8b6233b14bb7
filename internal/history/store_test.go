package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	first := NewEntry("show version on r1", []string{"show version"}, "r1", OutcomeExecuted)
	first.Timestamp = base
	first.DeviceIP = "10.0.0.1"
	require.NoError(t, store.Record(ctx, first))

	second := NewEntry("hello", nil, "", OutcomeNoCommands)
	second.Timestamp = base.Add(time.Minute)
	require.NoError(t, store.Record(ctx, second))

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "hello", entries[0].Request, "newest first")
	assert.Equal(t, OutcomeNoCommands, entries[0].Outcome)
	assert.Empty(t, entries[0].Commands)

	got := entries[1]
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, []string{"show version"}, got.Commands)
	assert.Equal(t, "r1", got.Identifier)
	assert.Equal(t, "10.0.0.1", got.DeviceIP)
	assert.True(t, base.Equal(got.Timestamp))
}

func TestRecentLimit(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, NewEntry("req", nil, "", OutcomeModelError)))
	}

	entries, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	entries, err = store.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecordAssignsDistinctIDs(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.Record(ctx, Entry{Request: "a", Outcome: OutcomeFailed}))
	require.NoError(t, store.Record(ctx, Entry{Request: "b", Outcome: OutcomeFailed}))

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestReopenKeepsEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, NewEntry("show clock on r1", []string{"show clock"}, "r1", OutcomeExecuted)))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	entries, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "show clock on r1", entries[0].Request)
	assert.Equal(t, path, store.Path())
}
