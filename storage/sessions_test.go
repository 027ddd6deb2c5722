package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdmitr/agentchat/internal/chat"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testSessions() []chat.Session {
	created := time.Date(2025, time.February, 15, 1, 0, 0, 0, time.UTC)
	return []chat.Session{
		{
			ID:        1,
			Title:     "Python Code Help",
			CreatedAt: created,
			ColorTag:  "blue",
			Messages: []chat.Message{
				chat.NewTextMessage(chat.RoleUser, "How can I read a file in Python?"),
				chat.NewTextMessage(chat.RoleAgent, "Use the built-in open function..."),
			},
		},
		{
			ID:        2,
			Title:     "Document Analysis",
			CreatedAt: created,
			ColorTag:  "green",
			Messages:  []chat.Message{},
		},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := testSessions()
	require.NoError(t, store.SaveAll(ctx, want))

	got, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(want))

	// Row order is not guaranteed; compare as a keyed set.
	byID := make(map[int64]chat.Session, len(got))
	for _, sess := range got {
		byID[sess.ID] = sess
	}
	for _, sess := range want {
		loaded, ok := byID[sess.ID]
		require.True(t, ok, "session %d missing after round trip", sess.ID)
		assert.Equal(t, sess.Title, loaded.Title)
		assert.Equal(t, sess.ColorTag, loaded.ColorTag)
		assert.True(t, sess.CreatedAt.Equal(loaded.CreatedAt))
		assert.Equal(t, sess.Messages, loaded.Messages)
	}
}

func TestStore_SaveAllReplacesSnapshot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAll(ctx, testSessions()))

	replacement := []chat.Session{
		{
			ID:        7,
			Title:     "Only Survivor",
			CreatedAt: time.Now(),
			ColorTag:  "gray",
			Messages:  []chat.Message{chat.NewTextMessage(chat.RoleUser, "still here?")},
		},
	}
	require.NoError(t, store.SaveAll(ctx, replacement))

	got, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].ID)
	assert.Equal(t, "Only Survivor", got[0].Title)
}

func TestStore_LoadAllEmpty(t *testing.T) {
	store := newTestStore(t)

	got, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_SaveAllEmptyClears(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAll(ctx, testSessions()))
	require.NoError(t, store.SaveAll(ctx, nil))

	got, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_DeleteSession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAll(ctx, testSessions()))
	require.NoError(t, store.DeleteSession(ctx, 1))

	got, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestOpen_Idempotent(t *testing.T) {
	file := filepath.Join(t.TempDir(), "chat.db")

	first, err := Open(file)
	require.NoError(t, err)
	require.NoError(t, first.SaveAll(context.Background(), testSessions()))
	require.NoError(t, first.Close())

	second, err := Open(file)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
