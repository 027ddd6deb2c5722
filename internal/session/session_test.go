package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdmitr/agentchat/internal/chat"
	"github.com/rdmitr/agentchat/internal/repository"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	repo := repository.New(nil)
	t.Cleanup(repo.Close)
	return NewManager(repo)
}

func TestCreate_DefaultsAndIds(t *testing.T) {
	m := newTestManager(t)

	first := m.Create("")
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "New Chat 1", first.Title)
	assert.Equal(t, chat.DefaultColorTag, first.ColorTag)
	assert.Empty(t, first.Messages)
	assert.False(t, first.CreatedAt.IsZero())

	m.Create("")
	m.Create("")
	fourth := m.Create("Custom Title")
	assert.Equal(t, int64(4), fourth.ID)
	assert.Equal(t, "Custom Title", fourth.Title)

	active, ok := m.Active()
	require.True(t, ok)
	assert.Equal(t, fourth.ID, active.ID, "create activates the new session")
}

func TestRename_TolerantOfUnknownIds(t *testing.T) {
	m := newTestManager(t)
	sess := m.Create("before")

	m.Rename(sess.ID, "after")
	m.Rename(999, "ghost") // no-op, not an error

	list := m.List()
	require.Len(t, list, 1)
	assert.Equal(t, "after", list[0].Title)
}

func TestSelect(t *testing.T) {
	m := newTestManager(t)
	a := m.Create("a")
	m.Create("b")

	require.NoError(t, m.Select(a.ID))
	active, ok := m.Active()
	require.True(t, ok)
	assert.Equal(t, a.ID, active.ID)

	err := m.Select(999)
	var valErr *chat.ValidationError
	require.True(t, errors.As(err, &valErr), "unknown id is a caller error")

	active, ok = m.Active()
	require.True(t, ok)
	assert.Equal(t, a.ID, active.ID, "failed select leaves the active session alone")
}

func TestList_OrderedByIdAscending(t *testing.T) {
	m := newTestManager(t)
	m.Create("a")
	m.Create("b")
	m.Create("c")

	list := m.List()
	require.Len(t, list, 3)
	for i, sess := range list {
		assert.Equal(t, int64(i+1), sess.ID)
	}
}

func TestActive_EmptyCollection(t *testing.T) {
	m := newTestManager(t)
	_, ok := m.Active()
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	m := newTestManager(t)
	a := m.Create("a")
	b := m.Create("b")

	require.NoError(t, m.Delete(b.ID))
	active, ok := m.Active()
	require.True(t, ok)
	assert.Equal(t, a.ID, active.ID)

	err := m.Delete(999)
	var valErr *chat.ValidationError
	assert.True(t, errors.As(err, &valErr))
}
