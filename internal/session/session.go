package session

import (
	"fmt"

	"github.com/rdmitr/agentchat/internal/chat"
	"github.com/rdmitr/agentchat/internal/repository"
)

// Manager exposes the session operations the UI drives: create, rename,
// select, list, delete. All state lives in the repository.
type Manager struct {
	repo *repository.Repository
}

// NewManager creates a new Manager instance
func NewManager(repo *repository.Repository) *Manager {
	return &Manager{repo: repo}
}

// Create inserts a new session and makes it active. An empty titleOverride
// yields the default "New Chat {id}" title.
func (m *Manager) Create(titleOverride string) *chat.Session {
	return m.repo.Create(titleOverride)
}

// Rename replaces a session's title. Unknown ids are a tolerated no-op.
func (m *Manager) Rename(id int64, newTitle string) {
	m.repo.Rename(id, newTitle)
}

// Select makes the session with that id active.
func (m *Manager) Select(id int64) error {
	if !m.repo.SetActive(id) {
		return &chat.ValidationError{Field: "id", Reason: fmt.Sprintf("unknown session %d", id)}
	}
	return nil
}

// List returns all sessions ordered by id ascending.
func (m *Manager) List() []chat.Session {
	return m.repo.List()
}

// Active returns a copy of the active session; ok is false when the
// collection is empty.
func (m *Manager) Active() (*chat.Session, bool) {
	id, ok := m.repo.ActiveID()
	if !ok {
		return nil, false
	}
	return m.repo.Get(id)
}

// Delete removes a session; the lowest remaining id becomes active when the
// deleted session was.
func (m *Manager) Delete(id int64) error {
	if !m.repo.Delete(id) {
		return &chat.ValidationError{Field: "id", Reason: fmt.Sprintf("unknown session %d", id)}
	}
	return nil
}
