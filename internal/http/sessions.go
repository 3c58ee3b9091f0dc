package httpapi

import (
	"sync"

	"github.com/dsjohal14/quickspot/internal/scope/db"
	"github.com/google/uuid"
)

// Sessions is a thread-safe registry of search sessions keyed by id
type Sessions struct {
	mu    sync.RWMutex
	items map[string]*session
}

// NewSessions creates a new empty registry
func NewSessions() *Sessions {
	return &Sessions{
		items: make(map[string]*session),
	}
}

// Create registers a session over store and returns its id
func (m *Sessions) Create(store *db.Store) (string, *session) {
	id := uuid.NewString()
	s := newSession(store)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = s
	return id, s
}

// Get retrieves a session by id
func (m *Sessions) Get(id string) (*session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.items[id]
	return s, ok
}

// Delete removes a session, reporting whether it existed
func (m *Sessions) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return false
	}
	delete(m.items, id)
	return true
}

// Count returns the number of live sessions
func (m *Sessions) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
