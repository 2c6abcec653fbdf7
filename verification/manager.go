package verification

import (
	"sync"

	"taskapp/session"
)

// Manager keeps one Flow per owner so cooldown state survives across
// stateless HTTP requests.
type Manager struct {
	guardFor func(ownerID, email string) session.Guard

	mu    sync.Mutex
	flows map[string]*Flow
}

func NewManager(guardFor func(ownerID, email string) session.Guard) *Manager {
	return &Manager{
		guardFor: guardFor,
		flows:    make(map[string]*Flow),
	}
}

func (m *Manager) Flow(ownerID, email string) *Flow {
	m.mu.Lock()
	defer m.mu.Unlock()

	if f, ok := m.flows[ownerID]; ok {
		return f
	}
	f := NewFlow(m.guardFor(ownerID, email))
	m.flows[ownerID] = f
	return f
}

// Drop discards the owner's flow, e.g. after verification completes or
// the session is forfeited.
func (m *Manager) Drop(ownerID string) {
	m.mu.Lock()
	delete(m.flows, ownerID)
	m.mu.Unlock()
}
