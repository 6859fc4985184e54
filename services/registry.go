package services

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Registry owns the id -> session map. Sessions are independent of each
// other; the registry only guards the map itself.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*GameSession

	cfg       GameConfig
	responder Responder
	finder    FactFinder
}

// NewRegistry creates a registry whose sessions share the given game config
// and collaborators.
func NewRegistry(cfg GameConfig, responder Responder, finder FactFinder) *Registry {
	return &Registry{
		sessions:  make(map[string]*GameSession),
		cfg:       cfg,
		responder: responder,
		finder:    finder,
	}
}

// Create allocates a new idle session under a fresh identifier.
func (r *Registry) Create() *GameSession {
	session := NewGameSession(uuid.NewString(), r.cfg, r.responder, r.finder)

	r.mu.Lock()
	r.sessions[session.ID()] = session
	r.mu.Unlock()

	return session
}

// Get looks up a session by id.
func (r *Registry) Get(id string) (*GameSession, error) {
	r.mu.RLock()
	session, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session, nil
}

// Remove deletes a session entry. Removing an unknown id is a no-op;
// lingering sessions are acceptable for a single-process service.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len reports how many sessions are currently registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
