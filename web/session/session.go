// Package session implements the process-wide session registry: the sole
// source of "who is currently authenticated". Sessions are volatile; a
// process restart logs everyone out.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Identity is what a session token resolves to for its whole lifetime.
type Identity struct {
	UserId  int       `json:"uid"`
	Name    string    `json:"name"`
	Started time.Time `json:"started"`
}

// Registry maps opaque tokens to identities. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Identity
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]Identity)}
}

// Create issues a fresh unpredictable token bound to the given user. Token
// entropy makes collisions negligible; a colliding token would overwrite.
func (r *Registry) Create(userID int, name string) string {
	token := uuid.NewString()
	r.mu.Lock()
	r.sessions[token] = Identity{UserId: userID, Name: name, Started: time.Now()}
	r.mu.Unlock()
	return token
}

// Lookup resolves a token. A missing token is a legitimate outcome, not a
// failure.
func (r *Registry) Lookup(token string) (Identity, bool) {
	r.mu.RLock()
	identity, ok := r.sessions[token]
	r.mu.RUnlock()
	return identity, ok
}

// Destroy removes a session. Unknown tokens are a no-op.
func (r *Registry) Destroy(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
