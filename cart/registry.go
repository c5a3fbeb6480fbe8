package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an idle cart session is kept
const DefaultTTL = 24 * time.Hour

type session struct {
	cart      Manager
	expiresAt time.Time
}

// Registry owns the carts of all live browser sessions.
// Each session gets its own Manager; sessions expire after a period of inactivity.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	newCart  func() Manager
	now      func() time.Time
}

// NewRegistry creates a registry of in-memory carts
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{
		sessions: make(map[string]*session),
		ttl:      ttl,
		newCart:  func() Manager { return NewMemoryCart() },
		now:      time.Now,
	}
}

// Create starts a new session with an empty cart
func (r *Registry) Create() (string, Manager) {
	id := uuid.New().String()
	return id, r.Attach(id)
}

// Get returns the cart of a live session and extends its lifetime
func (r *Registry) Get(id string) (Manager, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.sessions[id]
	if !exists {
		return nil, false
	}
	now := r.now()
	if now.After(s.expiresAt) {
		delete(r.sessions, id)
		return nil, false
	}
	s.expiresAt = now.Add(r.ttl)
	return s.cart, true
}

// Attach returns the cart for id, creating an empty one if the session is unknown.
// Used when a signed session cookie outlives the process that issued it.
func (r *Registry) Attach(id string) Manager {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if s, exists := r.sessions[id]; exists && !now.After(s.expiresAt) {
		s.expiresAt = now.Add(r.ttl)
		return s.cart
	}

	s := &session{cart: r.newCart(), expiresAt: now.Add(r.ttl)}
	r.sessions[id] = s
	return s.cart
}

// Delete ends a session
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of tracked sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// CleanupExpired drops expired sessions and reports how many were removed
func (r *Registry) CleanupExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, s := range r.sessions {
		if now.After(s.expiresAt) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run cleans up expired sessions every interval until ctx is done
func (r *Registry) Run(ctx context.Context, interval time.Duration, onCleanup func(removed int)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			removed := r.CleanupExpired()
			if onCleanup != nil && removed > 0 {
				onCleanup(removed)
			}
		}
	}
}
