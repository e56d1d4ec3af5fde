package checkout

import (
	"sync"
	"time"
)

type entry struct {
	mu      sync.Mutex
	session *Session
}

// Registry keeps live sessions in memory. Sessions idle for longer than ttl
// are dropped whenever a new one is added.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{sessions: map[string]*entry{}, ttl: ttl, now: time.Now}
}

func (r *Registry) Add(sess *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prune()
	r.sessions[sess.ID] = &entry{session: sess}
}

// With runs fn on the session while holding its lock, so steps of one session
// never interleave. It reports false when the id is unknown.
func (r *Registry) With(id string, fn func(*Session)) bool {
	r.mu.Lock()
	e, ok := r.sessions[id]
	r.mu.Unlock()

	if !ok {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	fn(e.session)

	return true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

func (r *Registry) prune() {
	if r.ttl <= 0 {
		return
	}

	cutoff := r.now().Add(-r.ttl)

	for id, e := range r.sessions {
		if e.mu.TryLock() {
			stale := e.session.UpdatedAt.Before(cutoff)
			e.mu.Unlock()

			if stale {
				delete(r.sessions, id)
			}
		}
	}
}
