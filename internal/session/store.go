// Package session manages the lifecycle of draw sessions: created with a
// commitment, consumed at most once by a draw, expired by TTL otherwise.
package session

import (
	"sync"
	"time"

	"github.com/moonveil/tarot-backend/internal/models"
)

// DefaultTTL is how long an undrawn session stays reachable.
const DefaultTTL = time.Hour

// Store is the one shared mutable resource in the engine. Take is the
// critical section: for a given id, concurrent draws must see exactly one
// success, so get-and-delete happens atomically inside the store.
type Store interface {
	// Put persists a new session.
	Put(s models.Session) error
	// Get returns the session if it exists and has not expired.
	Get(id string) (models.Session, bool)
	// Take atomically removes and returns the session. A second Take (or
	// Get) for the same id reports not-found.
	Take(id string) (models.Session, bool)
	// Delete removes the session unconditionally. Idempotent.
	Delete(id string)
	// Len reports how many live sessions the store holds.
	Len() int
}

// MemoryStore keeps sessions in a mutex-guarded map and sweeps expired
// entries in the background. Expiry is also enforced on every read, so a
// session is unreachable the instant its TTL elapses, sweep or not.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	ttl      time.Duration
	done     chan struct{}
	closeOne sync.Once
}

// NewMemoryStore returns a store whose sessions expire after ttl. The
// background sweeper runs until Close is called.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	st := &MemoryStore{
		sessions: make(map[string]models.Session),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go st.sweep()
	return st
}

func (st *MemoryStore) expired(s models.Session) bool {
	created := time.UnixMilli(s.CreatedAt)
	return time.Since(created) >= st.ttl
}

// Put persists a new session.
func (st *MemoryStore) Put(s models.Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
	return nil
}

// Get returns the session if present and not expired.
func (st *MemoryStore) Get(id string) (models.Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return models.Session{}, false
	}
	if st.expired(s) {
		delete(st.sessions, id)
		return models.Session{}, false
	}
	return s, true
}

// Take atomically removes and returns the session.
func (st *MemoryStore) Take(id string) (models.Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return models.Session{}, false
	}
	delete(st.sessions, id)
	if st.expired(s) {
		return models.Session{}, false
	}
	return s, true
}

// Delete removes the session unconditionally.
func (st *MemoryStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Len reports the number of live sessions.
func (st *MemoryStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for _, s := range st.sessions {
		if !st.expired(s) {
			n++
		}
	}
	return n
}

// Close stops the background sweeper.
func (st *MemoryStore) Close() {
	st.closeOne.Do(func() { close(st.done) })
}

func (st *MemoryStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-st.done:
			return
		case <-ticker.C:
			st.mu.Lock()
			for id, s := range st.sessions {
				if st.expired(s) {
					delete(st.sessions, id)
				}
			}
			st.mu.Unlock()
		}
	}
}
