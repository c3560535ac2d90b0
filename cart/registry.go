package cart

import (
	"sync"
	"time"
)

// Registry maps session ids to their cart stores. Carts live only in
// memory and are dropped after a period without use; a reload that loses
// the session cookie starts from an empty cart.
type Registry struct {
	mu       sync.Mutex
	carts    map[string]*registryEntry
	notifier Notifier
	maxIdle  time.Duration
	quit     chan struct{}
}

type registryEntry struct {
	store    *Store
	lastUsed time.Time
}

func NewRegistry(notifier Notifier) *Registry {
	r := &Registry{
		carts:    make(map[string]*registryEntry),
		notifier: notifier,
		maxIdle:  2 * time.Hour,
		quit:     make(chan struct{}),
	}
	go r.evictIdle()
	return r
}

// Get returns the store for the session, creating an empty one on first
// use.
func (r *Registry) Get(sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.carts[sessionID]; ok {
		e.lastUsed = time.Now()
		return e.store
	}
	e := &registryEntry{
		store:    NewStore(sessionID, r.notifier),
		lastUsed: time.Now(),
	}
	r.carts[sessionID] = e
	return e.store
}

// Stop halts the eviction loop.
func (r *Registry) Stop() {
	close(r.quit)
}

func (r *Registry) evictIdle() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-r.maxIdle)
			r.mu.Lock()
			for id, e := range r.carts {
				if e.lastUsed.Before(cutoff) {
					delete(r.carts, id)
				}
			}
			r.mu.Unlock()
		case <-r.quit:
			return
		}
	}
}
