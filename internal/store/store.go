// Package store holds the canonical in-memory record list for one entity
// domain, plus its load status. It is the single source of truth the
// derived views project from.
package store

import "sync"

// Ticket identifies one fetch attempt. Only the newest ticket issued by
// BeginLoad may apply its result; anything older is discarded so a slow
// first fetch can never overwrite a fresher one.
type Ticket uint64

// Store is the canonical store for one entity domain.
// All methods are safe for concurrent use.
type Store[E any] struct {
	mu       sync.RWMutex
	id       func(E) string
	entities []E
	loading  bool
	errMsg   string
	issued   Ticket
	closed   bool
}

// New creates an empty store. id extracts the stable identity used by
// RecordUpdated to match entities.
func New[E any](id func(E) string) *Store[E] {
	return &Store[E]{id: id}
}

// BeginLoad marks the store as loading and issues a fetch ticket.
func (s *Store[E]) BeginLoad() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issued++
	if !s.closed {
		s.loading = true
	}
	return s.issued
}

// LoadSucceeded replaces the entity list wholesale and clears the error.
// The result is dropped when the ticket has been superseded by a newer
// BeginLoad, or when the store is closed. Returns whether it applied.
func (s *Store[E]) LoadSucceeded(t Ticket, entities []E) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || t != s.issued {
		return false
	}

	s.entities = make([]E, len(entities))
	copy(s.entities, entities)
	s.loading = false
	s.errMsg = ""
	return true
}

// LoadFailed records the failure message and stops loading. The entity
// list is left untouched. Same ticket discipline as LoadSucceeded.
func (s *Store[E]) LoadFailed(t Ticket, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || t != s.issued {
		return false
	}

	s.loading = false
	s.errMsg = msg
	return true
}

// RecordCreated prepends the entity, keeping most-recent-first order.
func (s *Store[E]) RecordCreated(e E) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.entities = append([]E{e}, s.entities...)
}

// RecordUpdated replaces the entity with the matching identity in place,
// without reordering. An unknown identity is a silent no-op: the record
// may have disappeared between issuing the update and its response.
func (s *Store[E]) RecordUpdated(e E) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	target := s.id(e)
	for i := range s.entities {
		if s.id(s.entities[i]) == target {
			s.entities[i] = e
			return
		}
	}
}

// Get returns the entity with the given identity.
func (s *Store[E]) Get(id string) (E, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.entities {
		if s.id(s.entities[i]) == id {
			return s.entities[i], true
		}
	}
	var zero E
	return zero, false
}

// Len returns the number of entities currently held.
func (s *Store[E]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entities)
}

// Snapshot copies out the current state. Callers never alias the
// internal slice.
func (s *Store[E]) Snapshot() (entities []E, loading bool, errMsg string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entities = make([]E, len(s.entities))
	copy(entities, s.entities)
	return entities, s.loading, s.errMsg
}

// Close drops every state write that resolves afterwards. Used when the
// consuming view is torn down while remote calls are still in flight.
func (s *Store[E]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
}
