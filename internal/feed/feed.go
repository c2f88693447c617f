// Package feed wires one entity domain together: the canonical store, the
// active filter criteria, the derived view projector and the remote
// adapter. The same machinery backs both content items and collections.
package feed

import (
	"context"
	"sync"

	"github.com/cuelens/cuelens/internal/remote"
	"github.com/cuelens/cuelens/internal/store"
)

// Adapter is the remote access surface a feed drives.
type Adapter[E, D any] interface {
	FetchAll(ctx context.Context) ([]E, error)
	Create(ctx context.Context, draft D) (E, error)
	Update(ctx context.Context, id string, fields map[string]any) (E, error)
}

// Projector derives the displayable list from the canonical list and the
// active criteria. Must be pure: no mutation, no reordering.
type Projector[E, F any] func(entities []E, criteria F) []E

// Snapshot is the read-only state handed to the presentation layer.
type Snapshot[E, F any] struct {
	All      []E
	Filtered []E
	Criteria F
	Loading  bool
	Err      string
}

// Feed keeps one entity domain's canonical list, criteria and derived
// view consistent. The derived view is recomputed synchronously on every
// store or criteria change, never lazily.
type Feed[E, D, F any] struct {
	mu       sync.RWMutex
	store    *store.Store[E]
	adapter  Adapter[E, D]
	project  Projector[E, F]
	criteria F
	filtered []E
}

// New creates a feed with the given initial criteria.
func New[E, D, F any](s *store.Store[E], a Adapter[E, D], p Projector[E, F], initial F) *Feed[E, D, F] {
	f := &Feed[E, D, F]{
		store:    s,
		adapter:  a,
		project:  p,
		criteria: initial,
		filtered: []E{},
	}
	return f
}

// Refresh fetches the full record list and replaces the canonical store.
// A result that lost the race against a newer Refresh is discarded. On
// failure the store keeps its previous list and records the message.
func (f *Feed[E, D, F]) Refresh(ctx context.Context) error {
	ticket := f.store.BeginLoad()

	entities, err := f.adapter.FetchAll(ctx)
	if err != nil {
		if f.store.LoadFailed(ticket, remote.UserMessage(err)) {
			f.reproject()
		}
		return err
	}

	if f.store.LoadSucceeded(ticket, entities) {
		f.reproject()
	}
	return nil
}

// Create submits a draft and, on confirmation, prepends the new entity.
// A rejected create never touches the canonical list.
func (f *Feed[E, D, F]) Create(ctx context.Context, draft D) (E, error) {
	entity, err := f.adapter.Create(ctx, draft)
	if err != nil {
		var zero E
		return zero, err
	}

	f.store.RecordCreated(entity)
	f.reproject()
	return entity, nil
}

// Apply submits a partial update and replaces the confirmed entity in
// place. A confirmed update whose target vanished locally is a no-op.
func (f *Feed[E, D, F]) Apply(ctx context.Context, id string, fields map[string]any) (E, error) {
	entity, err := f.adapter.Update(ctx, id, fields)
	if err != nil {
		var zero E
		return zero, err
	}

	f.store.RecordUpdated(entity)
	f.reproject()
	return entity, nil
}

// SetCriteria replaces the active filter criteria and recomputes the
// derived view immediately.
func (f *Feed[E, D, F]) SetCriteria(criteria F) {
	f.mu.Lock()
	f.criteria = criteria
	f.mu.Unlock()
	f.reproject()
}

// Criteria returns the active filter criteria.
func (f *Feed[E, D, F]) Criteria() F {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.criteria
}

// Get returns the canonical entity with the given identity.
func (f *Feed[E, D, F]) Get(id string) (E, bool) {
	return f.store.Get(id)
}

// Snapshot copies out the full derived state.
func (f *Feed[E, D, F]) Snapshot() Snapshot[E, F] {
	entities, loading, errMsg := f.store.Snapshot()

	f.mu.RLock()
	defer f.mu.RUnlock()

	filtered := make([]E, len(f.filtered))
	copy(filtered, f.filtered)

	return Snapshot[E, F]{
		All:      entities,
		Filtered: filtered,
		Criteria: f.criteria,
		Loading:  loading,
		Err:      errMsg,
	}
}

// Close tears the feed down; remote calls resolving afterwards are
// dropped by the store.
func (f *Feed[E, D, F]) Close() {
	f.store.Close()
}

func (f *Feed[E, D, F]) reproject() {
	entities, _, _ := f.store.Snapshot()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.filtered = f.project(entities, f.criteria)
}
