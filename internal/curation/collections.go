package curation

import (
	"context"
	"time"

	"github.com/cuelens/cuelens/internal/domain"
	"github.com/cuelens/cuelens/internal/feed"
	"github.com/cuelens/cuelens/internal/remote"
	"github.com/cuelens/cuelens/internal/store"
)

// CollectionFeed is the collection domain instance. Collections are only
// created and fetched; update and delete intents do not exist here.
type CollectionFeed struct {
	feed *feed.Feed[domain.Collection, remote.CollectionDraft, domain.CollectionFilter]
}

// NewCollectionFeed builds the collection feed. now feeds the recency
// window of the "recent" visibility filter.
func NewCollectionFeed(adapter feed.Adapter[domain.Collection, remote.CollectionDraft], now func() time.Time) *CollectionFeed {
	if now == nil {
		now = time.Now
	}

	project := func(cols []domain.Collection, f domain.CollectionFilter) []domain.Collection {
		return domain.FilterCollections(cols, f, now())
	}

	s := store.New(func(col domain.Collection) string { return col.ID })
	f := feed.New[domain.Collection, remote.CollectionDraft, domain.CollectionFilter](
		s, adapter, project, domain.CollectionFilter{Visibility: domain.VisibilityAll})
	return &CollectionFeed{feed: f}
}

// Refresh reloads the canonical collection list from the record store.
func (c *CollectionFeed) Refresh(ctx context.Context) error {
	return c.feed.Refresh(ctx)
}

// Add persists a validated draft and prepends the confirmed collection.
func (c *CollectionFeed) Add(ctx context.Context, draft remote.CollectionDraft) (domain.Collection, error) {
	return c.feed.Create(ctx, draft)
}

// SetVisibility replaces the visibility facet, keeping the search term.
func (c *CollectionFeed) SetVisibility(v domain.Visibility) {
	criteria := c.feed.Criteria()
	criteria.Visibility = v
	c.feed.SetCriteria(criteria)
}

// SetSearchTerm replaces the search facet, keeping the visibility. Both
// facets narrow together.
func (c *CollectionFeed) SetSearchTerm(term string) {
	criteria := c.feed.Criteria()
	criteria.SearchTerm = term
	c.feed.SetCriteria(criteria)
}

// Snapshot returns the derived collection state for presentation.
func (c *CollectionFeed) Snapshot() feed.Snapshot[domain.Collection, domain.CollectionFilter] {
	return c.feed.Snapshot()
}

// Close drops any state write that resolves after teardown.
func (c *CollectionFeed) Close() {
	c.feed.Close()
}
