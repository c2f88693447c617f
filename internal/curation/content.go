// Package curation exposes the user-facing intent surface for both entity
// domains: content items and collections. Each domain is one feed
// instance; the package translates intents into adapter calls and store
// transitions.
package curation

import (
	"context"
	"fmt"

	"github.com/cuelens/cuelens/internal/domain"
	"github.com/cuelens/cuelens/internal/feed"
	"github.com/cuelens/cuelens/internal/remote"
	"github.com/cuelens/cuelens/internal/store"
)

// ErrContentNotFound reports a toggle intent against an id absent from
// the canonical store.
type ErrContentNotFound struct {
	ID string
}

func (e *ErrContentNotFound) Error() string {
	return fmt.Sprintf("content item not found: %s", e.ID)
}

// ContentFeed is the content-item domain instance.
type ContentFeed struct {
	feed *feed.Feed[domain.ContentItem, remote.ContentDraft, domain.ContentFilter]
}

// NewContentFeed builds the content feed over the given adapter.
func NewContentFeed(adapter feed.Adapter[domain.ContentItem, remote.ContentDraft]) *ContentFeed {
	s := store.New(func(item domain.ContentItem) string { return item.ID })
	f := feed.New[domain.ContentItem, remote.ContentDraft, domain.ContentFilter](
		s, adapter, domain.FilterContentItems, domain.ContentFilter{Category: domain.CategoryAll})
	return &ContentFeed{feed: f}
}

// Refresh reloads the canonical item list from the record store.
func (c *ContentFeed) Refresh(ctx context.Context) error {
	return c.feed.Refresh(ctx)
}

// Add persists a validated draft and prepends the confirmed item.
func (c *ContentFeed) Add(ctx context.Context, draft remote.ContentDraft) (domain.ContentItem, error) {
	return c.feed.Create(ctx, draft)
}

// ToggleSave flips the saved flag of the item with the given id. The
// store is only mutated once the record store confirms the update.
func (c *ContentFeed) ToggleSave(ctx context.Context, id string) (domain.ContentItem, error) {
	current, ok := c.feed.Get(id)
	if !ok {
		return domain.ContentItem{}, &ErrContentNotFound{ID: id}
	}

	next := current.WithSaveToggled()
	return c.feed.Apply(ctx, id, map[string]any{
		remote.FieldIsSaved: next.Saved,
	})
}

// ToggleLike flips the liked flag and moves the like counter in lockstep.
func (c *ContentFeed) ToggleLike(ctx context.Context, id string) (domain.ContentItem, error) {
	current, ok := c.feed.Get(id)
	if !ok {
		return domain.ContentItem{}, &ErrContentNotFound{ID: id}
	}

	next := current.WithLikeToggled()
	return c.feed.Apply(ctx, id, map[string]any{
		remote.FieldIsLiked: next.Liked,
		remote.FieldLikes:   next.Likes,
	})
}

// SetCategory narrows the derived view to one category id, or
// domain.CategoryAll to pass everything.
func (c *ContentFeed) SetCategory(category string) {
	if category == "" {
		category = domain.CategoryAll
	}
	c.feed.SetCriteria(domain.ContentFilter{Category: category})
}

// Snapshot returns the derived content state for presentation.
func (c *ContentFeed) Snapshot() feed.Snapshot[domain.ContentItem, domain.ContentFilter] {
	return c.feed.Snapshot()
}

// Close drops any state write that resolves after teardown.
func (c *ContentFeed) Close() {
	c.feed.Close()
}
