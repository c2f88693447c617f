package domain

import "time"

// CategoryAll is the sentinel category that disables category filtering.
const CategoryAll = "all"

// ContentItem represents a single piece of curated web content.
type ContentItem struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the record identifier assigned by the record store at
	// creation. It is never reassigned.
	ID string

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// Title is the display title. Always non-empty for persisted items.
	Title string

	// Description is optional free text.
	Description string

	// URL is the link the item points at.
	URL string

	// ThumbnailURL is an optional preview image URL.
	ThumbnailURL string

	// Category references one of the catalog category identifiers.
	// Example: "design", "technology"
	Category string

	// ─────────────────────────────
	// Engagement counters & flags
	// ─────────────────────────────

	// Likes is the like counter. Moves in lockstep with Liked and
	// never goes below zero.
	Likes int

	// Comments is the comment counter. Read-only in this service.
	Comments int

	// Saved reports whether the current user bookmarked the item.
	Saved bool

	// Liked reports whether the current user liked the item.
	Liked bool

	// CreatedAt is set by the record store on creation.
	CreatedAt time.Time
}

// WithSaveToggled returns a copy of the item with the saved flag flipped.
// No other field changes, so toggling twice restores the original value.
func (c ContentItem) WithSaveToggled() ContentItem {
	c.Saved = !c.Saved
	return c
}

// WithLikeToggled returns a copy with the liked flag flipped and the like
// counter adjusted in lockstep. The counter is clamped at zero.
func (c ContentItem) WithLikeToggled() ContentItem {
	if c.Liked {
		c.Likes--
		if c.Likes < 0 {
			c.Likes = 0
		}
	} else {
		c.Likes++
	}
	c.Liked = !c.Liked
	return c
}

// ContentFilter narrows the content view to a single category.
type ContentFilter struct {
	// Category is a catalog category id, or CategoryAll to pass everything.
	Category string
}

// FilterContentItems projects the canonical item list through the filter.
// It is pure: the input slice is never mutated and order is preserved.
func FilterContentItems(items []ContentItem, f ContentFilter) []ContentItem {
	if f.Category == "" || f.Category == CategoryAll {
		out := make([]ContentItem, len(items))
		copy(out, items)
		return out
	}

	out := make([]ContentItem, 0, len(items))
	for _, item := range items {
		if item.Category == f.Category {
			out = append(out, item)
		}
	}
	return out
}
