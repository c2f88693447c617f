package domain

import (
	"strings"
	"time"
)

// RecentWindow is how far back the "recent" visibility filter reaches.
// The boundary is inclusive.
const RecentWindow = 30 * 24 * time.Hour

// Visibility selects which collections the derived view keeps.
type Visibility string

const (
	VisibilityAll     Visibility = "all"
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
	VisibilityRecent  Visibility = "recent"
)

// ParseVisibility maps a raw filter value to a Visibility.
// Unknown values fall back to VisibilityAll.
func ParseVisibility(s string) Visibility {
	switch Visibility(s) {
	case VisibilityPublic, VisibilityPrivate, VisibilityRecent:
		return Visibility(s)
	default:
		return VisibilityAll
	}
}

// Collection is a user-curated group of content items.
type Collection struct {
	// ID is the record identifier assigned by the record store.
	ID string

	// Title is the display title. Always non-empty for persisted collections.
	Title string

	// Description is optional free text.
	Description string

	// Thumbnails is an ordered list of image URLs. The first entry is the
	// cover image. The record store serializes this as encoded text; the
	// round-trip must preserve order and contents.
	Thumbnails []string

	// ItemCount is informational and never negative.
	ItemCount int

	// IsPublic marks the collection as visible to other users.
	IsPublic bool

	// UpdatedAt is bumped by the record store on every mutation.
	UpdatedAt time.Time
}

// CollectionFilter narrows the collection view. Visibility and search
// compose by intersection: both must pass for a collection to stay.
type CollectionFilter struct {
	Visibility Visibility

	// SearchTerm is matched case-insensitively as a substring against
	// Title and Description. Empty disables the search filter.
	SearchTerm string
}

// FilterCollections projects the canonical collection list through the
// filter. The visibility filter runs first, then the search filter; both
// narrow independently. Pure: no input mutation, order preserved. The
// caller supplies now so the recency window is deterministic under test.
func FilterCollections(cols []Collection, f CollectionFilter, now time.Time) []Collection {
	out := make([]Collection, 0, len(cols))
	cutoff := now.Add(-RecentWindow)

	for _, col := range cols {
		switch f.Visibility {
		case VisibilityPublic:
			if !col.IsPublic {
				continue
			}
		case VisibilityPrivate:
			if col.IsPublic {
				continue
			}
		case VisibilityRecent:
			if col.UpdatedAt.Before(cutoff) {
				continue
			}
		}

		if f.SearchTerm != "" {
			term := strings.ToLower(f.SearchTerm)
			title := strings.ToLower(col.Title)
			desc := strings.ToLower(col.Description)
			if !strings.Contains(title, term) && !strings.Contains(desc, term) {
				continue
			}
		}

		out = append(out, col)
	}
	return out
}
