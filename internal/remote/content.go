package remote

import (
	"context"

	"github.com/cuelens/cuelens/internal/domain"
)

// ContentItems is the record-store adapter for the content_item table.
type ContentItems struct {
	client *Client
}

// NewContentItems creates a content-item adapter.
func NewContentItems(c *Client) *ContentItems {
	return &ContentItems{client: c}
}

// ContentDraft is a validated content submission. Counters and flags are
// not part of a draft; Create sets their defaults.
type ContentDraft struct {
	Title        string
	Description  string
	URL          string
	ThumbnailURL string
	Category     string
}

// FetchAll returns every content item, most recent first.
func (a *ContentItems) FetchAll(ctx context.Context) ([]domain.ContentItem, error) {
	rows, err := fetchRecords[contentRow](ctx, a.client, ContentTable, Query{
		OrderBy:   FieldCreatedOn,
		Direction: "DESC",
	})
	if err != nil {
		return nil, err
	}

	items := make([]domain.ContentItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, contentRowToItem(row))
	}
	return items, nil
}

// Create persists a new content item with default counters and flags and
// returns the confirmed entity, server-assigned id included.
func (a *ContentItems) Create(ctx context.Context, draft ContentDraft) (domain.ContentItem, error) {
	fields := map[string]any{
		FieldTitle:        draft.Title,
		FieldDescription:  draft.Description,
		FieldURL:          draft.URL,
		FieldThumbnailURL: draft.ThumbnailURL,
		FieldCategory:     draft.Category,
		FieldLikes:        0,
		FieldComments:     0,
		FieldIsSaved:      false,
		FieldIsLiked:      false,
	}

	row, err := createRecord[contentRow](ctx, a.client, ContentTable, fields)
	if err != nil {
		return domain.ContentItem{}, err
	}
	return contentRowToItem(row), nil
}

// Update submits a partial update keyed by id. fields uses remote field
// names (is_saved, is_liked, likes, ...).
func (a *ContentItems) Update(ctx context.Context, id string, fields map[string]any) (domain.ContentItem, error) {
	row, err := updateRecord[contentRow](ctx, a.client, ContentTable, id, fields)
	if err != nil {
		return domain.ContentItem{}, err
	}
	return contentRowToItem(row), nil
}

// contentRowToItem renames remote fields into the internal entity shape.
func contentRowToItem(row contentRow) domain.ContentItem {
	return domain.ContentItem{
		ID:           string(row.ID),
		Title:        row.Title,
		Description:  row.Description,
		URL:          row.URL,
		ThumbnailURL: row.ThumbnailURL,
		Category:     row.Category,
		Likes:        row.Likes,
		Comments:     row.Comments,
		Saved:        row.IsSaved,
		Liked:        row.IsLiked,
		CreatedAt:    row.CreatedOn,
	}
}
