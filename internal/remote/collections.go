package remote

import (
	"context"
	"time"

	"github.com/cuelens/cuelens/internal/domain"
)

// Collections is the record-store adapter for the collection table.
type Collections struct {
	client *Client
	now    func() time.Time
}

// NewCollections creates a collection adapter.
func NewCollections(c *Client) *Collections {
	return &Collections{client: c, now: time.Now}
}

// WithClock overrides the clock used for updated_at stamps. Tests only.
func (a *Collections) WithClock(now func() time.Time) *Collections {
	a.now = now
	return a
}

// CollectionDraft is a validated collection submission.
type CollectionDraft struct {
	Title       string
	Description string
	Thumbnails  []string
	IsPublic    bool
}

// FetchAll returns every collection, most recently updated first.
func (a *Collections) FetchAll(ctx context.Context) ([]domain.Collection, error) {
	rows, err := fetchRecords[collectionRow](ctx, a.client, CollectionTable, Query{
		OrderBy:   FieldUpdatedAt,
		Direction: "DESC",
	})
	if err != nil {
		return nil, err
	}

	cols := make([]domain.Collection, 0, len(rows))
	for _, row := range rows {
		cols = append(cols, collectionRowToEntity(row))
	}
	return cols, nil
}

// Create persists a new collection with a zero item count and returns the
// confirmed entity. Thumbnails are stored as encoded text on the wire.
func (a *Collections) Create(ctx context.Context, draft CollectionDraft) (domain.Collection, error) {
	fields := map[string]any{
		FieldTitle:       draft.Title,
		FieldDescription: draft.Description,
		FieldThumbnails:  EncodeThumbnails(draft.Thumbnails),
		FieldItemCount:   0,
		FieldIsPublic:    draft.IsPublic,
		FieldUpdatedAt:   a.now().UTC().Format(time.RFC3339),
	}

	row, err := createRecord[collectionRow](ctx, a.client, CollectionTable, fields)
	if err != nil {
		return domain.Collection{}, err
	}
	return collectionRowToEntity(row), nil
}

// Update submits a partial update keyed by id. Unused by the current
// intent surface but part of the adapter contract.
func (a *Collections) Update(ctx context.Context, id string, fields map[string]any) (domain.Collection, error) {
	row, err := updateRecord[collectionRow](ctx, a.client, CollectionTable, id, fields)
	if err != nil {
		return domain.Collection{}, err
	}
	return collectionRowToEntity(row), nil
}

// collectionRowToEntity renames remote fields into the internal shape and
// materializes the thumbnail list.
func collectionRowToEntity(row collectionRow) domain.Collection {
	return domain.Collection{
		ID:          string(row.ID),
		Title:       row.Title,
		Description: row.Description,
		Thumbnails:  DecodeThumbnails(row.Thumbnails),
		ItemCount:   row.ItemCount,
		IsPublic:    row.IsPublic,
		UpdatedAt:   row.UpdatedAt,
	}
}
