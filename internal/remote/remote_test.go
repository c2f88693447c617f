package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{
		BaseURL:   srv.URL,
		ProjectID: "proj-test",
		PublicKey: "pk-test",
	})
}

func TestFetchAllContentItemsMapsRemoteFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/tables/content_item/records", r.URL.Path)
		assert.Equal(t, "CreatedOn", r.URL.Query().Get("orderBy"))
		assert.Equal(t, "DESC", r.URL.Query().Get("direction"))
		assert.Equal(t, "proj-test", r.Header.Get("X-Apper-Project-Id"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{
					"Id":            "rec-1",
					"title":         "Color theory basics",
					"description":   "A primer",
					"url":           "https://example.com/colors",
					"thumbnail_url": "https://images.unsplash.com/colors.png",
					"category":      "design",
					"likes":         7,
					"comments":      2,
					"is_saved":      true,
					"is_liked":      true,
					"CreatedOn":     "2025-05-01T10:00:00Z",
				},
			},
		})
	})

	items, err := NewContentItems(client).FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "rec-1", item.ID)
	assert.Equal(t, "Color theory basics", item.Title)
	assert.Equal(t, "https://images.unsplash.com/colors.png", item.ThumbnailURL)
	assert.Equal(t, "design", item.Category)
	assert.Equal(t, 7, item.Likes)
	assert.Equal(t, 2, item.Comments)
	assert.True(t, item.Saved)
	assert.True(t, item.Liked)
}

func TestFetchAllToleratesNumericIDs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    []map[string]any{{"Id": 42, "title": "Numeric id"}},
		})
	})

	items, err := NewContentItems(client).FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "42", items[0].ID)
}

func TestFetchAllMissingDataIsReadError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	_, err := NewContentItems(client).FetchAll(context.Background())
	require.Error(t, err)
	assert.True(t, IsRead(err))
	assert.Equal(t, "no data received from server", UserMessage(err))
}

func TestFetchAllNullDataIsReadError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":null}`))
	})

	items, err := NewContentItems(client).FetchAll(context.Background())
	require.Error(t, err)
	assert.Nil(t, items)
	assert.True(t, IsRead(err))
	assert.Equal(t, "no data received from server", UserMessage(err))
}

func TestFetchAllUnreachableStoreIsReadError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	client := NewClient(Options{BaseURL: srv.URL})
	_, err := NewContentItems(client).FetchAll(context.Background())
	require.Error(t, err)
	assert.True(t, IsRead(err))
}

func TestCreateContentItemSendsDefaults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var fields map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fields))
		assert.Equal(t, "My link", fields["title"])
		assert.Equal(t, float64(0), fields["likes"])
		assert.Equal(t, float64(0), fields["comments"])
		assert.Equal(t, false, fields["is_saved"])
		assert.Equal(t, false, fields["is_liked"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"Id":       "rec-new",
				"title":    "My link",
				"category": "travel",
			},
		})
	})

	item, err := NewContentItems(client).Create(context.Background(), ContentDraft{
		Title:    "My link",
		URL:      "https://example.com",
		Category: "travel",
	})
	require.NoError(t, err)
	assert.Equal(t, "rec-new", item.ID)
	assert.Equal(t, 0, item.Likes)
	assert.False(t, item.Saved)
}

func TestCreateRejectionIsWriteErrorWithServerMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "title already exists",
		})
	})

	_, err := NewContentItems(client).Create(context.Background(), ContentDraft{Title: "dup"})
	require.Error(t, err)
	assert.True(t, IsWrite(err))
	assert.Equal(t, "title already exists", UserMessage(err))
}

func TestUpdateContentItemTargetsRecordPath(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/tables/content_item/records/rec-9", r.URL.Path)

		var fields map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fields))
		assert.Equal(t, true, fields["is_saved"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"Id": "rec-9", "is_saved": true},
		})
	})

	item, err := NewContentItems(client).Update(context.Background(), "rec-9",
		map[string]any{FieldIsSaved: true})
	require.NoError(t, err)
	assert.True(t, item.Saved)
}

func TestFetchAllCollectionsDecodesThumbnails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tables/collection/records", r.URL.Path)
		assert.Equal(t, "updated_at", r.URL.Query().Get("orderBy"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{
					"Id":         "col-1",
					"title":      "Travel Guide",
					"thumbnails": `["https://a.png","https://b.png"]`,
					"item_count": 3,
					"is_public":  true,
					"updated_at": "2025-05-02T08:30:00Z",
				},
				{
					"Id":         "col-2",
					"title":      "Broken",
					"thumbnails": "{not json",
				},
			},
		})
	})

	cols, err := NewCollections(client).FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, cols, 2)

	assert.Equal(t, []string{"https://a.png", "https://b.png"}, cols[0].Thumbnails)
	assert.Equal(t, 3, cols[0].ItemCount)
	assert.True(t, cols[0].IsPublic)

	// Malformed encoded text decodes to an empty list, not an error.
	assert.Equal(t, []string{}, cols[1].Thumbnails)
}

func TestCreateCollectionEncodesThumbnailsAndStampsUpdatedAt(t *testing.T) {
	fixed := time.Date(2025, 5, 3, 9, 0, 0, 0, time.UTC)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var fields map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fields))
		assert.Equal(t, `["https://cover.png"]`, fields["thumbnails"])
		assert.Equal(t, float64(0), fields["item_count"])
		assert.Equal(t, "2025-05-03T09:00:00Z", fields["updated_at"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"Id":         "col-new",
				"title":      "Fresh",
				"thumbnails": fields["thumbnails"],
				"is_public":  false,
				"updated_at": fields["updated_at"],
			},
		})
	})

	adapter := NewCollections(client).WithClock(func() time.Time { return fixed })
	col, err := adapter.Create(context.Background(), CollectionDraft{
		Title:      "Fresh",
		Thumbnails: []string{"https://cover.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, "col-new", col.ID)
	assert.Equal(t, []string{"https://cover.png"}, col.Thumbnails)
	assert.Equal(t, fixed, col.UpdatedAt)
}

func TestThumbnailsRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   []string
	}{
		{"empty", []string{}},
		{"single", []string{"https://one.png"}},
		{"multi keeps order", []string{"https://c.png", "https://a.png", "https://b.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.in, DecodeThumbnails(EncodeThumbnails(tt.in)))
		})
	}

	assert.Equal(t, []string{}, DecodeThumbnails(EncodeThumbnails(nil)))
	assert.Equal(t, []string{}, DecodeThumbnails(""))
	assert.Equal(t, []string{}, DecodeThumbnails("null"))
	assert.Equal(t, []string{}, DecodeThumbnails("garbage"))
}
