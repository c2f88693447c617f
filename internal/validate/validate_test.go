package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuelens/cuelens/internal/domain"
	"github.com/cuelens/cuelens/internal/remote"
)

func validContentDraft() remote.ContentDraft {
	return remote.ContentDraft{
		Title:        "Color theory",
		URL:          "https://example.com/colors",
		ThumbnailURL: "https://images.unsplash.com/photo-123",
		Category:     "design",
	}
}

func TestContentDraftAccepted(t *testing.T) {
	err := ContentDraft(validContentDraft(), domain.DefaultCategories())
	assert.NoError(t, err)
}

func TestContentDraftFieldChecks(t *testing.T) {
	catalog := domain.DefaultCategories()

	tests := []struct {
		name      string
		mutate    func(*remote.ContentDraft)
		wantField string
	}{
		{"missing title", func(d *remote.ContentDraft) { d.Title = "  " }, "title"},
		{"missing url", func(d *remote.ContentDraft) { d.URL = "" }, "url"},
		{"relative url", func(d *remote.ContentDraft) { d.URL = "/just/a/path" }, "url"},
		{"missing category", func(d *remote.ContentDraft) { d.Category = "" }, "category"},
		{"unknown category", func(d *remote.ContentDraft) { d.Category = "gardening" }, "category"},
		{"bad thumbnail", func(d *remote.ContentDraft) { d.ThumbnailURL = "https://example.com/page.html" }, "thumbnailUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validContentDraft()
			tt.mutate(&draft)

			err := ContentDraft(draft, catalog)
			require.Error(t, err)

			var errs Errors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

func TestContentDraftThumbnailOptional(t *testing.T) {
	draft := validContentDraft()
	draft.ThumbnailURL = ""
	assert.NoError(t, ContentDraft(draft, domain.DefaultCategories()))
}

func TestCollectionDraftChecks(t *testing.T) {
	err := CollectionDraft(remote.CollectionDraft{
		Title:      "Trips",
		Thumbnails: []string{"https://a.test/cover.png"},
	})
	assert.NoError(t, err)

	err = CollectionDraft(remote.CollectionDraft{Title: ""})
	require.Error(t, err)

	err = CollectionDraft(remote.CollectionDraft{
		Title:      "Trips",
		Thumbnails: []string{"not a url"},
	})
	require.Error(t, err)
	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "thumbnails[0]")
}

func TestValidURL(t *testing.T) {
	assert.True(t, ValidURL("https://example.com"))
	assert.True(t, ValidURL("http://example.com/path?q=1"))
	assert.False(t, ValidURL("ftp://example.com"))
	assert.False(t, ValidURL("example.com"))
	assert.False(t, ValidURL("://broken"))
}

func TestValidImageURL(t *testing.T) {
	// Image extensions pass on any host.
	assert.True(t, ValidImageURL("https://cdn.test/pic.png"))
	assert.True(t, ValidImageURL("https://cdn.test/pic.JPEG"))
	assert.True(t, ValidImageURL("https://cdn.test/pic.webp"))

	// Trusted hosts pass without an extension.
	assert.True(t, ValidImageURL("https://images.unsplash.com/photo-123"))
	assert.True(t, ValidImageURL("https://pixabay.com/photos/456"))
	assert.True(t, ValidImageURL("https://burst.shopify.com/photos/789"))

	// Everything else fails.
	assert.False(t, ValidImageURL("https://example.com/page"))
	assert.False(t, ValidImageURL("https://notunsplash.com/photo"))
	assert.False(t, ValidImageURL("nope"))
}

func TestErrorsMessageIsStable(t *testing.T) {
	errs := Errors{"url": "url is required", "title": "title is required"}
	assert.Equal(t, "invalid draft: title: title is required; url: url is required", errs.Error())
}
