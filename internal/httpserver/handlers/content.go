package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cuelens/cuelens/internal/httpserver/deps"
	"github.com/cuelens/cuelens/internal/remote"
	"github.com/cuelens/cuelens/internal/validate"
)

type contentListResponse struct {
	Items    []contentItemDTO `json:"items"`
	Category string           `json:"category"`
	Loading  bool             `json:"loading"`
	Error    string           `json:"error,omitempty"`
}

// ListContent serves the derived content view. An optional ?category=
// query narrows the view and the choice sticks for later requests.
func ListContent(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("category") {
			d.Content.SetCategory(r.URL.Query().Get("category"))
		}

		snap := d.Content.Snapshot()
		writeJSON(w, http.StatusOK, contentListResponse{
			Items:    toContentDTOs(snap.Filtered),
			Category: snap.Criteria.Category,
			Loading:  snap.Loading,
			Error:    snap.Err,
		})
	}
}

type contentDraftRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Category     string `json:"category"`
}

// CreateContent validates a submission and persists it through the feed.
func CreateContent(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contentDraftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "malformed request body"})
			return
		}

		draft := remote.ContentDraft{
			Title:        req.Title,
			Description:  req.Description,
			URL:          req.URL,
			ThumbnailURL: req.ThumbnailURL,
			Category:     req.Category,
		}
		if err := validate.ContentDraft(draft, d.Catalog); err != nil {
			writeError(w, d, err)
			return
		}

		item, err := d.Content.Add(r.Context(), draft)
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, http.StatusCreated, toContentDTO(item))
	}
}

// ToggleSave flips the bookmark flag of one item.
func ToggleSave(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := d.Content.ToggleSave(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, toContentDTO(item))
	}
}

// ToggleLike flips the like flag and its counter together.
func ToggleLike(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := d.Content.ToggleLike(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, toContentDTO(item))
	}
}
