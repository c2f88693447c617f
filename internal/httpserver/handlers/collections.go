package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cuelens/cuelens/internal/domain"
	"github.com/cuelens/cuelens/internal/httpserver/deps"
	"github.com/cuelens/cuelens/internal/remote"
	"github.com/cuelens/cuelens/internal/validate"
)

type collectionListResponse struct {
	Collections []collectionDTO `json:"collections"`
	Visibility  string          `json:"visibility"`
	SearchTerm  string          `json:"searchTerm"`
	Loading     bool            `json:"loading"`
	Error       string          `json:"error,omitempty"`
}

// ListCollections serves the derived collection view. ?filter= and
// ?search= adjust their facet independently; the other facet sticks.
func ListCollections(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Has("filter") {
			d.Collections.SetVisibility(domain.ParseVisibility(q.Get("filter")))
		}
		if q.Has("search") {
			d.Collections.SetSearchTerm(q.Get("search"))
		}

		snap := d.Collections.Snapshot()
		writeJSON(w, http.StatusOK, collectionListResponse{
			Collections: toCollectionDTOs(snap.Filtered),
			Visibility:  string(snap.Criteria.Visibility),
			SearchTerm:  snap.Criteria.SearchTerm,
			Loading:     snap.Loading,
			Error:       snap.Err,
		})
	}
}

type collectionDraftRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Thumbnails  []string `json:"thumbnails"`
	IsPublic    bool     `json:"isPublic"`
}

// CreateCollection validates a submission and persists it through the feed.
func CreateCollection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req collectionDraftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "malformed request body"})
			return
		}

		draft := remote.CollectionDraft{
			Title:       req.Title,
			Description: req.Description,
			Thumbnails:  req.Thumbnails,
			IsPublic:    req.IsPublic,
		}
		if err := validate.CollectionDraft(draft); err != nil {
			writeError(w, d, err)
			return
		}

		col, err := d.Collections.Add(r.Context(), draft)
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, http.StatusCreated, toCollectionDTO(col))
	}
}
