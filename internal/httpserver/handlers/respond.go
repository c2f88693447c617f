package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cuelens/cuelens/internal/curation"
	"github.com/cuelens/cuelens/internal/domain"
	"github.com/cuelens/cuelens/internal/httpserver/deps"
	"github.com/cuelens/cuelens/internal/logger"
	"github.com/cuelens/cuelens/internal/remote"
	"github.com/cuelens/cuelens/internal/validate"
)

// contentItemDTO is the wire shape for content items.
type contentItemDTO struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	Category     string    `json:"category"`
	Likes        int       `json:"likes"`
	Comments     int       `json:"comments"`
	Saved        bool      `json:"saved"`
	Liked        bool      `json:"liked"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toContentDTO(item domain.ContentItem) contentItemDTO {
	return contentItemDTO{
		ID:           item.ID,
		Title:        item.Title,
		Description:  item.Description,
		URL:          item.URL,
		ThumbnailURL: item.ThumbnailURL,
		Category:     item.Category,
		Likes:        item.Likes,
		Comments:     item.Comments,
		Saved:        item.Saved,
		Liked:        item.Liked,
		CreatedAt:    item.CreatedAt,
	}
}

func toContentDTOs(items []domain.ContentItem) []contentItemDTO {
	out := make([]contentItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toContentDTO(item))
	}
	return out
}

// collectionDTO is the wire shape for collections.
type collectionDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Thumbnails  []string  `json:"thumbnails"`
	ItemCount   int       `json:"itemCount"`
	IsPublic    bool      `json:"isPublic"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toCollectionDTO(col domain.Collection) collectionDTO {
	thumbs := col.Thumbnails
	if thumbs == nil {
		thumbs = []string{}
	}
	return collectionDTO{
		ID:          col.ID,
		Title:       col.Title,
		Description: col.Description,
		Thumbnails:  thumbs,
		ItemCount:   col.ItemCount,
		IsPublic:    col.IsPublic,
		UpdatedAt:   col.UpdatedAt,
	}
}

func toCollectionDTOs(cols []domain.Collection) []collectionDTO {
	out := make([]collectionDTO, 0, len(cols))
	for _, col := range cols {
		out = append(out, toCollectionDTO(col))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain failures onto HTTP statuses: validation
// rejections are 422 with per-field problems, missing entities are 404,
// record-store failures are 502 carrying the stored message.
func writeError(w http.ResponseWriter, d deps.Deps, err error) {
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": verrs,
		})
		return
	}

	var notFound *curation.ErrContentNotFound
	if errors.As(err, &notFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": notFound.Error()})
		return
	}

	if remote.IsRead(err) || remote.IsWrite(err) {
		d.Logger.Warn("record store call failed", logger.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": remote.UserMessage(err)})
		return
	}

	d.Logger.Error("unexpected handler failure", logger.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
}
