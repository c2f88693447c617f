package handlers

import (
	"net/http"

	"github.com/cuelens/cuelens/internal/httpserver/deps"
)

type categoryDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Accent string `json:"accent,omitempty"`
}

// Categories serves the category catalog.
func Categories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]categoryDTO, 0, len(d.Catalog))
		for _, c := range d.Catalog {
			out = append(out, categoryDTO{ID: c.ID, Name: c.Name, Accent: c.Accent})
		}
		writeJSON(w, http.StatusOK, map[string]any{"categories": out})
	}
}
