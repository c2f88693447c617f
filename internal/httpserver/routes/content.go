package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/cuelens/cuelens/internal/httpserver/deps"
	"github.com/cuelens/cuelens/internal/httpserver/handlers"
)

func init() { Register(registerContent) }

func registerContent(r chi.Router, d deps.Deps) {
	r.Get("/api/content", handlers.ListContent(d))
	r.Post("/api/content", handlers.CreateContent(d))
	r.Post("/api/content/{id}/save", handlers.ToggleSave(d))
	r.Post("/api/content/{id}/like", handlers.ToggleLike(d))
}
