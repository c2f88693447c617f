package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/cuelens/cuelens/internal/httpserver/deps"
	"github.com/cuelens/cuelens/internal/httpserver/handlers"
)

func init() { Register(registerCollections) }

func registerCollections(r chi.Router, d deps.Deps) {
	r.Get("/api/collections", handlers.ListCollections(d))
	r.Post("/api/collections", handlers.CreateCollection(d))
}
