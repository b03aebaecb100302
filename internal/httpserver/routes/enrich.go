package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linksaver/linksaver/internal/httpserver/deps"
	"github.com/linksaver/linksaver/internal/httpserver/handlers"
)

func init() { Register(registerEnrich) }

func registerEnrich(r chi.Router, d deps.Deps) {
	r.Post("/api/enrich", handlers.Enrich(d))
}
