package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linksaver/linksaver/internal/httpserver/deps"
	"github.com/linksaver/linksaver/internal/httpserver/handlers"
	"github.com/linksaver/linksaver/internal/httpserver/mw"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.With(mw.Auth(d.Auth, d.Logger)).Route("/api/bookmarks", func(r chi.Router) {
		r.Post("/", handlers.SaveBookmark(d))
		r.Get("/", handlers.ListBookmarks(d))
		r.Delete("/{id}", handlers.DeleteBookmark(d))
	})
}
