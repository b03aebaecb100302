package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linksaver/linksaver/internal/httpserver/deps"
	"github.com/linksaver/linksaver/internal/httpserver/handlers"
	"github.com/linksaver/linksaver/internal/httpserver/mw"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	r.Post("/api/auth/signup", handlers.SignUp(d))
	r.Post("/api/auth/signin", handlers.SignIn(d))
	r.Post("/api/auth/signout", handlers.SignOut(d))
	r.With(mw.Auth(d.Auth, d.Logger)).Get("/api/auth/me", handlers.Me(d))
}
