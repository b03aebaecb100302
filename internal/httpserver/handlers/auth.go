package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linksaver/linksaver/internal/auth"
	"github.com/linksaver/linksaver/internal/domain"
	"github.com/linksaver/linksaver/internal/httpserver/deps"
	"github.com/linksaver/linksaver/internal/httpserver/mw"
	"github.com/linksaver/linksaver/internal/logger"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// SignUp registers a new account and opens a session.
func SignUp(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Email and password are required")
			return
		}

		user, token, err := d.Auth.SignUp(r.Context(), req.Email, req.Password)
		if errors.Is(err, domain.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "Email already registered")
			return
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, "Invalid email or password")
			return
		}
		if err != nil {
			d.Logger.Error("signup failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusCreated, sessionResponse{Token: token, User: user})
	}
}

// SignIn authenticates an existing account and opens a session.
func SignIn(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Email and password are required")
			return
		}

		user, token, err := d.Auth.SignIn(r.Context(), req.Email, req.Password)
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		if err != nil {
			d.Logger.Error("signin failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: user})
	}
}

// SignOut revokes the presented token for the remainder of its
// lifetime.
func SignOut(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.ExtractToken(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Missing or invalid authorization token")
			return
		}

		if err := d.Auth.SignOut(r.Context(), token); err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// Me returns the identity asserted by the presented token.
func Me(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Missing or invalid authorization token")
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}
