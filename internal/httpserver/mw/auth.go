package mw

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/linksaver/linksaver/internal/auth"
	"github.com/linksaver/linksaver/internal/domain"
	"github.com/linksaver/linksaver/internal/logger"
)

type ctxKey int

const userKey ctxKey = iota

// Auth requires a valid bearer token and injects the asserted user into
// the request context.
func Auth(svc *auth.Service, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.ExtractToken(r.Header.Get("Authorization"))
			if err != nil {
				unauthorized(w, "Missing or invalid authorization token")
				return
			}

			user, err := svc.Verify(r.Context(), token)
			if err != nil {
				log.Debug("auth failed", logger.Error(err))
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user injected by Auth.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userKey).(domain.User)
	return user, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
