package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linksaver/linksaver/internal/domain"
	"github.com/linksaver/linksaver/internal/httpserver/deps"
	"github.com/linksaver/linksaver/internal/httpserver/mw"
	"github.com/linksaver/linksaver/internal/logger"
)

type saveBookmarkRequest struct {
	URL string `json:"url"`
}

// SaveBookmark enriches a URL and persists the result for the
// authenticated user. Enrichment quality degrades silently; only an
// invalid URL or a store failure aborts the save.
func SaveBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Missing or invalid authorization token")
			return
		}

		var req saveBookmarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
			writeError(w, http.StatusBadRequest, "URL is required")
			return
		}

		meta, err := d.Enricher.Enrich(r.Context(), req.URL)
		if errors.Is(err, domain.ErrInvalidURL) {
			writeError(w, http.StatusBadRequest, "Invalid URL format")
			return
		}
		if err != nil {
			d.Logger.Error("enrichment failed", logger.String("url", req.URL), logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		stored, err := d.Store.InsertBookmark(r.Context(), domain.Bookmark{
			UserID:      user.ID,
			URL:         req.URL,
			Title:       meta.Title,
			Description: meta.Description,
			Favicon:     meta.Favicon,
			Summary:     meta.Summary,
		})
		if err != nil {
			d.Logger.Error("bookmark insert failed",
				logger.String("user_id", user.ID),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to save bookmark")
			return
		}

		d.Logger.Info("bookmark saved",
			logger.String("user_id", user.ID),
			logger.String("bookmark_id", stored.ID))
		writeJSON(w, http.StatusCreated, stored)
	}
}

// ListBookmarks returns the authenticated user's bookmarks, newest
// first.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Missing or invalid authorization token")
			return
		}

		bookmarks, err := d.Store.ListByUser(r.Context(), user.ID)
		if err != nil {
			d.Logger.Error("bookmark list failed",
				logger.String("user_id", user.ID),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to load bookmarks")
			return
		}

		writeJSON(w, http.StatusOK, bookmarks)
	}
}

// DeleteBookmark removes one bookmark by id, scoped to the
// authenticated user.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Missing or invalid authorization token")
			return
		}

		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "Bookmark id is required")
			return
		}

		err := d.Store.DeleteBookmark(r.Context(), user.ID, id)
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Bookmark not found")
			return
		}
		if err != nil {
			d.Logger.Error("bookmark delete failed",
				logger.String("user_id", user.ID),
				logger.String("bookmark_id", id),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to delete bookmark")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
