package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linksaver/linksaver/internal/domain"
	"github.com/linksaver/linksaver/internal/httpserver/deps"
	"github.com/linksaver/linksaver/internal/logger"
)

type enrichRequest struct {
	URL string `json:"url"`
}

// Enrich derives page metadata for a URL without persisting anything.
// Response contract: 200 with the metadata, 400 for missing/invalid
// input, 500 for anything unexpected.
func Enrich(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req enrichRequest
		// An unreadable body and a missing url field are the same
		// mistake from the caller's point of view.
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

		writeJSON(w, http.StatusOK, meta)
	}
}
