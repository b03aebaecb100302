package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/linksaver/linksaver/internal/domain"
	"github.com/linksaver/linksaver/internal/enrich"
	"github.com/linksaver/linksaver/internal/httpserver/deps"
	"github.com/linksaver/linksaver/internal/logger"
)

func newEnrichDeps(t *testing.T) deps.Deps {
	t.Helper()

	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("This page explains something in reasonable depth. It keeps going with a second complete thought."))
	}))
	t.Cleanup(proxy.Close)

	log := logger.NewNop()
	summarizer := enrich.NewSummarizer(enrich.SummarizerConfig{
		ProxyBaseURL: proxy.URL + "/",
	}, log)

	return deps.Deps{
		Logger:   log,
		Enricher: enrich.NewEnricher(summarizer, log),
	}
}

func TestEnrichHandler(t *testing.T) {
	d := newEnrichDeps(t)
	handler := Enrich(d)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing url field",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "URL is required",
		},
		{
			name:       "malformed json",
			body:       `{"url": `,
			wantStatus: http.StatusBadRequest,
			wantError:  "URL is required",
		},
		{
			name:       "not a url",
			body:       `{"url": "not a url"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid URL format",
		},
		{
			name:       "unsupported scheme",
			body:       `{"url": "ftp://example.com/file"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid URL format",
		},
		{
			name:       "valid url",
			body:       `{"url": "https://example.com/some-article-title"}`,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/enrich", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			if tt.wantError != "" {
				var resp map[string]string
				if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
					t.Fatalf("decode error body: %v", err)
				}
				if resp["error"] != tt.wantError {
					t.Errorf("error = %q, want %q", resp["error"], tt.wantError)
				}
			}
		})
	}
}

func TestEnrichHandlerResponseShape(t *testing.T) {
	d := newEnrichDeps(t)
	handler := Enrich(d)

	req := httptest.NewRequest(http.MethodPost, "/api/enrich",
		strings.NewReader(`{"url": "https://example.com/posts/intro-to-sqlite"}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var meta domain.PageMetadata
	if err := json.NewDecoder(rec.Body).Decode(&meta); err != nil {
		t.Fatalf("decode metadata: %v", err)
	}

	if meta.Title != "Intro To Sqlite" {
		t.Errorf("title = %q, want %q", meta.Title, "Intro To Sqlite")
	}
	if meta.Summary == "" {
		t.Error("summary should never be empty")
	}
	if !strings.Contains(meta.Favicon, "example.com") {
		t.Errorf("favicon %q should reference the domain", meta.Favicon)
	}
}
