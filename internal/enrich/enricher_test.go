package enrich

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/linksaver/linksaver/internal/domain"
	"github.com/linksaver/linksaver/internal/logger"
)

// failingProxySummarizer returns a summarizer whose proxy always fails,
// so summaries are deterministic fallback messages.
func failingProxySummarizer(t *testing.T) *Summarizer {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return NewSummarizer(SummarizerConfig{ProxyBaseURL: srv.URL + "/?url="}, logger.NewNop())
}

type memCache struct {
	mu sync.Mutex
	m  map[string]*domain.PageMetadata
}

func newMemCache() *memCache {
	return &memCache{m: make(map[string]*domain.PageMetadata)}
}

func (c *memCache) GetMetadata(_ context.Context, rawURL string) (*domain.PageMetadata, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	meta, ok := c.m[rawURL]
	return meta, ok
}

func (c *memCache) SetMetadata(_ context.Context, rawURL string, meta *domain.PageMetadata) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[rawURL] = meta
}

func TestEnrichRejectsInvalidURL(t *testing.T) {
	e := NewEnricher(failingProxySummarizer(t), logger.NewNop())

	for _, raw := range []string{"not-a-url", "", "ftp://example.com"} {
		_, err := e.Enrich(context.Background(), raw)
		if !errors.Is(err, domain.ErrInvalidURL) {
			t.Errorf("Enrich(%q) error = %v, want ErrInvalidURL", raw, err)
		}
	}
}

func TestEnrichLightweightPath(t *testing.T) {
	e := NewEnricher(failingProxySummarizer(t), logger.NewNop(),
		WithFaviconService("https://favicons.test/%s.png"))

	meta, err := e.Enrich(context.Background(), "https://example.com/some-article-title.html")
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}

	if meta.Title != "Some Article Title" {
		t.Errorf("Title = %q, want %q", meta.Title, "Some Article Title")
	}
	if meta.Description != "Content from example.com" {
		t.Errorf("Description = %q", meta.Description)
	}
	if meta.Favicon != "https://favicons.test/example.com.png" {
		t.Errorf("Favicon = %q", meta.Favicon)
	}
	if meta.Summary == "" {
		t.Error("Summary must never be empty")
	}
}

func TestEnrichRemotePathMergesFetchAndSummary(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Remote Page</title><meta name="description" content="About remote things"></head></html>`))
	}))
	t.Cleanup(page.Close)

	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("A first sentence long enough for the filter. A second sentence that also qualifies nicely."))
	}))
	t.Cleanup(proxy.Close)

	summarizer := NewSummarizer(SummarizerConfig{ProxyBaseURL: proxy.URL + "/?url="}, logger.NewNop())
	e := NewEnricher(summarizer, logger.NewNop(),
		WithFetcher(NewFetcher(0, logger.NewNop())))

	meta, err := e.Enrich(context.Background(), page.URL+"/post")
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}

	if meta.Title != "Remote Page" {
		t.Errorf("Title = %q, want %q", meta.Title, "Remote Page")
	}
	if meta.Description != "About remote things" {
		t.Errorf("Description = %q", meta.Description)
	}
	if meta.Favicon != page.URL+"/favicon.ico" {
		t.Errorf("Favicon = %q, want default resolved against origin", meta.Favicon)
	}
	if meta.Summary != "A first sentence long enough for the filter. A second sentence that also qualifies nicely." {
		t.Errorf("Summary = %q", meta.Summary)
	}
}

func TestEnrichRemotePathDegradesWhenPageDown(t *testing.T) {
	e := NewEnricher(failingProxySummarizer(t), logger.NewNop(),
		WithFetcher(NewFetcher(0, logger.NewNop())))

	meta, err := e.Enrich(context.Background(), "http://127.0.0.1:1/unreachable")
	if err != nil {
		t.Fatalf("Enrich must not fail on fetch errors: %v", err)
	}

	if meta.Title != defaultTitle {
		t.Errorf("Title = %q, want %q", meta.Title, defaultTitle)
	}
	if meta.Summary == "" {
		t.Error("Summary must never be empty")
	}
}

func TestEnrichUsesCache(t *testing.T) {
	cache := newMemCache()
	cached := &domain.PageMetadata{Title: "Cached", Summary: "Cached summary."}
	cache.SetMetadata(context.Background(), "https://example.com/page", cached)

	e := NewEnricher(failingProxySummarizer(t), logger.NewNop(), WithCache(cache))

	meta, err := e.Enrich(context.Background(), "https://example.com/page")
	if err != nil {
		t.Fatal(err)
	}
	if meta.Title != "Cached" {
		t.Errorf("expected cache hit, got title %q", meta.Title)
	}
}

func TestEnrichPopulatesCache(t *testing.T) {
	cache := newMemCache()
	e := NewEnricher(failingProxySummarizer(t), logger.NewNop(), WithCache(cache))

	if _, err := e.Enrich(context.Background(), "https://example.com/fresh"); err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.GetMetadata(context.Background(), "https://example.com/fresh"); !ok {
		t.Error("expected enrichment result to be cached")
	}
}
