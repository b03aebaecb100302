package enrich

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/linksaver/linksaver/internal/domain"
	"github.com/linksaver/linksaver/internal/logger"
)

// defaultFaviconService resolves a favicon by domain without touching
// the target page. %s is the domain.
const defaultFaviconService = "https://www.google.com/s2/favicons?domain=%s&sz=32"

// MetadataCache is an optional read-through cache for enrichment
// results. Both methods are best effort; a nil cache disables caching.
type MetadataCache interface {
	GetMetadata(ctx context.Context, rawURL string) (*domain.PageMetadata, bool)
	SetMetadata(ctx context.Context, rawURL string, meta *domain.PageMetadata)
}

// Enricher composes validation, metadata extraction and summary
// generation into one end-to-end operation. Only URL validation failure
// is fatal; everything else degrades to defaults.
type Enricher struct {
	fetcher     *Fetcher // nil selects the lightweight path
	summarizer  *Summarizer
	faviconTmpl string
	cache       MetadataCache
	log         logger.Logger
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithFetcher enables the full path: page metadata is fetched remotely
// and merged with the generated summary. Without it the enricher uses
// the lightweight path (title heuristic plus favicon service).
func WithFetcher(f *Fetcher) Option {
	return func(e *Enricher) { e.fetcher = f }
}

// WithCache attaches a metadata cache.
func WithCache(c MetadataCache) Option {
	return func(e *Enricher) { e.cache = c }
}

// WithFaviconService overrides the favicon-by-domain service template.
func WithFaviconService(tmpl string) Option {
	return func(e *Enricher) { e.faviconTmpl = tmpl }
}

func NewEnricher(summarizer *Summarizer, log logger.Logger, opts ...Option) *Enricher {
	e := &Enricher{
		summarizer:  summarizer,
		faviconTmpl: defaultFaviconService,
		log:         log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich derives PageMetadata for a raw URL string. A malformed URL
// returns domain.ErrInvalidURL before any network call; any other
// failure degrades gracefully and the returned metadata is always
// complete (non-empty title and summary).
func (e *Enricher) Enrich(ctx context.Context, rawURL string) (*domain.PageMetadata, error) {
	u, err := domain.ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if meta, ok := e.cache.GetMetadata(ctx, u.String()); ok {
			e.log.Debug("enrichment cache hit", logger.String("url", u.String()))
			return meta, nil
		}
	}

	var meta *domain.PageMetadata
	if e.fetcher != nil {
		meta = e.enrichRemote(ctx, u)
	} else {
		meta = e.enrichLocal(ctx, u)
	}

	if e.cache != nil {
		e.cache.SetMetadata(ctx, u.String(), meta)
	}

	return meta, nil
}

// enrichRemote runs the metadata fetch and the summary generation
// concurrently and joins both. The two calls are independent reads of
// the same URL; neither orders before the other.
func (e *Enricher) enrichRemote(ctx context.Context, u *url.URL) *domain.PageMetadata {
	var (
		page    pageMeta
		summary string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page = e.fetcher.Fetch(gctx, u)
		return nil
	})
	g.Go(func() error {
		summary = e.summarizer.Summarize(gctx, u.String(), domain.Domain(u))
		return nil
	})
	// Both branches recover internally, so the join never fails.
	_ = g.Wait()

	return &domain.PageMetadata{
		Title:       page.Title,
		Description: page.Description,
		Favicon:     page.Favicon,
		Summary:     summary,
	}
}

// enrichLocal derives metadata without touching the target page: title
// from the URL itself, description synthesized from the domain, favicon
// from a third-party service keyed by domain. The summary call runs
// sequentially.
func (e *Enricher) enrichLocal(ctx context.Context, u *url.URL) *domain.PageMetadata {
	host := domain.Domain(u)

	return &domain.PageMetadata{
		Title:       domain.TitleFromURL(u),
		Description: fmt.Sprintf("Content from %s", host),
		Favicon:     fmt.Sprintf(e.faviconTmpl, host),
		Summary:     e.summarizer.Summarize(ctx, u.String(), host),
	}
}
