package enrich

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/linksaver/linksaver/internal/logger"
	"github.com/linksaver/linksaver/internal/utils"
)

const (
	userAgent    = "Mozilla/5.0 (compatible; LinkSaver/1.0)"
	defaultTitle = "Untitled"
)

// pageMeta is the fetcher's slice of the enrichment result: everything
// except the summary, which is produced independently.
type pageMeta struct {
	Title       string
	Description string
	Favicon     string
}

// degradedMeta is what the fetcher hands back when the page could not
// be retrieved or parsed. The orchestrator proceeds with it as-is.
func degradedMeta() pageMeta {
	return pageMeta{Title: defaultTitle}
}

// Fetcher retrieves a page and extracts title, description and favicon
// from its markup. It never fails past its own boundary: any fetch or
// parse problem yields degraded-but-valid metadata.
type Fetcher struct {
	client *http.Client
	log    logger.Logger
}

func NewFetcher(timeout time.Duration, log logger.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Fetch GETs the target page and scans it for metadata.
// Title priority: <title>, then og:title, then "Untitled".
// Description priority: og:description, then meta name=description, then empty.
// Favicon: rel=icon / rel="shortcut icon" link, else /favicon.ico, always
// resolved to an absolute URL against the page origin.
func (f *Fetcher) Fetch(ctx context.Context, u *url.URL) pageMeta {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		f.log.Debug("metadata fetch: bad request", logger.String("url", u.String()), logger.Error(err))
		return degradedMeta()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Debug("metadata fetch failed", logger.String("url", u.String()), logger.Error(err))
		return degradedMeta()
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.log.Debug("metadata fetch: non-2xx response",
			logger.String("url", u.String()),
			logger.Int("status", resp.StatusCode))
		return degradedMeta()
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		f.log.Debug("metadata fetch: parse failed", logger.String("url", u.String()), logger.Error(err))
		return degradedMeta()
	}

	origin := u.Scheme + "://" + u.Host

	return pageMeta{
		Title:       extractTitle(doc),
		Description: extractDescription(doc),
		Favicon:     absoluteFavicon(origin, extractFaviconHref(doc)),
	}
}

func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if og := strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", "")); og != "" {
		return og
	}
	return defaultTitle
}

func extractDescription(doc *goquery.Document) string {
	for _, selector := range []string{
		`meta[property="og:description"]`,
		`meta[name="description"]`,
	} {
		if desc := strings.TrimSpace(doc.Find(selector).AttrOr("content", "")); desc != "" {
			return desc
		}
	}
	return ""
}

func extractFaviconHref(doc *goquery.Document) string {
	for _, selector := range []string{
		`link[rel="icon"]`,
		`link[rel="shortcut icon"]`,
	} {
		if href := strings.TrimSpace(doc.Find(selector).AttrOr("href", "")); href != "" {
			return href
		}
	}
	return "/favicon.ico"
}

// absoluteFavicon resolves href against the page origin. Already
// absolute values pass through unchanged; both leading-slash and bare
// relative paths are handled.
func absoluteFavicon(origin, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return origin + href
	}
	return origin + "/" + href
}
