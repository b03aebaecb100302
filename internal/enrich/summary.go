package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/linksaver/linksaver/internal/logger"
	"github.com/linksaver/linksaver/internal/utils"
)

const (
	// summaryAttempts bounds the extraction loop: one initial call
	// plus two retries.
	summaryAttempts = 3

	// maxSummaryLen is the clip bound for condensed summaries.
	maxSummaryLen = 200

	// minSentenceLen filters out fragments too short to carry meaning.
	minSentenceLen = 20

	// maxProxyBody caps how much extracted text is read per attempt.
	maxProxyBody = 64 << 10
)

var sentenceRe = regexp.MustCompile(`[.!?]+`)

// SummarizerConfig carries the knobs for summary generation. ProxyBaseURL
// points at a service that renders a page as readable plain text. When
// APIURL is set the summarizer bypasses the sentence heuristic and asks
// that endpoint for a finished summary instead, authenticated with APIKey.
type SummarizerConfig struct {
	ProxyBaseURL string
	ProxyTimeout time.Duration
	APIURL       string
	APIKey       string
	Denylist     Denylist
}

// Summarizer produces a short synopsis of a page. It always returns a
// non-empty string and never an error: extraction problems degrade to
// canned messages so that summary generation can never block a save.
type Summarizer struct {
	client *http.Client
	cfg    SummarizerConfig
	log    logger.Logger
}

func NewSummarizer(cfg SummarizerConfig, log logger.Logger) *Summarizer {
	if cfg.ProxyTimeout <= 0 {
		cfg.ProxyTimeout = 15 * time.Second
	}
	if cfg.ProxyBaseURL == "" {
		cfg.ProxyBaseURL = "https://r.jina.ai/"
	}
	if cfg.Denylist.empty() {
		cfg.Denylist = DefaultDenylist()
	}
	return &Summarizer{
		client: &http.Client{Timeout: cfg.ProxyTimeout},
		cfg:    cfg,
		log:    log,
	}
}

// Summarize generates a summary for rawURL. domain is the human-facing
// hostname used in fallback messages.
func (s *Summarizer) Summarize(ctx context.Context, rawURL, domain string) string {
	if s.cfg.Denylist.Match(rawURL) {
		return noSummaryMessage(domain)
	}

	if s.cfg.APIURL != "" {
		return s.summarizeViaAPI(ctx, rawURL)
	}

	return s.summarizeViaProxy(ctx, rawURL, domain)
}

// summarizeViaProxy fetches a readable-text rendering of the page and
// condenses it. A bounded iterative loop replaces retry-by-recursion:
// three attempts total, then the terminal fallback.
func (s *Summarizer) summarizeViaProxy(ctx context.Context, rawURL, domain string) string {
	target := s.cfg.ProxyBaseURL + url.QueryEscape(rawURL)

	for attempt := 1; attempt <= summaryAttempts; attempt++ {
		text, err := s.fetchText(ctx, target)
		if err != nil {
			s.log.Debug("summary extraction attempt failed",
				logger.String("url", rawURL),
				logger.Int("attempt", attempt),
				logger.Error(err))
			continue
		}

		if summary := condense(text); summary != "" {
			return summary
		}

		s.log.Debug("summary extraction returned no usable sentences",
			logger.String("url", rawURL),
			logger.Int("attempt", attempt))
	}

	s.log.Warn("summary extraction exhausted retries, using fallback",
		logger.String("url", rawURL))
	return fallbackMessage(domain)
}

func (s *Summarizer) fetchText(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("extraction proxy returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProxyBody))
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// summarizeViaAPI asks a dedicated summarization endpoint for a finished
// summary. Same contract as the proxy path: non-empty string, no error.
func (s *Summarizer) summarizeViaAPI(ctx context.Context, rawURL string) string {
	if s.cfg.APIKey == "" {
		return "Summary unavailable - API key not configured"
	}

	payload, err := json.Marshal(map[string]any{
		"url":           rawURL,
		"target_length": 150,
	})
	if err != nil {
		return "Summary unavailable"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return "Summary unavailable"
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Debug("summarization API call failed", logger.String("url", rawURL), logger.Error(err))
		return "Summary unavailable"
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.Debug("summarization API returned non-2xx",
			logger.String("url", rawURL),
			logger.Int("status", resp.StatusCode))
		return "Summary unavailable"
	}

	var out struct {
		Data struct {
			Content string `json:"content"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Data.Content == "" {
		return "No summary available"
	}

	return out.Data.Content
}

// condense reduces extracted plain text to at most two sentence-like
// units of at least 20 characters each, clipped to 200 characters with
// an ellipsis marker, or closed with a period when unclipped. Returns
// empty when the text contains nothing usable.
func condense(text string) string {
	var picked []string
	for _, unit := range sentenceRe.Split(text, -1) {
		unit = strings.TrimSpace(unit)
		if len(unit) > minSentenceLen {
			picked = append(picked, unit)
		}
		if len(picked) == 2 {
			break
		}
	}

	if len(picked) == 0 {
		return ""
	}

	summary := strings.Join(picked, ". ")
	if len([]rune(summary)) > maxSummaryLen {
		return string([]rune(summary)[:maxSummaryLen]) + "..."
	}
	return summary + "."
}

func noSummaryMessage(domain string) string {
	return fmt.Sprintf("Bookmark saved from %s. (No summary available)", domain)
}

func fallbackMessage(domain string) string {
	return fmt.Sprintf("Bookmark saved from %s. This link contains content that may be useful for future reference.", domain)
}
