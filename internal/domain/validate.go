package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateURL parses a candidate string as an absolute http(s) URL.
// Failure returns ErrInvalidURL and must abort enrichment before any
// network call is made.
func ValidateURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidURL)
	}

	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	return u, nil
}

// Domain returns the hostname of u with a leading "www." stripped.
// It is the human-facing name used in descriptions and fallback
// summaries.
func Domain(u *url.URL) string {
	return strings.TrimPrefix(u.Hostname(), "www.")
}
