package domain

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxTitleLen is the clip bound for derived titles.
const maxTitleLen = 100

var docExtRe = regexp.MustCompile(`(?i)\.(html|php|aspx?)$`)

// TitleFromURL derives a human-readable title from a validated URL.
// It takes the last non-empty path segment (or the hostname when the
// path is empty), turns separators into spaces, strips common document
// extensions and title-cases each word. The result is never empty: it
// falls back to the hostname, and is clipped to 100 characters with an
// ellipsis marker.
func TitleFromURL(u *url.URL) string {
	host := Domain(u)

	seg := lastPathSegment(u.Path)
	if seg == "" {
		seg = host
	}

	title := humanizeSegment(seg)
	if title == "" {
		title = humanizeSegment(host)
	}
	if title == "" {
		title = host
	}

	return ClipText(title, maxTitleLen)
}

func lastPathSegment(path string) string {
	parts := strings.Split(path, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}

func humanizeSegment(seg string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(seg)
	s = docExtRe.ReplaceAllString(s, "")

	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}

	return strings.Join(words, " ")
}

// ClipText truncates s to at most limit characters, appending an
// ellipsis marker when something was cut.
func ClipText(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
