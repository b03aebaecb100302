package domain

import (
	"net/url"
	"strings"
	"testing"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("failed to parse test URL %q: %v", raw, err)
	}
	return u
}

func TestTitleFromURL(t *testing.T) {
	tests := []struct {
		name     string
		rawURL   string
		expected string
	}{
		{
			name:     "hyphenated article with html extension",
			rawURL:   "https://example.com/some-article-title.html",
			expected: "Some Article Title",
		},
		{
			name:     "underscores and php extension",
			rawURL:   "https://example.com/blog/my_first_post.php",
			expected: "My First Post",
		},
		{
			name:     "aspx extension stripped case-insensitively",
			rawURL:   "https://example.com/Report.ASPX",
			expected: "Report",
		},
		{
			name:     "empty path falls back to hostname",
			rawURL:   "https://www.example.com/",
			expected: "Example.com",
		},
		{
			name:     "trailing slash uses last non-empty segment",
			rawURL:   "https://example.com/docs/getting-started/",
			expected: "Getting Started",
		},
		{
			name:     "www stripped from hostname fallback",
			rawURL:   "https://www.golang.org",
			expected: "Golang.org",
		},
		{
			name:     "segment reduced to nothing falls back to hostname",
			rawURL:   "https://example.com/-.html",
			expected: "Example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TitleFromURL(mustParse(t, tt.rawURL))
			if got != tt.expected {
				t.Errorf("TitleFromURL() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTitleFromURLNeverEmpty(t *testing.T) {
	rawURLs := []string{
		"https://example.com",
		"https://example.com/",
		"https://example.com/---",
		"https://example.com/a/b/c",
		"https://www.example.com/_.html",
	}

	for _, raw := range rawURLs {
		if got := TitleFromURL(mustParse(t, raw)); got == "" {
			t.Errorf("TitleFromURL(%q) returned empty string", raw)
		}
	}
}

func TestTitleFromURLClipsLongSegments(t *testing.T) {
	long := strings.Repeat("verylongword-", 20)
	u := mustParse(t, "https://example.com/"+long)

	got := TitleFromURL(u)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected clipped title to end with ellipsis, got %q", got)
	}
	if len([]rune(got)) != maxTitleLen+3 {
		t.Errorf("clipped title length = %d, want %d", len([]rune(got)), maxTitleLen+3)
	}
}

func TestClipText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{name: "under limit unchanged", input: "short", limit: 10, expected: "short"},
		{name: "at limit unchanged", input: "exact", limit: 5, expected: "exact"},
		{name: "over limit clipped", input: "abcdefgh", limit: 5, expected: "abcde..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClipText(tt.input, tt.limit); got != tt.expected {
				t.Errorf("ClipText(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.expected)
			}
		})
	}
}
