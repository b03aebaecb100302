package domain

import (
	"errors"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid https", input: "https://example.com/page", wantErr: false},
		{name: "valid http", input: "http://example.com", wantErr: false},
		{name: "surrounding whitespace trimmed", input: "  https://example.com  ", wantErr: false},
		{name: "bare word", input: "not-a-url", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "missing scheme", input: "example.com/page", wantErr: true},
		{name: "unsupported scheme", input: "ftp://example.com/file", wantErr: true},
		{name: "scheme only", input: "https://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := ValidateURL(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidateURL(%q) expected error, got %v", tt.input, u)
				}
				if !errors.Is(err, ErrInvalidURL) {
					t.Errorf("ValidateURL(%q) error = %v, want ErrInvalidURL", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateURL(%q) unexpected error: %v", tt.input, err)
			}
			if u.Host == "" {
				t.Errorf("ValidateURL(%q) returned URL without host", tt.input)
			}
		})
	}
}

func TestDomain(t *testing.T) {
	tests := []struct {
		rawURL   string
		expected string
	}{
		{rawURL: "https://www.example.com/page", expected: "example.com"},
		{rawURL: "https://example.com", expected: "example.com"},
		{rawURL: "https://blog.example.com", expected: "blog.example.com"},
	}

	for _, tt := range tests {
		u, err := ValidateURL(tt.rawURL)
		if err != nil {
			t.Fatalf("ValidateURL(%q): %v", tt.rawURL, err)
		}
		if got := Domain(u); got != tt.expected {
			t.Errorf("Domain(%q) = %q, want %q", tt.rawURL, got, tt.expected)
		}
	}
}
