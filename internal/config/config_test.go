package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("LINKSAVER_JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error when LINKSAVER_JWT_SECRET is unset")
	}
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("LINKSAVER_JWT_SECRET", "tooshort")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for short JWT secret")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LINKSAVER_JWT_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want \":8080\"", cfg.ListenPort)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL)
	}
	if !cfg.FetchPage {
		t.Error("FetchPage should default to true")
	}
	if cfg.ProxyBaseURL != "https://r.jina.ai/" {
		t.Errorf("ProxyBaseURL = %q", cfg.ProxyBaseURL)
	}
	if !strings.Contains(cfg.FaviconTmpl, "%s") {
		t.Errorf("FaviconTmpl missing domain placeholder: %q", cfg.FaviconTmpl)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr should default to empty (cache disabled), got %q", cfg.RedisAddr)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LINKSAVER_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("LINKSAVER_LISTEN_PORT", ":9999")
	t.Setenv("LINKSAVER_FETCH_PAGE", "false")
	t.Setenv("LINKSAVER_PROXY_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.ListenPort != ":9999" {
		t.Errorf("ListenPort = %q, want \":9999\"", cfg.ListenPort)
	}
	if cfg.FetchPage {
		t.Error("FetchPage override not applied")
	}
	if cfg.ProxyTimeout != 3*time.Second {
		t.Errorf("ProxyTimeout = %v, want 3s", cfg.ProxyTimeout)
	}
}

func TestLoadRejectsBadListenPort(t *testing.T) {
	t.Setenv("LINKSAVER_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("LINKSAVER_LISTEN_PORT", "8080")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for listen port without colon")
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{name: "valid duration", value: "90s", def: time.Second, expected: 90 * time.Second},
		{name: "invalid falls back to default", value: "ninety", def: time.Second, expected: time.Second},
		{name: "unset falls back to default", value: "", def: 5 * time.Second, expected: 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_DURATION", tt.value)
			}
			if got := mustDuration("TEST_DURATION", tt.def); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}
