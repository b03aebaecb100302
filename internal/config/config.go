package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Persistence
	DBPath string // path to the sqlite database file

	// Auth
	JWTSecret string        // signing secret for access tokens (required)
	TokenTTL  time.Duration // access token lifetime (default: 24h)

	// Enrichment
	FetchPage     bool          // true => fetch the target page for metadata, false => URL-derived metadata only
	FetchTimeout  time.Duration // per-attempt timeout for the page fetch
	ProxyBaseURL  string        // readable-text extraction proxy, target URL is appended
	ProxyTimeout  time.Duration // per-attempt timeout for the extraction proxy
	SummaryAPIURL string        // optional dedicated summarization endpoint (bypasses the sentence heuristic)
	SummaryAPIKey string        // credential for SummaryAPIURL
	FaviconTmpl   string        // favicon-by-domain service template, %s is the domain
	DenylistFile  string        // optional YAML file overriding the built-in summary denylist

	// Redis (optional, empty addr disables the enrichment cache)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDialTimeout    time.Duration
	RedisReadTimeout    time.Duration
	RedisWriteTimeout   time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration
	RedisRetryInterval  time.Duration
	CacheTTL            time.Duration // TTL for cached enrichment results
}

// Load builds the configuration from the environment. Missing or
// invalid required values are returned as an error instead of
// crashing at load time; the caller decides what to do with it.
func Load() (*Config, error) {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("LINKSAVER_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LINKSAVER_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LINKSAVER_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LINKSAVER_PRETTY_LOG", false),

		// Persistence
		DBPath: getenv("LINKSAVER_DB_PATH", "linksaver.db"),

		// Auth
		JWTSecret: os.Getenv("LINKSAVER_JWT_SECRET"),
		TokenTTL:  mustDuration("LINKSAVER_TOKEN_TTL", 24*time.Hour),

		// Enrichment
		FetchPage:     mustBool("LINKSAVER_FETCH_PAGE", true),
		FetchTimeout:  mustDuration("LINKSAVER_FETCH_TIMEOUT", 10*time.Second),
		ProxyBaseURL:  getenv("LINKSAVER_PROXY_BASE_URL", "https://r.jina.ai/"),
		ProxyTimeout:  mustDuration("LINKSAVER_PROXY_TIMEOUT", 15*time.Second),
		SummaryAPIURL: getenv("LINKSAVER_SUMMARY_API_URL", ""),
		SummaryAPIKey: getenv("LINKSAVER_SUMMARY_API_KEY", ""),
		FaviconTmpl:   getenv("LINKSAVER_FAVICON_TMPL", "https://www.google.com/s2/favicons?domain=%s&sz=32"),
		DenylistFile:  getenv("LINKSAVER_DENYLIST_FILE", ""),

		// Redis settings
		RedisAddr:           getenv("LINKSAVER_REDIS_ADDR", ""),
		RedisUser:           getenv("LINKSAVER_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("LINKSAVER_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("LINKSAVER_REDIS_DB", 0),
		RedisDialTimeout:    mustDuration("LINKSAVER_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("LINKSAVER_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("LINKSAVER_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("LINKSAVER_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("LINKSAVER_REDIS_CONNECT_TIMEOUT", 15*time.Second),
		RedisRetryInterval:  mustDuration("LINKSAVER_REDIS_RETRY_INTERVAL", 2*time.Second),
		CacheTTL:            mustDuration("LINKSAVER_CACHE_TTL", 24*time.Hour),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("required environment variable LINKSAVER_JWT_SECRET is not set")
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("LINKSAVER_JWT_SECRET must be at least 16 characters")
	}
	if !strings.HasPrefix(c.ListenPort, ":") {
		return fmt.Errorf("LINKSAVER_LISTEN_PORT must look like \":8080\", got %q", c.ListenPort)
	}
	if c.FaviconTmpl != "" && !strings.Contains(c.FaviconTmpl, "%s") {
		return fmt.Errorf("LINKSAVER_FAVICON_TMPL must contain a %%s domain placeholder")
	}
	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
