package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/linksaver/linksaver/internal/auth"
	"github.com/linksaver/linksaver/internal/config"
	"github.com/linksaver/linksaver/internal/enrich"
	"github.com/linksaver/linksaver/internal/httpserver"
	"github.com/linksaver/linksaver/internal/httpserver/deps"
	"github.com/linksaver/linksaver/internal/logger"
	"github.com/linksaver/linksaver/internal/redis"
	redisstore "github.com/linksaver/linksaver/internal/store/redis"
	"github.com/linksaver/linksaver/internal/store/sqlite"
	"github.com/linksaver/linksaver/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	store       *sqlite.Store
	redisClient *goredis.Client
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", cfg.DBPath, err)
	}
	loggerClient.Info("database ready", logger.String("path", cfg.DBPath))

	// Redis is optional. When the address is unset or the connection
	// fails, the service runs without the enrichment cache and without
	// persisted token revocation.
	var (
		redisClient *goredis.Client
		cache       *redisstore.Cache
	)
	if cfg.RedisAddr != "" {
		redisClient, err = redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
		}, loggerClient)
		if err != nil {
			loggerClient.Warn("redis unavailable, running without cache", logger.Error(err))
			redisClient = nil
		} else {
			cache = redisstore.NewCache(redisClient, cfg.CacheTTL, loggerClient)
		}
	} else {
		loggerClient.Info("redis not configured, enrichment cache disabled")
	}

	denylist := enrich.DefaultDenylist()
	if cfg.DenylistFile != "" {
		denylist, err = enrich.LoadDenylist(cfg.DenylistFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load denylist %q: %w", cfg.DenylistFile, err)
		}
		loggerClient.Info("summary denylist loaded", logger.String("file", cfg.DenylistFile))
	}

	summarizer := enrich.NewSummarizer(enrich.SummarizerConfig{
		ProxyBaseURL: cfg.ProxyBaseURL,
		ProxyTimeout: cfg.ProxyTimeout,
		APIURL:       cfg.SummaryAPIURL,
		APIKey:       cfg.SummaryAPIKey,
		Denylist:     denylist,
	}, loggerClient)

	opts := []enrich.Option{enrich.WithFaviconService(cfg.FaviconTmpl)}
	if cfg.FetchPage {
		opts = append(opts, enrich.WithFetcher(enrich.NewFetcher(cfg.FetchTimeout, loggerClient)))
	}
	if cache != nil {
		opts = append(opts, enrich.WithCache(cache))
	}
	enricher := enrich.NewEnricher(summarizer, loggerClient, opts...)

	var revoker auth.TokenRevoker
	if cache != nil {
		revoker = cache
	}
	authService, err := auth.NewService(cfg.JWTSecret, cfg.TokenTTL, store, revoker, loggerClient)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	d := deps.Deps{
		Logger:      loggerClient,
		StartTime:   time.Now(),
		Version:     version.Version,
		Commit:      version.Commit,
		BuildDate:   version.BuildDate,
		GoVersion:   version.GoVersion,
		Store:       store,
		Enricher:    enricher,
		Auth:        authService,
		RedisClient: redisClient,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		store:       store,
		redisClient: redisClient,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting LinkSaver v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("LinkSaver %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	if err := a.store.Close(); err != nil {
		a.logger.Warnf("failed to close database: %v", err)
	}

	a.logger.Info("✅ LinkSaver stopped cleanly")
	return nil
}
