package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linksaver/linksaver/internal/auth"
	"github.com/linksaver/linksaver/internal/enrich"
	"github.com/linksaver/linksaver/internal/logger"
	"github.com/linksaver/linksaver/internal/store/sqlite"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Store    *sqlite.Store    // bookmark + user persistence
	Enricher *enrich.Enricher // URL -> PageMetadata
	Auth     *auth.Service    // token issue/verify

	RedisClient *redis.Client // nil when the cache is disabled
}
