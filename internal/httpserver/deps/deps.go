package deps

import (
	"time"

	"github.com/cuelens/cuelens/internal/curation"
	"github.com/cuelens/cuelens/internal/domain"
	"github.com/cuelens/cuelens/internal/logger"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time         // for testing, defaults to time.Now
	Content        *curation.ContentFeed    // content-item feed
	Collections    *curation.CollectionFeed // collection feed
	Catalog        []domain.Category        // category catalog exposed to clients
	RefreshTrigger chan struct{}            // channel to trigger a manual feed refresh (nil disables the endpoint)
}
