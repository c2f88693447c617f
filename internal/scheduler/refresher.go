// Package scheduler keeps the feeds warm: it re-fetches both entity
// domains from the record store on a fixed interval and on manual
// trigger.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/cuelens/cuelens/internal/curation"
	"github.com/cuelens/cuelens/internal/logger"
)

// Refresher handles periodic refreshing of both feeds.
type Refresher struct {
	content       *curation.ContentFeed
	collections   *curation.CollectionFeed
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewRefresher creates a refresher over both feeds. manualTrigger may be
// shared with the HTTP refresh endpoint.
func NewRefresher(
	content *curation.ContentFeed,
	collections *curation.CollectionFeed,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Refresher {
	return &Refresher{
		content:       content,
		collections:   collections,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start performs one synchronous refresh, then refreshes periodically in
// the background until Stop or context cancellation. The loop starts even
// when the initial refresh fails, so a later tick can recover; the
// initial error is still returned for the caller to judge.
func (r *Refresher) Start(ctx context.Context) error {
	var initialErr error
	if err := r.Refresh(ctx); err != nil {
		initialErr = fmt.Errorf("initial feed refresh failed: %w", err)
	}

	ticker := time.NewTicker(r.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := r.Refresh(ctx); err != nil {
					r.logger.Error("failed to refresh feeds",
						logger.Error(err))
				}
			case <-r.manualTrigger:
				r.logger.Info("manual feed refresh triggered")
				if err := r.Refresh(ctx); err != nil {
					r.logger.Error("failed to refresh feeds",
						logger.Error(err))
				}
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return initialErr
}

// Stop stops the refresher.
func (r *Refresher) Stop() {
	close(r.stopCh)
}

// Refresh re-fetches both domains. A failure in one domain does not stop
// the other; the feeds record their own error state either way.
func (r *Refresher) Refresh(ctx context.Context) error {
	r.logger.Debug("refreshing feeds from record store")
	start := time.Now()

	var firstErr error
	if err := r.content.Refresh(ctx); err != nil {
		firstErr = fmt.Errorf("content refresh: %w", err)
	}
	if err := r.collections.Refresh(ctx); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("collection refresh: %w", err)
	}

	if firstErr != nil {
		return firstErr
	}

	r.logger.Info("feeds refreshed",
		logger.Int("content_items", len(r.content.Snapshot().All)),
		logger.Int("collections", len(r.collections.Snapshot().All)),
		logger.Duration("elapsed", time.Since(start)))
	return nil
}
