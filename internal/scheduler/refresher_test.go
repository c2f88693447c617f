package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuelens/cuelens/internal/curation"
	"github.com/cuelens/cuelens/internal/domain"
	"github.com/cuelens/cuelens/internal/logger"
	"github.com/cuelens/cuelens/internal/remote"
)

type contentAdapter struct {
	items []domain.ContentItem
	err   error
	calls int
}

func (a *contentAdapter) FetchAll(ctx context.Context) ([]domain.ContentItem, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	return a.items, nil
}

func (a *contentAdapter) Create(ctx context.Context, draft remote.ContentDraft) (domain.ContentItem, error) {
	return domain.ContentItem{}, errors.New("not scripted")
}

func (a *contentAdapter) Update(ctx context.Context, id string, fields map[string]any) (domain.ContentItem, error) {
	return domain.ContentItem{}, errors.New("not scripted")
}

type collectionAdapter struct {
	cols []domain.Collection
	err  error
}

func (a *collectionAdapter) FetchAll(ctx context.Context) ([]domain.Collection, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.cols, nil
}

func (a *collectionAdapter) Create(ctx context.Context, draft remote.CollectionDraft) (domain.Collection, error) {
	return domain.Collection{}, errors.New("not scripted")
}

func (a *collectionAdapter) Update(ctx context.Context, id string, fields map[string]any) (domain.Collection, error) {
	return domain.Collection{}, errors.New("not scripted")
}

func newRefresher(content *contentAdapter, cols *collectionAdapter, trigger chan struct{}) (*Refresher, *curation.ContentFeed, *curation.CollectionFeed) {
	cf := curation.NewContentFeed(content)
	lf := curation.NewCollectionFeed(cols, nil)
	return NewRefresher(cf, lf, logger.NewNop(), time.Hour, trigger), cf, lf
}

func TestRefreshPopulatesBothFeeds(t *testing.T) {
	content := &contentAdapter{items: []domain.ContentItem{{ID: "c1"}, {ID: "c2"}}}
	cols := &collectionAdapter{cols: []domain.Collection{{ID: "l1"}}}
	r, cf, lf := newRefresher(content, cols, nil)

	require.NoError(t, r.Refresh(context.Background()))
	assert.Len(t, cf.Snapshot().All, 2)
	assert.Len(t, lf.Snapshot().All, 1)
}

func TestRefreshContinuesPastContentFailure(t *testing.T) {
	content := &contentAdapter{err: errors.New("store down")}
	cols := &collectionAdapter{cols: []domain.Collection{{ID: "l1"}}}
	r, cf, lf := newRefresher(content, cols, nil)

	err := r.Refresh(context.Background())
	require.Error(t, err)

	// Collections still refreshed despite the content failure.
	assert.Len(t, lf.Snapshot().All, 1)
	assert.NotEmpty(t, cf.Snapshot().Err)
}

func TestStartFailsWhenInitialRefreshFails(t *testing.T) {
	content := &contentAdapter{err: errors.New("store down")}
	cols := &collectionAdapter{}
	r, _, _ := newRefresher(content, cols, nil)
	defer r.Stop()

	assert.Error(t, r.Start(context.Background()))
}

func TestManualTriggerRefreshes(t *testing.T) {
	content := &contentAdapter{items: []domain.ContentItem{{ID: "c1"}}}
	cols := &collectionAdapter{}
	trigger := make(chan struct{})
	r, cf, _ := newRefresher(content, cols, trigger)

	require.NoError(t, r.Start(context.Background()))
	defer r.Stop()

	content.items = append(content.items, domain.ContentItem{ID: "c2"})
	trigger <- struct{}{}

	deadline := time.After(2 * time.Second)
	for len(cf.Snapshot().All) < 2 {
		select {
		case <-deadline:
			t.Fatal("manual trigger did not refresh the feed in time")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
