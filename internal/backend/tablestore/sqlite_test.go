package tablestore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteInsertAndGet(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	row := Row{"Id": "r1", "title": "First", "likes": float64(3)}
	require.NoError(t, s.Insert(ctx, "content_item", row))

	got, err := s.Get(ctx, "content_item", "r1")
	require.NoError(t, err)
	assert.Equal(t, "First", got["title"])
	assert.Equal(t, float64(3), got["likes"])
}

func TestSQLiteGetUnknownRow(t *testing.T) {
	s := newSQLiteStore(t)

	_, err := s.Get(context.Background(), "content_item", "ghost")
	assert.True(t, errors.Is(err, ErrRowNotFound))
}

func TestSQLiteInsertRequiresID(t *testing.T) {
	s := newSQLiteStore(t)
	err := s.Insert(context.Background(), "content_item", Row{"title": "No id"})
	assert.Error(t, err)
}

func TestSQLiteUpdateMergesFields(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, "content_item", Row{
		"Id": "r1", "title": "Keep me", "is_saved": false, "likes": float64(1),
	}))

	merged, err := s.Update(ctx, "content_item", "r1", Row{"is_saved": true})
	require.NoError(t, err)
	assert.Equal(t, true, merged["is_saved"])
	assert.Equal(t, "Keep me", merged["title"])
	assert.Equal(t, float64(1), merged["likes"])

	// Identity cannot be rewritten by an update.
	merged, err = s.Update(ctx, "content_item", "r1", Row{"Id": "evil", "likes": float64(2)})
	require.NoError(t, err)
	assert.Equal(t, "r1", merged["Id"])
	assert.Equal(t, float64(2), merged["likes"])
}

func TestSQLiteUpdateUnknownRow(t *testing.T) {
	s := newSQLiteStore(t)

	_, err := s.Update(context.Background(), "content_item", "ghost", Row{"is_saved": true})
	assert.True(t, errors.Is(err, ErrRowNotFound))
}

func TestSQLiteListScopedToTable(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, "content_item", Row{"Id": "a"}))
	require.NoError(t, s.Insert(ctx, "content_item", Row{"Id": "b"}))
	require.NoError(t, s.Insert(ctx, "collection", Row{"Id": "c"}))

	rows, err := s.List(ctx, "content_item")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = s.List(ctx, "collection")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = s.List(ctx, "empty_table")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSQLiteDuplicateInsertFails(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, "content_item", Row{"Id": "dup"}))
	assert.Error(t, s.Insert(ctx, "content_item", Row{"Id": "dup"}))
}
