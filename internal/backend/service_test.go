package backend

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuelens/cuelens/internal/backend/tablestore"
	"github.com/cuelens/cuelens/internal/logger"
)

func newTestService(t *testing.T) (*Service, *httptest.Server) {
	t.Helper()
	store, err := tablestore.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := NewService(store, logger.NewNop())
	srv := httptest.NewServer(svc.Routes())
	t.Cleanup(srv.Close)
	return svc, srv
}

func postJSON(t *testing.T, url string, body map[string]any) map[string]any {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var env map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestCreateAssignsIDAndCreatedOn(t *testing.T) {
	_, srv := newTestService(t)

	env := postJSON(t, srv.URL+"/tables/content_item/records", map[string]any{
		"title": "First",
		"likes": 0,
	})
	require.Equal(t, true, env["success"])

	row := env["data"].(map[string]any)
	assert.NotEmpty(t, row["Id"])
	assert.NotEmpty(t, row["CreatedOn"])
	assert.Equal(t, "First", row["title"])
}

func TestListOrdersByCreatedOnDescending(t *testing.T) {
	clock := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	store, err := tablestore.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := NewService(store, logger.NewNop()).WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})
	srv := httptest.NewServer(svc.Routes())
	t.Cleanup(srv.Close)

	for _, title := range []string{"first", "second", "third"} {
		env := postJSON(t, srv.URL+"/tables/content_item/records", map[string]any{"title": title})
		require.Equal(t, true, env["success"])
	}

	resp, err := http.Get(srv.URL + "/tables/content_item/records?orderBy=CreatedOn&direction=DESC")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var env struct {
		Success bool                 `json:"success"`
		Data    []map[string]any     `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.True(t, env.Success)
	require.Len(t, env.Data, 3)
	assert.Equal(t, "third", env.Data[0]["title"])
	assert.Equal(t, "second", env.Data[1]["title"])
	assert.Equal(t, "first", env.Data[2]["title"])
}

func TestUpdateMergesAndReturnsRow(t *testing.T) {
	_, srv := newTestService(t)

	env := postJSON(t, srv.URL+"/tables/content_item/records", map[string]any{
		"title": "Piece", "is_saved": false,
	})
	id := env["data"].(map[string]any)["Id"].(string)

	body, _ := json.Marshal(map[string]any{"is_saved": true})
	req, err := http.NewRequest(http.MethodPatch,
		srv.URL+"/tables/content_item/records/"+id, bytes.NewReader(body))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, true, out["success"])

	row := out["data"].(map[string]any)
	assert.Equal(t, true, row["is_saved"])
	assert.Equal(t, "Piece", row["title"])
}

func TestUpdateUnknownRecordFails(t *testing.T) {
	_, srv := newTestService(t)

	body := bytes.NewReader([]byte(`{"is_saved":true}`))
	req, err := http.NewRequest(http.MethodPatch,
		srv.URL+"/tables/content_item/records/ghost", body)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var env map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "record not found", env["message"])
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	_, srv := newTestService(t)

	resp, err := http.Post(srv.URL+"/tables/content_item/records",
		"application/json", bytes.NewReader([]byte("{broken")))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestULIDsSortByIssueOrder(t *testing.T) {
	svc, _ := newTestService(t)

	a := svc.newID()
	b := svc.newID()
	assert.Less(t, a, b)
}
