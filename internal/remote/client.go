// Package remote is the access layer to the external record-storage
// service. It owns no business logic: it translates fetch/create/update
// intents into HTTP calls and renames fields between the service's row
// shape and the application's entity shape.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cuelens/cuelens/internal/utils"
)

const (
	headerProjectID = "X-Apper-Project-Id"
	headerPublicKey = "X-Apper-Public-Key"

	defaultTimeout = 10 * time.Second
)

// Options configures a record-store client.
type Options struct {
	BaseURL   string // ex: "https://records.example.com"
	ProjectID string
	PublicKey string
	Timeout   time.Duration // per-request timeout, defaults to 10s

	// HTTPClient overrides the transport, mostly for tests.
	HTTPClient *http.Client
}

// Client talks to the record-storage service.
type Client struct {
	base      string
	projectID string
	publicKey string
	http      *http.Client
}

// NewClient creates a record-store client.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		base:      opts.BaseURL,
		projectID: opts.ProjectID,
		publicKey: opts.PublicKey,
		http:      httpClient,
	}
}

// envelope is the record service's uniform response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Query selects and orders fetched records.
type Query struct {
	OrderBy   string // recency field, ex: "CreatedOn"
	Direction string // "ASC" | "DESC"
}

// fetchRecords requests all records of a table and decodes them into R.
// Any transport failure or missing data payload becomes a ReadError.
func fetchRecords[R any](ctx context.Context, c *Client, table string, q Query) ([]R, error) {
	path := fmt.Sprintf("/tables/%s/records", url.PathEscape(table))
	if q.OrderBy != "" {
		v := url.Values{}
		v.Set("orderBy", q.OrderBy)
		v.Set("direction", q.Direction)
		path += "?" + v.Encode()
	}

	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, &ReadError{Table: table, Message: "failed to reach record store", Err: err}
	}
	// An explicit `"data": null` arrives as the literal "null", not an
	// empty RawMessage. Treat it like an absent field: no payload.
	if !env.Success || len(env.Data) == 0 || string(env.Data) == "null" {
		msg := env.Message
		if msg == "" {
			msg = "no data received from server"
		}
		return nil, &ReadError{Table: table, Message: msg}
	}

	var rows []R
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		return nil, &ReadError{Table: table, Message: "malformed record payload", Err: err}
	}
	return rows, nil
}

// createRecord submits a new record and decodes the confirmed row.
// Identifiers are server-assigned; there is no optimistic local id.
func createRecord[R any](ctx context.Context, c *Client, table string, fields map[string]any) (R, error) {
	var zero R

	path := fmt.Sprintf("/tables/%s/records", url.PathEscape(table))
	env, err := c.do(ctx, http.MethodPost, path, fields)
	if err != nil {
		return zero, &WriteError{Table: table, Op: "create", Message: "failed to reach record store", Err: err}
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "record store rejected create"
		}
		return zero, &WriteError{Table: table, Op: "create", Message: msg}
	}

	var row R
	if err := json.Unmarshal(env.Data, &row); err != nil {
		return zero, &WriteError{Table: table, Op: "create", Message: "malformed record payload", Err: err}
	}
	return row, nil
}

// updateRecord submits a partial update keyed by identity and decodes
// the confirmed row.
func updateRecord[R any](ctx context.Context, c *Client, table, id string, fields map[string]any) (R, error) {
	var zero R

	path := fmt.Sprintf("/tables/%s/records/%s", url.PathEscape(table), url.PathEscape(id))
	env, err := c.do(ctx, http.MethodPatch, path, fields)
	if err != nil {
		return zero, &WriteError{Table: table, Op: "update", Message: "failed to reach record store", Err: err}
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "record store rejected update"
		}
		return zero, &WriteError{Table: table, Op: "update", Message: msg}
	}

	var row R
	if err := json.Unmarshal(env.Data, &row); err != nil {
		return zero, &WriteError{Table: table, Op: "update", Message: "malformed record payload", Err: err}
	}
	return row, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerProjectID, c.projectID)
	req.Header.Set(headerPublicKey, c.publicKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer utils.Close(resp.Body)

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &env, nil
}
