// Package tablestore persists record rows for the local record-table
// service. Rows are schemaless JSON objects keyed by table and id, which
// mirrors how the hosted record store exposes them.
package tablestore

import (
	"context"
	"errors"
)

// Row is one record as stored: remote field names, JSON-compatible values.
type Row map[string]any

// ErrRowNotFound is returned by Update and Get for unknown identities.
var ErrRowNotFound = errors.New("row not found")

// Store is the persistence surface of the record-table service.
type Store interface {
	// Insert stores a new row. The row must carry its "Id" field.
	Insert(ctx context.Context, table string, row Row) error

	// Get retrieves a single row by identity.
	Get(ctx context.Context, table, id string) (Row, error)

	// Update merges fields into an existing row and returns the merged
	// result. Returns ErrRowNotFound for unknown identities.
	Update(ctx context.Context, table, id string, fields Row) (Row, error)

	// List returns all rows of a table in unspecified order.
	List(ctx context.Context, table string) ([]Row, error)

	// Close releases the underlying connection.
	Close() error
}

// rowID extracts the identity field from a row.
func rowID(row Row) (string, bool) {
	id, ok := row["Id"].(string)
	return id, ok && id != ""
}

// merge overlays fields onto base without touching either input.
func merge(base, fields Row) Row {
	out := make(Row, len(base)+len(fields))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range fields {
		if k == "Id" {
			continue // identity is immutable
		}
		out[k] = v
	}
	return out
}
