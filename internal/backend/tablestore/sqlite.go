package tablestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps rows in a single records table with a JSON payload
// column. It is the embedded alternative to the redis store for
// single-node deployments and tests.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed initializes) a sqlite table store.
// Pass ":memory:" for an ephemeral store.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// modernc.org/sqlite serializes writes itself; a single connection
	// avoids table-lock errors under concurrent handlers.
	db.SetMaxOpenConns(1)

	schema := `
CREATE TABLE IF NOT EXISTS records (
	table_name TEXT NOT NULL,
	id         TEXT NOT NULL,
	data       TEXT NOT NULL,
	PRIMARY KEY (table_name, id)
);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Insert stores a new row.
func (s *SQLiteStore) Insert(ctx context.Context, table string, row Row) error {
	id, ok := rowID(row)
	if !ok {
		return fmt.Errorf("row has no Id")
	}

	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to marshal row: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (table_name, id, data) VALUES (?, ?, ?)`,
		table, id, string(data))
	if err != nil {
		return fmt.Errorf("failed to insert row: %w", err)
	}
	return nil
}

// Get retrieves a single row.
func (s *SQLiteStore) Get(ctx context.Context, table, id string) (Row, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM records WHERE table_name = ? AND id = ?`,
		table, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get row: %w", err)
	}

	var row Row
	if err := json.Unmarshal([]byte(data), &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal row: %w", err)
	}
	return row, nil
}

// Update merges fields into the stored row.
func (s *SQLiteStore) Update(ctx context.Context, table, id string, fields Row) (Row, error) {
	current, err := s.Get(ctx, table, id)
	if err != nil {
		return nil, err
	}

	merged := merge(current, fields)
	data, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal row: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE records SET data = ? WHERE table_name = ? AND id = ?`,
		string(data), table, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update row: %w", err)
	}
	return merged, nil
}

// List returns all rows of a table.
func (s *SQLiteStore) List(ctx context.Context, table string) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM records WHERE table_name = ?`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to list rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []Row{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		var row Row
		if err := json.Unmarshal([]byte(data), &row); err != nil {
			continue
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return out, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
