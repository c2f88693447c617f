package tablestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps rows as JSON values with a per-table id set, so a
// table scan is one SMEMBERS plus pipelined GETs.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a redis-backed table store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func rowKey(table, id string) string {
	return fmt.Sprintf("cuelens:table:%s:row:%s", table, id)
}

func idsKey(table string) string {
	return fmt.Sprintf("cuelens:table:%s:ids", table)
}

// Insert stores a new row and registers its id in the table set.
func (s *RedisStore) Insert(ctx context.Context, table string, row Row) error {
	id, ok := rowID(row)
	if !ok {
		return fmt.Errorf("row has no Id")
	}

	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to marshal row: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, rowKey(table, id), data, 0)
	pipe.SAdd(ctx, idsKey(table), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert row: %w", err)
	}
	return nil
}

// Get retrieves a single row.
func (s *RedisStore) Get(ctx context.Context, table, id string) (Row, error) {
	data, err := s.client.Get(ctx, rowKey(table, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRowNotFound
		}
		return nil, fmt.Errorf("failed to get row: %w", err)
	}

	var row Row
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal row: %w", err)
	}
	return row, nil
}

// Update merges fields into the stored row.
func (s *RedisStore) Update(ctx context.Context, table, id string, fields Row) (Row, error) {
	current, err := s.Get(ctx, table, id)
	if err != nil {
		return nil, err
	}

	merged := merge(current, fields)
	data, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal row: %w", err)
	}

	if err := s.client.Set(ctx, rowKey(table, id), data, 0).Err(); err != nil {
		return nil, fmt.Errorf("failed to update row: %w", err)
	}
	return merged, nil
}

// List returns all rows of a table. Rows whose value vanished between the
// set read and the fetch are skipped.
func (s *RedisStore) List(ctx context.Context, table string) ([]Row, error) {
	ids, err := s.client.SMembers(ctx, idsKey(table)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list row ids: %w", err)
	}

	if len(ids) == 0 {
		return []Row{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, rowKey(table, id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to fetch rows: %w", err)
	}

	rows := make([]Row, 0, len(ids))
	for _, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			continue
		}
		var row Row
		if err := json.Unmarshal(data, &row); err != nil {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Close releases the redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
