// Package backend implements a local record-table service speaking the
// same wire contract as the hosted record store: one envelope shape, rows
// under remote field names, server-assigned identifiers. It backs dev
// deployments and integration tests.
package backend

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"

	"github.com/cuelens/cuelens/internal/backend/tablestore"
	"github.com/cuelens/cuelens/internal/logger"
)

// Service is the record-table HTTP service.
type Service struct {
	store   tablestore.Store
	log     logger.Logger
	now     func() time.Time
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewService creates the record-table service over the given store.
func NewService(store tablestore.Store, log logger.Logger) *Service {
	return &Service{
		store:   store,
		log:     log,
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// WithClock overrides the clock used for ids and CreatedOn stamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Routes returns the service router, mountable under any prefix.
func (s *Service) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/tables/{table}/records", s.listRecords)
	r.Post("/tables/{table}/records", s.createRecord)
	r.Patch("/tables/{table}/records/{id}", s.updateRecord)
	return r
}

// newID issues a ULID. Lexicographic order is creation order, which gives
// recency scans a natural sort key.
func (s *Service) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(s.now()), s.entropy).String()
}

func (s *Service) listRecords(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	rows, err := s.store.List(r.Context(), table)
	if err != nil {
		s.log.Error("failed to list records",
			logger.String("table", table),
			logger.Error(err))
		writeFailure(w, http.StatusInternalServerError, "failed to list records")
		return
	}

	orderBy := r.URL.Query().Get("orderBy")
	if orderBy != "" {
		desc := r.URL.Query().Get("direction") != "ASC"
		sortRows(rows, orderBy, desc)
	}

	writeSuccess(w, rows)
}

func (s *Service) createRecord(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	var fields tablestore.Row
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeFailure(w, http.StatusBadRequest, "malformed record body")
		return
	}

	row := make(tablestore.Row, len(fields)+2)
	for k, v := range fields {
		row[k] = v
	}
	row["Id"] = s.newID()
	if _, ok := row["CreatedOn"]; !ok {
		row["CreatedOn"] = s.now().UTC().Format(time.RFC3339Nano)
	}

	if err := s.store.Insert(r.Context(), table, row); err != nil {
		s.log.Error("failed to create record",
			logger.String("table", table),
			logger.Error(err))
		writeFailure(w, http.StatusInternalServerError, "failed to create record")
		return
	}

	s.log.Debug("record created",
		logger.String("table", table),
		logger.String("id", row["Id"].(string)))
	writeSuccess(w, row)
}

func (s *Service) updateRecord(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	id := chi.URLParam(r, "id")

	var fields tablestore.Row
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeFailure(w, http.StatusBadRequest, "malformed record body")
		return
	}

	row, err := s.store.Update(r.Context(), table, id, fields)
	if err != nil {
		if errors.Is(err, tablestore.ErrRowNotFound) {
			writeFailure(w, http.StatusNotFound, "record not found")
			return
		}
		s.log.Error("failed to update record",
			logger.String("table", table),
			logger.String("id", id),
			logger.Error(err))
		writeFailure(w, http.StatusInternalServerError, "failed to update record")
		return
	}

	writeSuccess(w, row)
}

// sortRows orders rows by a field's string form. ULIDs and RFC 3339
// timestamps both sort correctly this way; rows missing the field go last.
func sortRows(rows []tablestore.Row, field string, desc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, aok := fieldString(rows[i], field)
		b, bok := fieldString(rows[j], field)
		if aok != bok {
			return aok
		}
		if desc {
			return a > b
		}
		return a < b
	})
}

func fieldString(row tablestore.Row, field string) (string, bool) {
	v, ok := row[field]
	if !ok || v == nil {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	case json.Number:
		return val.String(), true
	default:
		return "", false
	}
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Message: message})
}
