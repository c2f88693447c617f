package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cuelens/cuelens/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

// Readyz reports readiness once the content feed has left its initial
// loading state without a stored error.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := d.Content.Snapshot()
		ready := !snap.Loading && snap.Err == ""

		w.Header().Set("Content-Type", "application/json")
		if !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}

		_ = json.NewEncoder(w).Encode(readyzResponse{Ready: ready})
	}
}
