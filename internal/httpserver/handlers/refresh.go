package handlers

import (
	"net/http"

	"github.com/cuelens/cuelens/internal/httpserver/deps"
	"github.com/cuelens/cuelens/internal/logger"
)

// Refresh triggers a manual re-fetch of both feeds.
func Refresh(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.RefreshTrigger == nil {
			writeJSON(w, http.StatusNotImplemented, map[string]any{"error": "refresh disabled"})
			return
		}

		select {
		case d.RefreshTrigger <- struct{}{}:
			d.Logger.Info("manual feed refresh triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, map[string]any{"triggered": true})
		default:
			d.Logger.Warn("feed refresh already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, map[string]any{"triggered": false})
		}
	}
}
