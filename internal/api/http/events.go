package http

import (
	"encoding/json"
	"net/http"

	syncx "github.com/brewnote/brewnote/internal/sync"
)

// ListEventsHandler exposes the audit log to admins.
func ListEventsHandler(events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := events.Recent(r.Context(), parseIntDefault(r.URL.Query().Get("limit"), 100))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}
