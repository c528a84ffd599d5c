package telemetry

import (
	"encoding/json"
	"net/http"
	"time"
)

type Handler struct {
	repo *MemoryRepository
}

func NewHandler(repo *MemoryRepository) *Handler {
	return &Handler{repo: repo}
}

// Events serves /api/events?since=RFC3339. Without "since" it returns the
// whole session log.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	since := time.Time{}
	if raw := r.URL.Query().Get("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": "since must be RFC3339"})
			return
		}
		since = t
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(h.repo.Since(since))
}
