package subject

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ThamannaGM/Assignment-Tracker/internal/model"
	"github.com/ThamannaGM/Assignment-Tracker/internal/storage"
	"github.com/ThamannaGM/Assignment-Tracker/internal/telemetry"
)

type Handler struct {
	repo   Repo
	events telemetry.Recorder
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) SetRecorder(rec telemetry.Recorder) {
	h.events = rec
}

func (h *Handler) record(t telemetry.EventType, md telemetry.EventMetadata) {
	if h.events != nil {
		h.events.Record(t, md)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

// /api/subjects  (collection)
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		subs, err := h.repo.List()
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, subs)

	case http.MethodPost:
		var in struct {
			Name  string `json:"name"`
			Color string `json:"color"`
		}
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}

		s, err := h.repo.Create(in.Name, in.Color)
		if err != nil && !errors.Is(err, storage.ErrPersist) {
			switch {
			case errors.Is(err, ErrDuplicateName), errors.Is(err, ErrDuplicateColor):
				writeErr(w, 409, err.Error())
			default:
				writeErr(w, 400, err.Error())
			}
			return
		}

		h.record(telemetry.EventSubjectCreated, telemetry.EventMetadata{
			"id":   string(s.ID),
			"name": s.Name,
		})

		out := map[string]any{"subject": s}
		if err != nil {
			out["warning"] = err.Error()
		}
		writeJSON(w, 201, out)

	default:
		writeErr(w, 405, "method not allowed")
	}
}

// /api/subjects/{id} and /api/subjects/palette
func (h *Handler) Sub(w http.ResponseWriter, r *http.Request) {
	tail := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/subjects/"), "/")
	if tail == "" {
		writeErr(w, 404, "not found")
		return
	}

	if tail == "palette" {
		if r.Method != http.MethodGet {
			writeErr(w, 405, "method not allowed")
			return
		}
		writeJSON(w, 200, h.repo.PaletteUsage())
		return
	}

	id := model.SubjectID(tail)
	switch r.Method {
	case http.MethodGet:
		s, err := h.repo.Get(id)
		if errors.Is(err, ErrNotFound) {
			writeErr(w, 404, "not found")
			return
		}
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, s)

	case http.MethodDelete:
		err := h.repo.Remove(id)
		if errors.Is(err, ErrNotFound) {
			writeErr(w, 404, "not found")
			return
		}
		if errors.Is(err, storage.ErrPersist) {
			h.record(telemetry.EventSubjectRemoved, telemetry.EventMetadata{"id": tail})
			writeJSON(w, 200, map[string]any{"ok": true, "warning": err.Error()})
			return
		}
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		h.record(telemetry.EventSubjectRemoved, telemetry.EventMetadata{"id": tail})
		w.WriteHeader(http.StatusNoContent)

	default:
		writeErr(w, 405, "method not allowed")
	}
}
