package assignment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ThamannaGM/Assignment-Tracker/internal/clock"
	"github.com/ThamannaGM/Assignment-Tracker/internal/model"
	"github.com/ThamannaGM/Assignment-Tracker/internal/storage"
	"github.com/ThamannaGM/Assignment-Tracker/internal/telemetry"
)

type Handler struct {
	repo   Repo
	clk    clock.Clock
	events telemetry.Recorder
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo, clk: clock.RealClock{}}
}

func (h *Handler) SetClock(c clock.Clock) {
	if c != nil {
		h.clk = c
	}
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

func mutationStatus(err error) (code int, ok bool) {
	switch {
	case err == nil:
		return 0, true
	case errors.Is(err, storage.ErrPersist):
		// Mutation applied in memory; surface as a warning, not a failure.
		return 0, true
	case errors.Is(err, ErrNotFound):
		return 404, false
	case errors.Is(err, ErrUnknownSubject):
		return 422, false
	default:
		return 400, false
	}
}

func resultBody(res Result, err error) map[string]any {
	out := map[string]any{
		"assignment": res.Assignment,
		"completed":  res.BecameCompleted,
	}
	if err != nil {
		out["warning"] = err.Error()
	}
	return out
}

// /api/assignments  (collection)
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := h.repo.List()
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, items)

	case http.MethodPost:
		var in CreateInput
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		res, err := h.repo.Create(in)
		if code, ok := mutationStatus(err); !ok {
			writeErr(w, code, err.Error())
			return
		}
		h.record(telemetry.EventAssignmentCreated, telemetry.EventMetadata{
			"id":   string(res.Assignment.ID),
			"name": res.Assignment.Name,
		})
		if res.BecameCompleted {
			h.record(telemetry.EventAssignmentCompleted, telemetry.EventMetadata{
				"id": string(res.Assignment.ID),
			})
		}
		writeJSON(w, 201, resultBody(res, err))

	case http.MethodDelete:
		// Bulk clear. Confirmation is the caller's job.
		n, err := h.repo.Clear()
		if code, ok := mutationStatus(err); !ok {
			writeErr(w, code, err.Error())
			return
		}
		h.record(telemetry.EventAssignmentsCleared, telemetry.EventMetadata{"count": n})
		out := map[string]any{"cleared": n}
		if err != nil {
			out["warning"] = err.Error()
		}
		writeJSON(w, 200, out)

	default:
		writeErr(w, 405, "method not allowed")
	}
}

// /api/assignments/{id} and /api/assignments/{id}/calendar.ics
func (h *Handler) Sub(w http.ResponseWriter, r *http.Request) {
	tail := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/assignments/"), "/")
	if tail == "" {
		writeErr(w, 404, "not found")
		return
	}

	parts := strings.Split(tail, "/")
	id := model.AssignmentID(parts[0])

	if len(parts) == 2 && parts[1] == "calendar.ics" {
		h.calendarICS(w, r, id)
		return
	}
	if len(parts) != 1 {
		writeErr(w, 404, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a, err := h.repo.Get(id)
		if errors.Is(err, ErrNotFound) {
			writeErr(w, 404, "not found")
			return
		}
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, a)

	case http.MethodPatch:
		var p Patch
		if err := decodeJSON(r, &p); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		res, err := h.repo.Update(id, p)
		if code, ok := mutationStatus(err); !ok {
			writeErr(w, code, err.Error())
			return
		}
		if res.BecameCompleted {
			h.record(telemetry.EventAssignmentCompleted, telemetry.EventMetadata{
				"id": string(res.Assignment.ID),
			})
		}
		writeJSON(w, 200, resultBody(res, err))

	case http.MethodDelete:
		err := h.repo.Remove(id)
		if errors.Is(err, ErrNotFound) {
			writeErr(w, 404, "not found")
			return
		}
		if errors.Is(err, storage.ErrPersist) {
			writeJSON(w, 200, map[string]any{"ok": true, "warning": err.Error()})
			return
		}
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeErr(w, 405, "method not allowed")
	}
}

func (h *Handler) calendarICS(w http.ResponseWriter, r *http.Request, id model.AssignmentID) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}
	a, err := h.repo.Get(id)
	if errors.Is(err, ErrNotFound) {
		writeErr(w, 404, "not found")
		return
	}
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}
	ics, err := BuildAssignmentICS(a, h.clk.Now())
	if err != nil {
		writeErr(w, 400, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="assignment.ics"`)
	_, _ = w.Write([]byte(ics))
}
