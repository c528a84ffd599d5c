package editor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ThamannaGM/Assignment-Tracker/internal/assignment"
	"github.com/ThamannaGM/Assignment-Tracker/internal/model"
	"github.com/ThamannaGM/Assignment-Tracker/internal/storage"
	"github.com/ThamannaGM/Assignment-Tracker/internal/telemetry"
)

type Handler struct {
	ctrl   *Controller
	events telemetry.Recorder
}

func NewHandler(ctrl *Controller) *Handler {
	return &Handler{ctrl: ctrl}
}

func (h *Handler) SetRecorder(rec telemetry.Recorder) {
	h.events = rec
}

type editRequest struct {
	Assignment string `json:"assignment"`
	Field      string `json:"field"`
	Value      string `json:"value"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decode(w http.ResponseWriter, r *http.Request) (editRequest, Field, bool) {
	if r.Method != http.MethodPost {
		writeErr(w, 405, "method not allowed")
		return editRequest{}, "", false
	}
	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, 400, "bad json")
		return editRequest{}, "", false
	}
	field, ok := ParseField(req.Field)
	if !ok {
		writeErr(w, 400, ErrBadField.Error())
		return editRequest{}, "", false
	}
	return req, field, true
}

// Begin serves POST /api/edit/begin.
func (h *Handler) Begin(w http.ResponseWriter, r *http.Request) {
	req, field, ok := decode(w, r)
	if !ok {
		return
	}
	key, err := h.ctrl.Begin(model.AssignmentID(req.Assignment), field)
	switch {
	case errors.Is(err, assignment.ErrNotFound):
		writeErr(w, 404, "not found")
	case errors.Is(err, ErrEditing):
		writeErr(w, 409, err.Error())
	case err != nil:
		writeErr(w, 400, err.Error())
	default:
		writeJSON(w, 200, map[string]any{
			"session":    key,
			"enumerated": field.Enumerated(),
		})
	}
}

// Commit serves POST /api/edit/commit.
func (h *Handler) Commit(w http.ResponseWriter, r *http.Request) {
	req, field, ok := decode(w, r)
	if !ok {
		return
	}
	res, err := h.ctrl.Commit(model.AssignmentID(req.Assignment), field, req.Value)
	switch {
	case errors.Is(err, ErrNoSession):
		writeErr(w, 409, err.Error())
		return
	case errors.Is(err, assignment.ErrNotFound):
		writeErr(w, 404, "not found")
		return
	case errors.Is(err, assignment.ErrUnknownSubject):
		writeErr(w, 422, err.Error())
		return
	case err != nil && !errors.Is(err, storage.ErrPersist):
		writeErr(w, 400, err.Error())
		return
	}

	if res.BecameCompleted && h.events != nil {
		h.events.Record(telemetry.EventAssignmentCompleted, telemetry.EventMetadata{
			"id": string(res.Assignment.ID),
		})
	}
	out := map[string]any{
		"assignment": res.Assignment,
		"completed":  res.BecameCompleted,
	}
	if err != nil {
		out["warning"] = err.Error()
	}
	writeJSON(w, 200, out)
}

// Cancel serves POST /api/edit/cancel.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	req, field, ok := decode(w, r)
	if !ok {
		return
	}
	if err := h.ctrl.Cancel(model.AssignmentID(req.Assignment), field); err != nil {
		writeErr(w, 409, err.Error())
		return
	}
	writeJSON(w, 200, map[string]any{"cancelled": true})
}
