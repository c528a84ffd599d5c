package view

import (
	"encoding/json"
	"net/http"

	"github.com/ThamannaGM/Assignment-Tracker/internal/clock"
	"github.com/ThamannaGM/Assignment-Tracker/internal/model"
)

// Source is the read side of the assignment repository.
type Source interface {
	List() ([]model.Assignment, error)
}

type Handler struct {
	engine *Engine
	source Source
	clk    clock.Clock
}

func NewHandler(engine *Engine, source Source) *Handler {
	return &Handler{engine: engine, source: source, clk: clock.RealClock{}}
}

func (h *Handler) SetClock(c clock.Clock) {
	if c != nil {
		h.clk = c
	}
}

// Table serves /api/table?subject=&status=&q=.
func (h *Handler) Table(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	items, err := h.source.List()
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": err.Error()})
		return
	}

	q := r.URL.Query()
	rows := h.engine.Rows(items, Filter{
		Subject: q.Get("subject"),
		Status:  q.Get("status"),
		Search:  q.Get("q"),
	}, h.clk.Now())

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(rows)
}
