package calendar

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

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

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// Month serves /api/calendar/month?year=&month= (month 1-12, defaults to
// the current month).
func (h *Handler) Month(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}

	now := h.clk.Now()
	cur := CursorAt(now)

	q := r.URL.Query()
	if raw := q.Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			writeErr(w, 400, "year must be a number")
			return
		}
		cur.Year = y
	}
	if raw := q.Get("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			writeErr(w, 400, "month must be 1-12")
			return
		}
		cur.Month = time.Month(m)
	}

	items, err := h.source.List()
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}

	writeJSON(w, 200, map[string]any{
		"year":  cur.Year,
		"month": int(cur.Month),
		"label": fmt.Sprintf("%s %d", cur.Month, cur.Year),
		"cells": h.engine.MonthGrid(cur.Year, cur.Month, items, now),
	})
}

// Week serves /api/calendar/week?date=YYYY-MM-DD (defaults to today).
func (h *Handler) Week(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}

	now := h.clk.Now()
	ref := now
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := model.ParseDate(raw)
		if err != nil {
			writeErr(w, 400, "date must be YYYY-MM-DD")
			return
		}
		ref = parsed
	}

	items, err := h.source.List()
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}

	cells := h.engine.WeekStrip(ref, items, now)
	writeJSON(w, 200, map[string]any{
		"start": cells[0].Date,
		"cells": cells,
	})
}
