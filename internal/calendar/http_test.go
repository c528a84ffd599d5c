package calendar

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThamannaGM/Assignment-Tracker/internal/clock"
	"github.com/ThamannaGM/Assignment-Tracker/internal/model"
)

type staticSource []model.Assignment

func (s staticSource) List() ([]model.Assignment, error) {
	return s, nil
}

func newClockedHandler(items ...model.Assignment) *Handler {
	h := NewHandler(newEngine(), staticSource(items))
	h.SetClock(clock.NewFakeClock(today))
	return h
}

func TestMonth_DefaultsToInjectedClock(t *testing.T) {
	h := newClockedHandler(asg("Midterm exam", "2024-02-20"))

	req := httptest.NewRequest(http.MethodGet, "/api/calendar/month", nil)
	rec := httptest.NewRecorder()
	h.Month(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Year  int    `json:"year"`
		Month int    `json:"month"`
		Label string `json:"label"`
		Cells []Cell `json:"cells"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 2024, out.Year)
	assert.Equal(t, 2, out.Month)
	assert.Equal(t, "February 2024", out.Label)
	require.Len(t, out.Cells, 4+29)

	var sawToday, sawExam bool
	for _, c := range out.Cells {
		if c.IsToday {
			sawToday = true
			assert.Equal(t, "2024-02-14", c.Date)
		}
		if c.ExamDay {
			sawExam = true
			assert.Equal(t, "2024-02-20", c.Date)
		}
	}
	assert.True(t, sawToday)
	assert.True(t, sawExam)
}

func TestMonth_RejectsBadParams(t *testing.T) {
	h := newClockedHandler()

	for _, q := range []string{"?month=13", "?month=0", "?year=twenty"} {
		req := httptest.NewRequest(http.MethodGet, "/api/calendar/month"+q, nil)
		rec := httptest.NewRecorder()
		h.Month(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestWeek_ExplicitDateAndToday(t *testing.T) {
	h := newClockedHandler(asg("Quiz prep", "2024-02-13"))

	req := httptest.NewRequest(http.MethodGet, "/api/calendar/week?date=2024-02-14", nil)
	rec := httptest.NewRecorder()
	h.Week(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Start string `json:"start"`
		Cells []Cell `json:"cells"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "2024-02-11", out.Start)
	require.Len(t, out.Cells, 7)
	assert.True(t, out.Cells[2].HasTask)
	assert.True(t, out.Cells[3].IsToday)

	req = httptest.NewRequest(http.MethodGet, "/api/calendar/week?date=Feb+14", nil)
	rec = httptest.NewRecorder()
	h.Week(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
