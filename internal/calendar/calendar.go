// Package calendar derives day-bucketed views of the assignment collection:
// a month grid aligned to weekday columns and a 7-day week strip. Both are
// read-only derivations.
package calendar

import (
	"time"

	"github.com/ThamannaGM/Assignment-Tracker/internal/model"
)

// Cursor is the (month, year) the calendar currently shows. Navigation wraps
// across year boundaries.
type Cursor struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func CursorAt(now time.Time) Cursor {
	return Cursor{Year: now.Year(), Month: now.Month()}
}

func (c Cursor) Prev() Cursor {
	if c.Month == time.January {
		return Cursor{Year: c.Year - 1, Month: time.December}
	}
	return Cursor{Year: c.Year, Month: c.Month - 1}
}

func (c Cursor) Next() Cursor {
	if c.Month == time.December {
		return Cursor{Year: c.Year + 1, Month: time.January}
	}
	return Cursor{Year: c.Year, Month: c.Month + 1}
}

// Cell is one day of a calendar view. Leading pad cells of the month grid
// have Blank set and carry no date.
type Cell struct {
	Blank       bool               `json:"blank,omitempty"`
	Date        string             `json:"date,omitempty"`
	Day         int                `json:"day,omitempty"`
	Assignments []model.Assignment `json:"assignments,omitempty"`
	HasTask     bool               `json:"hasTask"`
	ExamDay     bool               `json:"examDay"`
	IsToday     bool               `json:"isToday"`
}

type Engine struct {
	special func(name string) bool
}

// NewEngine takes the whole-word special matcher shared with the table view.
func NewEngine(special func(name string) bool) *Engine {
	return &Engine{special: special}
}

func (e *Engine) dayCell(date time.Time, assignments []model.Assignment, todayStr string) Cell {
	dateStr := model.FormatDate(date)
	cell := Cell{
		Date:    dateStr,
		Day:     date.Day(),
		IsToday: dateStr == todayStr,
	}
	for _, a := range assignments {
		if a.DueDate != dateStr {
			continue
		}
		cell.Assignments = append(cell.Assignments, a)
		cell.HasTask = true
		if e.special != nil && e.special(a.Name) {
			cell.ExamDay = true
		}
	}
	return cell
}

// MonthGrid returns the weekday-aligned cells for one month: one blank cell
// per weekday offset of day 1 (Sunday = 0), then a cell per day through the
// last day of the month.
func (e *Engine) MonthGrid(year int, month time.Month, assignments []model.Assignment, today time.Time) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	todayStr := model.FormatDate(today)

	cells := make([]Cell, 0, int(first.Weekday())+daysInMonth)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, Cell{Blank: true})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		cells = append(cells, e.dayCell(date, assignments, todayStr))
	}
	return cells
}

// WeekStrip returns exactly 7 cells starting from the Sunday on or before
// ref. Days roll through AddDate so a week spanning a month or year boundary
// renormalizes instead of producing out-of-range day numbers.
func (e *Engine) WeekStrip(ref time.Time, assignments []model.Assignment, today time.Time) []Cell {
	start := model.DateOnly(ref).AddDate(0, 0, -int(ref.Weekday()))
	todayStr := model.FormatDate(today)

	cells := make([]Cell, 0, 7)
	for i := 0; i < 7; i++ {
		cells = append(cells, e.dayCell(start.AddDate(0, 0, i), assignments, todayStr))
	}
	return cells
}
