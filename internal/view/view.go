// Package view derives the filtered table rows from the assignment
// collection. It is pure: no persistence, no mutation of the inputs.
package view

import (
	"regexp"
	"strings"
	"time"

	"github.com/ThamannaGM/Assignment-Tracker/internal/model"
)

type Urgency string

const (
	UrgencyOverdue Urgency = "overdue"
	UrgencyDueSoon Urgency = "due-soon"
	UrgencyNormal  Urgency = "normal"
)

// Filter narrows the table. All three conditions apply as a conjunction.
// Empty or "all" means "don't care" for the exact-match fields.
type Filter struct {
	Subject string
	Status  string
	Search  string
}

type Row struct {
	Assignment model.Assignment `json:"assignment"`
	DaysLeft   int              `json:"daysLeft"`
	Urgency    Urgency          `json:"urgency"`
	Special    bool             `json:"special"`
}

type Engine struct {
	special     *regexp.Regexp
	dueSoonDays int
}

// NewEngine compiles the special-keyword matcher. Keywords match as whole
// words, case-insensitively ("Midterm review" is special, "Examine" is not).
func NewEngine(keywords []string, dueSoonDays int) *Engine {
	quoted := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k != "" {
			quoted = append(quoted, regexp.QuoteMeta(k))
		}
	}
	var re *regexp.Regexp
	if len(quoted) > 0 {
		re = regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
	}
	if dueSoonDays <= 0 {
		dueSoonDays = 3
	}
	return &Engine{special: re, dueSoonDays: dueSoonDays}
}

func (e *Engine) Special(name string) bool {
	return e.special != nil && e.special.MatchString(name)
}

// DaysLeft is the whole-day distance from now's date to the due date:
// 0 today, 1 tomorrow, -1 yesterday. The second return is false when the
// due date cannot be parsed.
func DaysLeft(dueDate string, now time.Time) (int, bool) {
	due, err := model.ParseDate(dueDate)
	if err != nil {
		return 0, false
	}
	days := int(model.DateOnly(due).Sub(model.DateOnly(now)) / (24 * time.Hour))
	return days, true
}

func (e *Engine) classify(daysLeft int) Urgency {
	switch {
	case daysLeft < 0:
		return UrgencyOverdue
	case daysLeft <= e.dueSoonDays:
		return UrgencyDueSoon
	default:
		return UrgencyNormal
	}
}

func matchesExact(filter, value string) bool {
	filter = strings.TrimSpace(filter)
	return filter == "" || strings.EqualFold(filter, "all") || filter == value
}

// Rows applies the filter and annotates each surviving assignment, keeping
// the original collection order.
func (e *Engine) Rows(assignments []model.Assignment, f Filter, now time.Time) []Row {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]Row, 0, len(assignments))
	for _, a := range assignments {
		if !matchesExact(f.Subject, a.Subject) {
			continue
		}
		if !matchesExact(f.Status, string(a.Status)) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(a.Name), search) {
			continue
		}

		days, ok := DaysLeft(a.DueDate, now)
		urgency := UrgencyNormal
		if ok {
			urgency = e.classify(days)
		}
		out = append(out, Row{
			Assignment: a,
			DaysLeft:   days,
			Urgency:    urgency,
			Special:    e.Special(a.Name),
		})
	}
	return out
}
