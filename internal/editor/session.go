// Package editor tracks inline-edit sessions over assignment fields. A
// session is just a (assignment, field) key; the edited value only exists
// client-side until commit, so the controller never holds draft text.
package editor

import (
	"errors"
	"sync"

	"github.com/ThamannaGM/Assignment-Tracker/internal/assignment"
	"github.com/ThamannaGM/Assignment-Tracker/internal/model"
)

var (
	ErrBadField  = errors.New("unknown editable field")
	ErrEditing   = errors.New("field is already being edited")
	ErrNoSession = errors.New("no edit session open for this field")
)

type Field string

const (
	FieldName    Field = "name"
	FieldDueDate Field = "dueDate"
	FieldStatus  Field = "status"
	FieldSubject Field = "subject"
)

// Enumerated reports whether the field takes one of a fixed set of values
// (rendered as a picker) rather than free text.
func (f Field) Enumerated() bool {
	return f == FieldStatus || f == FieldSubject
}

func ParseField(s string) (Field, bool) {
	switch Field(s) {
	case FieldName, FieldDueDate, FieldStatus, FieldSubject:
		return Field(s), true
	default:
		return "", false
	}
}

type SessionKey struct {
	Assignment model.AssignmentID `json:"assignment"`
	Field      Field              `json:"field"`
}

// Controller serializes edit sessions and applies commits through the
// assignment repository. One session per (assignment, field) at a time;
// different fields of the same assignment may be edited concurrently.
type Controller struct {
	mu   sync.Mutex
	open map[SessionKey]struct{}
	repo assignment.Repo
}

func NewController(repo assignment.Repo) *Controller {
	return &Controller{open: map[SessionKey]struct{}{}, repo: repo}
}

// Begin opens a session. The assignment must exist; a second Begin for the
// same key fails with ErrEditing until the first is committed or cancelled.
func (c *Controller) Begin(id model.AssignmentID, field Field) (SessionKey, error) {
	if _, ok := ParseField(string(field)); !ok {
		return SessionKey{}, ErrBadField
	}
	if _, err := c.repo.Get(id); err != nil {
		return SessionKey{}, err
	}

	key := SessionKey{Assignment: id, Field: field}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.open[key]; busy {
		return SessionKey{}, ErrEditing
	}
	c.open[key] = struct{}{}
	return key, nil
}

// Commit closes the session and applies the value as a single-field patch.
// The session closes whether or not the update succeeds; a blank value keeps
// the previous one (the repository treats it as "no overwrite").
func (c *Controller) Commit(id model.AssignmentID, field Field, value string) (assignment.Result, error) {
	key := SessionKey{Assignment: id, Field: field}

	c.mu.Lock()
	_, busy := c.open[key]
	delete(c.open, key)
	c.mu.Unlock()

	if !busy {
		return assignment.Result{}, ErrNoSession
	}

	var p assignment.Patch
	switch field {
	case FieldName:
		p.Name = &value
	case FieldDueDate:
		p.DueDate = &value
	case FieldStatus:
		p.Status = &value
	case FieldSubject:
		p.Subject = &value
	default:
		return assignment.Result{}, ErrBadField
	}
	return c.repo.Update(id, p)
}

// Cancel closes the session without touching the record.
func (c *Controller) Cancel(id model.AssignmentID, field Field) error {
	key := SessionKey{Assignment: id, Field: field}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.open[key]; !busy {
		return ErrNoSession
	}
	delete(c.open, key)
	return nil
}

// Open reports the currently open sessions, for diagnostics.
func (c *Controller) Open() []SessionKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]SessionKey, 0, len(c.open))
	for k := range c.open {
		out = append(out, k)
	}
	return out
}
