package assignment

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/ThamannaGM/Assignment-Tracker/internal/model"
)

var (
	ErrNotFound     = errors.New("assignment not found")
	ErrEmptySubject = errors.New("assignment subject is required")
	ErrEmptyName    = errors.New("assignment name is required")
	ErrEmptyDueDate = errors.New("assignment due date is required")
	ErrBadDueDate   = errors.New("due date must be YYYY-MM-DD")
	ErrBadStatus    = errors.New("unknown status")

	// ErrUnknownSubject is a referential miss: the named subject does not
	// exist, so no color can be resolved. The prior record is untouched.
	ErrUnknownSubject = errors.New("unknown subject")
)

// SubjectLookup resolves a subject by name so assignments can snapshot its
// color. The subject registry implements it.
type SubjectLookup interface {
	ByName(name string) (model.Subject, bool)
}

type CreateInput struct {
	Subject string `json:"subject"`
	Status  string `json:"status"`
	Name    string `json:"name"`
	DueDate string `json:"dueDate"`
}

// Patch represents a partial update.
// nil pointer => "no change"
// empty string => "keep the previous value" (a blank edit never overwrites)
type Patch struct {
	Subject *string `json:"subject,omitempty"`
	Status  *string `json:"status,omitempty"`
	Name    *string `json:"name,omitempty"`
	DueDate *string `json:"dueDate,omitempty"`
}

// Result carries the record plus the "became completed" signal the
// presentation layer uses to fire celebratory effects.
type Result struct {
	Assignment      model.Assignment `json:"assignment"`
	BecameCompleted bool             `json:"completed"`
}

type Repo interface {
	Create(in CreateInput) (Result, error)
	Get(id model.AssignmentID) (model.Assignment, error)
	Update(id model.AssignmentID, p Patch) (Result, error)
	Remove(id model.AssignmentID) error
	Clear() (int, error)
	List() ([]model.Assignment, error)
}

func newID() model.AssignmentID {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return model.AssignmentID("asg_" + hex.EncodeToString(b[:]))
}

// newRecord validates the input and resolves the color snapshot from the
// chosen subject. Nothing is mutated on failure.
func newRecord(in CreateInput, subjects SubjectLookup) (model.Assignment, error) {
	subjectName := strings.TrimSpace(in.Subject)
	name := strings.TrimSpace(in.Name)
	due := strings.TrimSpace(in.DueDate)

	if subjectName == "" {
		return model.Assignment{}, ErrEmptySubject
	}
	if name == "" {
		return model.Assignment{}, ErrEmptyName
	}
	if due == "" {
		return model.Assignment{}, ErrEmptyDueDate
	}
	if _, err := model.ParseDate(due); err != nil {
		return model.Assignment{}, ErrBadDueDate
	}

	status := model.StatusNotStarted
	if s := strings.TrimSpace(in.Status); s != "" {
		parsed, ok := model.ParseStatus(s)
		if !ok {
			return model.Assignment{}, ErrBadStatus
		}
		status = parsed
	}

	sub, ok := subjects.ByName(subjectName)
	if !ok {
		return model.Assignment{}, ErrUnknownSubject
	}

	return model.Assignment{
		Subject: subjectName,
		Color:   sub.Color,
		Status:  status,
		Name:    name,
		DueDate: due,
	}, nil
}

// applyPatch edits a copy of the record. Reassigning the subject re-resolves
// the color snapshot; an unknown subject fails without partial mutation.
// Setting status to Completed raises the signal whether or not the previous
// status differed.
func applyPatch(a *model.Assignment, p Patch, subjects SubjectLookup) (becameCompleted bool, err error) {
	if p.Subject != nil {
		if v := strings.TrimSpace(*p.Subject); v != "" {
			sub, ok := subjects.ByName(v)
			if !ok {
				return false, ErrUnknownSubject
			}
			a.Subject = v
			a.Color = sub.Color
		}
	}
	if p.Status != nil {
		if v := strings.TrimSpace(*p.Status); v != "" {
			st, ok := model.ParseStatus(v)
			if !ok {
				return false, ErrBadStatus
			}
			a.Status = st
			becameCompleted = st == model.StatusCompleted
		}
	}
	if p.Name != nil {
		if v := strings.TrimSpace(*p.Name); v != "" {
			a.Name = v
		}
	}
	if p.DueDate != nil {
		if v := strings.TrimSpace(*p.DueDate); v != "" {
			if _, err := model.ParseDate(v); err != nil {
				return false, ErrBadDueDate
			}
			a.DueDate = v
		}
	}
	return becameCompleted, nil
}
