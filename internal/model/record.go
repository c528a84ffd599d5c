package model

import (
	"strings"
	"time"
)

type SubjectID string

type AssignmentID string

// Status is the assignment progress state. The wire strings match what the
// UI shows in its status selector.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusOngoing    Status = "Ongoing"
	StatusCompleted  Status = "Completed"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.TrimSpace(s)) {
	case StatusNotStarted:
		return StatusNotStarted, true
	case StatusOngoing:
		return StatusOngoing, true
	case StatusCompleted:
		return StatusCompleted, true
	default:
		return "", false
	}
}

type Subject struct {
	ID        SubjectID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// Assignment's Color is a snapshot of the subject's color taken when the
// subject field was last set. It is not re-derived at read time.
type Assignment struct {
	ID      AssignmentID `json:"id"`
	Subject string       `json:"subject"`
	Color   string       `json:"color"`
	Status  Status       `json:"status"`
	Name    string       `json:"name"`
	DueDate string       `json:"dueDate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
