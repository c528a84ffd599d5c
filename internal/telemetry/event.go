// Package telemetry records the signals the presentation layer consumes for
// decorative effects (confetti on completion, celebration on clear). Events
// are advisory: recording one never blocks or fails a mutation.
package telemetry

import "time"

type EventType string

const (
	EventSubjectCreated      EventType = "subject_created"
	EventSubjectRemoved      EventType = "subject_removed"
	EventAssignmentCreated   EventType = "assignment_created"
	EventAssignmentCompleted EventType = "assignment_completed"
	EventAssignmentsCleared  EventType = "assignments_cleared"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]any

// Recorder is the write side handlers emit through.
type Recorder interface {
	Record(eventType EventType, metadata EventMetadata)
}
