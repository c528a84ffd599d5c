package telemetry

import (
	"encoding/json"
	"sync"
	"time"
)

// MemoryRepository keeps events for the current session only. Signals are
// not part of the persisted state.
type MemoryRepository struct {
	mu     sync.RWMutex
	events []Event
	nextID int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (r *MemoryRepository) Record(eventType EventType, metadata EventMetadata) {
	b, err := json.Marshal(metadata)
	if err != nil {
		b = []byte("{}")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{
		ID:        r.nextID,
		Type:      eventType,
		Timestamp: time.Now(),
		Metadata:  string(b),
	})
	r.nextID++
}

// Since returns events recorded at or after the given time, oldest first.
func (r *MemoryRepository) Since(since time.Time) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Event, 0, len(r.events))
	for _, ev := range r.events {
		if ev.Timestamp.Before(since) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func (r *MemoryRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.nextID = 1
}
