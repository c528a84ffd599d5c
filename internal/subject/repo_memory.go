package subject

import (
	"strings"
	"sync"
	"time"

	"github.com/ThamannaGM/Assignment-Tracker/internal/model"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	palette []string
	subs    []model.Subject
}

func NewMemoryRepo(palette []string) *MemoryRepo {
	return &MemoryRepo{palette: palette}
}

func (r *MemoryRepo) Create(name, color string) (model.Subject, error) {
	name = strings.TrimSpace(name)
	color = strings.TrimSpace(color)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := validateNew(r.subs, r.palette, name, color); err != nil {
		return model.Subject{}, err
	}
	s := model.Subject{
		ID:        newID(),
		Name:      name,
		Color:     color,
		CreatedAt: time.Now(),
	}
	r.subs = append(r.subs, s)
	return s, nil
}

func (r *MemoryRepo) Get(id model.SubjectID) (model.Subject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.subs {
		if s.ID == id {
			return s, nil
		}
	}
	return model.Subject{}, ErrNotFound
}

func (r *MemoryRepo) ByName(name string) (model.Subject, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.subs {
		if s.Name == name {
			return s, true
		}
	}
	return model.Subject{}, false
}

func (r *MemoryRepo) List() ([]model.Subject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Subject, len(r.subs))
	copy(out, r.subs)
	return out, nil
}

func (r *MemoryRepo) Remove(id model.SubjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.subs {
		if s.ID == id {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) PaletteUsage() []PaletteColor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return paletteUsage(r.palette, r.subs)
}
