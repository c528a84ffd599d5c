package subject

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ThamannaGM/Assignment-Tracker/internal/model"
	"github.com/ThamannaGM/Assignment-Tracker/internal/storage"
)

// FileRepo persists the subject collection as a JSON array in
// subjects.json. Insertion order is the collection order.
type FileRepo struct {
	mu      sync.RWMutex
	path    string
	palette []string
	subs    []model.Subject
}

func NewFileRepo(dataDir string, palette []string) (*FileRepo, error) {
	if err := storage.EnsureDir(dataDir); err != nil {
		return nil, err
	}
	r := &FileRepo{
		path:    filepath.Join(dataDir, "subjects.json"),
		palette: palette,
	}
	// Absent or malformed data starts the registry empty.
	storage.Load(r.path, &r.subs)
	return r, nil
}

func (r *FileRepo) Create(name, color string) (model.Subject, error) {
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

	// On persist failure the in-memory registry stays authoritative; the
	// caller surfaces the warning.
	if err := storage.Save(r.path, r.subs); err != nil {
		return s, err
	}
	return s, nil
}

func (r *FileRepo) Get(id model.SubjectID) (model.Subject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.subs {
		if s.ID == id {
			return s, nil
		}
	}
	return model.Subject{}, ErrNotFound
}

func (r *FileRepo) ByName(name string) (model.Subject, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.subs {
		if s.Name == name {
			return s, true
		}
	}
	return model.Subject{}, false
}

func (r *FileRepo) List() ([]model.Subject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Subject, len(r.subs))
	copy(out, r.subs)
	return out, nil
}

// Remove deletes a subject without touching assignments that reference it:
// they keep their stale subject name and color snapshot.
func (r *FileRepo) Remove(id model.SubjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.subs {
		if s.ID == id {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return storage.Save(r.path, r.subs)
		}
	}
	return ErrNotFound
}

func (r *FileRepo) PaletteUsage() []PaletteColor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return paletteUsage(r.palette, r.subs)
}
