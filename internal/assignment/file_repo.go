package assignment

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/ThamannaGM/Assignment-Tracker/internal/model"
	"github.com/ThamannaGM/Assignment-Tracker/internal/storage"
)

// FileRepo persists the assignment collection as a JSON array in
// assignments.json, in insertion order. Every mutation writes back before
// returning; a persist failure keeps the in-memory collection authoritative
// and is returned wrapped in storage.ErrPersist for the caller to surface.
type FileRepo struct {
	mu       sync.RWMutex
	path     string
	subjects SubjectLookup
	items    []model.Assignment
}

func NewFileRepo(dataDir string, subjects SubjectLookup) (*FileRepo, error) {
	if err := storage.EnsureDir(dataDir); err != nil {
		return nil, err
	}
	r := &FileRepo{
		path:     filepath.Join(dataDir, "assignments.json"),
		subjects: subjects,
	}
	storage.Load(r.path, &r.items)
	return r, nil
}

func (r *FileRepo) Create(in CreateInput) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, err := newRecord(in, r.subjects)
	if err != nil {
		return Result{}, err
	}
	now := time.Now()
	a.ID = newID()
	a.CreatedAt = now
	a.UpdatedAt = now

	r.items = append(r.items, a)
	res := Result{Assignment: a, BecameCompleted: a.Status == model.StatusCompleted}
	if err := storage.Save(r.path, r.items); err != nil {
		return res, err
	}
	return res, nil
}

func (r *FileRepo) Get(id model.AssignmentID) (model.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.items {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Assignment{}, ErrNotFound
}

func (r *FileRepo) Update(id model.AssignmentID, p Patch) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.items {
		if a.ID != id {
			continue
		}
		completed, err := applyPatch(&a, p, r.subjects)
		if err != nil {
			return Result{}, err
		}
		a.UpdatedAt = time.Now()
		r.items[i] = a

		res := Result{Assignment: a, BecameCompleted: completed}
		if err := storage.Save(r.path, r.items); err != nil {
			return res, err
		}
		return res, nil
	}
	return Result{}, ErrNotFound
}

func (r *FileRepo) Remove(id model.AssignmentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.items {
		if a.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return storage.Save(r.path, r.items)
		}
	}
	return ErrNotFound
}

func (r *FileRepo) Clear() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.items)
	r.items = nil
	if err := storage.Save(r.path, []model.Assignment{}); err != nil {
		return n, err
	}
	return n, nil
}

func (r *FileRepo) List() ([]model.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Assignment, len(r.items))
	copy(out, r.items)
	return out, nil
}
