package assignment

import (
	"sync"
	"time"

	"github.com/ThamannaGM/Assignment-Tracker/internal/model"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	subjects SubjectLookup
	items    []model.Assignment
}

func NewMemoryRepo(subjects SubjectLookup) *MemoryRepo {
	return &MemoryRepo{subjects: subjects}
}

func (r *MemoryRepo) Create(in CreateInput) (Result, error) {
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
	return Result{Assignment: a, BecameCompleted: a.Status == model.StatusCompleted}, nil
}

func (r *MemoryRepo) Get(id model.AssignmentID) (model.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.items {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Assignment{}, ErrNotFound
}

func (r *MemoryRepo) Update(id model.AssignmentID, p Patch) (Result, error) {
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
		return Result{Assignment: a, BecameCompleted: completed}, nil
	}
	return Result{}, ErrNotFound
}

func (r *MemoryRepo) Remove(id model.AssignmentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.items {
		if a.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) Clear() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.items)
	r.items = nil
	return n, nil
}

func (r *MemoryRepo) List() ([]model.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Assignment, len(r.items))
	copy(out, r.items)
	return out, nil
}
