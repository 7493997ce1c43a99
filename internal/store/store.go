package store

import (
	"fmt"
	"time"

	"github.com/kmowery/tally/internal/models"
)

// Backend is the durable map the task collection is persisted to
type Backend interface {
	Load() ([]models.Task, error)
	Save([]models.Task) error
}

// Store owns the ordered task collection. All mutators commit the updated
// collection to the backend before returning; a failed save leaves the
// in-memory collection unchanged.
type Store struct {
	backend Backend
	tasks   []models.Task
	lastID  int64
}

// New creates a store over the given backend and loads the persisted
// collection. A backend with no stored collection yields an empty store.
func New(backend Backend) (*Store, error) {
	tasks, err := backend.Load()
	if err != nil {
		return nil, fmt.Errorf("loading task collection: %w", err)
	}

	s := &Store{backend: backend, tasks: tasks}
	for _, t := range tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	return s, nil
}

// NextID returns a fresh task id. Ids are time-derived but strictly
// increasing per store instance, so two creates in the same millisecond
// cannot collide.
func (s *Store) NextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Len returns the current collection size
func (s *Store) Len() int {
	return len(s.tasks)
}

// List returns a snapshot of the collection in stored order, newest first
func (s *Store) List() []models.Task {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Create prepends a task to the collection. The caller assigns the id;
// no uniqueness check is made on any other field.
func (s *Store) Create(task models.Task) error {
	updated := make([]models.Task, 0, len(s.tasks)+1)
	updated = append(updated, task)
	updated = append(updated, s.tasks...)

	if err := s.backend.Save(updated); err != nil {
		return fmt.Errorf("saving task collection: %w", err)
	}
	s.tasks = updated
	if task.ID > s.lastID {
		s.lastID = task.ID
	}
	return nil
}

// Toggle flips the completed flag of the task with the given id. A missing
// id is a no-op, not an error.
func (s *Store) Toggle(id int64) error {
	return s.replace(id, func(t models.Task) models.Task {
		t.Completed = !t.Completed
		return t
	})
}

// Update replaces the task whose id matches task.ID, preserving its
// position in the collection. A missing id is a no-op.
func (s *Store) Update(task models.Task) error {
	return s.replace(task.ID, func(models.Task) models.Task {
		return task
	})
}

// Delete removes the task with the given id. A missing id is a no-op.
func (s *Store) Delete(id int64) error {
	idx := s.find(id)
	if idx < 0 {
		return nil
	}

	updated := make([]models.Task, 0, len(s.tasks)-1)
	updated = append(updated, s.tasks[:idx]...)
	updated = append(updated, s.tasks[idx+1:]...)

	if err := s.backend.Save(updated); err != nil {
		return fmt.Errorf("saving task collection: %w", err)
	}
	s.tasks = updated
	return nil
}

func (s *Store) replace(id int64, fn func(models.Task) models.Task) error {
	idx := s.find(id)
	if idx < 0 {
		return nil
	}

	updated := make([]models.Task, len(s.tasks))
	copy(updated, s.tasks)
	updated[idx] = fn(updated[idx])

	if err := s.backend.Save(updated); err != nil {
		return fmt.Errorf("saving task collection: %w", err)
	}
	s.tasks = updated
	return nil
}

func (s *Store) find(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
