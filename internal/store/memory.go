package store

import "github.com/kmowery/tally/internal/models"

// MemoryBackend keeps the collection in memory. Used for ephemeral runs
// and as a test double.
type MemoryBackend struct {
	tasks []models.Task
	saves int
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{tasks: []models.Task{}}
}

// Load returns the last saved collection
func (b *MemoryBackend) Load() ([]models.Task, error) {
	out := make([]models.Task, len(b.tasks))
	copy(out, b.tasks)
	return out, nil
}

// Save replaces the stored collection
func (b *MemoryBackend) Save(tasks []models.Task) error {
	b.tasks = make([]models.Task, len(tasks))
	copy(b.tasks, tasks)
	b.saves++
	return nil
}

// Saves reports how many times Save has been called
func (b *MemoryBackend) Saves() int {
	return b.saves
}
