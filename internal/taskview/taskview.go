// Package taskview holds the pure derived views over a task snapshot:
// display-mode selection and the achievements aggregation.
package taskview

import "github.com/kmowery/tally/internal/models"

// Mode names a presentation policy for the task list
type Mode int

const (
	// ModeHome shows all tasks read-only
	ModeHome Mode = iota
	// ModeNavigator shows all tasks with edit and delete enabled
	ModeNavigator
)

// Options describes which actions a mode exposes
type Options struct {
	CanEdit   bool
	CanDelete bool
}

// ModeOptions returns the action set for a mode
func ModeOptions(mode Mode) Options {
	if mode == ModeNavigator {
		return Options{CanEdit: true, CanDelete: true}
	}
	return Options{}
}

// Select returns the tasks to present for a mode, in store order. Neither
// mode filters by completion state; that is the achievements view's
// concern.
func Select(tasks []models.Task, mode Mode) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	return out
}
