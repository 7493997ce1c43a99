package taskview

import "github.com/kmowery/tally/internal/models"

// TotalPoints sums the points of all completed tasks
func TotalPoints(tasks []models.Task) int {
	total := 0
	for _, t := range tasks {
		if t.Completed {
			total += t.Points
		}
	}
	return total
}

// Completed returns the completed tasks in store order
func Completed(tasks []models.Task) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}
