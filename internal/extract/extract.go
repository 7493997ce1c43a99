// Package extract turns free-text task descriptions into structured task
// records by delegating to an external text-understanding service.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kmowery/tally/internal/models"
)

// ErrUnparseable is returned when the service response is not the expected
// structured shape. The caller must not create a task from it.
var ErrUnparseable = errors.New("extraction response is not parseable")

// Invoker is the text-understanding service boundary
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Collection is the part of the task store the adapter needs to assign
// ids and positional titles
type Collection interface {
	NextID() int64
	Len() int
}

const promptTemplate = `Extract task details from the following input: %q. ` +
	`Return a JSON object with "text", "description", "priority", "tags", and "points".`

// Adapter converts raw user text into normalized task records
type Adapter struct {
	invoker Invoker
	coll    Collection
}

// NewAdapter creates an adapter over the given service and collection
func NewAdapter(invoker Invoker, coll Collection) *Adapter {
	return &Adapter{invoker: invoker, coll: coll}
}

// ExtractTask asks the service to structure rawText and returns a
// normalized task with a fresh id and a positional title. An unusable
// response yields ErrUnparseable and no task; the caller keeps the input
// for retry.
func (a *Adapter) ExtractTask(ctx context.Context, rawText string) (models.Task, error) {
	// Positional label from the collection size at call time; a display
	// convenience, not a uniqueness guarantee
	title := fmt.Sprintf("Task %d", a.coll.Len()+1)

	prompt := fmt.Sprintf(promptTemplate, rawText)

	response, err := a.invoker.Invoke(ctx, prompt)
	if err != nil {
		return models.Task{}, fmt.Errorf("invoking extraction service: %w", err)
	}

	fields, err := parseFields(response)
	if err != nil {
		return models.Task{}, err
	}

	task := models.Normalize(fields)
	task.ID = a.coll.NextID()
	task.Title = title
	return task, nil
}

// parseFields decodes the service response as the expected structured
// shape. Responses wrapped in a Markdown code fence are unwrapped first;
// anything else unexpected is rejected outright.
func parseFields(response string) (models.Fields, error) {
	body := stripCodeFence(response)

	var fields models.Fields
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return models.Fields{}, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	return fields, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
