package models

import (
	"encoding/json"
	"strings"
)

// Priority is a task's urgency level
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority maps a raw string to a Priority, falling back to medium
// for anything unrecognized
func ParsePriority(s string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Task represents a single task
type Task struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Text        string   `json:"text"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	Tags        []string `json:"tags"`
	Priority    Priority `json:"priority"`
	Points      int      `json:"points"`
}

// SplitTags splits a comma-delimited tag string, trimming whitespace from
// each element. Order is preserved and duplicates are kept.
func SplitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	tags := make([]string, len(parts))
	for i, p := range parts {
		tags[i] = strings.TrimSpace(p)
	}
	return tags
}

// TagList accepts either a JSON array of strings or a single
// comma-delimited string
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		for i, s := range arr {
			arr[i] = strings.TrimSpace(s)
		}
		*t = arr
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = SplitTags(s)
		return nil
	}

	// Unusable value; treat as no tags rather than failing the record
	*t = nil
	return nil
}

// PointValue coerces a points field to a non-negative integer. Non-numeric
// or negative input becomes 0.
type PointValue int

func (p *PointValue) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err != nil || n < 0 {
		*p = 0
		return nil
	}
	*p = PointValue(int(n))
	return nil
}

// Fields is the partially-trusted task shape produced by the extraction
// service or an edit form, before defaulting
type Fields struct {
	Text        string     `json:"text"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Tags        TagList    `json:"tags"`
	Points      PointValue `json:"points"`
}

// Normalize produces a complete valid Task from partial input. Absent or
// malformed fields fall back to defaults; it never fails. ID and Title
// are left zero for the caller to assign.
func Normalize(f Fields) Task {
	text := strings.TrimSpace(f.Text)
	if text == "" {
		text = "Untitled Task"
	}

	tags := []string(f.Tags)
	if tags == nil {
		tags = []string{}
	}

	return Task{
		Text:        text,
		Description: f.Description,
		Completed:   false,
		Tags:        tags,
		Priority:    ParsePriority(f.Priority),
		Points:      int(f.Points),
	}
}
