package store

import (
	"path/filepath"
	"testing"

	"github.com/kmowery/tally/internal/models"
)

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.db")

	backend, err := OpenSQLiteAt(path)
	if err != nil {
		t.Fatalf("OpenSQLiteAt failed: %v", err)
	}

	// Missing key loads as an empty collection
	tasks, err := backend.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty collection, got %d tasks", len(tasks))
	}

	saved := []models.Task{
		{ID: 2, Title: "Task 2", Text: "later", Tags: []string{"work"}, Priority: models.PriorityHigh, Points: 5},
		{ID: 1, Title: "Task 1", Text: "earlier", Tags: []string{}, Priority: models.PriorityMedium},
	}
	if err := backend.Save(saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := backend.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopen and verify the collection survived
	backend, err = OpenSQLiteAt(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer backend.Close()

	loaded, err := backend.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(loaded))
	}
	if loaded[0].ID != 2 || loaded[0].Text != "later" || loaded[0].Points != 5 {
		t.Errorf("first task mismatch: %+v", loaded[0])
	}
	if loaded[1].ID != 1 || loaded[1].Priority != models.PriorityMedium {
		t.Errorf("second task mismatch: %+v", loaded[1])
	}
}

func TestSQLiteSaveReplaces(t *testing.T) {
	backend, err := OpenSQLiteAt(filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("OpenSQLiteAt failed: %v", err)
	}
	defer backend.Close()

	if err := backend.Save([]models.Task{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := backend.Save([]models.Task{{ID: 2, Text: "b"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := backend.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != 2 {
		t.Errorf("expected only task 2, got %+v", loaded)
	}
}
