package store

import (
	"reflect"
	"testing"

	"github.com/kmowery/tally/internal/models"
)

func newTestStore(t *testing.T) (*Store, *MemoryBackend) {
	t.Helper()
	backend := NewMemoryBackend()
	s, err := New(backend)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s, backend
}

func task(id int64, text string) models.Task {
	return models.Task{ID: id, Text: text, Tags: []string{}, Priority: models.PriorityMedium}
}

func TestCreateOrdering(t *testing.T) {
	s, _ := newTestStore(t)

	for i, text := range []string{"first", "second", "third"} {
		if err := s.Create(task(int64(i+1), text)); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got := s.List()
	if len(got) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(got))
	}

	// Newest first
	for i, want := range []string{"third", "second", "first"} {
		if got[i].Text != want {
			t.Errorf("position %d: got %q, want %q", i, got[i].Text, want)
		}
	}
}

func TestTogglePairIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Create(task(1, "a")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	before := s.List()[0]

	if err := s.Toggle(1); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !s.List()[0].Completed {
		t.Error("expected task completed after first toggle")
	}

	if err := s.Toggle(1); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	after := s.List()[0]

	if !reflect.DeepEqual(before, after) {
		t.Errorf("toggle pair changed the task: before %+v, after %+v", before, after)
	}
}

func TestUpdatePreservesPosition(t *testing.T) {
	s, _ := newTestStore(t)
	for i := int64(1); i <= 3; i++ {
		if err := s.Create(task(i, "t")); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	updated := task(2, "rewritten")
	updated.Points = 7
	updated.Priority = models.PriorityHigh
	if err := s.Update(updated); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got := s.List()
	if got[1].ID != 2 {
		t.Errorf("expected id 2 to stay in the middle, found id %d", got[1].ID)
	}
	if got[1].Text != "rewritten" || got[1].Points != 7 || got[1].Priority != models.PriorityHigh {
		t.Errorf("updated fields not applied: %+v", got[1])
	}
}

func TestMissingIDIsNoOp(t *testing.T) {
	s, backend := newTestStore(t)
	if err := s.Create(task(1, "a")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	before := s.List()
	saves := backend.Saves()

	if err := s.Delete(9999); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := s.Toggle(9999); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if err := s.Update(task(9999, "ghost")); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if !reflect.DeepEqual(before, s.List()) {
		t.Error("collection changed by operations on a missing id")
	}
	if backend.Saves() != saves {
		t.Error("no-op operations should not write to the backend")
	}
}

func TestDelete(t *testing.T) {
	s, _ := newTestStore(t)
	for i := int64(1); i <= 3; i++ {
		if err := s.Create(task(i, "t")); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	if err := s.Delete(2); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got := s.List()
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}
	if got[0].ID != 3 || got[1].ID != 1 {
		t.Errorf("unexpected order after delete: %d, %d", got[0].ID, got[1].ID)
	}
}

func TestMutatorsPersistSynchronously(t *testing.T) {
	s, backend := newTestStore(t)

	if err := s.Create(task(1, "a")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	persisted, _ := backend.Load()
	if len(persisted) != 1 {
		t.Fatalf("create not persisted: %d tasks in backend", len(persisted))
	}

	if err := s.Toggle(1); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	persisted, _ = backend.Load()
	if !persisted[0].Completed {
		t.Error("toggle not persisted before returning")
	}
}

func TestReloadFromBackend(t *testing.T) {
	backend := NewMemoryBackend()
	s, err := New(backend)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := s.Create(task(5, "survives")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A second store over the same backend sees the committed collection
	s2, err := New(backend)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	got := s2.List()
	if len(got) != 1 || got[0].Text != "survives" {
		t.Errorf("reloaded collection = %+v", got)
	}

	if id := s2.NextID(); id <= 5 {
		t.Errorf("NextID %d not above highest persisted id", id)
	}
}

func TestNextIDMonotonic(t *testing.T) {
	s, _ := newTestStore(t)

	var last int64
	for i := 0; i < 100; i++ {
		id := s.NextID()
		if id <= last {
			t.Fatalf("NextID not strictly increasing: %d after %d", id, last)
		}
		last = id
	}
}

func TestListReturnsSnapshot(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Create(task(1, "a")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	snapshot := s.List()
	snapshot[0].Text = "mutated"

	if s.List()[0].Text != "a" {
		t.Error("mutating a snapshot leaked into the store")
	}
}
