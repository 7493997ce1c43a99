package extract

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/kmowery/tally/internal/models"
	"github.com/kmowery/tally/internal/store"
)

// fakeInvoker returns a canned response and records the prompt it saw
type fakeInvoker struct {
	response string
	err      error
	prompt   string
}

func (f *fakeInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func newTestAdapter(t *testing.T, invoker Invoker) (*Adapter, *store.Store) {
	t.Helper()
	s, err := store.New(store.NewMemoryBackend())
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	return NewAdapter(invoker, s), s
}

func TestExtractTask(t *testing.T) {
	invoker := &fakeInvoker{
		response: `{"text":"Buy groceries","description":"weekly run","priority":"high","tags":"shopping, food","points":10}`,
	}
	adapter, _ := newTestAdapter(t, invoker)

	task, err := adapter.ExtractTask(context.Background(), "Buy groceries, high priority, tags: shopping, food, 10 points")
	if err != nil {
		t.Fatalf("ExtractTask failed: %v", err)
	}

	if !strings.Contains(invoker.prompt, "Buy groceries, high priority") {
		t.Errorf("prompt does not embed the raw text: %q", invoker.prompt)
	}
	if task.Text != "Buy groceries" {
		t.Errorf("text = %q", task.Text)
	}
	if task.Priority != models.PriorityHigh {
		t.Errorf("priority = %q", task.Priority)
	}
	if !reflect.DeepEqual(task.Tags, []string{"shopping", "food"}) {
		t.Errorf("tags = %v", task.Tags)
	}
	if task.Points != 10 {
		t.Errorf("points = %d", task.Points)
	}
	if task.ID == 0 {
		t.Error("expected a fresh id to be assigned")
	}
	if task.Title != "Task 1" {
		t.Errorf("title = %q, want positional label", task.Title)
	}
	if task.Completed {
		t.Error("extracted task should start incomplete")
	}
}

func TestExtractTaskUnparseableResponse(t *testing.T) {
	adapter, s := newTestAdapter(t, &fakeInvoker{response: "I could not make sense of that."})

	_, err := adapter.ExtractTask(context.Background(), "vague mumbling")
	if !errors.Is(err, ErrUnparseable) {
		t.Fatalf("expected ErrUnparseable, got %v", err)
	}

	if s.Len() != 0 {
		t.Error("no task may be created from an unparseable response")
	}
}

func TestExtractTaskServiceError(t *testing.T) {
	serviceErr := errors.New("connection refused")
	adapter, s := newTestAdapter(t, &fakeInvoker{err: serviceErr})

	_, err := adapter.ExtractTask(context.Background(), "call mom")
	if !errors.Is(err, serviceErr) {
		t.Fatalf("expected wrapped service error, got %v", err)
	}
	if s.Len() != 0 {
		t.Error("no task may be created when the service fails")
	}
}

func TestExtractTaskCodeFencedResponse(t *testing.T) {
	adapter, _ := newTestAdapter(t, &fakeInvoker{
		response: "```json\n{\"text\":\"Walk the dog\"}\n```",
	})

	task, err := adapter.ExtractTask(context.Background(), "walk the dog")
	if err != nil {
		t.Fatalf("ExtractTask failed: %v", err)
	}
	if task.Text != "Walk the dog" {
		t.Errorf("text = %q", task.Text)
	}
}

func TestExtractTaskDefaultsApplied(t *testing.T) {
	adapter, _ := newTestAdapter(t, &fakeInvoker{
		response: `{"text":"","priority":"whenever","points":"a few"}`,
	})

	task, err := adapter.ExtractTask(context.Background(), "something minimal")
	if err != nil {
		t.Fatalf("ExtractTask failed: %v", err)
	}
	if task.Text != "Untitled Task" {
		t.Errorf("text = %q", task.Text)
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("priority = %q", task.Priority)
	}
	if task.Points != 0 {
		t.Errorf("points = %d", task.Points)
	}
	if task.Tags == nil {
		t.Error("tags should never be nil after normalize")
	}
}

func TestPositionalTitleTracksCollectionSize(t *testing.T) {
	invoker := &fakeInvoker{response: `{"text":"x"}`}
	adapter, s := newTestAdapter(t, invoker)

	first, err := adapter.ExtractTask(context.Background(), "one")
	if err != nil {
		t.Fatalf("ExtractTask failed: %v", err)
	}
	if err := s.Create(first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	second, err := adapter.ExtractTask(context.Background(), "two")
	if err != nil {
		t.Fatalf("ExtractTask failed: %v", err)
	}
	if second.Title != "Task 2" {
		t.Errorf("title = %q, want %q", second.Title, "Task 2")
	}
	if second.ID == first.ID {
		t.Error("ids must not collide across rapid creates")
	}
}
