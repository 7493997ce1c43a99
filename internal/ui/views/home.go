package views

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kmowery/tally/internal/extract"
	"github.com/kmowery/tally/internal/models"
	"github.com/kmowery/tally/internal/store"
	"github.com/kmowery/tally/internal/ui/keys"
	"github.com/kmowery/tally/internal/ui/styles"
	"github.com/kmowery/tally/internal/taskview"
)

// HomeView shows the task list read-only with the free-text add bar at
// the bottom
type HomeView struct {
	store   *store.Store
	adapter *extract.Adapter
	styles  *styles.Styles
	keys    keys.KeyMap

	width  int
	height int

	tasks      []models.Task
	input      textinput.Model
	extracting bool
	status     string
	statusErr  bool
	scrollY    int
}

// NewHomeView creates the home view
func NewHomeView(s *store.Store, adapter *extract.Adapter) *HomeView {
	input := textinput.New()
	input.Placeholder = "Describe your task (e.g., 'Buy groceries, high priority, tags: shopping, food, 10 points')"
	input.CharLimit = 500

	return &HomeView{
		store:   s,
		adapter: adapter,
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
		input:   input,
	}
}

type tasksLoadedMsg struct {
	tasks []models.Task
}

type taskExtractedMsg struct {
	task models.Task
}

type extractFailedMsg struct {
	err error
}

// Init initializes the view
func (v *HomeView) Init() tea.Cmd {
	v.input.Focus()
	return tea.Batch(v.loadTasks, textinput.Blink)
}

func (v *HomeView) loadTasks() tea.Msg {
	return tasksLoadedMsg{tasks: taskview.Select(v.store.List(), taskview.ModeHome)}
}

// Update handles messages
func (v *HomeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.input.Width = clamp(styles.ContentWidth(v.width)-8, 20, 70)
		return v, nil

	case tasksLoadedMsg:
		v.tasks = msg.tasks
		return v, nil

	case taskExtractedMsg:
		v.extracting = false
		if err := v.store.Create(msg.task); err != nil {
			log.Printf("failed to save task: %v", err)
			v.status = "Could not save the task"
			v.statusErr = true
			return v, nil
		}
		// Only a successful create clears the input
		v.input.Reset()
		v.status = fmt.Sprintf("Added %q", msg.task.Text)
		v.statusErr = false
		return v, v.loadTasks

	case extractFailedMsg:
		v.extracting = false
		// Input is kept for retry
		log.Printf("failed to parse extraction response: %v", msg.err)
		v.status = "Could not understand that task, try rephrasing"
		v.statusErr = true
		return v, nil

	case tea.KeyMsg:
		// The input stays focused, so only non-printable keys are
		// intercepted here
		switch {
		case key.Matches(msg, v.keys.Enter):
			return v, v.submit()

		case msg.String() == "up":
			if v.scrollY > 0 {
				v.scrollY--
			}
			return v, nil

		case msg.String() == "down":
			if v.scrollY < len(v.tasks)-1 {
				v.scrollY++
			}
			return v, nil
		}

		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	return v, nil
}

// submit sends the raw input text to the extraction adapter. Empty input
// is a no-op; the extraction call runs as a command so the UI stays
// responsive while it is in flight.
func (v *HomeView) submit() tea.Cmd {
	text := strings.TrimSpace(v.input.Value())
	if text == "" || v.extracting {
		return nil
	}

	v.extracting = true
	v.status = "Thinking..."
	v.statusErr = false

	return func() tea.Msg {
		task, err := v.adapter.ExtractTask(context.Background(), text)
		if err != nil {
			return extractFailedMsg{err: err}
		}
		return taskExtractedMsg{task: task}
	}
}

// View renders the view
func (v *HomeView) View() string {
	s := v.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("Welcome to Your To-Do List"))
	b.WriteString("\n\n")
	b.WriteString(v.renderTaskList())
	b.WriteString("\n")

	inputStyle := s.InputFocused
	if v.extracting {
		inputStyle = s.Input
	}
	b.WriteString(s.TitleMuted.Render("Add a new task:"))
	b.WriteString("\n")
	b.WriteString(inputStyle.Render(v.input.View()))

	if v.status != "" {
		b.WriteString("\n")
		if v.statusErr {
			b.WriteString(s.StatusErr.Render(v.status))
		} else {
			b.WriteString(s.StatusBar.Render(v.status))
		}
	}

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *HomeView) renderTaskList() string {
	s := v.styles

	if len(v.tasks) == 0 {
		return s.TitleMuted.Render("No tasks added yet.")
	}

	contentWidth := styles.ContentWidth(v.width)
	width := max(contentWidth-4, 20)

	// Each task item is 2 lines + 1 margin = 3 lines
	availableHeight := v.height - 10
	if availableHeight < 3 {
		availableHeight = 3
	}
	visibleItems := availableHeight / 3
	if visibleItems < 1 {
		visibleItems = 1
	}

	if v.scrollY > len(v.tasks)-1 {
		v.scrollY = len(v.tasks) - 1
	}

	var items []string
	endIdx := min(v.scrollY+visibleItems, len(v.tasks))
	for i := v.scrollY; i < endIdx; i++ {
		items = append(items, renderTaskItem(s, v.tasks[i], width, false))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}
