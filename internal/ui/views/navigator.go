package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kmowery/tally/internal/models"
	"github.com/kmowery/tally/internal/store"
	"github.com/kmowery/tally/internal/ui/keys"
	"github.com/kmowery/tally/internal/ui/styles"
	"github.com/kmowery/tally/internal/taskview"
)

// Edit form focus positions
const (
	editFieldTitle = iota
	editFieldText
	editFieldDesc
	editFieldTags
	editFieldPriority
	editFieldPoints
	editFieldSave
	editFieldCount
)

// NavigatorView shows the task list with toggle, edit and delete enabled,
// plus the achievements panel
type NavigatorView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	tasks   []models.Task
	cursor  int
	scrollY int

	// Editing
	editing      bool
	editingID    int64
	editDone     bool
	editTitle    textinput.Model
	editText     textarea.Model
	editDesc     textinput.Model
	editTags     textinput.Model
	editPriority models.Priority
	editPoints   textinput.Model
	editFocusIdx int

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   int64
	deleteTargetName string
}

// NewNavigatorView creates the task navigator view
func NewNavigatorView(s *store.Store) *NavigatorView {
	editTitle := textinput.New()
	editTitle.Placeholder = "Task title"
	editTitle.CharLimit = 200

	editText := textarea.New()
	editText.Placeholder = "Task details"
	editText.CharLimit = 1000
	editText.SetWidth(50)
	editText.SetHeight(3)
	editText.ShowLineNumbers = false

	editDesc := textinput.New()
	editDesc.Placeholder = "Description (optional)"
	editDesc.CharLimit = 500

	editTags := textinput.New()
	editTags.Placeholder = "Tags (comma-separated)"
	editTags.CharLimit = 200

	editPoints := textinput.New()
	editPoints.Placeholder = "0"
	editPoints.CharLimit = 4

	return &NavigatorView{
		store:      s,
		styles:     styles.NewStyles(),
		keys:       keys.DefaultKeyMap(),
		editTitle:  editTitle,
		editText:   editText,
		editDesc:   editDesc,
		editTags:   editTags,
		editPoints: editPoints,
	}
}

// Init initializes the view
func (v *NavigatorView) Init() tea.Cmd {
	return v.loadTasks
}

// Busy reports whether a modal interaction (edit form or delete
// confirmation) is active, so the app keeps tab out of tab switching
func (v *NavigatorView) Busy() bool {
	return v.editing || v.confirmingDelete
}

func (v *NavigatorView) loadTasks() tea.Msg {
	return tasksLoadedMsg{tasks: taskview.Select(v.store.List(), taskview.ModeNavigator)}
}

// Update handles messages
func (v *NavigatorView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(v.width)
		v.editText.SetWidth(clamp(contentWidth-10, 20, 50))
		return v, nil

	case tasksLoadedMsg:
		v.tasks = msg.tasks
		if v.cursor >= len(v.tasks) {
			v.cursor = max(0, len(v.tasks)-1)
		}
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.editing {
			return v.updateEditing(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *NavigatorView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.tasks)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Toggle):
		if len(v.tasks) > 0 {
			v.store.Toggle(v.tasks[v.cursor].ID)
			return v, v.loadTasks
		}
		return v, nil

	case key.Matches(msg, v.keys.Edit):
		if len(v.tasks) > 0 {
			v.startEditTask(v.tasks[v.cursor])
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if len(v.tasks) > 0 {
			v.confirmingDelete = true
			v.deleteTargetID = v.tasks[v.cursor].ID
			v.deleteTargetName = v.tasks[v.cursor].Title
		}
		return v, nil
	}

	return v, nil
}

func (v *NavigatorView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.store.Delete(v.deleteTargetID)
		v.confirmingDelete = false
		return v, v.loadTasks
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *NavigatorView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.saveTask()

	case key.Matches(msg, v.keys.Tab):
		v.editFocusIdx = (v.editFocusIdx + 1) % editFieldCount
		v.updateEditFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.editFocusIdx = (v.editFocusIdx + editFieldCount - 1) % editFieldCount
		v.updateEditFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		switch v.editFocusIdx {
		case editFieldText:
			// Let enter pass through for newlines in the textarea
		case editFieldSave:
			return v, v.saveTask()
		default:
			v.editFocusIdx++
			v.updateEditFocus()
			return v, nil
		}

	case key.Matches(msg, v.keys.Up), msg.String() == "left":
		if v.editFocusIdx == editFieldPriority {
			v.editPriority = cyclePriority(v.editPriority, -1)
			return v, nil
		}

	case key.Matches(msg, v.keys.Down), msg.String() == "right":
		if v.editFocusIdx == editFieldPriority {
			v.editPriority = cyclePriority(v.editPriority, 1)
			return v, nil
		}

	case msg.String() == " ":
		if v.editFocusIdx == editFieldPriority {
			v.editPriority = cyclePriority(v.editPriority, 1)
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.editFocusIdx {
	case editFieldTitle:
		v.editTitle, cmd = v.editTitle.Update(msg)
	case editFieldText:
		v.editText, cmd = v.editText.Update(msg)
	case editFieldDesc:
		v.editDesc, cmd = v.editDesc.Update(msg)
	case editFieldTags:
		v.editTags, cmd = v.editTags.Update(msg)
	case editFieldPoints:
		v.editPoints, cmd = v.editPoints.Update(msg)
	}
	return v, cmd
}

// cyclePriority steps through low -> medium -> high
func cyclePriority(p models.Priority, dir int) models.Priority {
	order := []models.Priority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh}
	idx := 1
	for i, o := range order {
		if o == p {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(order)) % len(order)
	return order[idx]
}

func (v *NavigatorView) startEditTask(task models.Task) {
	v.editing = true
	v.editingID = task.ID
	v.editDone = task.Completed
	v.editFocusIdx = 0
	v.editTitle.SetValue(task.Title)
	v.editText.SetValue(task.Text)
	v.editDesc.SetValue(task.Description)
	v.editTags.SetValue(strings.Join(task.Tags, ", "))
	v.editPriority = task.Priority
	v.editPoints.SetValue(strconv.Itoa(task.Points))
	v.updateEditFocus()
}

func (v *NavigatorView) updateEditFocus() {
	v.editTitle.Blur()
	v.editText.Blur()
	v.editDesc.Blur()
	v.editTags.Blur()
	v.editPoints.Blur()

	switch v.editFocusIdx {
	case editFieldTitle:
		v.editTitle.Focus()
	case editFieldText:
		v.editText.Focus()
	case editFieldDesc:
		v.editDesc.Focus()
	case editFieldTags:
		v.editTags.Focus()
	case editFieldPoints:
		v.editPoints.Focus()
	}
}

// saveTask replaces every mutable field of the edited task. The id and
// the completed flag are carried over unchanged.
func (v *NavigatorView) saveTask() tea.Cmd {
	text := strings.TrimSpace(v.editText.Value())
	if text == "" {
		text = "Untitled Task"
	}

	points, _ := strconv.Atoi(strings.TrimSpace(v.editPoints.Value()))
	if points < 0 {
		points = 0
	}

	task := models.Task{
		ID:          v.editingID,
		Title:       strings.TrimSpace(v.editTitle.Value()),
		Text:        text,
		Description: strings.TrimSpace(v.editDesc.Value()),
		Completed:   v.editDone,
		Tags:        models.SplitTags(v.editTags.Value()),
		Priority:    v.editPriority,
		Points:      points,
	}

	v.store.Update(task)
	v.editing = false
	return v.loadTasks
}

func (v *NavigatorView) ensureVisible() {
	visibleItems := v.visibleItems()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
}

func (v *NavigatorView) visibleItems() int {
	// Each task item is 2 lines + 1 margin = 3 lines; leave room for the
	// achievements panel and help line
	availableHeight := v.height - 16
	if availableHeight < 3 {
		availableHeight = 3
	}
	n := availableHeight / 3
	if n < 1 {
		n = 1
	}
	return n
}

// View renders the view
func (v *NavigatorView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.editing {
		return v.renderEditForm()
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Task Navigator"))
	b.WriteString("\n\n")
	b.WriteString(v.renderTaskList())
	b.WriteString("\n")
	b.WriteString(v.renderAchievements())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *NavigatorView) renderTaskList() string {
	s := v.styles

	if len(v.tasks) == 0 {
		return s.TitleMuted.Render("No tasks added yet.")
	}

	contentWidth := styles.ContentWidth(v.width)
	width := max(contentWidth-4, 20)

	var items []string
	endIdx := min(v.scrollY+v.visibleItems(), len(v.tasks))
	for i := v.scrollY; i < endIdx; i++ {
		items = append(items, renderTaskItem(s, v.tasks[i], width, i == v.cursor))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *NavigatorView) renderAchievements() string {
	s := v.styles

	total := taskview.TotalPoints(v.tasks)
	completed := taskview.Completed(v.tasks)

	var b strings.Builder
	b.WriteString(s.Title.Render("Current Achievements"))
	b.WriteString("\n")
	b.WriteString(s.StatusBar.Render(fmt.Sprintf("Total Points Earned: %d", total)))

	if len(completed) == 0 {
		b.WriteString("\n")
		b.WriteString(s.TitleMuted.Render("No achievements yet. Complete tasks to see them here!"))
		return b.String()
	}

	// Keep the panel compact: show the most recent completions
	shown := completed
	if len(shown) > 3 {
		shown = shown[:3]
	}
	for _, t := range shown {
		b.WriteString("\n")
		b.WriteString(s.ListItem.Render(fmt.Sprintf("%s — %s (%d pts)", t.Title, t.Text, t.Points)))
	}
	if len(completed) > len(shown) {
		b.WriteString("\n")
		b.WriteString(s.TitleMuted.Render(fmt.Sprintf("  …and %d more", len(completed)-len(shown))))
	}

	return b.String()
}

func (v *NavigatorView) renderEditForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	titleStyle := s.Input
	textStyle := s.Input
	descStyle := s.Input
	tagsStyle := s.Input
	pointsStyle := s.Input
	priorityStyle := s.Button
	btnStyle := s.Button

	switch v.editFocusIdx {
	case editFieldTitle:
		titleStyle = s.InputFocused
	case editFieldText:
		textStyle = s.InputFocused
	case editFieldDesc:
		descStyle = s.InputFocused
	case editFieldTags:
		tagsStyle = s.InputFocused
	case editFieldPriority:
		priorityStyle = s.ButtonFocused
	case editFieldPoints:
		pointsStyle = s.InputFocused
	case editFieldSave:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	priorityDot := lipgloss.NewStyle().
		Foreground(styles.PriorityColor(v.editPriority)).
		Render("●")

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Edit Task"),
		s.TitleMuted.Render("Modify the details of your task below."),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(v.editTitle.View()),
		"",
		"Details:",
		textStyle.Render(v.editText.View()),
		"",
		"Description:",
		descStyle.Width(inputWidth).Render(v.editDesc.View()),
		"",
		"Tags:",
		tagsStyle.Width(inputWidth).Render(v.editTags.View()),
		"",
		"Priority:",
		priorityStyle.Render(priorityDot+" "+string(v.editPriority)),
		"",
		"Points:",
		pointsStyle.Width(10).Render(v.editPoints.View()),
		"",
		btnStyle.Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • ←→: priority • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *NavigatorView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%q will be removed permanently.", v.deleteTargetName)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *NavigatorView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s toggle • %s edit • %s del • %s tab • %s quit",
			v.styles.HelpKey.Render("space"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("tab"),
			v.styles.HelpKey.Render("q"),
		),
	)
}
