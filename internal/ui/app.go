package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kmowery/tally/internal/extract"
	"github.com/kmowery/tally/internal/store"
	"github.com/kmowery/tally/internal/ui/styles"
	"github.com/kmowery/tally/internal/ui/views"
)

// Currently active tab
type Tab int

const (
	TabHome Tab = iota
	TabTasks
	TabUser
)

var tabLabels = []string{"Home", "Task Navigator", "User Manager"}

type App struct {
	store      *store.Store
	currentTab Tab
	home       *views.HomeView
	tasks      *views.NavigatorView
	user       *views.UserView
	styles     *styles.Styles
	width      int
	height     int
}

// Creates a new application
func NewApp(s *store.Store, adapter *extract.Adapter) *App {
	return &App{
		store:  s,
		home:   views.NewHomeView(s, adapter),
		tasks:  views.NewNavigatorView(s),
		user:   views.NewUserView(),
		styles: styles.NewStyles(),
	}
}

func (a *App) Init() tea.Cmd {
	return a.home.Init()
}

// switchTab activates a tab and re-initializes its view so it picks up
// any store changes made from the other tabs
func (a *App) switchTab(tab Tab) tea.Cmd {
	a.currentTab = tab

	var init tea.Cmd
	switch tab {
	case TabHome:
		init = a.home.Init()
	case TabTasks:
		init = a.tasks.Init()
	case TabUser:
		init = a.user.Init()
	}

	return tea.Batch(
		init,
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// All views keep their sizes current
		a.home.Update(msg)
		a.tasks.Update(msg)
		a.user.Update(msg)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "tab", "shift+tab":
			// The navigator's edit form uses tab for field cycling
			if a.currentTab == TabTasks && a.tasks.Busy() {
				break
			}
			if msg.String() == "tab" {
				return a, a.switchTab((a.currentTab + 1) % 3)
			}
			return a, a.switchTab((a.currentTab + 2) % 3)
		}
	}

	var cmd tea.Cmd
	switch a.currentTab {
	case TabHome:
		_, cmd = a.home.Update(msg)
	case TabTasks:
		_, cmd = a.tasks.Update(msg)
	case TabUser:
		_, cmd = a.user.Update(msg)
	}

	return a, cmd
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.renderTabBar())
	b.WriteString("\n\n")

	switch a.currentTab {
	case TabTasks:
		b.WriteString(a.tasks.View())
	case TabUser:
		b.WriteString(a.user.View())
	default:
		b.WriteString(a.home.View())
	}

	return b.String()
}

func (a *App) renderTabBar() string {
	s := a.styles

	items := []string{s.Title.Render("To-Do App"), "  "}
	for i, label := range tabLabels {
		if Tab(i) == a.currentTab {
			items = append(items, s.TabActive.Render(label))
		} else {
			items = append(items, s.TabInactive.Render(label))
		}
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, items...)
	return styles.CenterView(s.TabBar.Render(bar), a.width, 1)
}
