package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmowery/tally/internal/ui/styles"
)

// UserView is the user manager tab. Accounts are out of scope; this is a
// placeholder matching the rest of the tab bar.
type UserView struct {
	styles *styles.Styles
	width  int
	height int
}

// NewUserView creates the user manager view
func NewUserView() *UserView {
	return &UserView{styles: styles.NewStyles()}
}

func (v *UserView) Init() tea.Cmd {
	return nil
}

func (v *UserView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		v.width = msg.Width
		v.height = msg.Height
	}
	return v, nil
}

func (v *UserView) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("User Manager"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.TitleMuted.Render("User management features coming soon!"))
	return styles.CenterView(b.String(), v.width, v.height)
}
