package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kmowery/tally/internal/models"
	"github.com/kmowery/tally/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// renderTaskItem renders one task as a two-line list entry: title/text on
// top, detail line (priority, points, tags) below
func renderTaskItem(s *styles.Styles, task models.Task, width int, selected bool) string {
	check := "[ ]"
	if task.Completed {
		check = "[x]"
	}

	titleLine := fmt.Sprintf("%s %s — %s", check, task.Title, task.Text)

	priorityDot := lipgloss.NewStyle().
		Foreground(styles.PriorityColor(task.Priority)).
		Render("●")
	detail := fmt.Sprintf("%s %s • %d pts", priorityDot, task.Priority, task.Points)

	if len(task.Tags) > 0 {
		var tagStrs []string
		for _, tag := range task.Tags {
			if tag == "" {
				continue
			}
			tagStrs = append(tagStrs, s.Tag.Render(tag))
		}
		if len(tagStrs) > 0 {
			detail += " " + strings.Join(tagStrs, "")
		}
	}

	var titleStyle, detailStyle lipgloss.Style
	if selected {
		titleStyle = s.ListSelected.Width(width)
		detailStyle = s.ListSelected.Width(width)
	} else {
		titleStyle = s.ListItem.Width(width)
		detailStyle = s.ListItem.Width(width)
	}

	title := titleStyle.Render(titleLine)
	if task.Completed && !selected {
		title = titleStyle.Foreground(styles.Current.ForegroundDim).Strikethrough(true).Render(titleLine)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, detailStyle.Render(detail)) + "\n"
}
