package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mayflyapp/mayfly/internal/models"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#6C5CE7"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00B894"))

	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	PriorityStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E17055"))

	MessageStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("252"))
)

// ShortID is the id prefix shown in listings and accepted as a reference.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// HabitLine renders one habit row: done marker, coloured name, streak stage.
func HabitLine(h models.Habit) string {
	mark := "○"
	if h.CompletedToday {
		mark = SuccessStyle.Render("●")
	}

	name := h.Name
	if h.Icon != "" {
		name = h.Icon + " " + name
	}
	if h.Color != "" {
		name = lipgloss.NewStyle().Foreground(lipgloss.Color(h.Color)).Render(name)
	}

	stage := models.StageForStreak(h.Streak)
	streak := lipgloss.NewStyle().Foreground(lipgloss.Color(stage.Color)).
		Render(fmt.Sprintf("%s %d day%s", stage.Emoji, h.Streak, Plural(h.Streak)))

	return fmt.Sprintf("%s %s  %s  %s", mark, name, streak, MutedStyle.Render(ShortID(h.ID)))
}

// TodoLine renders one todo row with its priority and scheduling details.
func TodoLine(t models.Todo) string {
	mark := "[ ]"
	text := t.Text
	if t.Completed {
		mark = SuccessStyle.Render("[x]")
		text = MutedStyle.Strikethrough(true).Render(text)
	}

	var extras []string
	if t.Priority && !t.Completed {
		text = PriorityStyle.Render("★ ") + text
	}
	if t.DueAt != nil {
		extras = append(extras, "due "+t.DueAt.Local().Format("Jan 2 15:04"))
	}
	if t.EstimatedMinutes != nil {
		extras = append(extras, fmt.Sprintf("~%dm", *t.EstimatedMinutes))
	}

	line := fmt.Sprintf("%s %s", mark, text)
	if len(extras) > 0 {
		line += "  " + MutedStyle.Render("("+strings.Join(extras, ", ")+")")
	}
	return line + "  " + MutedStyle.Render(ShortID(t.ID))
}

// Bar draws a fixed-width bar for n out of total.
func Bar(n, total, width int) string {
	if total <= 0 || width <= 0 {
		return strings.Repeat("·", width)
	}
	filled := min(n, total) * width / total
	if n > 0 && filled == 0 {
		filled = 1
	}
	return SuccessStyle.Render(strings.Repeat("█", filled)) + MutedStyle.Render(strings.Repeat("·", width-filled))
}

// Plural returns "s" unless n is 1.
func Plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
