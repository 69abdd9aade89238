package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/todolist-go/internal/todo"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	labelStyle    = lipgloss.NewStyle().Bold(true).Width(13)

	paneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	dialogStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2)

	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	tomorrowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// urgencyStyle colours a row by how close its deadline is. Anything due
// today or earlier is red, tomorrow is orange.
func urgencyStyle(u todo.Urgency) lipgloss.Style {
	switch u {
	case todo.Overdue, todo.DueToday:
		return overdueStyle
	case todo.DueTomorrow:
		return tomorrowStyle
	default:
		return lipgloss.NewStyle()
	}
}
