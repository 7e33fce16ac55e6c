package editor

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("6")
	mutedColor   = lipgloss.Color("8")
	errorColor   = lipgloss.Color("1")

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().Reverse(true)

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(primaryColor)

	descriptionStyle = lipgloss.NewStyle().Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	statusStyle = lipgloss.NewStyle().Foreground(mutedColor)
)
