package ui

import "github.com/charmbracelet/lipgloss"

const (
	colorPrimary = "#7C3AED"
	colorSuccess = "#10B981"
	colorDanger  = "#EF4444"
	colorMuted   = "#6B7280"
	colorText    = "#E5E7EB"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary)).
			Bold(true)

	activeFilterStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(colorPrimary)).
				Bold(true).
				Underline(true)

	filterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted))

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorText))

	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)).
			Strikethrough(true)

	removingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorDanger)).
			Faint(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)).
			Italic(true)

	// dimmed "clear completed" control
	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)).
			Faint(true)

	enabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorDanger))

	flashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSuccess)).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted))
)
