package ui

import "github.com/charmbracelet/lipgloss"

var (
	primary   = lipgloss.Color("63")  // blue
	secondary = lipgloss.Color("240") // gray
	accent    = lipgloss.Color("42")  // green
	danger    = lipgloss.Color("196") // red
	muted     = lipgloss.Color("245")

	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondary)

	// List
	selectedStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	normalStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	mutedStyle      = lipgloss.NewStyle().Foreground(muted)
	cmdPreviewStyle = lipgloss.NewStyle().Foreground(muted).Italic(true)

	outputTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(secondary)

	// Help bar
	helpStyle    = lipgloss.NewStyle().Foreground(muted)
	helpKeyStyle = lipgloss.NewStyle().Foreground(primary).Bold(true)

	// Form
	labelStyle = lipgloss.NewStyle().Foreground(primary).Bold(true)
	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(secondary).
			Padding(0, 1)
	focusedInputStyle = inputStyle.BorderForeground(primary)

	// Status
	successStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(danger)
)
