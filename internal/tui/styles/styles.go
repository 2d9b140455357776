package styles

import "github.com/charmbracelet/lipgloss"

// Centralized Lip Gloss styles for the fsops prompt and CLI output.
// All colors are specified using hex codes.

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff5fd2")).
			MarginBottom(1).
			PaddingLeft(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			PaddingLeft(1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff005f")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff5f")).
			Bold(true)

	// WarningStyle marks outcomes that did nothing, such as a skipped copy.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffaf00")).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5fd7ff"))

	NormalTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff"))

	// Menu rows in the conflict prompt
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ff5faf")).
				Bold(true)

	ItemDescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8a8a8a"))

	HelpStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("#a8a8a8")).
			MarginTop(1).
			Padding(0, 1)

	// PaneStyle frames the source/destination comparison.
	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5f5fff")).
			PaddingLeft(1).
			PaddingRight(1)
)
