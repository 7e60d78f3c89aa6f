// Package render turns engine snapshots into terminal text.
//
// Table output is styled with lipgloss and is meant for humans. Drafts
// output is plain and stable, suitable for golden files.
package render

import "github.com/charmbracelet/lipgloss"

var (
	PrimaryColor = lipgloss.Color("#A78BFA") // Purple
	ValidColor   = lipgloss.Color("#10B981") // Green
	InvalidColor = lipgloss.Color("#F87171") // Red
	MutedColor   = lipgloss.Color("#9CA3AF") // Gray
	BorderColor  = lipgloss.Color("#6B7280") // Gray

	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		Padding(0, 1)

	Cell = lipgloss.NewStyle().Padding(0, 1)

	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	Muted   = lipgloss.NewStyle().Foreground(MutedColor)
	Valid   = lipgloss.NewStyle().Foreground(ValidColor)
	Invalid = lipgloss.NewStyle().Foreground(InvalidColor)

	Border = lipgloss.NewStyle().Foreground(BorderColor)
)
