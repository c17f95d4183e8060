package tui

import "github.com/charmbracelet/lipgloss"

// promptStyles holds the lipgloss styles shared by the interactive prompts.
type promptStyles struct {
	title    lipgloss.Style
	cursor   lipgloss.Style
	selected lipgloss.Style
	option   lipgloss.Style
	help     lipgloss.Style
	answer   lipgloss.Style
}

func defaultStyles() promptStyles {
	accent := lipgloss.Color("#818cf8")
	return promptStyles{
		title:    lipgloss.NewStyle().Bold(true),
		cursor:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		selected: lipgloss.NewStyle().Foreground(accent),
		option:   lipgloss.NewStyle(),
		help:     lipgloss.NewStyle().Faint(true),
		answer:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f472b6")),
	}
}
