package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"heartgate/internal/card"
)

// RenderKeybindHelp produces the one-line help footer for screen.
func RenderKeybindHelp(registry *KeybindRegistry, screen card.Screen, width int, extra ...key.Binding) string {
	helpModel := help.New()
	helpModel.Width = width
	helpModel.Styles.ShortKey = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorRose)).
		Bold(true)
	helpModel.Styles.ShortDesc = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted))
	helpModel.Styles.ShortSeparator = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted))
	return helpModel.View(NewKeyMap(registry, screen, extra...))
}
