package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorRose     = "#ff69b4" // hot pink - titles, borders
	ColorDeepPink = "#ff1493" // deep pink - focused borders
	ColorRed      = "#ef4444" // red - yes button, question
	ColorBlush    = "#fbcfe8" // light pink - card borders
	ColorDanger   = "#f87171" // red 400 - wrong password
	ColorMuted    = "241"     // gray - hints
	ColorNoText   = "#6b7280" // gray 500 - no button label
	ColorNoBorder = "#d1d5db" // gray 300 - no button border
	ColorWhite    = "#ffffff"
	ColorSparkle  = "#facc15" // yellow - gallery sparkles
)

// Styles contains shared style definitions used across views.
var Styles = struct {
	Card        lipgloss.Style // password card
	Title       lipgloss.Style // romantic headings
	Prompt      lipgloss.Style // italic prompts under headings
	Input       lipgloss.Style // password field box
	InputError  lipgloss.Style // password field box after a wrong submit
	Submit      lipgloss.Style // "open" button
	Question    lipgloss.Style // proposal question
	Heart       lipgloss.Style // pulsing heart
	Yes         lipgloss.Style // yes button
	YesFocused  lipgloss.Style
	No          lipgloss.Style // no button
	NoFocused   lipgloss.Style
	Sparkle     lipgloss.Style
	Tile        lipgloss.Style // gallery tile frame
	TileCaption lipgloss.Style
	Back        lipgloss.Style // back link
	Hint        lipgloss.Style // help/hint text
}{
	Card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBlush)).
		Padding(1, 4),
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorRose)),
	Prompt: lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color(ColorRose)),
	Input: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBlush)).
		Padding(0, 1),
	InputError: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Foreground(lipgloss.Color(ColorDanger)).
		Padding(0, 1),
	Submit: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorWhite)).
		Background(lipgloss.Color(ColorRose)).
		Padding(0, 3),
	Question: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorRed)),
	Heart: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorRed)),
	Yes: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorWhite)).
		Background(lipgloss.Color(ColorRed)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorRed)),
	YesFocused: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorWhite)).
		Background(lipgloss.Color(ColorRed)).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color(ColorDeepPink)),
	No: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorNoText)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorNoBorder)),
	NoFocused: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorNoText)).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color(ColorNoBorder)),
	Sparkle: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSparkle)),
	Tile: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorWhite)),
	TileCaption: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorRose)),
	Back: lipgloss.NewStyle().
		Underline(true).
		Foreground(lipgloss.Color(ColorRose)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
}
