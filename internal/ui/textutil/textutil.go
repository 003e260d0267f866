// Package textutil provides unicode-aware text utilities for TUI rendering.
package textutil

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TruncateEllipsis is the unicode ellipsis character used for truncation.
const TruncateEllipsis = "…"

// VisualWidth returns the number of terminal columns s occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// VisualWidthStyled returns the visual width of a styled string.
// This accounts for ANSI escape codes and unicode characters.
func VisualWidthStyled(s string) int {
	return lipgloss.Width(s)
}

// Truncate truncates a string to fit within maxWidth visual columns.
// If truncation is needed, it appends the unicode ellipsis character (…).
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	available := maxWidth - VisualWidth(TruncateEllipsis)
	if available < 0 {
		return TruncateEllipsis
	}
	return runewidth.Truncate(s, available, "") + TruncateEllipsis
}

// Center pads s on both sides to width columns. Odd padding goes right.
// Strings wider than width are truncated.
func Center(s string, width int) string {
	w := VisualWidth(s)
	if w >= width {
		return Truncate(s, width)
	}
	left := (width - w) / 2
	return runewidth.FillLeft("", left) + s + runewidth.FillLeft("", width-w-left)
}
