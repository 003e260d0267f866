package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Rect is an axis-aligned cell rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether cell (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Clamp moves r so it lies fully inside a w×h area, when it fits.
func (r Rect) Clamp(w, h int) Rect {
	r.X = min(max(r.X, 0), max(w-r.W, 0))
	r.Y = min(max(r.Y, 0), max(h-r.H, 0))
	return r
}

// Canvas is a fixed-size grid of styled text lines that blocks can be
// placed onto at absolute positions. Later placements cover earlier ones.
type Canvas struct {
	width  int
	height int
	lines  []string
}

// NewCanvas returns a blank w×h canvas.
func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 0), max(h, 0)
	c := &Canvas{width: w, height: h, lines: make([]string, h)}
	blank := strings.Repeat(" ", w)
	for i := range c.lines {
		c.lines[i] = blank
	}
	return c
}

// CanvasFrom wraps rendered output in a w×h canvas, cropping or padding
// every line to exactly w cells.
func CanvasFrom(s string, w, h int) *Canvas {
	c := NewCanvas(w, h)
	for i, line := range strings.Split(s, "\n") {
		if i >= h {
			break
		}
		c.lines[i] = fit(line, w)
	}
	return c
}

// Place draws block with its top-left corner at (x, y), clipping anything
// outside the canvas.
func (c *Canvas) Place(x, y int, block string) {
	for i, bl := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= c.height {
			continue
		}
		bx := x
		if bx < 0 {
			bl = ansi.TruncateLeft(bl, -bx, "")
			bx = 0
		}
		if bx >= c.width {
			continue
		}
		bw := ansi.StringWidth(bl)
		if bx+bw > c.width {
			bl = ansi.Truncate(bl, c.width-bx, "")
			bw = ansi.StringWidth(bl)
		}
		if bw == 0 {
			continue
		}
		line := c.lines[row]
		c.lines[row] = ansi.Truncate(line, bx, "") + bl + ansi.TruncateLeft(line, bx+bw, "")
	}
}

// Set draws a single styled rune at (x, y).
func (c *Canvas) Set(x, y int, r rune, style lipgloss.Style) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.Place(x, y, style.Render(string(r)))
}

// String renders the canvas.
func (c *Canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// fit crops or right-pads s to exactly w cells.
func fit(s string, w int) string {
	sw := ansi.StringWidth(s)
	if sw > w {
		return ansi.Truncate(s, w, "")
	}
	return s + strings.Repeat(" ", w-sw)
}
