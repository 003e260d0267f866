package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvas_PlaceAndClip(t *testing.T) {
	c := NewCanvas(6, 3)
	c.Place(1, 0, "ab\ncd")
	c.Place(4, 2, "xyz")
	c.Place(-1, 1, "QRS")

	assert.Equal(t, " ab   \nRSd   \n    xy", c.String())
}

func TestCanvas_LaterPlacementCovers(t *testing.T) {
	c := NewCanvas(5, 1)
	c.Place(0, 0, "aaaaa")
	c.Place(2, 0, "B")
	assert.Equal(t, "aaBaa", c.String())
}

func TestCanvas_OutOfBoundsIgnored(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Place(5, 0, "zz")
	c.Place(0, 7, "zz")
	c.Set(-1, 0, '*', lipgloss.NewStyle())
	c.Set(1, 1, '*', lipgloss.NewStyle())
	assert.Equal(t, "   \n * ", c.String())
}

func TestCanvasFrom_PadsAndCrops(t *testing.T) {
	c := CanvasFrom("hello world\nhi\na\nb", 5, 3)
	lines := strings.Split(c.String(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"hello", "hi   ", "a    "}, lines)
}

func TestRect(t *testing.T) {
	r := Rect{X: 2, Y: 1, W: 3, H: 2}
	assert.True(t, r.Contains(2, 1))
	assert.True(t, r.Contains(4, 2))
	assert.False(t, r.Contains(5, 1))
	assert.False(t, r.Contains(2, 3))

	assert.Equal(t, Rect{X: 7, Y: 0, W: 3, H: 2}, Rect{X: 9, Y: -4, W: 3, H: 2}.Clamp(10, 5))
	assert.Equal(t, Rect{X: 0, Y: 0, W: 30, H: 2}, Rect{X: 4, Y: 0, W: 30, H: 2}.Clamp(10, 5))
}
