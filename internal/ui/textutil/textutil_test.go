package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Nie...", 10, "Nie..."},
		{"Wspomnienie 8", 8, "Wspomni…"},
		{"Każda chwila", 5, "Każd…"},
		{"abc", 1, "…"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.width), "Truncate(%q, %d)", tt.in, tt.width)
		assert.LessOrEqual(t, VisualWidth(Truncate(tt.in, tt.width)), max(tt.width, 0))
	}
}

func TestCenter(t *testing.T) {
	assert.Equal(t, "  ab   ", Center("ab", 7))
	assert.Equal(t, "ab", Center("ab", 2))
	assert.Equal(t, "wi…", Center("wide", 3))
	assert.Equal(t, 9, VisualWidth(Center("Wróć", 9)))
}
