package gallery

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
)

// Thumbnail renders img into a block of cols×rows terminal cells. Each cell
// is an upper half block whose foreground is the top pixel and background the
// bottom pixel, so the image is sampled at cols×(2*rows).
func Thumbnail(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	small := imaging.Fill(img, cols, rows*2, imaging.Center, imaging.Lanczos)

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := hex(small.NRGBAAt(x, 2*y))
			bottom := hex(small.NRGBAAt(x, 2*y+1))
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀"))
		}
		if y < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
