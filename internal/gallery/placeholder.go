package gallery

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/disintegration/imaging"
)

// palette holds the soft tones placeholders are drawn from.
var palette = []color.NRGBA{
	{0xff, 0xc0, 0xcb, 0xff}, // pink
	{0xff, 0x69, 0xb4, 0xff}, // hot pink
	{0xff, 0x14, 0x93, 0xff}, // deep pink
	{0xdb, 0x70, 0x93, 0xff}, // pale violet red
	{0xff, 0xe4, 0xe1, 0xff}, // misty rose
	{0xc7, 0x15, 0x85, 0xff}, // medium violet red
	{0xfa, 0x80, 0x72, 0xff}, // salmon
}

// Placeholder draws a size×size image for key: a vertical gradient between
// two palette colours with a heart in the middle. The same key always yields
// the same pixels.
func Placeholder(key, size int) image.Image {
	r := rand.New(rand.NewPCG(uint64(key), 0x5eed))
	top := palette[r.IntN(len(palette))]
	bottom := palette[r.IntN(len(palette))]
	heart := color.NRGBA{0xff, 0xff, 0xff, 0xff}
	// Heart size and position drift a little per key.
	radius := 0.55 + r.Float64()*0.2
	cx := 0.5 + (r.Float64()-0.5)*0.2

	img := imaging.New(size, size, top)
	for y := 0; y < size; y++ {
		t := float64(y) / float64(max(size-1, 1))
		row := lerp(top, bottom, t)
		for x := 0; x < size; x++ {
			// Map to heart space, y up.
			hx := (float64(x)/float64(size) - cx) * 2.6 / radius
			hy := -(t - 0.55) * 2.6 / radius
			if inHeart(hx, hy) {
				img.SetNRGBA(x, y, heart)
				continue
			}
			img.SetNRGBA(x, y, row)
		}
	}
	return img
}

// inHeart reports whether (x, y) lies inside (x²+y²-1)³ - x²y³ <= 0.
func inHeart(x, y float64) bool {
	a := x*x + y*y - 1
	return a*a*a-x*x*y*y*y <= 0
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(p, q uint8) uint8 {
		return uint8(math.Round(float64(p) + (float64(q)-float64(p))*t))
	}
	return color.NRGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 0xff}
}
