// Package confetti simulates the one-shot particle burst shown when the
// proposal is accepted. Coordinates are terminal cells; y grows downwards.
package confetti

import (
	"math"
	"math/rand/v2"

	"heartgate/internal/card"
)

const (
	// Ticks is the lifetime of a burst in simulation steps.
	Ticks = 90
	// decay is applied to velocity every step.
	decay = 0.92
	// gravity is added to vertical velocity every step, in rows.
	gravity = 0.12
	// startVelocity is the maximum launch speed in columns per step.
	startVelocity = 4.5
	// aspect compensates for cells being roughly twice as tall as wide.
	aspect = 0.5
)

var glyphs = []rune{'▪', '•', '◆', '✦', '*', '♥'}

// Particle is one piece of confetti.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Color  string
	Glyph  rune
}

// Burst is a running particle burst.
type Burst struct {
	particles []Particle
	tick      int
}

// New launches b.Particles particles from (width/2, OriginY*height) in a cone
// of b.Spread degrees around straight up.
func New(b card.Burst, width, height int, r *rand.Rand) *Burst {
	ox := float64(width) / 2
	oy := b.OriginY * float64(height)
	spread := b.Spread * math.Pi / 180

	ps := make([]Particle, b.Particles)
	for i := range ps {
		angle := math.Pi/2 + (r.Float64()-0.5)*spread
		v := startVelocity * (0.5 + r.Float64()*0.5)
		color := "#ff0000"
		if len(b.Colors) > 0 {
			color = b.Colors[r.IntN(len(b.Colors))]
		}
		ps[i] = Particle{
			X:     ox,
			Y:     oy,
			VX:    math.Cos(angle) * v,
			VY:    -math.Sin(angle) * v * aspect,
			Color: color,
			Glyph: glyphs[r.IntN(len(glyphs))],
		}
	}
	return &Burst{particles: ps}
}

// Step advances the simulation one tick and reports whether the burst is
// still alive.
func (b *Burst) Step() bool {
	if b.Done() {
		return false
	}
	for i := range b.particles {
		p := &b.particles[i]
		p.X += p.VX
		p.Y += p.VY
		p.VX *= decay
		p.VY = p.VY*decay + gravity*aspect
	}
	b.tick++
	return !b.Done()
}

// Done reports whether the burst has finished.
func (b *Burst) Done() bool {
	return b.tick >= Ticks
}

// Particles returns the live particles. The slice must not be modified.
func (b *Burst) Particles() []Particle {
	if b.Done() {
		return nil
	}
	return b.particles
}

// Len returns the number of particles launched.
func (b *Burst) Len() int {
	return len(b.particles)
}
