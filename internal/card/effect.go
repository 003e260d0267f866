package card

import "time"

// Effect is a visual side effect requested by the controller.
// Renderers translate effects into their own primitives.
type Effect interface {
	effect()
}

// ShakeEffect shakes the password field after a failed submit.
type ShakeEffect struct{}

// BurstEffect fires the one-shot particle burst on acceptance.
type BurstEffect struct {
	Burst Burst
}

// ClearErrorEffect asks the renderer to call Controller.Fire(Task) after Delay.
type ClearErrorEffect struct {
	Task  TaskID
	Delay time.Duration
}

func (ShakeEffect) effect()      {}
func (BurstEffect) effect()      {}
func (ClearErrorEffect) effect() {}

// Burst describes a particle burst.
type Burst struct {
	Particles int      // number of particles
	Spread    float64  // cone width in degrees
	OriginY   float64  // vertical origin, 0 = top, 1 = bottom
	Colors    []string // hex palette
}

// DefaultBurst is the acceptance burst: 150 red and pink particles.
func DefaultBurst() Burst {
	return Burst{
		Particles: 150,
		Spread:    70,
		OriginY:   0.6,
		Colors:    []string{"#ff0000", "#ff69b4", "#ff1493"},
	}
}
