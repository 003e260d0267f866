// Package card implements the interaction logic of the greeting card:
// a password gate, a proposal with an evasive "no" button, and a gallery.
//
// The package has no terminal dependency. Renderers feed input events into a
// Controller and translate the returned Effects into their own primitives.
package card

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// DefaultSecret is the date token that opens the card.
const DefaultSecret = "22.02"

var (
	// ErrWrongScreen is returned when an operation is invoked on a screen
	// that does not accept it. The session is left untouched.
	ErrWrongScreen = errors.New("operation not available on current screen")
	// ErrNoSlot is returned for gallery indexes outside 1..len(slots).
	ErrNoSlot = errors.New("no such gallery slot")
)

// Viewport is the area the "no" button may move within, in renderer units.
// The margin keeps the button fully visible.
type Viewport struct {
	Width   float64
	Height  float64
	MarginX float64
	MarginY float64
}

// Observer receives notifications about session changes. All methods are
// called synchronously from the controller.
type Observer interface {
	Transition(s *Session, from, to Screen)
	PasswordRejected(s *Session)
	Dodged(s *Session)
	SlotFallback(s *Session, slot Slot)
}

// Options configures a Controller. Zero values take the defaults.
type Options struct {
	Secret      string
	ErrorFlash  time.Duration
	ScaleStep   float64
	Slots       int
	Image       RefFunc
	Placeholder RefFunc
	Burst       Burst
	Rand        *rand.Rand
	Observer    Observer
}

func (o *Options) setDefaults() {
	if o.Secret == "" {
		o.Secret = DefaultSecret
	}
	if o.ErrorFlash <= 0 {
		o.ErrorFlash = 500 * time.Millisecond
	}
	if o.ScaleStep <= 0 {
		o.ScaleStep = 0.2
	}
	if o.Slots <= 0 {
		o.Slots = 8
	}
	if o.Image == nil {
		o.Image = FormatRef("images/photo%d.jpg")
	}
	if o.Placeholder == nil {
		o.Placeholder = FormatRef("https://picsum.photos/seed/%d/800/800")
	}
	if o.Burst.Particles <= 0 {
		o.Burst = DefaultBurst()
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.Observer == nil {
		o.Observer = nopObserver{}
	}
}

// Controller owns a Session and applies the card's transition rules.
// It is not safe for concurrent use; callers drive it from one event loop.
type Controller struct {
	opts    Options
	session *Session
	slots   []Slot
	tasks   *tasks
}

// NewController creates a controller with a fresh session.
func NewController(opts Options) *Controller {
	opts.setDefaults()
	return &Controller{
		opts:    opts,
		session: NewSession(),
		slots:   newSlots(opts.Slots, opts.Image),
		tasks:   newTasks(),
	}
}

// Session returns the live session. Callers must treat it as read-only.
func (c *Controller) Session() *Session {
	return c.session
}

// Secret returns the token that opens the card.
func (c *Controller) Secret() string {
	return c.opts.Secret
}

// SetInput replaces the password field contents.
func (c *Controller) SetInput(s string) error {
	if c.session.Screen != ScreenPassword {
		return fmt.Errorf("set input on %s: %w", c.session.Screen, ErrWrongScreen)
	}
	c.session.PasswordInput = s
	return nil
}

// Submit checks the typed input against the secret. A match moves to the
// proposal screen. A mismatch raises the error flag, shakes the field and
// schedules the flag to clear; the input is kept as typed.
func (c *Controller) Submit() ([]Effect, error) {
	if c.session.Screen != ScreenPassword {
		return nil, fmt.Errorf("submit on %s: %w", c.session.Screen, ErrWrongScreen)
	}
	if c.session.PasswordInput == c.opts.Secret {
		c.transition(ScreenProposal)
		return nil, nil
	}
	c.session.ErrorFlag = true
	c.opts.Observer.PasswordRejected(c.session)
	id := c.tasks.schedule()
	return []Effect{
		ShakeEffect{},
		ClearErrorEffect{Task: id, Delay: c.opts.ErrorFlash},
	}, nil
}

// Fire runs a scheduled task. Earlier tasks are not superseded by later
// submits, so any pending clear resets the flag. Tasks cancelled by
// Teardown are ignored. Reports whether the task ran.
func (c *Controller) Fire(id TaskID) bool {
	if !c.tasks.fire(id) {
		return false
	}
	c.session.ErrorFlag = false
	return true
}

// Pending returns the number of scheduled tasks that have not fired.
func (c *Controller) Pending() int {
	return c.tasks.len()
}

// DodgeNo moves the "no" button to a random point inside the viewport
// (minus its margin) and grows the "yes" button. It is the response to
// both hovering and clicking "no"; "no" never gets chosen.
func (c *Controller) DodgeNo(v Viewport) error {
	if c.session.Screen != ScreenProposal {
		return fmt.Errorf("dodge on %s: %w", c.session.Screen, ErrWrongScreen)
	}
	c.session.NoButtonOffset = Point{
		X: randomAxis(c.opts.Rand, v.Width, v.MarginX),
		Y: randomAxis(c.opts.Rand, v.Height, v.MarginY),
	}
	c.session.YesButtonScale += c.opts.ScaleStep
	c.session.Dodges++
	c.opts.Observer.Dodged(c.session)
	return nil
}

// randomAxis returns a centred offset in [-(size/2 - margin), size/2 - margin).
func randomAxis(r *rand.Rand, size, margin float64) float64 {
	span := size - 2*margin
	if span <= 0 {
		return 0
	}
	return r.Float64()*span - size/2 + margin
}

// AcceptYes fires the particle burst and opens the gallery.
func (c *Controller) AcceptYes() ([]Effect, error) {
	if c.session.Screen != ScreenProposal {
		return nil, fmt.Errorf("accept on %s: %w", c.session.Screen, ErrWrongScreen)
	}
	burst := c.opts.Burst
	burst.Colors = append([]string(nil), burst.Colors...)
	c.transition(ScreenGallery)
	return []Effect{BurstEffect{Burst: burst}}, nil
}

// Back returns from the gallery to the proposal without resetting it.
func (c *Controller) Back() error {
	if c.session.Screen != ScreenGallery {
		return fmt.Errorf("back on %s: %w", c.session.Screen, ErrWrongScreen)
	}
	c.transition(ScreenProposal)
	return nil
}

// Slots returns a copy of the gallery slots in display order.
func (c *Controller) Slots() []Slot {
	return append([]Slot(nil), c.slots...)
}

// Slot returns the slot at 1-based index i.
func (c *Controller) Slot(i int) (Slot, error) {
	if i < 1 || i > len(c.slots) {
		return Slot{}, fmt.Errorf("slot %d: %w", i, ErrNoSlot)
	}
	return c.slots[i-1], nil
}

// SlotFailed swaps slot i to its deterministic placeholder. Calling it on a
// slot that already shows the placeholder is a no-op.
func (c *Controller) SlotFailed(i int) (Slot, error) {
	if i < 1 || i > len(c.slots) {
		return Slot{}, fmt.Errorf("slot %d: %w", i, ErrNoSlot)
	}
	s := &c.slots[i-1]
	if s.Placeholder {
		return *s, nil
	}
	s.Ref = c.opts.Placeholder(s.PlaceholderKey())
	s.Placeholder = true
	c.opts.Observer.SlotFallback(c.session, *s)
	return *s, nil
}

// ReloadSlot points slot i back at its own image, e.g. after the file
// appeared on disk.
func (c *Controller) ReloadSlot(i int) (Slot, error) {
	if i < 1 || i > len(c.slots) {
		return Slot{}, fmt.Errorf("slot %d: %w", i, ErrNoSlot)
	}
	s := &c.slots[i-1]
	s.Ref = c.opts.Image(s.Index)
	s.Placeholder = false
	return *s, nil
}

// Teardown cancels every pending task. Later firings are ignored.
func (c *Controller) Teardown() {
	c.tasks.cancelAll()
}

func (c *Controller) transition(to Screen) {
	from := c.session.Screen
	if !canTransition(from, to) {
		return
	}
	c.session.Screen = to
	c.opts.Observer.Transition(c.session, from, to)
}

type nopObserver struct{}

func (nopObserver) Transition(*Session, Screen, Screen) {}
func (nopObserver) PasswordRejected(*Session)           {}
func (nopObserver) Dodged(*Session)                     {}
func (nopObserver) SlotFallback(*Session, Slot)         {}
