package card

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, obs Observer) *Controller {
	t.Helper()
	return NewController(Options{
		Rand:     rand.New(rand.NewPCG(1, 2)),
		Observer: obs,
	})
}

// recordingObserver counts observer callbacks.
type recordingObserver struct {
	transitions [][2]Screen
	rejected    int
	dodged      int
	fallbacks   []int
}

func (r *recordingObserver) Transition(_ *Session, from, to Screen) {
	r.transitions = append(r.transitions, [2]Screen{from, to})
}
func (r *recordingObserver) PasswordRejected(*Session) { r.rejected++ }
func (r *recordingObserver) Dodged(*Session)           { r.dodged++ }
func (r *recordingObserver) SlotFallback(_ *Session, s Slot) {
	r.fallbacks = append(r.fallbacks, s.Index)
}

func openProposal(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.SetInput(DefaultSecret))
	_, err := c.Submit()
	require.NoError(t, err)
	require.Equal(t, ScreenProposal, c.Session().Screen)
}

func TestNewController_InitialState(t *testing.T) {
	c := newTestController(t, nil)
	s := c.Session()

	assert.Equal(t, ScreenPassword, s.Screen)
	assert.Empty(t, s.PasswordInput)
	assert.False(t, s.ErrorFlag)
	assert.Equal(t, Point{}, s.NoButtonOffset)
	assert.Equal(t, 1.0, s.YesButtonScale)
	assert.NotEmpty(t, s.ID)
	assert.Len(t, c.Slots(), 8)
}

func TestSubmit_WrongInputRaisesAndClearsErrorFlag(t *testing.T) {
	for _, input := range []string{"", "22.03", "22.02 ", "2202", "22/02", "hello"} {
		t.Run(input, func(t *testing.T) {
			obs := &recordingObserver{}
			c := newTestController(t, obs)
			require.NoError(t, c.SetInput(input))

			effects, err := c.Submit()
			require.NoError(t, err)
			assert.Equal(t, ScreenPassword, c.Session().Screen)
			assert.True(t, c.Session().ErrorFlag)
			assert.Equal(t, input, c.Session().PasswordInput, "input must be kept")
			assert.Equal(t, 1, obs.rejected)

			require.Len(t, effects, 2)
			assert.Equal(t, ShakeEffect{}, effects[0])
			clearFx, ok := effects[1].(ClearErrorEffect)
			require.True(t, ok)
			assert.Equal(t, 500*time.Millisecond, clearFx.Delay)

			assert.True(t, c.Fire(clearFx.Task))
			assert.False(t, c.Session().ErrorFlag)
			assert.Equal(t, ScreenPassword, c.Session().Screen)
		})
	}
}

func TestSubmit_SecretOpensProposalOnce(t *testing.T) {
	obs := &recordingObserver{}
	c := newTestController(t, obs)
	require.NoError(t, c.SetInput("22.02"))

	effects, err := c.Submit()
	require.NoError(t, err)
	assert.Empty(t, effects)
	assert.Equal(t, ScreenProposal, c.Session().Screen)
	assert.False(t, c.Session().ErrorFlag)

	_, err = c.Submit()
	assert.ErrorIs(t, err, ErrWrongScreen)
	assert.Equal(t, [][2]Screen{{ScreenPassword, ScreenProposal}}, obs.transitions)
}

func TestSubmit_OverlappingClearsAreNotCancelled(t *testing.T) {
	c := newTestController(t, nil)
	require.NoError(t, c.SetInput("nope"))

	first, err := c.Submit()
	require.NoError(t, err)
	second, err := c.Submit()
	require.NoError(t, err)
	assert.Equal(t, 2, c.Pending())

	// The first timer clears the flag even though a newer submit happened.
	assert.True(t, c.Fire(first[1].(ClearErrorEffect).Task))
	assert.False(t, c.Session().ErrorFlag)
	assert.True(t, c.Fire(second[1].(ClearErrorEffect).Task))
	assert.Zero(t, c.Pending())
}

func TestFire_IgnoresUnknownAndRepeatedTasks(t *testing.T) {
	c := newTestController(t, nil)
	require.NoError(t, c.SetInput("x"))
	effects, err := c.Submit()
	require.NoError(t, err)
	id := effects[1].(ClearErrorEffect).Task

	assert.False(t, c.Fire(id+42))
	assert.True(t, c.Session().ErrorFlag)
	assert.True(t, c.Fire(id))
	assert.False(t, c.Fire(id))
}

func TestTeardown_CancelsPendingClear(t *testing.T) {
	c := newTestController(t, nil)
	require.NoError(t, c.SetInput("x"))
	effects, err := c.Submit()
	require.NoError(t, err)

	c.Teardown()
	assert.Zero(t, c.Pending())
	assert.False(t, c.Fire(effects[1].(ClearErrorEffect).Task))
	assert.True(t, c.Session().ErrorFlag, "cancelled task must not touch the session")
}

func TestDodgeNo_ScaleGrowsAndOffsetStaysInBounds(t *testing.T) {
	obs := &recordingObserver{}
	c := newTestController(t, obs)
	openProposal(t, c)

	v := Viewport{Width: 120, Height: 40, MarginX: 8, MarginY: 2}
	for n := 1; n <= 50; n++ {
		require.NoError(t, c.DodgeNo(v))
		s := c.Session()
		assert.InDelta(t, 1.0+0.2*float64(n), s.YesButtonScale, 1e-9)

		assert.GreaterOrEqual(t, s.NoButtonOffset.X, -(v.Width/2 - v.MarginX))
		assert.Less(t, s.NoButtonOffset.X, v.Width/2-v.MarginX)
		assert.GreaterOrEqual(t, s.NoButtonOffset.Y, -(v.Height/2 - v.MarginY))
		assert.Less(t, s.NoButtonOffset.Y, v.Height/2-v.MarginY)
	}
	assert.Equal(t, 50, obs.dodged)
	assert.Equal(t, 50, c.Session().Dodges)
	assert.Equal(t, ScreenProposal, c.Session().Screen, "no has no terminal state")
}

func TestDodgeNo_DeterministicWithSeed(t *testing.T) {
	v := Viewport{Width: 80, Height: 24, MarginX: 8, MarginY: 2}
	run := func() []Point {
		c := newTestController(t, nil)
		openProposal(t, c)
		var pts []Point
		for range 5 {
			require.NoError(t, c.DodgeNo(v))
			pts = append(pts, c.Session().NoButtonOffset)
		}
		return pts
	}
	assert.Equal(t, run(), run())
}

func TestDodgeNo_ViewportSmallerThanMargin(t *testing.T) {
	c := newTestController(t, nil)
	openProposal(t, c)

	require.NoError(t, c.DodgeNo(Viewport{Width: 10, Height: 3, MarginX: 8, MarginY: 2}))
	assert.Equal(t, Point{}, c.Session().NoButtonOffset)
	assert.InDelta(t, 1.2, c.Session().YesButtonScale, 1e-9)
}

func TestDodgeNo_WrongScreen(t *testing.T) {
	c := newTestController(t, nil)

	err := c.DodgeNo(Viewport{Width: 80, Height: 24})
	assert.ErrorIs(t, err, ErrWrongScreen)
	assert.Equal(t, 1.0, c.Session().YesButtonScale)
}

func TestAcceptYes_EmitsOneBurstAndOpensGallery(t *testing.T) {
	c := newTestController(t, nil)
	openProposal(t, c)

	effects, err := c.AcceptYes()
	require.NoError(t, err)
	assert.Equal(t, ScreenGallery, c.Session().Screen)

	var bursts []BurstEffect
	for _, e := range effects {
		if b, ok := e.(BurstEffect); ok {
			bursts = append(bursts, b)
		}
	}
	require.Len(t, bursts, 1)
	assert.Equal(t, 150, bursts[0].Burst.Particles)
	assert.Equal(t, []string{"#ff0000", "#ff69b4", "#ff1493"}, bursts[0].Burst.Colors)

	_, err = c.AcceptYes()
	assert.ErrorIs(t, err, ErrWrongScreen)
}

func TestBack_KeepsScaleAndOffset(t *testing.T) {
	c := newTestController(t, nil)
	openProposal(t, c)
	v := Viewport{Width: 100, Height: 30, MarginX: 8, MarginY: 2}
	require.NoError(t, c.DodgeNo(v))
	require.NoError(t, c.DodgeNo(v))
	offset := c.Session().NoButtonOffset
	scale := c.Session().YesButtonScale

	_, err := c.AcceptYes()
	require.NoError(t, err)
	require.NoError(t, c.Back())

	assert.Equal(t, ScreenProposal, c.Session().Screen)
	assert.Equal(t, offset, c.Session().NoButtonOffset)
	assert.Equal(t, scale, c.Session().YesButtonScale)

	assert.ErrorIs(t, c.Back(), ErrWrongScreen)
}

func TestSetInput_OnlyOnPasswordScreen(t *testing.T) {
	c := newTestController(t, nil)
	openProposal(t, c)

	assert.ErrorIs(t, c.SetInput("again"), ErrWrongScreen)
	assert.Equal(t, DefaultSecret, c.Session().PasswordInput)
}

func TestSlotFailed_SwapsToPlaceholder(t *testing.T) {
	obs := &recordingObserver{}
	c := newTestController(t, obs)

	for i := 1; i <= 8; i++ {
		before, err := c.Slot(i)
		require.NoError(t, err)
		assert.Equal(t, FormatRef("images/photo%d.jpg")(i), before.Ref)

		after, err := c.SlotFailed(i)
		require.NoError(t, err)
		assert.True(t, after.Placeholder)
		assert.Equal(t, i+100, after.PlaceholderKey())
		assert.Equal(t, FormatRef("https://picsum.photos/seed/%d/800/800")(i+100), after.Ref)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, obs.fallbacks)

	// A second failure for the same slot is a no-op.
	again, err := c.SlotFailed(3)
	require.NoError(t, err)
	assert.Equal(t, "https://picsum.photos/seed/103/800/800", again.Ref)
	assert.Len(t, obs.fallbacks, 8)
}

func TestSlotFailed_OutOfRange(t *testing.T) {
	c := newTestController(t, nil)
	for _, i := range []int{0, -1, 9} {
		_, err := c.SlotFailed(i)
		assert.ErrorIs(t, err, ErrNoSlot)
	}
}

func TestReloadSlot_RestoresImageRef(t *testing.T) {
	c := newTestController(t, nil)
	_, err := c.SlotFailed(2)
	require.NoError(t, err)

	s, err := c.ReloadSlot(2)
	require.NoError(t, err)
	assert.False(t, s.Placeholder)
	assert.Equal(t, "images/photo2.jpg", s.Ref)
}

func TestOptions_Overrides(t *testing.T) {
	c := NewController(Options{
		Secret:     "14.02",
		ErrorFlash: time.Second,
		ScaleStep:  0.5,
		Slots:      3,
		Image:      FormatRef("p%d.png"),
		Rand:       rand.New(rand.NewPCG(3, 4)),
	})
	assert.Equal(t, "14.02", c.Secret())
	assert.Len(t, c.Slots(), 3)
	assert.Equal(t, "p3.png", c.Slots()[2].Ref)

	require.NoError(t, c.SetInput("22.02"))
	effects, err := c.Submit()
	require.NoError(t, err)
	assert.Equal(t, time.Second, effects[1].(ClearErrorEffect).Delay)

	require.NoError(t, c.SetInput("14.02"))
	_, err = c.Submit()
	require.NoError(t, err)
	require.NoError(t, c.DodgeNo(Viewport{Width: 40, Height: 20}))
	assert.InDelta(t, 1.5, c.Session().YesButtonScale, 1e-9)
}

func TestScreen_String(t *testing.T) {
	assert.Equal(t, "password", ScreenPassword.String())
	assert.Equal(t, "proposal", ScreenProposal.String())
	assert.Equal(t, "gallery", ScreenGallery.String())
	assert.Equal(t, "unknown", Screen(9).String())
}
