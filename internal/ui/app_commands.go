package ui

import (
	"context"
	"image"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"heartgate/internal/card"
)

// Timing holds animation and stagger intervals.
type Timing struct {
	ShakeFrame    time.Duration // one keyframe of the password shake
	ConfettiFrame time.Duration // one confetti simulation step
	Pulse         time.Duration // half a heartbeat
	SlotStagger   time.Duration // delay between gallery slot reveals
}

// DefaultTiming is the pacing used by the binary.
func DefaultTiming() Timing {
	return Timing{
		ShakeFrame:    60 * time.Millisecond,
		ConfettiFrame: 33 * time.Millisecond,
		Pulse:         time.Second,
		SlotStagger:   100 * time.Millisecond,
	}
}

// ImageLoader resolves a gallery slot to an image.
type ImageLoader interface {
	Load(ctx context.Context, slot card.Slot) (image.Image, error)
}

// effectsCmd translates controller effects into commands.
func effectsCmd(effects []card.Effect) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, e := range effects {
		switch e := e.(type) {
		case card.ShakeEffect:
			cmds = append(cmds, func() tea.Msg { return shakeMsg{} })
		case card.ClearErrorEffect:
			cmds = append(cmds, tea.Tick(e.Delay, func(time.Time) tea.Msg {
				return clearErrorMsg{Task: e.Task}
			}))
		case card.BurstEffect:
			cmds = append(cmds, func() tea.Msg { return burstMsg{Burst: e.Burst} })
		}
	}
	return tea.Batch(cmds...)
}

// shakeFrameCmd schedules the next shake keyframe.
func shakeFrameCmd(d time.Duration, gen, step int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return shakeFrameMsg{Gen: gen, Step: step}
	})
}

// confettiFrameCmd schedules the next confetti step.
func confettiFrameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return confettiFrameMsg{}
	})
}

// pulseCmd schedules the next heartbeat half.
func pulseCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return pulseMsg{Gen: gen}
	})
}

// revealSlotCmd reveals slot index after its stagger delay.
func revealSlotCmd(stagger time.Duration, index int) tea.Cmd {
	return tea.Tick(time.Duration(index)*stagger, func(time.Time) tea.Msg {
		return revealSlotMsg{Index: index}
	})
}

// loadSlotCmd loads slot in the background.
func loadSlotCmd(loader ImageLoader, slot card.Slot) tea.Cmd {
	return func() tea.Msg {
		img, err := loader.Load(context.Background(), slot)
		if err != nil {
			return slotFailedMsg{Index: slot.Index, Ref: slot.Ref, Err: err}
		}
		return slotLoadedMsg{Index: slot.Index, Ref: slot.Ref, Image: img}
	}
}

// waitForPhotoCmd blocks until the watcher reports a changed slot.
// Returns nil once the channel is closed.
func waitForPhotoCmd(changes <-chan int) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		i, ok := <-changes
		if !ok {
			return nil
		}
		return photoChangedMsg{Index: i}
	}
}
