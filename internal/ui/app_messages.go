package ui

import (
	"image"

	"heartgate/internal/card"
)

// BackMsg returns from the gallery to the proposal (esc, b, back link).
type BackMsg struct{}

// clearErrorMsg fires a scheduled error-flag clear.
type clearErrorMsg struct {
	Task card.TaskID
}

// shakeMsg starts the password field shake.
type shakeMsg struct{}

// shakeFrameMsg advances the shake animation.
type shakeFrameMsg struct {
	Gen  int
	Step int
}

// burstMsg starts the confetti burst.
type burstMsg struct {
	Burst card.Burst
}

// confettiFrameMsg advances the confetti simulation.
type confettiFrameMsg struct{}

// pulseMsg toggles the proposal heart size.
type pulseMsg struct {
	Gen int
}

// revealSlotMsg shows a gallery slot once its stagger delay has passed.
type revealSlotMsg struct {
	Index int
}

// slotLoadedMsg carries a decoded gallery image.
type slotLoadedMsg struct {
	Index int
	Ref   string
	Image image.Image
}

// slotFailedMsg reports that a gallery image could not be loaded.
type slotFailedMsg struct {
	Index int
	Ref   string
	Err   error
}

// photoChangedMsg reports that the photo of a slot changed on disk.
type photoChangedMsg struct {
	Index int
}
