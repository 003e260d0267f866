package card

import "github.com/google/uuid"

// Point is a 2D offset in renderer units (terminal cells for the TUI).
type Point struct {
	X float64
	Y float64
}

// Session is the mutable state of one run of the card.
// It is owned by the Controller; renderers read it but never write it.
type Session struct {
	ID             string
	Screen         Screen
	PasswordInput  string
	ErrorFlag      bool
	NoButtonOffset Point
	YesButtonScale float64
	Dodges         int
}

// NewSession returns a session on the password screen.
func NewSession() *Session {
	return &Session{
		ID:             uuid.NewString(),
		Screen:         ScreenPassword,
		YesButtonScale: 1.0,
	}
}
