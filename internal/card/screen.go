package card

// Screen is the view currently shown to the user.
type Screen int

const (
	ScreenPassword Screen = iota
	ScreenProposal
	ScreenGallery
)

func (s Screen) String() string {
	switch s {
	case ScreenPassword:
		return "password"
	case ScreenProposal:
		return "proposal"
	case ScreenGallery:
		return "gallery"
	default:
		return "unknown"
	}
}

// canTransition reports whether from -> to is an allowed edge.
// Screens only move forward, except gallery -> proposal via Back.
func canTransition(from, to Screen) bool {
	switch {
	case from == ScreenPassword && to == ScreenProposal:
		return true
	case from == ScreenProposal && to == ScreenGallery:
		return true
	case from == ScreenGallery && to == ScreenProposal:
		return true
	}
	return false
}
