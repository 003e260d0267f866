package card

import "fmt"

// PlaceholderKeyOffset is added to a slot index to key its placeholder.
const PlaceholderKeyOffset = 100

// Slot is one cell of the gallery grid.
type Slot struct {
	Index       int    // 1-based
	Ref         string // resource currently requested
	Placeholder bool   // true once Ref points at the placeholder
}

// PlaceholderKey returns the deterministic placeholder key for the slot.
func (s Slot) PlaceholderKey() int {
	return s.Index + PlaceholderKeyOffset
}

// RefFunc maps a slot index or placeholder key to a resource reference.
type RefFunc func(n int) string

// FormatRef returns a RefFunc that formats n into pattern with fmt.Sprintf.
func FormatRef(pattern string) RefFunc {
	return func(n int) string {
		return fmt.Sprintf(pattern, n)
	}
}

func newSlots(n int, image RefFunc) []Slot {
	slots := make([]Slot, n)
	for i := range slots {
		slots[i] = Slot{Index: i + 1, Ref: image(i + 1)}
	}
	return slots
}
