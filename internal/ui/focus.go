package ui

// FocusManager tracks and rotates keyboard focus across named targets.
type FocusManager struct {
	Current  string   // ID of the focused target
	Order    []string // Tab order for focus rotation
	OnChange func(from, to string)
}

// Next advances focus to the next target in order.
// Returns the new current focus ID.
func (f *FocusManager) Next() string {
	return f.move(1)
}

// Prev moves focus to the previous target in order.
func (f *FocusManager) Prev() string {
	return f.move(-1)
}

func (f *FocusManager) move(step int) string {
	if len(f.Order) == 0 {
		return ""
	}
	idx := f.index(f.Current)
	if idx < 0 && step < 0 {
		idx = 0
	}
	next := ((idx+step)%len(f.Order) + len(f.Order)) % len(f.Order)
	f.set(f.Order[next])
	return f.Current
}

// SetFocus sets focus to the given target ID.
// Returns true if the ID exists in order.
func (f *FocusManager) SetFocus(id string) bool {
	if f.index(id) < 0 {
		return false
	}
	f.set(id)
	return true
}

func (f *FocusManager) set(id string) {
	from := f.Current
	f.Current = id
	if f.OnChange != nil && from != id {
		f.OnChange(from, id)
	}
}

func (f *FocusManager) index(id string) int {
	for i, o := range f.Order {
		if o == id {
			return i
		}
	}
	return -1
}
