package ui

import "sort"

// NoFocus is reported to OnChange when focus moves from or to nothing.
const NoFocus PaneID = -1

// CycleDirection selects which neighbour Cycle moves to.
type CycleDirection int

const (
	Next CycleDirection = iota
	Previous
)

// FocusManager tracks the single pane receiving keyboard input.
// The prompt and splash screen are never focused.
type FocusManager struct {
	current  PaneID
	focused  bool
	OnChange func(from, to PaneID)
}

// Current returns the focused pane, if any.
func (f *FocusManager) Current() (PaneID, bool) {
	return f.current, f.focused
}

// Is reports whether id holds focus.
func (f *FocusManager) Is(id PaneID) bool {
	return f.focused && f.current == id
}

// Set gives focus to id.
func (f *FocusManager) Set(id PaneID) {
	from := f.id()
	f.current, f.focused = id, true
	f.changed(from)
}

// Clear drops focus.
func (f *FocusManager) Clear() {
	from := f.id()
	f.current, f.focused = 0, false
	f.changed(from)
}

// Cycle moves focus one step through laid in ascending FrameID order,
// wrapping at both ends. Reserved ids are skipped. A missing or stale
// focus counts as position 0. With no candidates focus is cleared.
func (f *FocusManager) Cycle(laid []LaidComponent, dir CycleDirection) (PaneID, bool) {
	order := make([]LaidComponent, 0, len(laid))
	for _, c := range laid {
		if !c.ID.Reserved() {
			order = append(order, c)
		}
	}
	if len(order) == 0 {
		f.Clear()
		return 0, false
	}
	sort.Slice(order, func(i, j int) bool { return order[i].FrameID < order[j].FrameID })

	pos := 0
	if f.focused {
		for i, c := range order {
			if c.ID == f.current {
				pos = i
				break
			}
		}
	}
	step := 1
	if dir == Previous {
		step = len(order) - 1
	}
	f.Set(order[(pos+step)%len(order)].ID)
	return f.current, true
}

func (f *FocusManager) id() PaneID {
	if !f.focused {
		return NoFocus
	}
	return f.current
}

func (f *FocusManager) changed(from PaneID) {
	if to := f.id(); f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
}
