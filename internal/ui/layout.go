package ui

import "fmt"

// PaneID identifies a pane. Ids are never reused.
type PaneID int

const (
	// PromptID is the command/log line at the bottom of the screen.
	PromptID PaneID = 0
	// SplashID is the placeholder shown while no panes are open.
	SplashID PaneID = 1
	// FirstPaneID is the first id handed out to a real pane.
	FirstPaneID = max(PromptID, SplashID) + 1

	// PromptHeight is the number of rows reserved for the prompt.
	PromptHeight = 1
)

// Reserved reports whether id belongs to the prompt or the splash screen.
func (id PaneID) Reserved() bool {
	return id == PromptID || id == SplashID
}

// Direction is the axis a Node splits its frame along.
type Direction int

const (
	// Horizontal places children side by side, left to right.
	Horizontal Direction = iota
	// Vertical stacks children top to bottom.
	Vertical
)

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Flex is the sizing rule of a Node child: a fixed number of cells or a
// share of what is left after fixed children are placed.
type Flex struct {
	fixed bool
	n     int
}

// Fixed sizes a child to exactly n cells along the split axis.
func Fixed(n int) Flex { return Flex{fixed: true, n: n} }

// Stretched sizes a child to share/total of the space left by fixed children.
func Stretched(share int) Flex { return Flex{n: share} }

// IsFixed reports whether f is a Fixed rule.
func (f Flex) IsFixed() bool { return f.fixed }

// Value returns the fixed size or the stretch share.
func (f Flex) Value() int { return f.n }

// Layout is either a Leaf or a Node.
type Layout interface {
	layout()
}

// Leaf is a single pane.
type Leaf struct {
	ID PaneID
}

// Node splits its frame among its children.
type Node struct {
	Direction Direction
	Children  []Child
}

// Child is a Node entry.
type Child struct {
	Layout Layout
	Flex   Flex
}

func (Leaf) layout() {}
func (Node) layout() {}

// Compute lays out l inside frame, appending one LaidComponent per leaf in
// depth-first order. next holds the frame id for the next leaf and is
// advanced past every leaf written.
func Compute(l Layout, frame Rect, next *int, out []LaidComponent) []LaidComponent {
	switch v := l.(type) {
	case Leaf:
		out = append(out, LaidComponent{ID: v.ID, Rect: frame, FrameID: *next})
		*next++
	case Node:
		for i, r := range split(frame, v.Direction, v.Children) {
			out = Compute(v.Children[i].Layout, r, next, out)
		}
	}
	return out
}

// Lay computes the components of l for a whole frame, numbering from 1.
func Lay(l Layout, frame Rect) []LaidComponent {
	next := 1
	return Compute(l, frame, &next, nil)
}

// split divides frame along dir. Fixed children are sized first, in order,
// and clipped once the frame runs out. Stretched children divide the rest
// by share; the last one absorbs the rounding remainder.
func split(frame Rect, dir Direction, children []Child) []Rect {
	total := frame.Width
	if dir == Vertical {
		total = frame.Height
	}
	if total < 0 {
		total = 0
	}

	sizes := make([]int, len(children))
	remaining := total
	shares := 0
	lastStretched := -1
	for i, c := range children {
		if !c.Flex.IsFixed() {
			if c.Flex.Value() > 0 {
				shares += c.Flex.Value()
				lastStretched = i
			}
			continue
		}
		n := min(max(c.Flex.Value(), 0), remaining)
		sizes[i] = n
		remaining -= n
	}
	if shares > 0 {
		given := 0
		for i, c := range children {
			if c.Flex.IsFixed() || c.Flex.Value() <= 0 {
				continue
			}
			if i == lastStretched {
				sizes[i] = remaining - given
				break
			}
			sizes[i] = remaining * c.Flex.Value() / shares
			given += sizes[i]
		}
	}

	rects := make([]Rect, len(children))
	offset := 0
	for i, n := range sizes {
		if dir == Horizontal {
			rects[i] = Rect{X: frame.X + offset, Y: frame.Y, Width: n, Height: frame.Height}
		} else {
			rects[i] = Rect{X: frame.X, Y: frame.Y + offset, Width: frame.Width, Height: n}
		}
		offset += n
	}
	return rects
}

// Wrap places content above the prompt line.
func Wrap(content Layout) Layout {
	return Node{
		Direction: Vertical,
		Children: []Child{
			{Layout: content, Flex: Stretched(1)},
			{Layout: Leaf{ID: PromptID}, Flex: Fixed(PromptHeight)},
		},
	}
}

// Empty is the root layout with no panes open: the splash screen over the prompt.
func Empty() Layout {
	return Wrap(Leaf{ID: SplashID})
}

// Content returns the part of a wrapped root that holds the panes.
// It panics if root was not built by Wrap.
func Content(root Layout) Layout {
	n, ok := root.(Node)
	if !ok || n.Direction != Vertical || len(n.Children) != 2 {
		panic(fmt.Sprintf("ui: layout root is not wrapped with the prompt: %#v", root))
	}
	if p, ok := n.Children[1].Layout.(Leaf); !ok || p.ID != PromptID {
		panic(fmt.Sprintf("ui: layout root is not wrapped with the prompt: %#v", root))
	}
	return n.Children[0].Layout
}

// AddLeft returns a new root with id inserted left of every open pane.
// It panics if id is reserved or already laid out.
func AddLeft(root Layout, id PaneID) Layout {
	if id.Reserved() {
		panic(fmt.Sprintf("ui: cannot add reserved pane id %d", id))
	}
	if Contains(root, id) {
		panic(fmt.Sprintf("ui: pane id %d is already in the layout", id))
	}
	leaf := Child{Layout: Leaf{ID: id}, Flex: Stretched(1)}

	switch c := Content(root).(type) {
	case Node:
		if c.Direction == Horizontal {
			children := make([]Child, 0, len(c.Children)+1)
			children = append(children, leaf)
			children = append(children, c.Children...)
			return Wrap(Node{Direction: Horizontal, Children: children})
		}
		return Wrap(Node{Direction: Horizontal, Children: []Child{leaf, {Layout: c, Flex: Stretched(1)}}})
	case Leaf:
		if c.ID == SplashID {
			return Wrap(Node{Direction: Horizontal, Children: []Child{leaf}})
		}
		return Wrap(Node{Direction: Horizontal, Children: []Child{leaf, {Layout: c, Flex: Stretched(1)}}})
	}
	panic("ui: unreachable layout kind")
}

// Remove returns a new root without id. Removing an id that is not laid out
// returns an equivalent tree; removing the last pane restores the splash screen.
// It panics if id is reserved.
func Remove(root Layout, id PaneID) Layout {
	if id.Reserved() {
		panic(fmt.Sprintf("ui: cannot remove reserved pane id %d", id))
	}
	content, ok := without(Content(root), id)
	if !ok {
		return Empty()
	}
	return Wrap(content)
}

// without rebuilds l with id dropped. ok is false when nothing is left.
func without(l Layout, id PaneID) (Layout, bool) {
	switch v := l.(type) {
	case Leaf:
		if v.ID == id {
			return nil, false
		}
		return v, true
	case Node:
		children := make([]Child, 0, len(v.Children))
		for _, c := range v.Children {
			if rest, ok := without(c.Layout, id); ok {
				children = append(children, Child{Layout: rest, Flex: c.Flex})
			}
		}
		if len(children) == 0 {
			return nil, false
		}
		return Node{Direction: v.Direction, Children: children}, true
	}
	return nil, false
}

// Contains reports whether id appears as a leaf anywhere in l.
func Contains(l Layout, id PaneID) bool {
	switch v := l.(type) {
	case Leaf:
		return v.ID == id
	case Node:
		for _, c := range v.Children {
			if Contains(c.Layout, id) {
				return true
			}
		}
	}
	return false
}

// Leaves returns the non-reserved leaf ids of l in depth-first order.
func Leaves(l Layout) []PaneID {
	var ids []PaneID
	var walk func(Layout)
	walk = func(l Layout) {
		switch v := l.(type) {
		case Leaf:
			if !v.ID.Reserved() {
				ids = append(ids, v.ID)
			}
		case Node:
			for _, c := range v.Children {
				walk(c.Layout)
			}
		}
	}
	walk(l)
	return ids
}
