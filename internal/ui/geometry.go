package ui

// Rect is a region of the terminal in cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Row returns the single-line rect at offset i from the top, clipped to r.
func (r Rect) Row(i int) Rect {
	if i < 0 || i >= r.Height {
		return Rect{X: r.X, Y: r.Y + i}
	}
	return Rect{X: r.X, Y: r.Y + i, Width: r.Width, Height: 1}
}

// Shrink returns r without its last n rows.
func (r Rect) Shrink(n int) Rect {
	h := r.Height - n
	if h < 0 {
		h = 0
	}
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: h}
}
