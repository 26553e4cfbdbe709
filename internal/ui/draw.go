package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Surface is the cell grid panes draw into. tcell.Screen satisfies it.
type Surface interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
	ShowCursor(x, y int)
}

// Fill paints every cell of r with ch.
func Fill(s Surface, r Rect, ch rune, style tcell.Style) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			s.SetContent(x, y, ch, nil, style)
		}
	}
}

// DrawText writes text starting at (x, y), stopping before maxWidth columns.
// Wide runes that would straddle the limit are not drawn. It returns the
// number of columns used.
func DrawText(s Surface, x, y, maxWidth int, text string, style tcell.Style) int {
	col := 0
	for _, r := range text {
		if r == '\t' {
			r = ' '
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			if col > 0 {
				continue
			}
			w = 1
		}
		if col+w > maxWidth {
			break
		}
		s.SetContent(x+col, y, r, nil, style)
		col += w
	}
	return col
}

// DrawLine writes text on row i of r and pads the rest of the row with
// spaces in the same style.
func DrawLine(s Surface, r Rect, i int, text string, style tcell.Style) {
	row := r.Row(i)
	if row.Empty() {
		return
	}
	used := DrawText(s, row.X, row.Y, row.Width, text, style)
	Fill(s, Rect{X: row.X + used, Y: row.Y, Width: row.Width - used, Height: 1}, ' ', style)
}

// TextWidth is the number of columns text occupies.
func TextWidth(text string) int {
	return runewidth.StringWidth(text)
}
