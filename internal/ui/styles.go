package ui

import (
	"strconv"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
)

// Color converts a lipgloss colour (hex, ANSI index or name) to tcell.
func Color(c lipgloss.Color) tcell.Color {
	if c == "" {
		return tcell.ColorDefault
	}
	if n, err := strconv.Atoi(string(c)); err == nil {
		return tcell.PaletteColor(n)
	}
	return tcell.GetColor(string(c))
}

// Base is plain text on the theme background.
func (t *Theme) Base() tcell.Style {
	return tcell.StyleDefault.
		Background(Color(t.Palette.Background)).
		Foreground(Color(t.Palette.Foreground))
}

// Muted is for hints and secondary text.
func (t *Theme) Muted() tcell.Style {
	return t.Base().Foreground(Color(t.Palette.Muted))
}

// Accent is for titles and key names.
func (t *Theme) Accent() tcell.Style {
	return t.Base().Foreground(Color(t.Palette.Accent)).Bold(true)
}

// Danger is for errors.
func (t *Theme) Danger() tcell.Style {
	return t.Base().Foreground(Color(t.Palette.Danger))
}

// Status is the style of a pane's status bar.
func (t *Theme) Status(focused bool) tcell.Style {
	if focused {
		return t.Base().Background(Color(t.Palette.StatusFocused)).Bold(true)
	}
	return t.Base().Background(Color(t.Palette.StatusUnfocused)).Foreground(Color(t.Palette.Muted))
}

// TokenStyle maps a chroma token type to a cell style on top of base.
func TokenStyle(style *chroma.Style, tt chroma.TokenType, base tcell.Style) tcell.Style {
	e := style.Get(tt)
	st := base
	if e.Colour.IsSet() {
		st = st.Foreground(tcell.NewRGBColor(int32(e.Colour.Red()), int32(e.Colour.Green()), int32(e.Colour.Blue())))
	}
	if e.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if e.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if e.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}
