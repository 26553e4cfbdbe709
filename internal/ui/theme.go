package ui

import (
	"errors"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// ErrMissingTheme matches every MissingThemeError.
var ErrMissingTheme = errors.New("missing theme")

// MissingThemeError reports a theme or syntax style that is not loaded.
type MissingThemeError struct {
	Name string
}

func (e *MissingThemeError) Error() string {
	return fmt.Sprintf("missing theme %q", e.Name)
}

func (e *MissingThemeError) Is(target error) bool { return target == ErrMissingTheme }

// Palette holds the colours panes draw with.
type Palette struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Danger     lipgloss.Color
	// Status bars: the focused pane's bar uses StatusFocused.
	StatusFocused   lipgloss.Color
	StatusUnfocused lipgloss.Color
}

// Theme is a named palette paired with a chroma style for highlighting.
type Theme struct {
	Name      string
	Palette   Palette
	Highlight string
}

// Syntax returns the chroma style named by Highlight.
func (t *Theme) Syntax() (*chroma.Style, error) {
	s, ok := styles.Registry[t.Highlight]
	if !ok {
		return nil, &MissingThemeError{Name: t.Highlight}
	}
	return s, nil
}

// DefaultThemes are the built-in themes in cycle order.
func DefaultThemes() []Theme {
	return []Theme{
		{
			Name:      "gruvbox-dark-soft",
			Highlight: "gruvbox",
			Palette: Palette{
				Background:      "#32302f",
				Foreground:      "#ebdbb2",
				Accent:          "#fabd2f",
				Muted:           "#928374",
				Danger:          "#fb4934",
				StatusFocused:   "#504945",
				StatusUnfocused: "#3c3836",
			},
		},
		{
			Name:      "gruvbox-mocha",
			Highlight: "catppuccin-mocha",
			Palette: Palette{
				Background:      "#3b3228",
				Foreground:      "#d0c8c6",
				Accent:          "#f4bc87",
				Muted:           "#7e705a",
				Danger:          "#cb6077",
				StatusFocused:   "#645240",
				StatusUnfocused: "#534636",
			},
		},
		{
			Name:      "solarized-dark",
			Highlight: "solarized-dark",
			Palette: Palette{
				Background:      "#002b36",
				Foreground:      "#839496",
				Accent:          "#b58900",
				Muted:           "#586e75",
				Danger:          "#dc322f",
				StatusFocused:   "#094352",
				StatusUnfocused: "#073642",
			},
		},
	}
}

// ThemeSet is a fixed list of themes with one active entry.
type ThemeSet struct {
	themes []Theme
	index  int
}

// NewThemeSet checks that every theme's syntax style is registered.
func NewThemeSet(themes []Theme) (*ThemeSet, error) {
	if len(themes) == 0 {
		return nil, errors.New("ui: theme set is empty")
	}
	for i := range themes {
		if _, err := themes[i].Syntax(); err != nil {
			return nil, fmt.Errorf("theme %s: %w", themes[i].Name, err)
		}
	}
	return &ThemeSet{themes: themes}, nil
}

// Active returns the current theme.
func (s *ThemeSet) Active() *Theme { return &s.themes[s.index] }

// Index returns the position of the active theme.
func (s *ThemeSet) Index() int { return s.index }

// Len returns the number of themes.
func (s *ThemeSet) Len() int { return len(s.themes) }

// Cycle activates the next theme, wrapping around, and returns it.
func (s *ThemeSet) Cycle() *Theme {
	s.index = (s.index + 1) % len(s.themes)
	return s.Active()
}

// Select activates the theme called name.
func (s *ThemeSet) Select(name string) error {
	for i := range s.themes {
		if s.themes[i].Name == name {
			s.index = i
			return nil
		}
	}
	return &MissingThemeError{Name: name}
}

// Names lists the theme names in cycle order.
func (s *ThemeSet) Names() []string {
	names := make([]string, len(s.themes))
	for i, t := range s.themes {
		names[i] = t.Name
	}
	return names
}
