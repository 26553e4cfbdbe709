// Package splash draws the placeholder shown while no pane is open.
package splash

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"panedeck/internal/ui"
)

// Splash shows the program name and the main key bindings, centred.
type Splash struct {
	title string
	hints []key.Binding
}

var _ ui.Pane = (*Splash)(nil)

// New returns a splash titled title that lists hints.
func New(title string, hints ...key.Binding) *Splash {
	return &Splash{title: title, hints: hints}
}

// Lines returns the splash content for a frame width wide, before centring.
// Hints wrap onto further lines rather than being cut off.
func (s *Splash) Lines(width int) []string {
	return append([]string{s.title, ""}, ui.WrapKeyHelp(s.hints, width)...)
}

// Draw implements ui.Pane.
func (s *Splash) Draw(surface ui.Surface, ctx *ui.Context) {
	f := ctx.Frame
	if f.Empty() {
		return
	}
	th := ctx.Theme
	block := lipgloss.Place(f.Width, f.Height, lipgloss.Center, lipgloss.Center,
		strings.Join(s.Lines(f.Width), "\n"))

	for i, line := range strings.Split(block, "\n") {
		if i >= f.Height {
			break
		}
		style := th.Muted()
		if strings.TrimSpace(line) == s.title {
			style = th.Accent()
		}
		ui.DrawLine(surface, f, i, line, style)
	}
}

// KeyPress implements ui.Pane.
func (s *Splash) KeyPress(tea.KeyMsg, *ui.Context) error { return nil }

// TaskDone implements ui.Pane.
func (s *Splash) TaskDone(any) error { return nil }
