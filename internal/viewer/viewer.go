// Package viewer implements a read-only, syntax-highlighted file pane.
//
// A viewer loads its file in a background job and picks up the result from
// the completion broadcast. Colours come from the active theme's chroma
// style and are recomputed whenever the theme changes.
package viewer

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"panedeck/internal/ui"
)

// ErrDirectory is returned by New for a directory path.
var ErrDirectory = errors.New("is a directory")

// KeyMap holds the scrolling bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
}

// DefaultKeyMap returns the stock scrolling bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "page down")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "bottom")),
	}
}

// Viewer is a pane showing one file.
type Viewer struct {
	path   string
	name   string
	exists bool
	owner  uuid.UUID
	keys   KeyMap

	loaded bool
	failed error
	lexer  string
	lines  [][]chroma.Token
	top    int

	// style is the chroma style of styleTheme.
	style      *chroma.Style
	styleTheme string
}

var _ ui.Pane = (*Viewer)(nil)

// New opens path. An existing file must be readable; its contents are
// loaded through ctx.Jobs. A path that does not exist yet shows as an
// empty new file.
func New(path string, exists bool, ctx *ui.Context) (ui.Pane, error) {
	v := &Viewer{
		path:   path,
		name:   filepath.Base(path),
		exists: exists,
		owner:  uuid.New(),
		keys:   DefaultKeyMap(),
	}
	if !exists {
		v.loaded = true
		return v, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	_ = f.Close()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrDirectory)
	}

	id := ctx.Jobs.Submit(LoadKind, loadTask(v.owner, path))
	log.Printf("viewer.New: loading %s as job %s", path, id)
	return v, nil
}

// Path returns the file shown.
func (v *Viewer) Path() string { return v.path }

// Lines returns the number of lines loaded.
func (v *Viewer) Lines() int { return len(v.lines) }

// Top returns the first visible line, zero based.
func (v *Viewer) Top() int { return v.top }

// TaskDone implements ui.Pane. Only this viewer's own load is accepted; a
// failed load leaves the viewer empty and says so in the status line.
func (v *Viewer) TaskDone(payload any) error {
	p, ok := payload.(*Loaded)
	if !ok || p.Owner != v.owner {
		return nil
	}
	v.loaded = true
	if p.Err != nil {
		v.failed = p.Err
		return nil
	}
	v.lexer = p.Lexer
	v.lines = p.Lines
	return nil
}

// KeyPress implements ui.Pane.
func (v *Viewer) KeyPress(k tea.KeyMsg, ctx *ui.Context) error {
	page := max(1, textHeight(ctx.Frame))
	switch {
	case key.Matches(k, v.keys.Up):
		v.top--
	case key.Matches(k, v.keys.Down):
		v.top++
	case key.Matches(k, v.keys.PageUp):
		v.top -= page
	case key.Matches(k, v.keys.PageDown):
		v.top += page
	case key.Matches(k, v.keys.Top):
		v.top = 0
	case key.Matches(k, v.keys.Bottom):
		v.top = len(v.lines)
	default:
		return nil
	}
	v.clamp(textHeight(ctx.Frame))
	return nil
}

func textHeight(f ui.Rect) int { return f.Height - 1 }

// clamp keeps the last page full where the file allows it.
func (v *Viewer) clamp(height int) {
	v.top = min(v.top, len(v.lines)-height)
	v.top = max(v.top, 0)
}

// Draw implements ui.Pane.
func (v *Viewer) Draw(s ui.Surface, ctx *ui.Context) {
	f := ctx.Frame
	if f.Empty() {
		return
	}
	th := ctx.Theme
	base := th.Base()
	text := f.Shrink(1)
	v.clamp(text.Height)

	syntax := v.syntax(th)
	for i := range text.Height {
		row := text.Row(i)
		n := v.top + i
		if n >= len(v.lines) {
			marker := ""
			if v.loaded && n > 0 {
				marker = "~"
			}
			ui.DrawLine(s, text, i, marker, th.Muted())
			continue
		}
		x := row.X
		for _, tok := range v.lines[n] {
			x += ui.DrawText(s, x, row.Y, row.X+row.Width-x, tok.Value, ui.TokenStyle(syntax, tok.Type, base))
		}
		ui.Fill(s, ui.Rect{X: x, Y: row.Y, Width: row.X + row.Width - x, Height: 1}, ' ', base)
	}

	ui.DrawLine(s, f, f.Height-1, v.status(ctx.Focused), th.Status(ctx.Focused))
}

// syntax returns the chroma style for th, looking it up again only when the
// theme has changed since the last draw.
func (v *Viewer) syntax(th *ui.Theme) *chroma.Style {
	if v.style != nil && v.styleTheme == th.Name {
		return v.style
	}
	st, err := th.Syntax()
	if err != nil {
		log.Printf("viewer.syntax: %v", err)
		st = styles.Fallback
	}
	v.style, v.styleTheme = st, th.Name
	return st
}

func (v *Viewer) status(focused bool) string {
	marker := " "
	if focused {
		marker = ">"
	}
	s := fmt.Sprintf("%s %s", marker, v.name)
	switch {
	case !v.exists:
		s += " [New file]"
	case !v.loaded:
		s += " [loading]"
	case v.failed != nil:
		s += " [load failed]"
	default:
		s += fmt.Sprintf("  %d/%d", min(v.top+1, len(v.lines)), len(v.lines))
		if v.lexer != "" {
			s += "  " + v.lexer
		}
	}
	return s
}
