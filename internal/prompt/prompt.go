// Package prompt implements the one-line command prompt at the bottom of
// the screen. While inactive it shows the last logged message. ctrl+f turns
// it into a file-path input with directory completion; enter hands an
// OpenFile command to the editor and esc abandons the input.
package prompt

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"panedeck/internal/ui"
)

// maxSuggestions bounds how many directory entries are offered.
const maxSuggestions = 256

// unlisted never equals a typed directory.
const unlisted = "\x00"

// KeyMap holds the prompt's own bindings.
type KeyMap struct {
	Open   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the stock prompt bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "open file"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Prompt is the editor's command line.
type Prompt struct {
	input   textinput.Model
	keys    KeyMap
	active  bool
	log     string
	pending ui.Command

	// listed is the typed directory the current suggestions came from.
	listed string
}

var _ ui.Pane = (*Prompt)(nil)

// New returns an inactive prompt with an empty log.
func New() *Prompt {
	ti := textinput.New()
	ti.Prompt = "Open: "
	ti.ShowSuggestions = true
	return &Prompt{input: ti, keys: DefaultKeyMap()}
}

// Keys returns the prompt bindings, for help rendering.
func (p *Prompt) Keys() KeyMap { return p.keys }

// Active reports whether the prompt is taking input.
func (p *Prompt) Active() bool { return p.active }

// LogError replaces the log line.
func (p *Prompt) LogError(msg string) { p.log = msg }

// ClearLog empties the log line.
func (p *Prompt) ClearLog() { p.log = "" }

// Log returns the current log line.
func (p *Prompt) Log() string { return p.log }

// Value returns the text typed so far.
func (p *Prompt) Value() string { return p.input.Value() }

// PollAndClear returns the pending command, at most once.
func (p *Prompt) PollAndClear() (ui.Command, bool) {
	c := p.pending
	p.pending = nil
	return c, c != nil
}

// KeyPress implements ui.Pane.
func (p *Prompt) KeyPress(k tea.KeyMsg, ctx *ui.Context) error {
	if !p.active {
		if key.Matches(k, p.keys.Open) {
			p.activate()
		}
		return nil
	}

	switch {
	case key.Matches(k, p.keys.Cancel):
		p.deactivate()
	case key.Matches(k, p.keys.Submit):
		path := strings.TrimSpace(p.input.Value())
		p.deactivate()
		if path != "" {
			p.pending = ui.OpenFile{Path: ExpandHome(path)}
		}
	default:
		p.input, _ = p.input.Update(k)
		p.suggest()
	}
	return nil
}

// TaskDone implements ui.Pane. The prompt runs no jobs.
func (p *Prompt) TaskDone(any) error { return nil }

// Draw implements ui.Pane.
func (p *Prompt) Draw(s ui.Surface, ctx *ui.Context) {
	th := ctx.Theme
	row := ctx.Frame.Row(0)
	if row.Empty() {
		return
	}
	if !p.active {
		ui.DrawLine(s, ctx.Frame, 0, p.log, th.Danger())
		return
	}

	ui.Fill(s, row, ' ', th.Base())
	x := row.X + ui.DrawText(s, row.X, row.Y, row.Width, p.input.Prompt, th.Accent())
	width := row.X + row.Width - x

	value := []rune(p.input.Value())
	pos := p.input.Position()
	// Scroll so the cursor stays on screen.
	start := 0
	for start < pos && ui.TextWidth(string(value[start:pos])) >= width {
		start++
	}
	used := ui.DrawText(s, x, row.Y, width, string(value[start:]), th.Base())

	if sug := []rune(p.input.CurrentSuggestion()); len(sug) > len(value) {
		ui.DrawText(s, x+used, row.Y, width-used, string(sug[len(value):]), th.Muted())
	}
	if ctx.Focused {
		s.ShowCursor(x+ui.TextWidth(string(value[start:pos])), row.Y)
	}
}

func (p *Prompt) activate() {
	p.active = true
	p.input.Reset()
	p.input.Focus()
	p.listed = unlisted
	p.suggest()
}

func (p *Prompt) deactivate() {
	p.active = false
	p.input.Blur()
	p.input.Reset()
	p.input.SetSuggestions(nil)
}

// suggest offers the entries of the directory being typed. Directories get
// a trailing slash so accepting one keeps completing inside it.
func (p *Prompt) suggest() {
	typed := p.input.Value()
	dir := typed[:strings.LastIndex(typed, "/")+1]
	if dir == p.listed {
		return
	}
	p.listed = dir

	root := ExpandHome(dir)
	if root == "" {
		root = "."
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		p.input.SetSuggestions(nil)
		return
	}
	names := make([]string, 0, min(len(entries), maxSuggestions))
	for _, e := range entries {
		if len(names) == maxSuggestions {
			break
		}
		name := dir + e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	p.input.SetSuggestions(names)
}

// ExpandHome replaces a leading "~" with the user's home directory. The
// path is returned unchanged when the home directory is unknown.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
