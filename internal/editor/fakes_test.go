package editor

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"panedeck/internal/jobs"
	"panedeck/internal/ui"
)

// fakeClock only moves when asked: by step on every Now call and by the
// full duration of every Sleep.
type fakeClock struct {
	now    time.Time
	step   time.Duration
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

// scriptedInput hands out one batch per loop iteration. Once the script is
// exhausted it presses ctrl+c.
type scriptedInput struct {
	batches [][]tea.Msg
	err     error
}

func (in *scriptedInput) Poll() (tea.Msg, bool, error) {
	if in.err != nil {
		return nil, false, in.err
	}
	if len(in.batches) == 0 {
		return tea.KeyMsg{Type: tea.KeyCtrlC}, true, nil
	}
	b := in.batches[0]
	if len(b) == 0 {
		in.batches = in.batches[1:]
		return nil, false, nil
	}
	in.batches[0] = b[1:]
	return b[0], true, nil
}

type fakeJobs struct {
	pending   []jobs.Completion
	err       error
	submitted []string
}

func (j *fakeJobs) Submit(kind string, task jobs.Task) jobs.ID {
	j.submitted = append(j.submitted, kind)
	return jobs.ID(uuid.New())
}

func (j *fakeJobs) TryRecv() (jobs.Completion, error) {
	if len(j.pending) > 0 {
		c := j.pending[0]
		j.pending = j.pending[1:]
		return c, nil
	}
	if j.err != nil {
		return jobs.Completion{}, j.err
	}
	return jobs.Completion{}, jobs.ErrEmpty
}

type fakePrompt struct {
	active  bool
	log     string
	logged  []string
	keys    []tea.KeyMsg
	command ui.Command
	err     error
	drawn   int
}

func (p *fakePrompt) Draw(s ui.Surface, ctx *ui.Context) {
	p.drawn++
	ui.DrawLine(s, ctx.Frame, 0, p.log, tcell.StyleDefault)
}

func (p *fakePrompt) KeyPress(k tea.KeyMsg, ctx *ui.Context) error {
	p.keys = append(p.keys, k)
	return p.err
}

func (p *fakePrompt) TaskDone(any) error { return nil }
func (p *fakePrompt) Active() bool       { return p.active }
func (p *fakePrompt) ClearLog()          { p.log = "" }

func (p *fakePrompt) LogError(msg string) {
	p.log = msg
	p.logged = append(p.logged, msg)
}

func (p *fakePrompt) PollAndClear() (ui.Command, bool) {
	c := p.command
	p.command = nil
	return c, c != nil
}

// fakePane records what it receives and draws "name keys=N payloads=M".
type fakePane struct {
	name      string
	keys      []tea.KeyMsg
	payloads  []any
	focused   []bool
	keyErr    error
	doneErr   error
	closed    bool
	lastFrame ui.Rect
}

func (p *fakePane) Draw(s ui.Surface, ctx *ui.Context) {
	p.focused = append(p.focused, ctx.Focused)
	p.lastFrame = ctx.Frame
	text := fmt.Sprintf("%s keys=%d payloads=%d", p.name, len(p.keys), len(p.payloads))
	ui.DrawLine(s, ctx.Frame, 0, text, tcell.StyleDefault)
}

func (p *fakePane) KeyPress(k tea.KeyMsg, ctx *ui.Context) error {
	p.keys = append(p.keys, k)
	return p.keyErr
}

func (p *fakePane) TaskDone(payload any) error {
	if p.doneErr != nil {
		return p.doneErr
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *fakePane) Close() error {
	p.closed = true
	return nil
}

type splashPane struct{ fakePane }

// countingScreen counts presented frames.
type countingScreen struct {
	tcell.SimulationScreen
	shows int
	syncs int
}

func (s *countingScreen) Show() {
	s.shows++
	s.SimulationScreen.Show()
}

func (s *countingScreen) Sync() {
	s.syncs++
	s.SimulationScreen.Sync()
}

type harness struct {
	editor *Editor
	screen *countingScreen
	input  *scriptedInput
	jobs   *fakeJobs
	prompt *fakePrompt
	splash *splashPane
	clock  *fakeClock
	opened []string
	openFn OpenFunc
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	require.NoError(t, sim.Init())
	sim.SetSize(80, 24)
	t.Cleanup(sim.Fini)

	themes, err := ui.NewThemeSet(ui.DefaultThemes())
	require.NoError(t, err)

	h := &harness{
		screen: &countingScreen{SimulationScreen: sim},
		input:  &scriptedInput{},
		jobs:   &fakeJobs{},
		prompt: &fakePrompt{},
		splash: &splashPane{fakePane{name: "splash"}},
		clock:  newFakeClock(),
	}
	h.editor = New(Config{
		Screen: h.screen,
		Input:  h.input,
		Jobs:   h.jobs,
		Themes: themes,
		Prompt: h.prompt,
		Splash: h.splash,
		Clock:  h.clock,
		Open: func(path string, exists bool, ctx *ui.Context) (ui.Pane, error) {
			if h.openFn != nil {
				return h.openFn(path, exists, ctx)
			}
			h.opened = append(h.opened, path)
			return &fakePane{name: path}, nil
		},
	})
	return h
}

// row returns screen row y as text.
func (h *harness) row(y int) string {
	w, _ := h.screen.Size()
	out := make([]rune, 0, w)
	for x := 0; x < w; x++ {
		r, _, _, _ := h.screen.GetContent(x, y)
		out = append(out, r)
	}
	return string(out)
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func ctrl(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}
