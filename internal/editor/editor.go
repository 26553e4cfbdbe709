// Package editor drives the application: it owns the panes, the layout and
// focus, reads input, drains job completions and decides when to redraw.
//
// Everything here runs on the goroutine that calls Run. Background work
// reaches it only through the job queue.
package editor

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"panedeck/internal/jobs"
	"panedeck/internal/ui"
)

// Screen is the terminal the editor draws to.
type Screen interface {
	ui.Surface
	HideCursor()
	Show()
	Sync()
}

// Input yields key and resize messages without blocking. ok is false when
// nothing is pending.
type Input interface {
	Poll() (msg tea.Msg, ok bool, err error)
}

// JobQueue accepts background tasks and returns their completions.
type JobQueue interface {
	ui.Submitter
	TryRecv() (jobs.Completion, error)
}

// Prompt is the command line at the bottom of the screen. It is always
// present and is not part of the pane registry.
type Prompt interface {
	ui.Pane
	// Active reports whether the prompt is taking command input.
	Active() bool
	LogError(msg string)
	ClearLog()
	// PollAndClear returns the command completed by the last key, once.
	PollAndClear() (ui.Command, bool)
}

// OpenFunc creates the pane for path. It is called after the path has
// been checked; exists is false for a new file.
type OpenFunc func(path string, exists bool, ctx *ui.Context) (ui.Pane, error)

// Clock is the time source for the event loop.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Timing holds the event loop's latency budget.
type Timing struct {
	// RedrawInterval is the minimum time between two redraws.
	RedrawInterval time.Duration
	// SustainedInput cuts an input burst short so redraws are not starved.
	SustainedInput time.Duration
	// IdleSleep is slept on iterations that did not otherwise sleep.
	IdleSleep time.Duration
}

// DefaultTiming returns the stock latency budget.
func DefaultTiming() Timing {
	return Timing{
		RedrawInterval: 6 * time.Millisecond,
		SustainedInput: 100 * time.Millisecond,
		IdleSleep:      time.Millisecond,
	}
}

// Config wires an Editor. Screen, Input, Jobs, Themes, Prompt, Splash and
// Open are required.
type Config struct {
	Screen Screen
	Input  Input
	Jobs   JobQueue
	Themes *ui.ThemeSet
	Prompt Prompt
	Splash ui.Pane
	Open   OpenFunc

	Keys   *ui.GlobalKeys
	Clock  Clock
	Timing Timing
}

// Editor is the top-level orchestrator.
type Editor struct {
	screen Screen
	input  Input
	jobs   JobQueue
	themes *ui.ThemeSet
	prompt Prompt
	splash ui.Pane
	open   OpenFunc
	keys   ui.GlobalKeys
	clock  Clock
	timing Timing

	panes  map[ui.PaneID]ui.Pane
	nextID ui.PaneID
	layout ui.Layout
	focus  ui.FocusManager
	laid   []ui.LaidComponent
}

// New returns an editor with no panes open.
func New(cfg Config) *Editor {
	e := &Editor{
		screen: cfg.Screen,
		input:  cfg.Input,
		jobs:   cfg.Jobs,
		themes: cfg.Themes,
		prompt: cfg.Prompt,
		splash: cfg.Splash,
		open:   cfg.Open,
		keys:   ui.DefaultGlobalKeys(),
		clock:  cfg.Clock,
		timing: cfg.Timing,
		panes:  make(map[ui.PaneID]ui.Pane),
		nextID: ui.FirstPaneID,
		layout: ui.Empty(),
	}
	if cfg.Keys != nil {
		e.keys = *cfg.Keys
	}
	if e.clock == nil {
		e.clock = systemClock{}
	}
	if e.timing == (Timing{}) {
		e.timing = DefaultTiming()
	}
	e.focus.OnChange = func(from, to ui.PaneID) {
		log.Printf("editor.focus: %d -> %d", from, to)
	}
	return e
}

// Focus returns the focused pane id, if any.
func (e *Editor) Focus() (ui.PaneID, bool) {
	return e.focus.Current()
}

// Layout returns the current layout tree.
func (e *Editor) Layout() ui.Layout {
	return e.layout
}

// frame is the whole screen.
func (e *Editor) frame() ui.Rect {
	w, h := e.screen.Size()
	return ui.Rect{Width: w, Height: h}
}

// lay recomputes the laid components for the current screen size.
func (e *Editor) lay() []ui.LaidComponent {
	next := 1
	e.laid = ui.Compute(e.layout, e.frame(), &next, e.laid[:0])
	return e.laid
}

func (e *Editor) context(now time.Time, c ui.LaidComponent, focused bool) *ui.Context {
	return &ui.Context{
		Time:    now,
		Focused: focused,
		Frame:   c.Rect,
		FrameID: c.FrameID,
		Theme:   e.themes.Active(),
		Jobs:    e.jobs,
	}
}
