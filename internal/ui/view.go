package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"panedeck/internal/jobs"
)

// Pane is an interactive region hosted by a layout slot.
//
// KeyPress receives keys as tea.KeyMsg. Alt is set only when the terminal
// delivered the modifier and the key together; an Esc followed by a plain
// key arrives as two separate messages.
type Pane interface {
	Draw(s Surface, ctx *Context)
	KeyPress(key tea.KeyMsg, ctx *Context) error
	// TaskDone receives every job payload. Payloads a pane does not
	// recognise must be ignored.
	TaskDone(payload any) error
}

// Submitter queues background work.
type Submitter interface {
	Submit(kind string, task jobs.Task) jobs.ID
}

// Context is what a pane may use during a single Draw or KeyPress call.
// Panes must not keep it afterwards.
type Context struct {
	Time    time.Time
	Focused bool
	Frame   Rect
	FrameID int
	Theme   *Theme
	Jobs    Submitter
}

// PaneError is returned by a pane that could not handle a key or payload.
type PaneError struct {
	Pane string
	Err  error
}

// NewPaneError wraps err with the name of the pane that produced it.
func NewPaneError(pane string, err error) *PaneError {
	return &PaneError{Pane: pane, Err: err}
}

func (e *PaneError) Error() string {
	return fmt.Sprintf("%s: %v", e.Pane, e.Err)
}

func (e *PaneError) Unwrap() error { return e.Err }
