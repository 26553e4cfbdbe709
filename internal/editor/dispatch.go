package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"panedeck/internal/jobs"
	"panedeck/internal/ui"
)

// complete delivers a finished job. A failed job is reported on the prompt.
// The payload goes to every pane in registry order, so a failed job that
// still returned one reaches its owner; a pane that rejects it stops the
// broadcast and the error is returned.
func (e *Editor) complete(c jobs.Completion) error {
	if c.Err != nil {
		log.Printf("editor.complete: %s job %s: %v", c.Kind, c.ID, c.Err)
		e.prompt.LogError(c.Err.Error())
		if c.Payload == nil {
			return nil
		}
	}
	for _, id := range e.IDs() {
		if err := e.panes[id].TaskDone(c.Payload); err != nil {
			return fmt.Errorf("pane %d: %s job %s: %w", id, c.Kind, c.ID, err)
		}
	}
	return nil
}

// handleKey routes one key. Global bindings win; otherwise the focused pane
// sees the key unless the prompt is taking input, and the prompt sees it
// last. quit is true when the quit binding was pressed.
func (e *Editor) handleKey(k tea.KeyMsg) (quit bool, err error) {
	action := e.keys.Action(k)
	if action == ui.ActionQuit {
		return true, nil
	}

	now := e.clock.Now()
	e.prompt.ClearLog()
	switch action {
	case ui.ActionCycleFocus:
		e.cycleFocus(ui.Next)
		return false, nil
	case ui.ActionCloseFocused:
		if id, ok := e.focus.Current(); ok {
			e.Remove(id)
		}
		return false, nil
	case ui.ActionCycleTheme:
		th := e.themes.Cycle()
		e.prompt.LogError(fmt.Sprintf("Theme changed to %s", th.Name))
		return false, nil
	}

	if id, ok := e.focus.Current(); ok && !e.prompt.Active() {
		for _, c := range e.lay() {
			if c.ID != id {
				continue
			}
			if err := e.panes[id].KeyPress(k, e.context(now, c, true)); err != nil {
				log.Printf("editor.handleKey: pane %d: %v", id, err)
				e.prompt.LogError(err.Error())
			}
			break
		}
	}

	promptCtx := e.context(now, ui.LaidComponent{ID: ui.PromptID, Rect: e.promptRect()}, false)
	if err := e.prompt.KeyPress(k, promptCtx); err != nil {
		return false, fmt.Errorf("prompt: %w", err)
	}
	if cmd, ok := e.prompt.PollAndClear(); ok {
		e.execute(cmd, now)
	}
	return false, nil
}

func (e *Editor) promptRect() ui.Rect {
	f := e.frame()
	return ui.Rect{X: 0, Y: f.Height - ui.PromptHeight, Width: f.Width, Height: ui.PromptHeight}
}

func (e *Editor) execute(cmd ui.Command, now time.Time) {
	switch c := cmd.(type) {
	case ui.OpenFile:
		if err := e.openAt(c.Path, now); err != nil {
			log.Printf("editor.execute: %v", err)
			e.prompt.LogError(err.Error())
		}
	default:
		log.Printf("editor.execute: unknown command %T", cmd)
	}
}

// Open opens path in a new, focused pane. A missing file is opened as a
// new file; an unreadable one is reported on the prompt and no pane is
// created. Other failures are returned.
func (e *Editor) Open(path string) error {
	return e.openAt(path, e.clock.Now())
}

func (e *Editor) openAt(path string, now time.Time) error {
	exists := true
	if _, err := os.Stat(path); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			exists = false
			e.prompt.LogError("[New file]")
		case errors.Is(err, fs.ErrPermission):
			e.prompt.LogError(fmt.Sprintf("Permission denied while opening %s", path))
			return nil
		default:
			return fmt.Errorf("open %s: %w", path, err)
		}
	}

	ctx := e.context(now, ui.LaidComponent{Rect: e.frame()}, true)
	pane, err := e.open(path, exists, ctx)
	if errors.Is(err, fs.ErrPermission) {
		e.prompt.LogError(fmt.Sprintf("Permission denied while opening %s", path))
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	e.focus.Set(e.Add(pane))
	return nil
}
