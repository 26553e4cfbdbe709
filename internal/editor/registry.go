package editor

import (
	"io"
	"log"
	"slices"

	"panedeck/internal/ui"
)

// Add registers pane under a fresh id, places it left of the open panes
// and focuses it if nothing else has focus.
func (e *Editor) Add(pane ui.Pane) ui.PaneID {
	id := e.nextID
	e.nextID++

	e.panes[id] = pane
	e.layout = ui.AddLeft(e.layout, id)
	if _, ok := e.focus.Current(); !ok {
		e.focus.Set(id)
	}
	return id
}

// Remove drops the pane with id. Removing an unknown id is a no-op. If the
// pane had focus, focus moves to the previous pane.
func (e *Editor) Remove(id ui.PaneID) {
	pane, ok := e.panes[id]
	delete(e.panes, id)
	e.layout = ui.Remove(e.layout, id)
	if ok {
		if c, isCloser := pane.(io.Closer); isCloser {
			if err := c.Close(); err != nil {
				log.Printf("editor.Remove: close pane %d: %v", id, err)
			}
		}
	}
	if e.focus.Is(id) {
		e.cycleFocus(ui.Previous)
	}
}

// Pane returns the pane registered under id.
func (e *Editor) Pane(id ui.PaneID) (ui.Pane, bool) {
	p, ok := e.panes[id]
	return p, ok
}

// Len returns the number of open panes.
func (e *Editor) Len() int {
	return len(e.panes)
}

// IDs returns the open pane ids in registry order.
func (e *Editor) IDs() []ui.PaneID {
	ids := make([]ui.PaneID, 0, len(e.panes))
	for id := range e.panes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (e *Editor) cycleFocus(dir ui.CycleDirection) {
	e.focus.Cycle(e.lay(), dir)
}
