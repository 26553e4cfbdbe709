// Package term owns the terminal: raw mode, the cell buffer and the input
// stream. Input is delivered as bubbletea messages so panes share one key
// vocabulary with the rest of the charm stack.
package term

import (
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
)

// ErrClosed is returned by Poll after the input stream has ended.
var ErrClosed = errors.New("term: input closed")

// Screen is an initialised tcell screen plus a non-blocking input queue.
type Screen struct {
	tcell.Screen

	events chan tcell.Event
	quit   chan struct{}
	once   sync.Once
}

// Open initialises the terminal. With an empty tty the controlling terminal
// is used; otherwise the named device is opened.
func Open(tty string) (*Screen, error) {
	var (
		s   tcell.Screen
		err error
	)
	if tty == "" {
		s, err = tcell.NewScreen()
	} else {
		var dev tcell.Tty
		dev, err = tcell.NewDevTtyFromDev(tty)
		if err != nil {
			return nil, fmt.Errorf("open tty %s: %w", tty, err)
		}
		s, err = tcell.NewTerminfoScreenFromTty(dev)
	}
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return New(s), nil
}

// New wraps an already initialised screen and starts reading its events.
func New(s tcell.Screen) *Screen {
	s.HideCursor()
	t := &Screen{
		Screen: s,
		events: make(chan tcell.Event, 256),
		quit:   make(chan struct{}),
	}
	go s.ChannelEvents(t.events, t.quit)
	return t
}

// Poll returns the next pending key or resize message without blocking.
// ok is false when nothing is pending. Events with no message form, such
// as mouse or focus reports, are skipped. A terminal error is returned as
// err and ends input.
func (t *Screen) Poll() (msg tea.Msg, ok bool, err error) {
	for {
		select {
		case ev, open := <-t.events:
			if !open {
				return nil, false, ErrClosed
			}
			switch e := ev.(type) {
			case *tcell.EventKey:
				if k, ok := KeyMsg(e); ok {
					return k, true, nil
				}
			case *tcell.EventResize:
				w, h := e.Size()
				return tea.WindowSizeMsg{Width: w, Height: h}, true, nil
			case *tcell.EventError:
				return nil, false, fmt.Errorf("terminal: %w", e)
			}
		default:
			return nil, false, nil
		}
	}
}

// Close stops reading input and restores the terminal.
func (t *Screen) Close() {
	t.once.Do(func() {
		close(t.quit)
		t.Screen.Fini()
	})
}
