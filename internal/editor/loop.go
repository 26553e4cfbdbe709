package editor

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"panedeck/internal/jobs"
	"panedeck/internal/ui"
)

// Run drives the editor until the quit key is pressed, ctx is cancelled or
// a fatal error occurs. Each iteration drains job completions, then drains
// pending input, then redraws if something changed and the redraw interval
// has passed. Otherwise it sleeps out the rest of the interval.
func (e *Editor) Run(ctx context.Context) error {
	dirty := true
	resized := false
	lastDraw := e.clock.Now().Add(-e.timing.RedrawInterval)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		for {
			c, err := e.jobs.TryRecv()
			if errors.Is(err, jobs.ErrEmpty) {
				break
			}
			if err != nil {
				return fmt.Errorf("job queue: %w", err)
			}
			if err := e.complete(c); err != nil {
				return err
			}
			dirty = true
		}

		sustained := false
		var burstStart time.Time
		for first := true; ; first = false {
			msg, ok, err := e.input.Poll()
			if err != nil {
				return fmt.Errorf("input: %w", err)
			}
			if !ok {
				break
			}
			if first {
				burstStart = e.clock.Now()
			}
			switch m := msg.(type) {
			case tea.KeyMsg:
				quit, err := e.handleKey(m)
				if err != nil {
					return err
				}
				if quit {
					return nil
				}
			case tea.WindowSizeMsg:
				resized = true
			}
			dirty = true
			if e.clock.Now().Sub(burstStart) >= e.timing.SustainedInput {
				sustained = true
				break
			}
		}

		slept := false
		since := e.clock.Now().Sub(lastDraw)
		if dirty && since >= e.timing.RedrawInterval {
			if resized {
				e.screen.Sync()
				resized = false
			}
			e.draw(e.clock.Now())
			e.screen.Show()
			dirty = false
			lastDraw = e.clock.Now()
		} else if !sustained && since < e.timing.RedrawInterval {
			e.clock.Sleep(e.timing.RedrawInterval - since)
			slept = true
		}

		// Also yields to the terminal driver so multi-byte key sequences
		// arrive whole.
		if !slept {
			e.clock.Sleep(e.timing.IdleSleep)
		}
	}
}

// draw renders every laid component into the screen's back buffer.
func (e *Editor) draw(now time.Time) {
	e.screen.HideCursor()
	focus, hasFocus := e.focus.Current()
	promptActive := e.prompt.Active()

	for _, c := range e.lay() {
		switch c.ID {
		case ui.PromptID:
			e.prompt.Draw(e.screen, e.context(now, c, promptActive))
		case ui.SplashID:
			e.splash.Draw(e.screen, e.context(now, c, false))
		default:
			focused := hasFocus && focus == c.ID && !promptActive
			e.panes[c.ID].Draw(e.screen, e.context(now, c, focused))
		}
	}
}
