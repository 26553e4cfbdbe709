package editor

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panedeck/internal/jobs"
	"panedeck/internal/ui"
)

func TestHandleKey_FocusedPaneThenPrompt(t *testing.T) {
	h := newHarness(t)
	a := &fakePane{name: "a"}
	b := &fakePane{name: "b"}
	h.editor.Add(a)
	h.editor.Add(b)

	quit, err := h.editor.handleKey(key('x'))
	require.NoError(t, err)
	assert.False(t, quit)

	assert.Len(t, a.keys, 1, "focused pane gets the key")
	assert.Empty(t, b.keys)
	assert.Len(t, h.prompt.keys, 1, "prompt always gets the key")
}

func TestHandleKey_ActivePromptInterceptsPaneInput(t *testing.T) {
	h := newHarness(t)
	a := &fakePane{name: "a"}
	h.editor.Add(a)
	h.prompt.active = true

	_, err := h.editor.handleKey(key('x'))
	require.NoError(t, err)
	assert.Empty(t, a.keys)
	assert.Len(t, h.prompt.keys, 1)
}

func TestHandleKey_GlobalBindingsShortCircuit(t *testing.T) {
	h := newHarness(t)
	a := &fakePane{name: "a"}
	h.editor.Add(a)
	h.editor.Add(&fakePane{name: "b"})

	for _, k := range []tea.KeyType{tea.KeyCtrlO, tea.KeyCtrlT, tea.KeyCtrlQ} {
		_, err := h.editor.handleKey(ctrl(k))
		require.NoError(t, err)
	}
	assert.Empty(t, a.keys)
	assert.Empty(t, h.prompt.keys)
}

func TestHandleKey_QuitReportsQuit(t *testing.T) {
	h := newHarness(t)
	quit, err := h.editor.handleKey(ctrl(tea.KeyCtrlC))
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestHandleKey_CloseFocusedPane(t *testing.T) {
	h := newHarness(t)
	a := h.editor.Add(&fakePane{name: "a"})
	b := h.editor.Add(&fakePane{name: "b"})
	c := h.editor.Add(&fakePane{name: "c"})
	// Screen order c b a; focus a (last).
	_, err := h.editor.handleKey(ctrl(tea.KeyCtrlQ))
	require.NoError(t, err)

	_, live := h.editor.Pane(a)
	assert.False(t, live)
	focus, _ := h.editor.Focus()
	// a is gone so the stale focus counts as position 0 (c); previous wraps to b.
	assert.Equal(t, b, focus)
	assert.Equal(t, []ui.PaneID{c, b}, ui.Leaves(h.editor.Layout()))

	// With nothing focused the binding does nothing.
	h.editor.Remove(b)
	h.editor.Remove(c)
	_, err = h.editor.handleKey(ctrl(tea.KeyCtrlQ))
	require.NoError(t, err)
}

func TestHandleKey_CycleThemeLogsAndWraps(t *testing.T) {
	h := newHarness(t)
	n := h.editor.themes.Len()
	start := h.editor.themes.Active().Name

	_, err := h.editor.handleKey(ctrl(tea.KeyCtrlT))
	require.NoError(t, err)
	assert.Equal(t, "Theme changed to gruvbox-mocha", h.prompt.log)

	for range n - 1 {
		_, err := h.editor.handleKey(ctrl(tea.KeyCtrlT))
		require.NoError(t, err)
	}
	assert.Equal(t, start, h.editor.themes.Active().Name)
}

func TestHandleKey_PaneErrorIsLoggedNotFatal(t *testing.T) {
	h := newHarness(t)
	h.editor.Add(&fakePane{name: "a", keyErr: ui.NewPaneError("a", errors.New("read only"))})

	quit, err := h.editor.handleKey(key('x'))
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, "a: read only", h.prompt.log)
	assert.Len(t, h.prompt.keys, 1)
}

func TestHandleKey_ClearsLogOnEveryKey(t *testing.T) {
	h := newHarness(t)
	h.prompt.LogError("old news")

	_, err := h.editor.handleKey(key('x'))
	require.NoError(t, err)
	assert.Empty(t, h.prompt.log)
}

func TestHandleKey_PromptErrorIsFatal(t *testing.T) {
	h := newHarness(t)
	h.prompt.err = errors.New("broken")
	_, err := h.editor.handleKey(key('x'))
	assert.ErrorContains(t, err, "broken")
}

func TestHandleKey_PromptCommandOpensFocusedPane(t *testing.T) {
	h := newHarness(t)
	h.editor.Add(&fakePane{name: "a"})
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hi\n"), 0o644))
	h.prompt.command = ui.OpenFile{Path: path}

	_, err := h.editor.handleKey(ctrl(tea.KeyEnter))
	require.NoError(t, err)

	assert.Equal(t, []string{path}, h.opened)
	focus, _ := h.editor.Focus()
	assert.Equal(t, ui.PaneID(3), focus, "opened pane takes focus")
	assert.Empty(t, h.prompt.log)
}

func TestOpen_MissingFileIsNewFile(t *testing.T) {
	h := newHarness(t)
	var gotExists *bool
	h.openFn = func(path string, exists bool, ctx *ui.Context) (ui.Pane, error) {
		gotExists = &exists
		return &fakePane{name: path}, nil
	}

	require.NoError(t, h.editor.Open(filepath.Join(t.TempDir(), "missing.go")))
	assert.Equal(t, "[New file]", h.prompt.log)
	assert.Equal(t, 1, h.editor.Len())
	require.NotNil(t, gotExists)
	assert.False(t, *gotExists)
}

func TestOpen_PermissionDeniedCreatesNoPane(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "secret")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	h.openFn = func(path string, exists bool, ctx *ui.Context) (ui.Pane, error) {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrPermission}
	}

	require.NoError(t, h.editor.Open(path))
	assert.Equal(t, "Permission denied while opening "+path, h.prompt.log)
	assert.Zero(t, h.editor.Len())
	_, focused := h.editor.Focus()
	assert.False(t, focused)
}

func TestOpen_UnreadableDirectoryOnDisk(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	h := newHarness(t)
	dir := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), nil, 0o644))
	require.NoError(t, os.Chmod(dir, 0))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	path := filepath.Join(dir, "f")
	require.NoError(t, h.editor.Open(path))
	assert.Equal(t, "Permission denied while opening "+path, h.prompt.log)
	assert.Zero(t, h.editor.Len())
}

func TestOpen_OtherErrorsAreReturned(t *testing.T) {
	h := newHarness(t)
	h.openFn = func(string, bool, *ui.Context) (ui.Pane, error) {
		return nil, &ui.MissingThemeError{Name: "nope"}
	}
	err := h.editor.Open(filepath.Join(t.TempDir(), "x"))
	assert.ErrorIs(t, err, ui.ErrMissingTheme)
	assert.Zero(t, h.editor.Len())
}

func TestComplete_FansOutInRegistryOrder(t *testing.T) {
	h := newHarness(t)
	var order []string
	mk := func(name string) *orderPane {
		return &orderPane{name: name, order: &order}
	}
	h.editor.Add(mk("first"))
	h.editor.Add(mk("second"))
	h.editor.Add(mk("third"))

	require.NoError(t, h.editor.complete(jobs.Completion{Kind: "x", Payload: 1}))
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestComplete_PaneErrorAbortsBroadcast(t *testing.T) {
	h := newHarness(t)
	bad := &fakePane{name: "bad", doneErr: errors.New("malformed")}
	after := &fakePane{name: "after"}
	h.editor.Add(bad)
	h.editor.Add(after)

	err := h.editor.complete(jobs.Completion{Kind: "load", Payload: "p"})
	assert.ErrorContains(t, err, "malformed")
	assert.Empty(t, after.payloads)
}

func TestComplete_FailedJobIsLogged(t *testing.T) {
	h := newHarness(t)
	p := &fakePane{name: "a"}
	h.editor.Add(p)

	require.NoError(t, h.editor.complete(jobs.Completion{Kind: "load", Err: errors.New("disk on fire")}))
	assert.Equal(t, "disk on fire", h.prompt.log)
	assert.Empty(t, p.payloads)
}

func TestComplete_FailedJobPayloadStillReachesPanes(t *testing.T) {
	h := newHarness(t)
	a := &fakePane{name: "a"}
	b := &fakePane{name: "b"}
	h.editor.Add(a)
	h.editor.Add(b)

	failure := errors.New("load x: no such device")
	require.NoError(t, h.editor.complete(jobs.Completion{Kind: "load", Payload: "owner-7", Err: failure}))
	assert.Equal(t, "load x: no such device", h.prompt.log)
	assert.Equal(t, []any{"owner-7"}, a.payloads)
	assert.Equal(t, []any{"owner-7"}, b.payloads)
}

type orderPane struct {
	fakePane
	name  string
	order *[]string
}

func (p *orderPane) TaskDone(any) error {
	*p.order = append(*p.order, p.name)
	return nil
}
