package editor

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panedeck/internal/ui"
)

func TestAdd_AllocatesFromFirstPaneIDAndFocusesFirst(t *testing.T) {
	h := newHarness(t)
	a := h.editor.Add(&fakePane{name: "a"})
	b := h.editor.Add(&fakePane{name: "b"})

	assert.Equal(t, ui.PaneID(2), a)
	assert.Equal(t, ui.PaneID(3), b)
	focus, ok := h.editor.Focus()
	require.True(t, ok)
	assert.Equal(t, a, focus, "Add only focuses when nothing is focused")
	assert.Equal(t, []ui.PaneID{b, a}, ui.Leaves(h.editor.Layout()))
}

func TestRemove_FocusedPaneMovesFocusToPrevious(t *testing.T) {
	h := newHarness(t)
	a := h.editor.Add(&fakePane{name: "a"})
	b := h.editor.Add(&fakePane{name: "b"})
	c := h.editor.Add(&fakePane{name: "c"})
	// Screen order: c b a.
	h.editor.focus.Set(b)

	h.editor.Remove(b)
	focus, ok := h.editor.Focus()
	require.True(t, ok)
	// b is gone so the stale focus counts as position 0 (c); previous wraps to a.
	assert.Equal(t, a, focus)
	assert.Equal(t, []ui.PaneID{c, a}, ui.Leaves(h.editor.Layout()))
}

func TestRemove_UnfocusedPaneKeepsFocus(t *testing.T) {
	h := newHarness(t)
	a := h.editor.Add(&fakePane{name: "a"})
	b := h.editor.Add(&fakePane{name: "b"})

	h.editor.Remove(b)
	focus, _ := h.editor.Focus()
	assert.Equal(t, a, focus)
}

func TestRemove_LastPaneRestoresSplashAndClearsFocus(t *testing.T) {
	h := newHarness(t)
	p := &fakePane{name: "a"}
	id := h.editor.Add(p)

	h.editor.Remove(id)
	_, ok := h.editor.Focus()
	assert.False(t, ok)
	assert.True(t, p.closed, "removed pane is closed")
	assert.Equal(t, ui.Empty(), h.editor.Layout())
	assert.Zero(t, h.editor.Len())

	// Ids are never reused.
	assert.Equal(t, id+1, h.editor.Add(&fakePane{name: "b"}))
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	h := newHarness(t)
	a := h.editor.Add(&fakePane{name: "a"})
	before := h.editor.Layout()

	h.editor.Remove(a + 10)
	assert.Equal(t, before, h.editor.Layout())
	focus, _ := h.editor.Focus()
	assert.Equal(t, a, focus)
}

func TestRegistry_RandomMutationsKeepLayoutInSync(t *testing.T) {
	h := newHarness(t)
	rng := rand.New(rand.NewSource(11))

	for step := range 300 {
		ids := h.editor.IDs()
		if len(ids) == 0 || rng.Intn(5) < 3 {
			h.editor.Add(&fakePane{})
		} else {
			h.editor.Remove(ids[rng.Intn(len(ids))])
		}

		leaves := ui.Leaves(h.editor.Layout())
		slices.Sort(leaves)
		require.Equal(t, h.editor.IDs(), nilIfEmpty(leaves), "step %d", step)

		focus, ok := h.editor.Focus()
		if h.editor.Len() == 0 {
			require.False(t, ok, "step %d", step)
		} else {
			require.True(t, ok, "step %d", step)
			_, live := h.editor.Pane(focus)
			require.True(t, live, "step %d: focus %d is not live", step, focus)
		}
	}
}

func nilIfEmpty(ids []ui.PaneID) []ui.PaneID {
	if len(ids) == 0 {
		return []ui.PaneID{}
	}
	return ids
}

func TestCycleFocus_FollowsScreenOrderNotIDs(t *testing.T) {
	h := newHarness(t)
	a := h.editor.Add(&fakePane{name: "a"})
	b := h.editor.Add(&fakePane{name: "b"})
	c := h.editor.Add(&fakePane{name: "c"})
	// Laid right to left as c b a.
	h.editor.focus.Set(c)

	var got []ui.PaneID
	for range 3 {
		h.editor.cycleFocus(ui.Next)
		id, _ := h.editor.Focus()
		got = append(got, id)
	}
	assert.Equal(t, []ui.PaneID{b, a, c}, got)
}
