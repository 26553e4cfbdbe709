package term

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
)

type navKeys struct {
	plain, ctrl, shift, ctrlShift tea.KeyType
}

// Keys whose tea form depends on the ctrl and shift modifiers.
var navigation = map[tcell.Key]navKeys{
	tcell.KeyUp:    {tea.KeyUp, tea.KeyCtrlUp, tea.KeyShiftUp, tea.KeyCtrlShiftUp},
	tcell.KeyDown:  {tea.KeyDown, tea.KeyCtrlDown, tea.KeyShiftDown, tea.KeyCtrlShiftDown},
	tcell.KeyLeft:  {tea.KeyLeft, tea.KeyCtrlLeft, tea.KeyShiftLeft, tea.KeyCtrlShiftLeft},
	tcell.KeyRight: {tea.KeyRight, tea.KeyCtrlRight, tea.KeyShiftRight, tea.KeyCtrlShiftRight},
	tcell.KeyHome:  {tea.KeyHome, tea.KeyCtrlHome, tea.KeyShiftHome, tea.KeyCtrlShiftHome},
	tcell.KeyEnd:   {tea.KeyEnd, tea.KeyCtrlEnd, tea.KeyShiftEnd, tea.KeyCtrlShiftEnd},
	tcell.KeyPgUp:  {tea.KeyPgUp, tea.KeyCtrlPgUp, tea.KeyPgUp, tea.KeyCtrlPgUp},
	tcell.KeyPgDn:  {tea.KeyPgDown, tea.KeyCtrlPgDown, tea.KeyPgDown, tea.KeyCtrlPgDown},
}

var simple = map[tcell.Key]tea.KeyType{
	tcell.KeyBackspace:  tea.KeyBackspace,
	tcell.KeyBackspace2: tea.KeyBackspace,
	tcell.KeyTab:        tea.KeyTab,
	tcell.KeyEnter:      tea.KeyEnter,
	tcell.KeyEsc:        tea.KeyEsc,
	tcell.KeyBacktab:    tea.KeyShiftTab,
	tcell.KeyDelete:     tea.KeyDelete,
	tcell.KeyInsert:     tea.KeyInsert,
}

// KeyMsg converts a tcell key event. Alt is only set when tcell saw the
// escape prefix and the key in the same read, so a lone Esc followed by a
// key yields two messages rather than one chord. ok is false for keys
// with no tea equivalent.
func KeyMsg(ev *tcell.EventKey) (tea.KeyMsg, bool) {
	mods := ev.Modifiers()
	alt := mods&tcell.ModAlt != 0
	k := ev.Key()

	if k == tcell.KeyRune {
		r := ev.Rune()
		if r == ' ' {
			return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}, Alt: alt}, true
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: alt}, true
	}
	if t, ok := simple[k]; ok {
		return tea.KeyMsg{Type: t, Alt: alt}, true
	}
	if n, ok := navigation[k]; ok {
		ctrl, shift := mods&tcell.ModCtrl != 0, mods&tcell.ModShift != 0
		t := n.plain
		switch {
		case ctrl && shift:
			t = n.ctrlShift
		case ctrl:
			t = n.ctrl
		case shift:
			t = n.shift
		}
		return tea.KeyMsg{Type: t, Alt: alt}, true
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF20 {
		return tea.KeyMsg{Type: tea.KeyF1 - tea.KeyType(k-tcell.KeyF1), Alt: alt}, true
	}
	// Remaining control codes share their ASCII value in both libraries.
	if k >= tcell.KeyCtrlSpace && k <= tcell.KeyCtrlUnderscore {
		return tea.KeyMsg{Type: tea.KeyType(k), Alt: alt}, true
	}
	return tea.KeyMsg{}, false
}
