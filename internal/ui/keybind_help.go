package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/x/ansi"
)

// RenderKeyHelp renders bindings as a single "key desc • key desc" line no
// wider than width. The result carries no escape sequences so it can be
// drawn cell by cell.
func RenderKeyHelp(bindings []key.Binding, width int) string {
	h := help.New()
	h.Width = width
	return ansi.Strip(h.ShortHelpView(bindings))
}

// WrapKeyHelp renders bindings like RenderKeyHelp but starts a new line
// instead of truncating, so every binding stays visible. A binding wider
// than width on its own is truncated. width <= 0 means one line.
func WrapKeyHelp(bindings []key.Binding, width int) []string {
	if width <= 0 {
		return []string{RenderKeyHelp(bindings, 0)}
	}
	var lines []string
	var row []key.Binding
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		if len(row) > 0 && TextWidth(RenderKeyHelp(append(row, b), 0)) > width {
			lines = append(lines, RenderKeyHelp(row, width))
			row = nil
		}
		row = append(row, b)
	}
	if len(row) > 0 {
		lines = append(lines, RenderKeyHelp(row, width))
	}
	return lines
}
