// Package ui provides the building blocks the editor composes into a screen.
//
// Core abstractions:
//   - Pane: an interactive region that draws into a Surface and reacts to keys and job results
//   - Layout: a tree that partitions the viewport among panes (Leaf | Node)
//   - LaidComponent: a pane's id, rectangle and traversal order for one frame
//   - FocusManager: tracks and cycles the single focused pane
//   - Theme / ThemeSet: colour palettes paired with a syntax highlighting style
//   - GlobalKeys: the bindings handled before any pane sees a key
//
// Ids 0 and 1 are reserved for the prompt and the splash screen. Real panes
// start at FirstPaneID.
package ui
