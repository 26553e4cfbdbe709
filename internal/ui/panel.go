package ui

// LaidComponent is a pane placed on screen for one frame.
// FrameID is the pane's position in the depth-first traversal that produced
// it, starting at 1. It is not stable across frames.
type LaidComponent struct {
	ID      PaneID
	Rect    Rect
	FrameID int
}
