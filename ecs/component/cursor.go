package component

// CursorState records whether the pointer is captured for camera panning.
type CursorState struct {
	Captured bool
}
