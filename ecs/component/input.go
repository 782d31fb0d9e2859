package component

import "github.com/go-gl/mathgl/mgl32"

// InputSnapshot is the per-frame action state sampled before any controller
// runs. Axes are device independent: roughly unit range for digital sources.
type InputSnapshot struct {
	Move              mgl32.Vec2
	PanCamera         mgl32.Vec2
	Zoom              float32
	EscapeJustPressed bool
}
