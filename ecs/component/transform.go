package component

import "github.com/go-gl/mathgl/mgl32"

// Transform is an entity's world pose.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
}

// NewTransform returns an unrotated transform at (x, y, z).
func NewTransform(x, y, z float32) Transform {
	return Transform{
		Translation: mgl32.Vec3{x, y, z},
		Rotation:    mgl32.QuatIdent(),
	}
}

var TransformComponent = NewComponent[Transform]()
