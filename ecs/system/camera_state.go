package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
)

// PitchLimit bounds CameraState.Pitch to [-PitchLimit, PitchLimit] radians,
// keeping the orbit short of vertical.
const PitchLimit float32 = 1.0

// CameraState is the orbit camera resource. Focus is a non-owning handle;
// a placeholder or stale handle means "unbound".
type CameraState struct {
	Focus ecs.Entity

	Yaw      float32
	Pitch    float32
	Distance float32

	MinDistance float32
	MaxDistance float32

	PanSensitivity  mgl32.Vec2
	ZoomSensitivity float32
	// FocusSpeed is the fraction of the remaining gap closed per second.
	FocusSpeed float32
}

// DefaultCameraState returns an unbound camera with stock tuning.
func DefaultCameraState() CameraState {
	return CameraState{
		Focus:           ecs.Placeholder,
		FocusSpeed:      5,
		Distance:        5,
		MaxDistance:     10,
		MinDistance:     1,
		PanSensitivity:  mgl32.Vec2{0.3, 0.1},
		ZoomSensitivity: 10,
	}
}

// OrbitStep applies one frame of pan and zoom to the orbit angles and
// distance, then clamps pitch and distance.
//
// The zoom law is a per-frame scale, distance *= 1 - zoom*sensitivity*dt.
// A large product can drive distance to zero or below before the clamp
// pulls it back to MinDistance.
func (s *CameraState) OrbitStep(pan mgl32.Vec2, zoom, dt float32) {
	if s == nil {
		return
	}
	s.Yaw -= pan.X() * s.PanSensitivity.X() * dt
	s.Pitch += pan.Y() * s.PanSensitivity.Y() * dt
	s.Distance *= 1 - zoom*s.ZoomSensitivity*dt

	s.Pitch = common.Clamp(s.Pitch, -PitchLimit, PitchLimit)
	s.Distance = common.Clamp(s.Distance, s.MinDistance, s.MaxDistance)
}

// Orientation is the orbit rotation: yaw about Y, then pitch about X.
func (s *CameraState) Orientation() mgl32.Quat {
	return common.OrbitRotation(s.Yaw, s.Pitch)
}

// OrbitTarget returns where the camera wants to be and the head point it
// looks at, for a focus body at focus with the given head height.
func (s *CameraState) OrbitTarget(focus mgl32.Vec3, height float32) (position, head mgl32.Vec3) {
	offset := s.Orientation().Rotate(mgl32.Vec3{0, 0, s.Distance})
	head = focus.Add(mgl32.Vec3{0, height, 0})
	return head.Add(offset), head
}
