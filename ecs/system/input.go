package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

// StickDeadzone is the radial deadzone applied to analog sticks.
const StickDeadzone = 0.2

// StaticInputSystem publishes a fixed snapshot every frame.
type StaticInputSystem struct {
	Snapshot component.InputSnapshot
}

func NewStaticInputSystem(snapshot component.InputSnapshot) *StaticInputSystem {
	return &StaticInputSystem{Snapshot: snapshot}
}

func (s *StaticInputSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	PublishInput(w, s.Snapshot)
}

// PublishInput installs or overwrites the frame's input snapshot.
func PublishInput(w *ecs.World, snapshot component.InputSnapshot) {
	if in, ok := ecs.Resource[component.InputSnapshot](w); ok {
		*in = snapshot
		return
	}
	ecs.SetResource(w, &snapshot)
}

// ButtonAxis maps a negative/positive button pair to -1, 0 or 1.
func ButtonAxis(negative, positive bool) float32 {
	var v float32
	if negative {
		v--
	}
	if positive {
		v++
	}
	return v
}

// DPad maps four buttons to a 2D axis pair, y up.
func DPad(up, down, left, right bool) mgl32.Vec2 {
	return mgl32.Vec2{ButtonAxis(left, right), ButtonAxis(down, up)}
}

// Deadzone zeroes a stick reading whose magnitude is within dz.
func Deadzone(v mgl32.Vec2, dz float32) mgl32.Vec2 {
	if v.Len() <= dz {
		return mgl32.Vec2{}
	}
	return v
}

// Stick converts a standard-layout stick reading, where up is negative,
// to a y-up axis pair past the stick deadzone.
func Stick(horizontal, vertical float64) mgl32.Vec2 {
	return Deadzone(mgl32.Vec2{float32(horizontal), -float32(vertical)}, StickDeadzone)
}

// ClampAxes sums several bindings of the same action and clamps each axis
// to [-1, 1].
func ClampAxes(values ...mgl32.Vec2) mgl32.Vec2 {
	var sum mgl32.Vec2
	for _, v := range values {
		sum = sum.Add(v)
	}
	return mgl32.Vec2{common.Clamp(sum.X(), -1, 1), common.Clamp(sum.Y(), -1, 1)}
}
