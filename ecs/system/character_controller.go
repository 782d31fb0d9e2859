package system

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

// CharacterControllerSystem steers the focus body's horizontal velocity
// toward a camera-relative target. It must run before the physics step and
// before the camera stage, so it sees the yaw from the start of the frame.
type CharacterControllerSystem struct{}

func NewCharacterControllerSystem() *CharacterControllerSystem {
	return &CharacterControllerSystem{}
}

// TargetMotion returns the facing rotation (away from the camera) and the
// target velocity for a move input under the given camera yaw.
func TargetMotion(cameraYaw float32, move mgl32.Vec2, lateralSpeed float32) (mgl32.Quat, mgl32.Vec3) {
	rotation := common.RotationFromYaw(math.Pi + cameraYaw)
	direction := common.NormalizeOrZero(mgl32.Vec3{move.X(), 0, move.Y()})
	return rotation, rotation.Rotate(direction).Mul(lateralSpeed)
}

// ApproachVelocity moves the X and Z components of current toward target by
// a linear interpolation step. Y is left for gravity.
func ApproachVelocity(current, target mgl32.Vec3, step float32) mgl32.Vec3 {
	return mgl32.Vec3{
		common.Lerp(current.X(), target.X(), step),
		current.Y(),
		common.Lerp(current.Z(), target.Z(), step),
	}
}

func (cc *CharacterControllerSystem) Update(w *ecs.World) {
	if cc == nil || w == nil {
		return
	}
	state, ok := ecs.Resource[CameraState](w)
	if !ok {
		return
	}
	focus := state.Focus
	character, ok := ecs.Get(w, focus, component.CharacterComponent)
	if !ok {
		return
	}
	velocity, ok := ecs.Get(w, focus, component.LinearVelocityComponent)
	if !ok {
		return
	}

	var input component.InputSnapshot
	if in, ok := ecs.Resource[component.InputSnapshot](w); ok {
		input = *in
	}
	var dt float32
	if clock, ok := ecs.Resource[component.Time](w); ok {
		dt = clock.Delta
	}

	targetRotation, targetVelocity := TargetMotion(state.Yaw, input.Move, character.LateralSpeed)
	velocity.Vec3 = ApproachVelocity(velocity.Vec3, targetVelocity, character.LateralAcceleration*dt)
	if err := ecs.Add(w, focus, component.LinearVelocityComponent, velocity); err != nil {
		log.Printf("character: write velocity for %s: %v", focus, err)
		return
	}

	if character.FaceCamera {
		cc.face(w, focus, character, targetRotation, dt)
	}
}

// face slerps toward the target facing and hands the implied yaw rate to
// physics as angular velocity.
func (cc *CharacterControllerSystem) face(w *ecs.World, e ecs.Entity, c component.Character, target mgl32.Quat, dt float32) {
	if dt <= 0 {
		return
	}
	transform, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return
	}
	angular, _ := ecs.Get(w, e, component.AngularVelocityComponent)

	if transform.Rotation.Dot(target) < 0 {
		target = target.Scale(-1)
	}
	amount := common.Clamp(c.RotationSpeed*dt, 0, 1)
	next := mgl32.QuatSlerp(transform.Rotation, target, amount)
	delta := common.WrapAngle(common.YawOf(next) - common.YawOf(transform.Rotation))
	angular.Vec3 = mgl32.Vec3{0, delta / dt, 0}

	if err := ecs.Add(w, e, component.AngularVelocityComponent, angular); err != nil {
		log.Printf("character: write angular velocity for %s: %v", e, err)
	}
}
