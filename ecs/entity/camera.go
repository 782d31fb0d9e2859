package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/ecs/system"
	"github.com/milk9111/thirdperson/prefabs"
)

// NewCamera spawns the main camera entity. It holds only a transform and
// the marker; orbit state lives in the CameraState resource.
func NewCamera(w *ecs.World, spec *prefabs.CameraSpec) (ecs.Entity, error) {
	if spec == nil {
		return ecs.Entity{}, fmt.Errorf("camera: nil spec")
	}
	camera := w.CreateEntity()
	if err := ecs.Add(w, camera, component.MainCameraComponent, component.MainCamera{}); err != nil {
		return ecs.Entity{}, fmt.Errorf("camera: add marker: %w", err)
	}
	if err := ecs.Add(w, camera, component.TransformComponent, transformFromSpec(spec.Transform)); err != nil {
		return ecs.Entity{}, fmt.Errorf("camera: add transform: %w", err)
	}
	return camera, nil
}

// NewCameraState returns the orbit resource for spec, unbound.
func NewCameraState(spec *prefabs.CameraSpec) system.CameraState {
	state := system.DefaultCameraState()
	if spec == nil {
		return state
	}
	ApplyCameraTuning(&state, spec)
	state.Yaw = spec.Yaw
	state.Pitch = spec.Pitch
	if spec.Distance > 0 {
		state.Distance = spec.Distance
	}
	state.OrbitStep(mgl32.Vec2{}, 0, 0)
	return state
}

// ApplyCameraTuning copies tuning constants from spec, leaving the live
// orbit (focus, yaw, pitch) alone. Distance is re-clamped to the new bounds.
// Zero values in spec keep the current setting.
func ApplyCameraTuning(state *system.CameraState, spec *prefabs.CameraSpec) {
	if state == nil || spec == nil {
		return
	}
	if spec.MinDistance > 0 {
		state.MinDistance = spec.MinDistance
	}
	if spec.MaxDistance > 0 {
		state.MaxDistance = spec.MaxDistance
	}
	if state.MaxDistance < state.MinDistance {
		state.MaxDistance = state.MinDistance
	}
	if spec.PanSensitivity != (prefabs.Vec2Spec{}) {
		state.PanSensitivity = mgl32.Vec2{spec.PanSensitivity.X, spec.PanSensitivity.Y}
	}
	if spec.ZoomSensitivity > 0 {
		state.ZoomSensitivity = spec.ZoomSensitivity
	}
	if spec.FocusSpeed > 0 {
		state.FocusSpeed = spec.FocusSpeed
	}
	state.OrbitStep(mgl32.Vec2{}, 0, 0)
}
