package entity

import (
	"fmt"

	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/prefabs"
)

// NewCharacter spawns a controllable dynamic body from spec.
func NewCharacter(w *ecs.World, spec *prefabs.CharacterSpec) (ecs.Entity, error) {
	if spec == nil {
		return ecs.Entity{}, fmt.Errorf("character: nil spec")
	}
	rb, locked, err := bodyFromSpec(spec.Body)
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("character %s: body: %w", spec.Name, err)
	}
	if rb.Kind != component.BodyDynamic {
		return ecs.Entity{}, fmt.Errorf("character %s: body must be dynamic", spec.Name)
	}
	collider, err := colliderFromSpec(spec.Collider)
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("character %s: collider: %w", spec.Name, err)
	}

	e := w.CreateEntity()
	character := component.DefaultCharacter()
	ApplyCharacterTuning(&character, spec)

	adds := []func() error{
		func() error { return ecs.Add(w, e, component.TransformComponent, transformFromSpec(spec.Transform)) },
		func() error { return ecs.Add(w, e, component.CharacterComponent, character) },
		func() error { return ecs.Add(w, e, component.RigidBodyComponent, rb) },
		func() error { return ecs.Add(w, e, component.ColliderComponent, collider) },
		func() error { return ecs.Add(w, e, component.LockedAxesComponent, locked) },
		func() error { return ecs.Add(w, e, component.LinearVelocityComponent, component.LinearVelocity{}) },
		func() error { return ecs.Add(w, e, component.AngularVelocityComponent, component.AngularVelocity{}) },
	}
	for _, add := range adds {
		if err := add(); err != nil {
			w.DestroyEntity(e)
			return ecs.Entity{}, fmt.Errorf("character %s: %w", spec.Name, err)
		}
	}
	return e, nil
}

// ApplyCharacterTuning copies the motion tuning from spec. Zero values keep
// the current setting, except FaceCamera which is always copied.
func ApplyCharacterTuning(c *component.Character, spec *prefabs.CharacterSpec) {
	if c == nil || spec == nil {
		return
	}
	if spec.LateralSpeed > 0 {
		c.LateralSpeed = spec.LateralSpeed
	}
	if spec.LateralAcceleration > 0 {
		c.LateralAcceleration = spec.LateralAcceleration
	}
	if spec.RotationSpeed > 0 {
		c.RotationSpeed = spec.RotationSpeed
	}
	if spec.Height > 0 {
		c.Height = spec.Height
	}
	c.FaceCamera = spec.FaceCamera
}
