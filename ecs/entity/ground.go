package entity

import (
	"fmt"

	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/prefabs"
)

func NewGround(w *ecs.World, spec *prefabs.GroundSpec) (ecs.Entity, error) {
	if spec == nil {
		return ecs.Entity{}, fmt.Errorf("ground: nil spec")
	}
	rb, _, err := bodyFromSpec(spec.Body)
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("ground: body: %w", err)
	}
	collider, err := colliderFromSpec(spec.Collider)
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("ground: collider: %w", err)
	}

	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TransformComponent, transformFromSpec(spec.Transform)); err != nil {
		return ecs.Entity{}, fmt.Errorf("ground: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.RigidBodyComponent, rb); err != nil {
		return ecs.Entity{}, fmt.Errorf("ground: add body: %w", err)
	}
	if err := ecs.Add(w, e, component.ColliderComponent, collider); err != nil {
		return ecs.Entity{}, fmt.Errorf("ground: add collider: %w", err)
	}
	return e, nil
}
