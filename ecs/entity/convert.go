package entity

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/prefabs"
)

func vec3(v prefabs.Vec3Spec) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func transformFromSpec(spec prefabs.TransformSpec) component.Transform {
	return component.Transform{
		Translation: vec3(spec.Position),
		Rotation:    common.RotationFromYaw(spec.Yaw),
	}
}

func combineRule(name string) (component.CombineRule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "average":
		return component.CombineAverage, nil
	case "min":
		return component.CombineMin, nil
	case "multiply":
		return component.CombineMultiply, nil
	case "max":
		return component.CombineMax, nil
	default:
		return 0, fmt.Errorf("unknown combine rule %q", name)
	}
}

func coefficient(spec prefabs.CoefficientSpec) (component.Coefficient, error) {
	rule, err := combineRule(spec.Combine)
	if err != nil {
		return component.Coefficient{}, err
	}
	return component.Coefficient{Value: spec.Value, Rule: rule}, nil
}

func colliderFromSpec(spec prefabs.ColliderSpec) (component.Collider, error) {
	var c component.Collider
	switch strings.ToLower(spec.Shape) {
	case "capsule":
		c = component.CapsuleCollider(spec.Radius, vec3(spec.A), vec3(spec.B))
	case "cylinder":
		c = component.CylinderCollider(spec.Radius, spec.Height)
	default:
		return c, fmt.Errorf("unknown collider shape %q", spec.Shape)
	}
	if c.Radius <= 0 {
		return c, fmt.Errorf("collider radius must be positive, got %v", c.Radius)
	}
	var err error
	if c.Friction, err = coefficient(spec.Friction); err != nil {
		return c, fmt.Errorf("friction: %w", err)
	}
	if c.Restitution, err = coefficient(spec.Restitution); err != nil {
		return c, fmt.Errorf("restitution: %w", err)
	}
	return c, nil
}

func bodyFromSpec(spec prefabs.BodySpec) (component.RigidBody, component.LockedAxes, error) {
	var rb component.RigidBody
	switch strings.ToLower(spec.Kind) {
	case "", "dynamic":
		rb.Kind = component.BodyDynamic
	case "static":
		rb.Kind = component.BodyStatic
	default:
		return rb, component.LockedAxes{}, fmt.Errorf("unknown body kind %q", spec.Kind)
	}
	rb.Mass = spec.Mass
	rb.GravityScale = spec.GravityScale

	var locked component.LockedAxes
	for _, axis := range spec.LockRotation {
		switch strings.ToLower(axis) {
		case "x":
			locked.RotationX = true
		case "y":
			locked.RotationY = true
		case "z":
			locked.RotationZ = true
		default:
			return rb, locked, fmt.Errorf("unknown rotation axis %q", axis)
		}
	}
	return rb, locked, nil
}
