package component

import "github.com/go-gl/mathgl/mgl32"

type BodyKind int

const (
	BodyDynamic BodyKind = iota
	BodyStatic
)

// RigidBody marks an entity as simulated by the physics system.
type RigidBody struct {
	Kind BodyKind
	Mass float64
	// GravityScale multiplies world gravity on the vertical axis.
	GravityScale float64
}

var RigidBodyComponent = NewComponent[RigidBody]()

type ColliderShape int

const (
	// ShapeCapsule spans segment A-B with Radius.
	ShapeCapsule ColliderShape = iota
	// ShapeCylinder is centered on the origin, Radius wide and Height tall.
	ShapeCylinder
)

// CombineRule picks how two contact coefficients merge.
type CombineRule int

const (
	CombineAverage CombineRule = iota
	CombineMin
	CombineMultiply
	CombineMax
)

// Coefficient is a friction or restitution value with its combine rule.
type Coefficient struct {
	Value float64
	Rule  CombineRule
}

// Combine merges two coefficients. When rules differ the higher-priority
// rule wins (Max > Multiply > Min > Average).
func Combine(a, b Coefficient) float64 {
	rule := a.Rule
	if b.Rule > rule {
		rule = b.Rule
	}
	switch rule {
	case CombineMin:
		return min(a.Value, b.Value)
	case CombineMultiply:
		return a.Value * b.Value
	case CombineMax:
		return max(a.Value, b.Value)
	default:
		return (a.Value + b.Value) / 2
	}
}

type Collider struct {
	Shape  ColliderShape
	A      mgl32.Vec3
	B      mgl32.Vec3
	Radius float32
	Height float32

	Friction    Coefficient
	Restitution Coefficient
}

// CapsuleCollider returns a capsule between a and b.
func CapsuleCollider(radius float32, a, b mgl32.Vec3) Collider {
	return Collider{Shape: ShapeCapsule, A: a, B: b, Radius: radius}
}

// CylinderCollider returns an upright cylinder.
func CylinderCollider(radius, height float32) Collider {
	return Collider{Shape: ShapeCylinder, Radius: radius, Height: height}
}

// Extent returns the collider's lowest and highest local y.
func (c Collider) Extent() (bottom, top float32) {
	switch c.Shape {
	case ShapeCapsule:
		lo, hi := c.A.Y(), c.B.Y()
		if lo > hi {
			lo, hi = hi, lo
		}
		return lo - c.Radius, hi + c.Radius
	default:
		return -c.Height / 2, c.Height / 2
	}
}

var ColliderComponent = NewComponent[Collider]()

// LockedAxes prevents rotation about the flagged axes.
type LockedAxes struct {
	RotationX bool
	RotationY bool
	RotationZ bool
}

var LockedAxesComponent = NewComponent[LockedAxes]()

type LinearVelocity struct {
	mgl32.Vec3
}

var LinearVelocityComponent = NewComponent[LinearVelocity]()

type AngularVelocity struct {
	mgl32.Vec3
}

var AngularVelocityComponent = NewComponent[AngularVelocity]()
