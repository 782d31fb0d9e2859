package system

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

const (
	collisionTypeDynamic cp.CollisionType = iota + 1
	collisionTypeStatic
)

const (
	// DefaultGravity is applied along world -Y.
	DefaultGravity = -9.81
	// floorTolerance lets a body that sank slightly last step still land.
	floorTolerance = 0.05
)

// PhysicsSystem integrates rigid bodies and syncs their transforms.
//
// The horizontal plane runs in a Chipmunk space: cp X is world X, cp Y is
// world Z, and cp angle is -yaw (a yaw about +Y turns X toward -Z, which
// is clockwise in cp's plane). Colliders project to circles there. The
// vertical axis is integrated here with semi-implicit Euler, and the tops
// of static colliders act as floors.
//
// cp only detects side contacts. They are resolved after the step: the
// body is pushed out by the contact depth and its velocity into the wall
// is removed, with friction and restitution merged by their CombineRule.
type PhysicsSystem struct {
	Gravity float64

	space         *cp.Space
	handlersReady bool

	bodies   map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	contacts map[*bodyInfo][]sideContact
}

// sideContact is a dynamic body touching the side of a static collider.
type sideContact struct {
	// normal points from the dynamic body into the static one.
	normal      cp.Vector
	depth       float64
	friction    float64
	restitution float64
}

type bodyInfo struct {
	body     *cp.Body
	shape    *cp.Shape
	static   bool
	collider component.Collider
	bottom   float64
	top      float64
	// y is the vertical position at the start of the current step.
	y float64
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		Gravity: DefaultGravity,
		bodies:   make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
		contacts: make(map[*bodyInfo][]sideContact),
	}
}

// Space returns the underlying Chipmunk space.
func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Bodies returns the number of bodies currently simulated.
func (ps *PhysicsSystem) Bodies() int {
	if ps == nil {
		return 0
	}
	return len(ps.bodies)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	clock, ok := ecs.Resource[component.Time](w)
	if !ok || clock.Delta <= 0 {
		return
	}
	dt := float64(clock.Delta)

	if ps.space == nil {
		ps.space = cp.NewSpace()
		ps.space.Iterations = 20
		ps.space.SetGravity(cp.Vector{})
		ps.handlersReady = false
	}
	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.pushState(w)

	ps.space.Step(dt)
	ps.resolveContacts()

	ps.syncTransforms(w, dt)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}
	handler := ps.space.NewCollisionHandler(collisionTypeDynamic, collisionTypeStatic)
	handler.UserData = ps
	handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return false
		}
		shapeA, shapeB := arb.Shapes()
		dyn, okA := sys.infoForShape(shapeA)
		stat, okB := sys.infoForShape(shapeB)
		if !okA || !okB {
			return false
		}
		set := arb.ContactPointSet()
		normal := set.Normal
		if dyn.static {
			dyn, stat = stat, dyn
			normal = normal.Neg()
		}
		// Only a body beside a static collider is pushed sideways; one
		// standing on top of it is handled by the floor pass.
		if !verticalOverlap(dyn.y+dyn.bottom, dyn.y+dyn.top, stat.y+stat.bottom, stat.y+stat.top-floorTolerance) {
			return false
		}
		var depth float64
		for i := 0; i < set.Count; i++ {
			depth = math.Max(depth, -set.Points[i].Distance)
		}
		if set.Count > 0 {
			friction, restitution := contactCoefficients(dyn, stat)
			sys.contacts[dyn] = append(sys.contacts[dyn], sideContact{
				normal:      normal,
				depth:       depth,
				friction:    friction,
				restitution: restitution,
			})
		}
		return false
	}
	ps.handlersReady = true
}

func (ps *PhysicsSystem) infoForShape(s *cp.Shape) (*bodyInfo, bool) {
	e, ok := ps.shapes[s]
	if !ok {
		return nil, false
	}
	info, ok := ps.bodies[e]
	return info, ok
}

func verticalOverlap(aBottom, aTop, bBottom, bTop float64) bool {
	return aBottom < bTop && aTop > bBottom
}

// contactCoefficients merges the friction and restitution of two bodies.
func contactCoefficients(a, b *bodyInfo) (friction, restitution float64) {
	return component.Combine(a.collider.Friction, b.collider.Friction),
		component.Combine(a.collider.Restitution, b.collider.Restitution)
}

// resolveContacts applies the side contacts recorded during the step.
func (ps *PhysicsSystem) resolveContacts() {
	for info, contacts := range ps.contacts {
		pos := info.body.Position()
		vel := info.body.Velocity()
		for _, c := range contacts {
			pos = pos.Sub(c.normal.Mult(c.depth))
			vel = contactVelocity(vel, c)
		}
		info.body.SetPosition(pos)
		info.body.SetVelocityVector(vel)
	}
	clear(ps.contacts)
}

// contactVelocity removes the part of v heading into the contact, bounces
// it by the restitution and applies Coulomb friction to what slides along.
func contactVelocity(v cp.Vector, c sideContact) cp.Vector {
	vn := v.Dot(c.normal)
	if vn <= 0 {
		return v
	}
	v = v.Sub(c.normal.Mult(vn * (1 + c.restitution)))
	tangent := v.Sub(c.normal.Mult(v.Dot(c.normal)))
	speed := tangent.Length()
	if speed <= 0 {
		return v
	}
	drop := math.Min(speed, c.friction*vn)
	return v.Sub(tangent.Mult(drop / speed))
}

// syncEntities creates bodies for new entities and drops those whose
// entity died or lost its body components.
func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	for e, info := range ps.bodies {
		if w.IsAlive(e) && ecs.Has(w, e, component.RigidBodyComponent) && ecs.Has(w, e, component.ColliderComponent) {
			continue
		}
		ps.removeBody(e, info)
	}

	entities := w.Query(
		component.RigidBodyComponent.ID(),
		component.ColliderComponent.ID(),
		component.TransformComponent.ID(),
	)
	for _, e := range entities {
		if _, ok := ps.bodies[e]; ok {
			continue
		}
		rb, _ := ecs.Get(w, e, component.RigidBodyComponent)
		col, _ := ecs.Get(w, e, component.ColliderComponent)
		transform, _ := ecs.Get(w, e, component.TransformComponent)
		locked, _ := ecs.Get(w, e, component.LockedAxesComponent)

		info := ps.createBody(rb, col, transform, locked)
		ps.bodies[e] = info
		ps.shapes[info.shape] = e
	}
}

func (ps *PhysicsSystem) createBody(rb component.RigidBody, col component.Collider, t component.Transform, locked component.LockedAxes) *bodyInfo {
	radius := float64(col.Radius)
	if radius <= 0 {
		radius = 0.01
	}
	var offset cp.Vector
	if col.Shape == component.ShapeCapsule {
		mid := col.A.Add(col.B).Mul(0.5)
		offset = cp.Vector{X: float64(mid.X()), Y: float64(mid.Z())}
	}

	static := rb.Kind == component.BodyStatic
	var body *cp.Body
	if static {
		body = cp.NewStaticBody()
	} else {
		mass := rb.Mass
		if mass <= 0 {
			mass = 1
		}
		moment := cp.MomentForCircle(mass, 0, radius, offset)
		if locked.RotationY {
			moment = math.Inf(1)
		}
		body = cp.NewBody(mass, moment)
	}
	body.SetPosition(cp.Vector{X: float64(t.Translation.X()), Y: float64(t.Translation.Z())})
	body.SetAngle(-float64(common.YawOf(t.Rotation)))

	shape := cp.NewCircle(body, radius, offset)
	if static {
		shape.SetCollisionType(collisionTypeStatic)
	} else {
		shape.SetCollisionType(collisionTypeDynamic)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	bottom, top := col.Extent()
	return &bodyInfo{
		body:     body,
		shape:    shape,
		static:   static,
		collider: col,
		bottom:   float64(bottom),
		top:      float64(top),
		y:        float64(t.Translation.Y()),
	}
}

func (ps *PhysicsSystem) removeBody(e ecs.Entity, info *bodyInfo) {
	if info.shape != nil {
		ps.space.RemoveShape(info.shape)
		delete(ps.shapes, info.shape)
	}
	delete(ps.contacts, info)
	if info.body != nil {
		ps.space.RemoveBody(info.body)
	}
	delete(ps.bodies, e)
}

// pushState copies component state into the space so controller writes
// made earlier in the frame take effect in this step.
func (ps *PhysicsSystem) pushState(w *ecs.World) {
	for e, info := range ps.bodies {
		transform, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		info.y = float64(transform.Translation.Y())
		if info.static {
			continue
		}
		linear, _ := ecs.Get(w, e, component.LinearVelocityComponent)
		angular, _ := ecs.Get(w, e, component.AngularVelocityComponent)
		locked, _ := ecs.Get(w, e, component.LockedAxesComponent)

		info.body.SetPosition(cp.Vector{X: float64(transform.Translation.X()), Y: float64(transform.Translation.Z())})
		info.body.SetAngle(-float64(common.YawOf(transform.Rotation)))
		info.body.SetVelocity(float64(linear.X()), float64(linear.Z()))
		if locked.RotationY {
			info.body.SetAngularVelocity(0)
		} else {
			info.body.SetAngularVelocity(-float64(angular.Y()))
		}
	}
}

// syncTransforms reads the stepped plane state back, integrates the
// vertical axis and writes transforms and velocities.
func (ps *PhysicsSystem) syncTransforms(w *ecs.World, dt float64) {
	for e, info := range ps.bodies {
		if info.static {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		rb, _ := ecs.Get(w, e, component.RigidBodyComponent)
		linear, _ := ecs.Get(w, e, component.LinearVelocityComponent)
		angular, _ := ecs.Get(w, e, component.AngularVelocityComponent)
		locked, _ := ecs.Get(w, e, component.LockedAxesComponent)

		pos := info.body.Position()
		vel := info.body.Velocity()

		scale := rb.GravityScale
		if scale == 0 {
			scale = 1
		}
		vy := float64(linear.Y()) + ps.Gravity*scale*dt
		y := info.y + vy*dt
		y, vy = ps.land(e, info, pos, y, vy)

		transform.Translation = mgl32.Vec3{float32(pos.X), float32(y), float32(pos.Y)}
		transform.Rotation = common.RotationFromYaw(-float32(info.body.Angle()))
		linear.Vec3 = mgl32.Vec3{float32(vel.X), float32(vy), float32(vel.Y)}

		// The plane integrator only carries yaw.
		var spin float32
		if !locked.RotationY {
			spin = -float32(info.body.AngularVelocity())
		}
		angular.Vec3 = mgl32.Vec3{0, spin, 0}
		info.y = y

		if err := ecs.Add(w, e, component.TransformComponent, transform); err != nil {
			log.Printf("physics: sync transform for %s: %v", e, err)
			continue
		}
		if err := ecs.Add(w, e, component.LinearVelocityComponent, linear); err != nil {
			log.Printf("physics: sync velocity for %s: %v", e, err)
		}
		if err := ecs.Add(w, e, component.AngularVelocityComponent, angular); err != nil {
			log.Printf("physics: sync angular velocity for %s: %v", e, err)
		}
	}
}

// land stops a falling body on the highest static top it crossed this step.
func (ps *PhysicsSystem) land(self ecs.Entity, info *bodyInfo, pos cp.Vector, y, vy float64) (float64, float64) {
	if vy > 0 {
		return y, vy
	}
	prevBottom := info.y + info.bottom
	bottom := y + info.bottom
	bestTop := math.Inf(-1)
	var floor *bodyInfo
	for e, other := range ps.bodies {
		if e == self || !other.static {
			continue
		}
		top := other.y + other.top
		if prevBottom < top-floorTolerance || bottom > top {
			continue
		}
		center := other.body.Position()
		dx, dz := pos.X-center.X, pos.Y-center.Y
		if math.Hypot(dx, dz) > float64(other.collider.Radius) {
			continue
		}
		if top > bestTop {
			bestTop = top
			floor = other
		}
	}
	if floor == nil {
		return y, vy
	}
	_, bounce := contactCoefficients(info, floor)
	return bestTop - info.bottom, -vy * bounce
}
