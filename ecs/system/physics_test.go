package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

func addBody(t *testing.T, w *ecs.World, at mgl32.Vec3, vel mgl32.Vec3, locked component.LockedAxes) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, ecs.Add(w, e, component.TransformComponent, component.NewTransform(at.X(), at.Y(), at.Z())))
	mustAdd(t, ecs.Add(w, e, component.RigidBodyComponent, component.RigidBody{Kind: component.BodyDynamic, Mass: 70}))
	mustAdd(t, ecs.Add(w, e, component.ColliderComponent,
		component.CapsuleCollider(0.2, mgl32.Vec3{0, 0.2, 0}, mgl32.Vec3{0, 1.8, 0})))
	mustAdd(t, ecs.Add(w, e, component.LockedAxesComponent, locked))
	mustAdd(t, ecs.Add(w, e, component.LinearVelocityComponent, component.LinearVelocity{Vec3: vel}))
	mustAdd(t, ecs.Add(w, e, component.AngularVelocityComponent, component.AngularVelocity{}))
	return e
}

func addStatic(t *testing.T, w *ecs.World, at mgl32.Vec3, radius, height float32) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, ecs.Add(w, e, component.TransformComponent, component.NewTransform(at.X(), at.Y(), at.Z())))
	mustAdd(t, ecs.Add(w, e, component.RigidBodyComponent, component.RigidBody{Kind: component.BodyStatic}))
	col := component.CylinderCollider(radius, height)
	col.Friction = component.Coefficient{Value: 0.5}
	mustAdd(t, ecs.Add(w, e, component.ColliderComponent, col))
	return e
}

func physicsWorld(dt float32) *ecs.World {
	w := ecs.NewWorld()
	ecs.SetResource(w, &component.Time{Delta: dt})
	return w
}

func TestPhysicsIntegratesHorizontalVelocity(t *testing.T) {
	w := physicsWorld(0.5)
	e := addBody(t, w, mgl32.Vec3{0, 3, 0}, mgl32.Vec3{1, 0, -2}, component.LockedAxes{})

	ps := NewPhysicsSystem()
	ps.Gravity = 0
	ps.Update(w)

	tr, _ := ecs.Get(w, e, component.TransformComponent)
	if !vecNear(tr.Translation, mgl32.Vec3{0.5, 3, -1}, 1e-3) {
		t.Fatalf("expected (0.5, 3, -1), got %v", tr.Translation)
	}
	vel, _ := ecs.Get(w, e, component.LinearVelocityComponent)
	if !vecNear(vel.Vec3, mgl32.Vec3{1, 0, -2}, 1e-3) {
		t.Fatalf("velocity should be unchanged in free flight, got %v", vel)
	}
}

func TestPhysicsGravityAndLanding(t *testing.T) {
	w := physicsWorld(1.0 / 60)
	addStatic(t, w, mgl32.Vec3{0, -1, 0}, 10, 1)
	e := addBody(t, w, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{}, component.LockedAxes{RotationX: true, RotationZ: true})

	ps := NewPhysicsSystem()
	ps.Update(w)
	vel, _ := ecs.Get(w, e, component.LinearVelocityComponent)
	if !near(vel.Y(), DefaultGravity/60, 1e-4) {
		t.Fatalf("expected one step of gravity, got vy=%v", vel.Y())
	}

	for i := 0; i < 180; i++ {
		ps.Update(w)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent)
	vel, _ = ecs.Get(w, e, component.LinearVelocityComponent)
	if !near(tr.Translation.Y(), -0.5, 1e-3) {
		t.Fatalf("expected to rest on the ground top at -0.5, got %v", tr.Translation.Y())
	}
	if !near(vel.Y(), 0, 1e-3) {
		t.Fatalf("resting body should have no vertical velocity, got %v", vel.Y())
	}
	if !near(tr.Translation.X(), 0, 1e-4) || !near(tr.Translation.Z(), 0, 1e-4) {
		t.Fatalf("standing on the ground should not push sideways, got %v", tr.Translation)
	}
}

func TestPhysicsFallsOffTheEdge(t *testing.T) {
	w := physicsWorld(1.0 / 60)
	addStatic(t, w, mgl32.Vec3{0, -1, 0}, 2, 1)
	e := addBody(t, w, mgl32.Vec3{5, 1, 0}, mgl32.Vec3{}, component.LockedAxes{})

	ps := NewPhysicsSystem()
	for i := 0; i < 60; i++ {
		ps.Update(w)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent)
	if tr.Translation.Y() > -1 {
		t.Fatalf("body outside the ground radius should keep falling, y=%v", tr.Translation.Y())
	}
}

func TestPhysicsSideCollision(t *testing.T) {
	cases := []struct {
		name    string
		height  float32
		blocked bool
	}{
		{"beside_pillar", 0, true},
		{"above_pillar", 3, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := physicsWorld(1.0 / 60)
			// Pillar spans y in [-2, 2].
			addStatic(t, w, mgl32.Vec3{}, 1, 4)
			e := addBody(t, w, mgl32.Vec3{-3, c.height, 0}, mgl32.Vec3{5, 0, 0}, component.LockedAxes{RotationY: true})

			ps := NewPhysicsSystem()
			ps.Gravity = 0
			for i := 0; i < 90; i++ {
				// Keep pushing, the way the controller would.
				_ = ecs.Add(w, e, component.LinearVelocityComponent, component.LinearVelocity{Vec3: mgl32.Vec3{5, 0, 0}})
				ps.Update(w)
			}
			tr, _ := ecs.Get(w, e, component.TransformComponent)
			x := tr.Translation.X()
			if c.blocked && !near(x, -1.2, 1e-3) {
				t.Fatalf("body should rest against the pillar at x=-1.2, got %v", x)
			}
			if vel, _ := ecs.Get(w, e, component.LinearVelocityComponent); c.blocked && !near(vel.X(), 0, 1e-3) {
				t.Fatalf("velocity into the pillar should be removed, got %v", vel.Vec3)
			}
			if !c.blocked && x < 2 {
				t.Fatalf("body above the pillar should pass over it, x=%v", x)
			}
		})
	}
}

func TestContactCoefficients(t *testing.T) {
	body := func(friction, restitution component.Coefficient) *bodyInfo {
		return &bodyInfo{collider: component.Collider{Friction: friction, Restitution: restitution}}
	}
	cases := []struct {
		name            string
		a, b            *bodyInfo
		wantF, wantRest float64
	}{
		{
			"average",
			body(component.Coefficient{Value: 0.2}, component.Coefficient{Value: 0}),
			body(component.Coefficient{Value: 0.6}, component.Coefficient{Value: 0.5}),
			0.4, 0.25,
		},
		{
			"min_wins_over_average",
			body(component.Coefficient{Value: 0, Rule: component.CombineMin}, component.Coefficient{Value: 0, Rule: component.CombineMin}),
			body(component.Coefficient{Value: 0.5}, component.Coefficient{Value: 0.8}),
			0, 0,
		},
		{
			"max_wins_over_multiply",
			body(component.Coefficient{Value: 0.5, Rule: component.CombineMultiply}, component.Coefficient{Value: 0.5, Rule: component.CombineMultiply}),
			body(component.Coefficient{Value: 0.3, Rule: component.CombineMax}, component.Coefficient{Value: 0.2}),
			0.5, 0.1,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f, rest := contactCoefficients(c.a, c.b)
			if !near(float32(f), float32(c.wantF), 1e-6) || !near(float32(rest), float32(c.wantRest), 1e-6) {
				t.Fatalf("expected friction %v restitution %v, got %v %v", c.wantF, c.wantRest, f, rest)
			}
		})
	}
}

func TestContactVelocity(t *testing.T) {
	wall := cp.Vector{X: 1}
	cases := []struct {
		name    string
		v       cp.Vector
		contact sideContact
		want    cp.Vector
	}{
		{"head_on", cp.Vector{X: 5}, sideContact{normal: wall}, cp.Vector{}},
		{"moving_away", cp.Vector{X: -2, Y: 1}, sideContact{normal: wall, friction: 1}, cp.Vector{X: -2, Y: 1}},
		{"bounce", cp.Vector{X: 2}, sideContact{normal: wall, restitution: 0.5}, cp.Vector{X: -1}},
		{"frictionless_slide", cp.Vector{X: 2, Y: 3}, sideContact{normal: wall}, cp.Vector{Y: 3}},
		{"friction_slows_slide", cp.Vector{X: 2, Y: 3}, sideContact{normal: wall, friction: 0.5}, cp.Vector{Y: 2}},
		{"friction_stops_slide", cp.Vector{X: 2, Y: 0.5}, sideContact{normal: wall, friction: 1}, cp.Vector{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := contactVelocity(c.v, c.contact)
			if !near(float32(got.X), float32(c.want.X), 1e-6) || !near(float32(got.Y), float32(c.want.Y), 1e-6) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestPhysicsRotationLock(t *testing.T) {
	cases := []struct {
		name    string
		locked  component.LockedAxes
		wantYaw float32
	}{
		{"locked_y", component.LockedAxes{RotationY: true}, 0},
		{"free_y", component.LockedAxes{RotationX: true, RotationZ: true}, 0.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := physicsWorld(0.5)
			e := addBody(t, w, mgl32.Vec3{}, mgl32.Vec3{}, c.locked)
			mustAdd(t, ecs.Add(w, e, component.AngularVelocityComponent, component.AngularVelocity{Vec3: mgl32.Vec3{3, 1, 3}}))

			ps := NewPhysicsSystem()
			ps.Gravity = 0
			ps.Update(w)

			tr, _ := ecs.Get(w, e, component.TransformComponent)
			if yaw := common.YawOf(tr.Rotation); !near(yaw, c.wantYaw, 1e-3) {
				t.Fatalf("expected yaw %v, got %v", c.wantYaw, yaw)
			}
			angular, _ := ecs.Get(w, e, component.AngularVelocityComponent)
			if angular.X() != 0 || angular.Z() != 0 {
				t.Fatalf("X/Z spin must be zeroed, got %v", angular)
			}
			if c.locked.RotationY && angular.Y() != 0 {
				t.Fatalf("locked Y spin must be zeroed, got %v", angular.Y())
			}
		})
	}
}

func TestPhysicsRemovesDeadBodies(t *testing.T) {
	w := physicsWorld(1.0 / 60)
	addStatic(t, w, mgl32.Vec3{0, -1, 0}, 10, 1)
	e := addBody(t, w, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{}, component.LockedAxes{})

	ps := NewPhysicsSystem()
	ps.Update(w)
	if ps.Bodies() != 2 {
		t.Fatalf("expected 2 bodies, got %d", ps.Bodies())
	}

	w.DestroyEntity(e)
	ps.Update(w)
	if ps.Bodies() != 1 {
		t.Fatalf("expected dead body to be removed, got %d", ps.Bodies())
	}
}

func TestPhysicsSkipsWithoutTime(t *testing.T) {
	w := physicsWorld(0)
	e := addBody(t, w, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, component.LockedAxes{})

	ps := NewPhysicsSystem()
	ps.Update(w)

	tr, _ := ecs.Get(w, e, component.TransformComponent)
	if tr.Translation != (mgl32.Vec3{0, 1, 0}) || ps.Bodies() != 0 {
		t.Fatalf("zero dt should not step, got %v bodies=%d", tr.Translation, ps.Bodies())
	}
}
