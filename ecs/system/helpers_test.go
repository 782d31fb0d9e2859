package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

const eps = 1e-4

func near(a, b, tol float32) bool {
	return float32(math.Abs(float64(a-b))) <= tol
}

func vecNear(a, b mgl32.Vec3, tol float32) bool {
	for i := range a {
		if !near(a[i], b[i], tol) {
			return false
		}
	}
	return true
}

func vec2Near(a, b mgl32.Vec2, tol float32) bool {
	return near(a[0], b[0], tol) && near(a[1], b[1], tol)
}

type testScene struct {
	w      *ecs.World
	focus  ecs.Entity
	camera ecs.Entity
}

// newTestScene builds a bound camera and a character at the origin. The
// character has no body unless withBody is set.
func newTestScene(t *testing.T, dt float32, withBody bool) testScene {
	t.Helper()
	w := ecs.NewWorld()

	state := DefaultCameraState()
	ecs.SetResource(w, &state)
	ecs.SetResource(w, &component.Time{Delta: dt})
	ecs.SetResource(w, &component.InputSnapshot{})
	ecs.SetResource(w, &component.CursorState{Captured: true})

	focus := w.CreateEntity()
	mustAdd(t, ecs.Add(w, focus, component.TransformComponent, component.NewTransform(0, 0, 0)))
	mustAdd(t, ecs.Add(w, focus, component.CharacterComponent, component.DefaultCharacter()))
	mustAdd(t, ecs.Add(w, focus, component.LinearVelocityComponent, component.LinearVelocity{}))
	mustAdd(t, ecs.Add(w, focus, component.AngularVelocityComponent, component.AngularVelocity{}))
	if withBody {
		mustAdd(t, ecs.Add(w, focus, component.RigidBodyComponent, component.RigidBody{Kind: component.BodyDynamic, Mass: 70}))
		mustAdd(t, ecs.Add(w, focus, component.ColliderComponent,
			component.CapsuleCollider(0.2, mgl32.Vec3{0, 0.2, 0}, mgl32.Vec3{0, 1.8, 0})))
		mustAdd(t, ecs.Add(w, focus, component.LockedAxesComponent, component.LockedAxes{RotationX: true, RotationZ: true}))
	}
	state.Focus = focus

	camera := addCamera(t, w, mgl32.Vec3{0, 1.8, 5})
	return testScene{w: w, focus: focus, camera: camera}
}

func addCamera(t *testing.T, w *ecs.World, at mgl32.Vec3) ecs.Entity {
	t.Helper()
	camera := w.CreateEntity()
	mustAdd(t, ecs.Add(w, camera, component.MainCameraComponent, component.MainCamera{}))
	mustAdd(t, ecs.Add(w, camera, component.TransformComponent, component.NewTransform(at.X(), at.Y(), at.Z())))
	return camera
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func (s testScene) state(t *testing.T) *CameraState {
	t.Helper()
	state, ok := ecs.Resource[CameraState](s.w)
	if !ok {
		t.Fatalf("camera state missing")
	}
	return state
}

func (s testScene) setInput(in component.InputSnapshot) {
	PublishInput(s.w, in)
}

func (s testScene) velocity(t *testing.T) mgl32.Vec3 {
	t.Helper()
	v, ok := ecs.Get(s.w, s.focus, component.LinearVelocityComponent)
	if !ok {
		t.Fatalf("focus velocity missing")
	}
	return v.Vec3
}

func (s testScene) transform(t *testing.T, e ecs.Entity) component.Transform {
	t.Helper()
	tr, ok := ecs.Get(s.w, e, component.TransformComponent)
	if !ok {
		t.Fatalf("transform missing for %s", e)
	}
	return tr
}

func countEvents(events []ecs.Event, kind ecs.EventKind) int {
	n := 0
	for _, evt := range events {
		if evt.Kind == kind {
			n++
		}
	}
	return n
}
