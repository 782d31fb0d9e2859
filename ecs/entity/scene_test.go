package entity

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/ecs/system"
	"github.com/milk9111/thirdperson/prefabs"
)

func buildDefaultScene(t *testing.T) (*ecs.World, Scene) {
	t.Helper()
	specs, err := LoadSceneSpecs()
	if err != nil {
		t.Fatalf("load specs: %v", err)
	}
	w := ecs.NewWorld()
	scene, err := BuildScene(w, specs)
	if err != nil {
		t.Fatalf("build scene: %v", err)
	}
	return w, scene
}

func TestBuildSceneDefaults(t *testing.T) {
	w, scene := buildDefaultScene(t)

	state, ok := ecs.Resource[system.CameraState](w)
	if !ok {
		t.Fatalf("camera state not installed")
	}
	if state.Focus != scene.Character {
		t.Fatalf("focus should be bound to the character, got %s", state.Focus)
	}
	if state.Distance != 5 || state.MinDistance != 1 || state.MaxDistance != 10 || state.FocusSpeed != 5 {
		t.Fatalf("unexpected camera tuning %+v", *state)
	}
	if state.PanSensitivity != (mgl32.Vec2{0.3, 0.1}) || state.ZoomSensitivity != 10 {
		t.Fatalf("unexpected sensitivities %+v", *state)
	}

	for _, check := range []struct {
		name string
		ok   bool
	}{
		{"input", has[component.InputSnapshot](w)},
		{"time", has[component.Time](w)},
		{"cursor", has[component.CursorState](w)},
	} {
		if !check.ok {
			t.Fatalf("%s resource missing", check.name)
		}
	}

	cams := w.Query(component.MainCameraComponent.ID())
	if len(cams) != 1 || cams[0] != scene.Camera {
		t.Fatalf("expected exactly one camera, got %v", cams)
	}

	character, ok := ecs.Get(w, scene.Character, component.CharacterComponent)
	if !ok || character != component.DefaultCharacter() {
		t.Fatalf("expected default character tuning, got %+v", character)
	}
	tr, _ := ecs.Get(w, scene.Character, component.TransformComponent)
	if tr.Translation != (mgl32.Vec3{0, 1, 0}) {
		t.Fatalf("character should spawn at (0, 1, 0), got %v", tr.Translation)
	}
	rb, _ := ecs.Get(w, scene.Character, component.RigidBodyComponent)
	if rb.Kind != component.BodyDynamic {
		t.Fatalf("character body should be dynamic")
	}
	col, _ := ecs.Get(w, scene.Character, component.ColliderComponent)
	if col.Shape != component.ShapeCapsule || col.Radius != 0.2 || col.A != (mgl32.Vec3{0, 0.2, 0}) || col.B != (mgl32.Vec3{0, 1.8, 0}) {
		t.Fatalf("unexpected character collider %+v", col)
	}
	if col.Friction.Rule != component.CombineMin || col.Friction.Value != 0 || col.Restitution.Rule != component.CombineMin {
		t.Fatalf("character should have zero min-combined friction and restitution, got %+v", col)
	}
	locked, _ := ecs.Get(w, scene.Character, component.LockedAxesComponent)
	if locked != (component.LockedAxes{RotationX: true, RotationZ: true}) {
		t.Fatalf("expected X/Z rotation lock, got %+v", locked)
	}

	ground, _ := ecs.Get(w, scene.Ground, component.ColliderComponent)
	groundTr, _ := ecs.Get(w, scene.Ground, component.TransformComponent)
	groundBody, _ := ecs.Get(w, scene.Ground, component.RigidBodyComponent)
	if ground.Shape != component.ShapeCylinder || ground.Radius != 10 || ground.Height != 1 ||
		groundTr.Translation != (mgl32.Vec3{0, -1, 0}) || groundBody.Kind != component.BodyStatic {
		t.Fatalf("unexpected ground %+v at %v", ground, groundTr.Translation)
	}
}

func has[T any](w *ecs.World) bool {
	_, ok := ecs.Resource[T](w)
	return ok
}

func TestBindFocus(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	if err := BindFocus(w, e); err == nil {
		t.Fatalf("expected error without camera state")
	}

	state := system.DefaultCameraState()
	ecs.SetResource(w, &state)
	if err := BindFocus(w, e); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if state.Focus != e {
		t.Fatalf("focus not set")
	}

	w.DestroyEntity(e)
	if err := BindFocus(w, e); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestApplyCameraTuningKeepsOrbit(t *testing.T) {
	state := system.DefaultCameraState()
	state.Yaw, state.Pitch, state.Distance = 1.5, -0.4, 8

	ApplyCameraTuning(&state, &prefabs.CameraSpec{
		Yaw:             3,
		Pitch:           0.9,
		Distance:        2,
		MinDistance:     2,
		MaxDistance:     6,
		PanSensitivity:  prefabs.Vec2Spec{X: 1, Y: 2},
		ZoomSensitivity: 4,
	})

	if state.Yaw != 1.5 || state.Pitch != -0.4 {
		t.Fatalf("reload must not touch yaw/pitch, got %v/%v", state.Yaw, state.Pitch)
	}
	if state.Distance != 6 {
		t.Fatalf("distance should be re-clamped to the new max, got %v", state.Distance)
	}
	if state.PanSensitivity != (mgl32.Vec2{1, 2}) || state.ZoomSensitivity != 4 || state.FocusSpeed != 5 {
		t.Fatalf("unexpected tuning %+v", state)
	}
}

func TestReloadTuning(t *testing.T) {
	w, scene := buildDefaultScene(t)

	character, _ := ecs.Get(w, scene.Character, component.CharacterComponent)
	character.LateralSpeed = 99
	if err := ecs.Add(w, scene.Character, component.CharacterComponent, character); err != nil {
		t.Fatal(err)
	}
	state, _ := ecs.Resource[system.CameraState](w)
	state.Yaw = 2

	for _, file := range []string{"character.yaml", "camera.yaml", "unrelated.yaml"} {
		if err := ReloadTuning(w, scene, file); err != nil {
			t.Fatalf("reload %s: %v", file, err)
		}
	}

	character, _ = ecs.Get(w, scene.Character, component.CharacterComponent)
	if character.LateralSpeed != 10 {
		t.Fatalf("character tuning not reapplied, speed %v", character.LateralSpeed)
	}
	if state.Yaw != 2 {
		t.Fatalf("camera reload reset yaw to %v", state.Yaw)
	}
	events := w.Events().Drain()
	if len(events) != 2 || events[0].Kind != ecs.EventTuningReloaded {
		t.Fatalf("expected two reload events, got %+v", events)
	}

	w.DestroyEntity(scene.Character)
	if err := ReloadTuning(w, scene, "character.yaml"); err == nil {
		t.Fatalf("expected error once the character is gone")
	}
}

func TestSpecConversionErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"bad_shape", func() error { _, err := colliderFromSpec(prefabs.ColliderSpec{Shape: "cube", Radius: 1}); return err }()},
		{"zero_radius", func() error { _, err := colliderFromSpec(prefabs.ColliderSpec{Shape: "cylinder"}); return err }()},
		{"bad_combine", func() error {
			_, err := colliderFromSpec(prefabs.ColliderSpec{Shape: "cylinder", Radius: 1, Friction: prefabs.CoefficientSpec{Combine: "median"}})
			return err
		}()},
		{"bad_kind", func() error { _, _, err := bodyFromSpec(prefabs.BodySpec{Kind: "kinematic"}); return err }()},
		{"bad_axis", func() error { _, _, err := bodyFromSpec(prefabs.BodySpec{LockRotation: []string{"w"}}); return err }()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	w := ecs.NewWorld()
	spec := &prefabs.CharacterSpec{
		Name:     "static_hero",
		Body:     prefabs.BodySpec{Kind: "static"},
		Collider: prefabs.ColliderSpec{Shape: "capsule", Radius: 0.2},
	}
	if _, err := NewCharacter(w, spec); err == nil {
		t.Fatalf("a static character should be rejected")
	}
	if len(w.Entities()) != 0 {
		t.Fatalf("rejected character left entities behind")
	}
}
