package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/ecs/system"
	"github.com/milk9111/thirdperson/prefabs"
)

// Scene holds the handles created at startup.
type Scene struct {
	Camera    ecs.Entity
	Character ecs.Entity
	Ground    ecs.Entity
}

// SceneSpecs bundles the prefab specs a scene is built from.
type SceneSpecs struct {
	Camera    *prefabs.CameraSpec
	Character *prefabs.CharacterSpec
	Ground    *prefabs.GroundSpec
}

// LoadSceneSpecs reads camera.yaml, character.yaml and ground.yaml.
func LoadSceneSpecs() (SceneSpecs, error) {
	var specs SceneSpecs
	var err error
	if specs.Camera, err = prefabs.LoadCameraSpec(); err != nil {
		return specs, err
	}
	if specs.Character, err = prefabs.LoadCharacterSpec(); err != nil {
		return specs, err
	}
	if specs.Ground, err = prefabs.LoadGroundSpec(); err != nil {
		return specs, err
	}
	return specs, nil
}

// BuildScene installs the frame resources and spawns the camera, ground and
// character, then binds the camera focus to the character.
func BuildScene(w *ecs.World, specs SceneSpecs) (Scene, error) {
	var scene Scene

	state := NewCameraState(specs.Camera)
	ecs.SetResource(w, &state)
	ecs.SetResource(w, &component.InputSnapshot{})
	ecs.SetResource(w, &component.Time{})
	ecs.SetResource(w, &component.CursorState{Captured: true})

	var err error
	if scene.Camera, err = NewCamera(w, specs.Camera); err != nil {
		return scene, err
	}
	if scene.Ground, err = NewGround(w, specs.Ground); err != nil {
		return scene, err
	}
	if scene.Character, err = NewCharacter(w, specs.Character); err != nil {
		return scene, err
	}
	if err := BindFocus(w, scene.Character); err != nil {
		return scene, err
	}
	return scene, nil
}

// BindFocus points the camera at e. It is the single focus assignment made
// at startup.
func BindFocus(w *ecs.World, e ecs.Entity) error {
	state, ok := ecs.Resource[system.CameraState](w)
	if !ok {
		return fmt.Errorf("bind focus: no camera state")
	}
	if !w.IsAlive(e) {
		return fmt.Errorf("bind focus %s: %w", e, component.ErrEntityNotAlive)
	}
	state.Focus = e
	return nil
}

// ReloadTuning reapplies a changed prefab file to the live scene. Unknown
// files are ignored.
func ReloadTuning(w *ecs.World, scene Scene, file string) error {
	switch file {
	case "camera.yaml":
		spec, err := prefabs.LoadCameraSpec()
		if err != nil {
			return err
		}
		state, ok := ecs.Resource[system.CameraState](w)
		if !ok {
			return fmt.Errorf("reload %s: no camera state", file)
		}
		ApplyCameraTuning(state, spec)
	case "character.yaml":
		spec, err := prefabs.LoadCharacterSpec()
		if err != nil {
			return err
		}
		character, ok := ecs.Get(w, scene.Character, component.CharacterComponent)
		if !ok {
			return fmt.Errorf("reload %s: character %s gone", file, scene.Character)
		}
		ApplyCharacterTuning(&character, spec)
		if err := ecs.Add(w, scene.Character, component.CharacterComponent, character); err != nil {
			return fmt.Errorf("reload %s: %w", file, err)
		}
	default:
		return nil
	}
	log.Printf("scene: reloaded %s", file)
	w.Events().Push(ecs.Event{Kind: ecs.EventTuningReloaded, Data: file})
	return nil
}
