package system

import (
	"log"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

// CameraOrbitSystem turns pan and zoom input into an orbit around the
// focus body and writes the main camera's transform. It must run after
// physics has synced transforms for the frame.
type CameraOrbitSystem struct {
	unbound        bool
	badCardinality bool
}

func NewCameraOrbitSystem() *CameraOrbitSystem {
	return &CameraOrbitSystem{}
}

func (cs *CameraOrbitSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	state, ok := ecs.Resource[CameraState](w)
	if !ok {
		return
	}

	character, okChar := ecs.Get(w, state.Focus, component.CharacterComponent)
	focusTransform, okTransform := ecs.Get(w, state.Focus, component.TransformComponent)
	if !okChar || !okTransform {
		cs.setUnbound(w, state.Focus, true)
		return
	}
	cs.setUnbound(w, state.Focus, false)

	camEntity, ok := cs.mainCamera(w)
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, camEntity, component.TransformComponent)
	if !ok {
		return
	}

	var input component.InputSnapshot
	if in, ok := ecs.Resource[component.InputSnapshot](w); ok {
		input = *in
	}
	var dt float32
	if clock, ok := ecs.Resource[component.Time](w); ok {
		dt = clock.Delta
	}

	state.OrbitStep(input.PanCamera, input.Zoom, dt)
	target, head := state.OrbitTarget(focusTransform.Translation, character.Height)

	// Frame-rate dependent smoothing: the step is FocusSpeed*dt, not an
	// exact exponential decay.
	camTransform.Translation = common.LerpVec3(camTransform.Translation, target, state.FocusSpeed*dt)
	if rot, ok := common.LookRotation(camTransform.Translation, head, common.Up); ok {
		camTransform.Rotation = rot
	}

	if err := ecs.Add(w, camEntity, component.TransformComponent, camTransform); err != nil {
		log.Printf("camera: update transform for %s: %v", camEntity, err)
	}
}

// mainCamera picks the camera entity. Exactly one is expected; with several
// the lowest id wins and the misconfiguration is reported once.
func (cs *CameraOrbitSystem) mainCamera(w *ecs.World) (ecs.Entity, bool) {
	cams := w.Query(component.MainCameraComponent.ID(), component.TransformComponent.ID())
	if len(cams) == 1 {
		cs.badCardinality = false
		return cams[0], true
	}
	if !cs.badCardinality {
		cs.badCardinality = true
		log.Printf("camera: expected exactly one main camera, found %d", len(cams))
		w.Events().Push(ecs.Event{Kind: ecs.EventCameraCardinality, Data: len(cams)})
	}
	if len(cams) == 0 {
		return ecs.Entity{}, false
	}
	return cams[0], true
}

func (cs *CameraOrbitSystem) setUnbound(w *ecs.World, focus ecs.Entity, unbound bool) {
	if cs.unbound == unbound {
		return
	}
	cs.unbound = unbound
	if unbound {
		log.Printf("camera: focus %s unbound, skipping orbit", focus)
		w.Events().Push(ecs.Event{Kind: ecs.EventFocusUnbound, Entity: focus})
		return
	}
	w.Events().Push(ecs.Event{Kind: ecs.EventFocusBound, Entity: focus})
}
