package system

import (
	"log"

	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

// PoseLogSystem logs the camera and focus poses every Every frames. It is a
// post stage: it only reads final transforms.
type PoseLogSystem struct {
	Every  uint64
	Logger *log.Logger
}

func NewPoseLogSystem(every uint64) *PoseLogSystem {
	return &PoseLogSystem{Every: every}
}

func (ps *PoseLogSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.Every == 0 {
		return
	}
	clock, ok := ecs.Resource[component.Time](w)
	if !ok || clock.Frame%ps.Every != 0 {
		return
	}
	state, ok := ecs.Resource[CameraState](w)
	if !ok {
		return
	}
	logf := log.Printf
	if ps.Logger != nil {
		logf = ps.Logger.Printf
	}

	body, okBody := ecs.Get(w, state.Focus, component.TransformComponent)
	vel, _ := ecs.Get(w, state.Focus, component.LinearVelocityComponent)
	if !okBody {
		logf("pose: frame=%d focus unbound", clock.Frame)
		return
	}
	cam, okCam := w.First(component.MainCameraComponent.ID(), component.TransformComponent.ID())
	var camPos component.Transform
	if okCam {
		camPos, _ = ecs.Get(w, cam, component.TransformComponent)
	}
	logf("pose: frame=%d yaw=%.3f pitch=%.3f dist=%.3f body=(%.2f,%.2f,%.2f) vel=(%.2f,%.2f,%.2f) cam=(%.2f,%.2f,%.2f)",
		clock.Frame, state.Yaw, state.Pitch, state.Distance,
		body.Translation.X(), body.Translation.Y(), body.Translation.Z(),
		vel.X(), vel.Y(), vel.Z(),
		camPos.Translation.X(), camPos.Translation.Y(), camPos.Translation.Z())
}
