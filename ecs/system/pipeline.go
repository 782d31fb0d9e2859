package system

import "github.com/milk9111/thirdperson/ecs"

// Pipeline runs one simulation frame in a fixed stage order:
//
//  1. input sampling
//  2. cursor capture toggle
//  3. character motion (reads last frame's camera yaw, writes velocity)
//  4. physics step and transform sync
//  5. camera orbit (reads synced focus transform, writes camera transform)
//  6. post stages, which see final transforms
//
// Because character motion runs before the camera stage, body facing lags
// camera panning by one frame.
type Pipeline struct {
	Input     ecs.System
	Cursor    *CursorSystem
	Character *CharacterControllerSystem
	Physics   *PhysicsSystem
	Camera    *CameraOrbitSystem
	Post      *ecs.Scheduler
}

// NewPipeline builds the standard pipeline around an input source.
func NewPipeline(input ecs.System, post ...ecs.System) *Pipeline {
	return &Pipeline{
		Input:     input,
		Cursor:    NewCursorSystem(),
		Character: NewCharacterControllerSystem(),
		Physics:   NewPhysicsSystem(),
		Camera:    NewCameraOrbitSystem(),
		Post:      ecs.NewScheduler(post...),
	}
}

// Stages lists the stages in run order, skipping unset ones.
func (p *Pipeline) Stages() []ecs.System {
	if p == nil {
		return nil
	}
	var stages []ecs.System
	add := func(s ecs.System, ok bool) {
		if ok {
			stages = append(stages, s)
		}
	}
	add(p.Input, p.Input != nil)
	add(p.Cursor, p.Cursor != nil)
	add(p.Character, p.Character != nil)
	add(p.Physics, p.Physics != nil)
	add(p.Camera, p.Camera != nil)
	add(p.Post, p.Post != nil)
	return stages
}

func (p *Pipeline) Update(w *ecs.World) {
	for _, s := range p.Stages() {
		s.Update(w)
	}
}
