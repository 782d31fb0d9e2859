package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/ecs/entity"
	"github.com/milk9111/thirdperson/ecs/system"
	"github.com/milk9111/thirdperson/prefabs"
)

type options struct {
	script   string
	frames   int
	dt       float64
	logEvery uint64
	events   bool
}

// result is the final pose after a run.
type result struct {
	Frames    uint64
	Camera    component.Transform
	Character component.Transform
	Velocity  component.LinearVelocity
	State     system.CameraState
}

func main() {
	sim, err := prefabs.LoadSimulationSpec()
	if err != nil {
		log.Fatal(err)
	}

	script := flag.String("script", sim.Script, "input script in prefabs/scripts (basename, .tengo optional)")
	frames := flag.Int("frames", sim.Frames, "number of frames to simulate")
	dt := flag.Float64("dt", float64(sim.Dt), "fixed frame time in seconds")
	logEvery := flag.Uint64("log", sim.LogEvery, "log poses every N frames (0 disables)")
	events := flag.Bool("events", false, "log world events")
	flag.Parse()

	res, err := simulate(options{
		script:   *script,
		frames:   *frames,
		dt:       *dt,
		logEvery: *logEvery,
		events:   *events,
	}, sim.Gravity)
	if err != nil {
		log.Fatal(err)
	}

	p := res.Character.Translation
	c := res.Camera.Translation
	fmt.Fprintf(os.Stdout, "frames=%d yaw=%.3f pitch=%.3f distance=%.3f character=(%.3f,%.3f,%.3f) camera=(%.3f,%.3f,%.3f)\n",
		res.Frames, res.State.Yaw, res.State.Pitch, res.State.Distance,
		p.X(), p.Y(), p.Z(), c.X(), c.Y(), c.Z())
}

// simulate builds the default scene and drives it with a scripted input
// source at a fixed time step.
func simulate(opts options, gravity float64) (result, error) {
	if opts.dt <= 0 {
		return result{}, fmt.Errorf("simulate: dt must be positive, got %v", opts.dt)
	}
	if opts.frames < 0 {
		return result{}, fmt.Errorf("simulate: frames must not be negative, got %d", opts.frames)
	}

	src, err := prefabs.LoadScript(opts.script)
	if err != nil {
		return result{}, fmt.Errorf("simulate: load script %s: %w", opts.script, err)
	}
	input, err := system.NewScriptedInputSystem(opts.script, src)
	if err != nil {
		return result{}, err
	}

	specs, err := entity.LoadSceneSpecs()
	if err != nil {
		return result{}, err
	}
	w := ecs.NewWorld()
	scene, err := entity.BuildScene(w, specs)
	if err != nil {
		return result{}, fmt.Errorf("simulate: build scene: %w", err)
	}

	pipeline := system.NewPipeline(input, system.NewPoseLogSystem(opts.logEvery))
	if gravity != 0 {
		pipeline.Physics.Gravity = gravity
	}
	w.AddSystem(pipeline)

	clock, _ := ecs.Resource[component.Time](w)
	for i := 0; i < opts.frames; i++ {
		clock.Advance(float32(opts.dt))
		w.Update()
		for _, evt := range w.Events().Drain() {
			if opts.events {
				log.Printf("simulate: frame=%d event %s entity=%s data=%v", clock.Frame, evt.Kind, evt.Entity, evt.Data)
			}
		}
	}

	res := result{Frames: clock.Frame}
	if state, ok := ecs.Resource[system.CameraState](w); ok {
		res.State = *state
	}
	res.Camera, _ = ecs.Get(w, scene.Camera, component.TransformComponent)
	res.Character, _ = ecs.Get(w, scene.Character, component.TransformComponent)
	res.Velocity, _ = ecs.Get(w, scene.Character, component.LinearVelocityComponent)
	return res, nil
}
