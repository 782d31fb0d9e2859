package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

// ScriptedInputSystem produces input from a tengo script, re-run once per
// frame. The script sees `frame`, `t`, `dt` and a read-only `camera` map,
// and sets any of move_x, move_y, pan_x, pan_y, zoom, escape.
type ScriptedInputSystem struct {
	name     string
	compiled *tengo.Compiled
	failed   bool
}

var scriptOutputs = []string{"move_x", "move_y", "pan_x", "pan_y", "zoom", "escape"}

// NewScriptedInputSystem compiles src. name is used in log lines only.
func NewScriptedInputSystem(name string, src []byte) (*ScriptedInputSystem, error) {
	script := tengo.NewScript(src)
	_ = script.Add("frame", 0)
	_ = script.Add("t", 0.0)
	_ = script.Add("dt", 0.0)
	_ = script.Add("camera", map[string]interface{}{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input script %s: compile: %w", name, err)
	}
	return &ScriptedInputSystem{name: name, compiled: compiled}, nil
}

func (s *ScriptedInputSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.compiled == nil {
		return
	}
	snapshot, err := s.Sample(w)
	if err != nil {
		if !s.failed {
			log.Printf("input: script %s: %v", s.name, err)
		}
		s.failed = true
		PublishInput(w, component.InputSnapshot{})
		return
	}
	s.failed = false
	PublishInput(w, snapshot)
}

// Sample runs the script once against the world's clock and camera. A
// panic inside the VM, such as an integer divide by zero, comes back as err.
func (s *ScriptedInputSystem) Sample(w *ecs.World) (snapshot component.InputSnapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			snapshot, err = component.InputSnapshot{}, fmt.Errorf("input script %s: %v", s.name, r)
		}
	}()

	var clock component.Time
	if c, ok := ecs.Resource[component.Time](w); ok {
		clock = *c
	}
	cam := map[string]interface{}{}
	if state, ok := ecs.Resource[CameraState](w); ok {
		cam["yaw"] = float64(state.Yaw)
		cam["pitch"] = float64(state.Pitch)
		cam["distance"] = float64(state.Distance)
	}

	if err := s.compiled.Set("frame", int64(clock.Frame)); err != nil {
		return component.InputSnapshot{}, err
	}
	if err := s.compiled.Set("t", clock.Elapsed); err != nil {
		return component.InputSnapshot{}, err
	}
	if err := s.compiled.Set("dt", float64(clock.Delta)); err != nil {
		return component.InputSnapshot{}, err
	}
	if err := s.compiled.Set("camera", cam); err != nil {
		return component.InputSnapshot{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return component.InputSnapshot{}, err
	}

	out := make(map[string]*tengo.Variable, len(scriptOutputs))
	for _, name := range scriptOutputs {
		if s.compiled.IsDefined(name) {
			out[name] = s.compiled.Get(name)
		}
	}
	axis := func(name string) float32 {
		if v, ok := out[name]; ok {
			return float32(v.Float())
		}
		return 0
	}
	var escape bool
	if v, ok := out["escape"]; ok {
		escape = v.Bool()
	}
	return component.InputSnapshot{
		Move:              mgl32.Vec2{axis("move_x"), axis("move_y")},
		PanCamera:         mgl32.Vec2{axis("pan_x"), axis("pan_y")},
		Zoom:              axis("zoom"),
		EscapeJustPressed: escape,
	}, nil
}
