package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/ecs/entity"
	"github.com/milk9111/thirdperson/ecs/system"
	"github.com/milk9111/thirdperson/prefabs"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	debug bool
	quit  bool

	world    *ecs.World
	scene    entity.Scene
	pipeline *system.Pipeline
	ui       *ebitenui.UI
	watcher  *prefabs.Watcher

	cursorApplied bool
	captured      bool
	clipboardOK   bool
	status        string
}

func NewGame(debug, watch bool) (*Game, error) {
	specs, err := entity.LoadSceneSpecs()
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	scene, err := entity.BuildScene(w, specs)
	if err != nil {
		return nil, fmt.Errorf("game: build scene: %w", err)
	}

	pipeline := system.NewPipeline(NewInput(DefaultBindings()))
	if debug {
		pipeline.Post.Add(system.NewPoseLogSystem(60))
	}
	w.AddSystem(pipeline)

	g := &Game{
		debug:    debug,
		world:    w,
		scene:    scene,
		pipeline: pipeline,
	}
	g.ui = NewPauseUI(g)

	if watch {
		watcher, err := prefabs.NewWatcher("prefabs")
		if err != nil {
			log.Printf("game: prefab watcher disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("game: clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}
	return g, nil
}

func (g *Game) Close() {
	if g == nil || g.watcher == nil {
		return
	}
	if err := g.watcher.Close(); err != nil {
		log.Printf("game: close watcher: %v", err)
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.pollReload()

	if clock, ok := ecs.Resource[component.Time](g.world); ok {
		clock.Advance(1 / float32(ebiten.TPS()))
	}
	g.world.Update()
	for _, evt := range g.world.Events().Drain() {
		g.handleEvent(evt)
	}
	g.applyCursor()

	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.copyCameraState()
	}
	if !g.captured {
		g.ui.Update()
	}
	return nil
}

func (g *Game) handleEvent(evt ecs.Event) {
	switch evt.Kind {
	case ecs.EventFocusUnbound, ecs.EventCameraCardinality:
		g.status = fmt.Sprintf("%s %v", evt.Kind, evt.Data)
	case ecs.EventFocusBound:
		g.status = ""
	}
	if g.debug {
		log.Printf("game: event %s entity=%s data=%v", evt.Kind, evt.Entity, evt.Data)
	}
}

// applyCursor pushes CursorState to the window when it changes.
func (g *Game) applyCursor() {
	cursor, ok := ecs.Resource[component.CursorState](g.world)
	if !ok {
		return
	}
	if g.cursorApplied && cursor.Captured == g.captured {
		return
	}
	g.cursorApplied = true
	g.captured = cursor.Captured
	if cursor.Captured {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

// resume recaptures the pointer from the overlay.
func (g *Game) resume() {
	if cursor, ok := ecs.Resource[component.CursorState](g.world); ok {
		cursor.Captured = true
	}
	g.applyCursor()
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case file, ok := <-g.watcher.Changes():
			if !ok {
				g.watcher = nil
				return
			}
			if err := entity.ReloadTuning(g.world, g.scene, file); err != nil {
				log.Printf("game: reload %s: %v", file, err)
			}
		case err, ok := <-g.watcher.Errors():
			if ok {
				log.Printf("game: watcher: %v", err)
			}
		default:
			return
		}
	}
}

// copyCameraState puts the live orbit on the clipboard in camera.yaml form.
func (g *Game) copyCameraState() {
	state, ok := ecs.Resource[system.CameraState](g.world)
	if !ok {
		return
	}
	spec := prefabs.CameraSpec{
		Name:            "camera",
		Yaw:             state.Yaw,
		Pitch:           state.Pitch,
		Distance:        state.Distance,
		MinDistance:     state.MinDistance,
		MaxDistance:     state.MaxDistance,
		PanSensitivity:  prefabs.Vec2Spec{X: state.PanSensitivity.X(), Y: state.PanSensitivity.Y()},
		ZoomSensitivity: state.ZoomSensitivity,
		FocusSpeed:      state.FocusSpeed,
	}
	if cam, ok := ecs.Get(g.world, g.scene.Camera, component.TransformComponent); ok {
		p := cam.Translation
		spec.Transform.Position = prefabs.Vec3Spec{X: p.X(), Y: p.Y(), Z: p.Z()}
	}
	data, err := yaml.Marshal(&spec)
	if err != nil {
		log.Printf("game: marshal camera state: %v", err)
		return
	}
	if !g.clipboardOK {
		log.Printf("game: camera state\n%s", data)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.status = "camera state copied"
}

func (g *Game) Draw(screen *ebiten.Image) {
	focus := ecs.Placeholder
	var lines []string
	lines = append(lines, fmt.Sprintf("TPS: %.2f    FPS: %.2f", ebiten.ActualTPS(), ebiten.ActualFPS()))
	if state, ok := ecs.Resource[system.CameraState](g.world); ok {
		focus = state.Focus
		lines = append(lines, fmt.Sprintf("yaw %.2f  pitch %.2f  distance %.2f", state.Yaw, state.Pitch, state.Distance))
	}
	if vel, ok := ecs.Get(g.world, focus, component.LinearVelocityComponent); ok {
		lines = append(lines, fmt.Sprintf("velocity (%.2f, %.2f, %.2f)", vel.X(), vel.Y(), vel.Z()))
	}
	if g.status != "" {
		lines = append(lines, g.status)
	}

	drawWorld(screen, g.world, focus, g.debug)
	ebitenutil.DebugPrint(screen, strings.Join(lines, "\n"))

	if !g.captured {
		g.ui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
