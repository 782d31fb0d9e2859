package main

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/ecs/system"
)

// Bindings is the static action map read by Input.
type Bindings struct {
	Up, Down, Left, Right []ebiten.Key
	Escape                []ebiten.Key

	EscapeButton  ebiten.StandardGamepadButton
	ZoomInButton  ebiten.StandardGamepadButton
	ZoomOutButton ebiten.StandardGamepadButton
}

// DefaultBindings moves with WASD or the arrows, pans with the mouse or
// right stick, zooms with the wheel or D-pad and releases the cursor with
// Escape or Select.
func DefaultBindings() Bindings {
	return Bindings{
		Up:            []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
		Down:          []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
		Left:          []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		Right:         []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		Escape:        []ebiten.Key{ebiten.KeyEscape},
		EscapeButton:  ebiten.StandardGamepadButtonCenterLeft,
		ZoomInButton:  ebiten.StandardGamepadButtonLeftTop,
		ZoomOutButton: ebiten.StandardGamepadButtonLeftBottom,
	}
}

// Input samples keyboard, mouse and the first gamepad into the frame's
// InputSnapshot.
type Input struct {
	bindings Bindings

	lastX, lastY int
	primed       bool
}

func NewInput(bindings Bindings) *Input {
	return &Input{bindings: bindings}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func (i *Input) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}
	b := i.bindings

	captured := true
	if cursor, ok := ecs.Resource[component.CursorState](w); ok {
		captured = cursor.Captured
	}

	move := system.DPad(anyPressed(b.Up), anyPressed(b.Down), anyPressed(b.Left), anyPressed(b.Right))

	// Mouse pan only counts while the pointer is captured; otherwise it is
	// free to drive the overlay.
	var pan mgl32.Vec2
	x, y := ebiten.CursorPosition()
	if captured && i.primed {
		pan = mgl32.Vec2{float32(x - i.lastX), float32(y - i.lastY)}
	}
	i.lastX, i.lastY, i.primed = x, y, true

	_, wheel := ebiten.Wheel()
	zoom := float32(wheel)
	escape := anyJustPressed(b.Escape)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		left := system.Stick(
			ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
			ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
		)
		move = system.ClampAxes(move, left)

		right := system.Stick(
			ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal),
			ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical),
		)
		pan = pan.Add(right)

		zoom += system.ButtonAxis(
			ebiten.IsStandardGamepadButtonPressed(id, b.ZoomOutButton),
			ebiten.IsStandardGamepadButtonPressed(id, b.ZoomInButton),
		)
		escape = escape || inpututil.IsStandardGamepadButtonJustPressed(id, b.EscapeButton)
	} else {
		move = system.ClampAxes(move)
	}

	system.PublishInput(w, component.InputSnapshot{
		Move:              move,
		PanCamera:         pan,
		Zoom:              zoom,
		EscapeJustPressed: escape,
	})
}
