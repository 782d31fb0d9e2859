package system

import (
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

// CursorSystem flips pointer capture when Escape is pressed. The driver
// applies CursorState to the window.
type CursorSystem struct{}

func NewCursorSystem() *CursorSystem {
	return &CursorSystem{}
}

func (cs *CursorSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	input, ok := ecs.Resource[component.InputSnapshot](w)
	if !ok || !input.EscapeJustPressed {
		return
	}
	cursor, ok := ecs.Resource[component.CursorState](w)
	if !ok {
		cursor = &component.CursorState{Captured: true}
		ecs.SetResource(w, cursor)
	}
	cursor.Captured = !cursor.Captured
	w.Events().Push(ecs.Event{Kind: ecs.EventCursorToggled, Data: cursor.Captured})
}
