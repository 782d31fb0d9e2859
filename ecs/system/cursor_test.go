package system

import (
	"testing"

	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

func TestCursorToggle(t *testing.T) {
	w := ecs.NewWorld()
	cs := NewCursorSystem()

	steps := []struct {
		escape   bool
		captured bool
	}{
		{false, true},
		{true, false},
		{false, false},
		{true, true},
	}
	// Missing state starts captured.
	for i, step := range steps {
		PublishInput(w, component.InputSnapshot{EscapeJustPressed: step.escape})
		cs.Update(w)
		cursor, ok := ecs.Resource[component.CursorState](w)
		captured := !ok || cursor.Captured
		if captured != step.captured {
			t.Fatalf("step %d: expected captured=%v, got %v", i, step.captured, captured)
		}
	}
	if n := countEvents(w.Events().Drain(), ecs.EventCursorToggled); n != 2 {
		t.Fatalf("expected 2 toggle events, got %d", n)
	}
}
