package ecs

// EventKind identifies event types.
type EventKind string

const (
	// EventFocusUnbound fires when the camera focus stops resolving.
	EventFocusUnbound EventKind = "focus_unbound"
	// EventFocusBound fires when a previously unbound focus resolves again.
	EventFocusBound EventKind = "focus_bound"
	// EventCameraCardinality fires when zero or several main cameras exist.
	EventCameraCardinality EventKind = "camera_cardinality"
	// EventCursorToggled fires when the cursor capture state flips.
	EventCursorToggled EventKind = "cursor_toggled"
	// EventTuningReloaded fires when prefab tuning is reapplied.
	EventTuningReloaded EventKind = "tuning_reloaded"
)

// Event is a generic ECS event payload.
type Event struct {
	Kind   EventKind
	Entity Entity
	Data   any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
