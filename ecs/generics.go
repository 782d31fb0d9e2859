package ecs

import (
	"reflect"

	"github.com/milk9111/thirdperson/ecs/component"
)

func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	return w.AddComponent(e, handle.ID(), value)
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.RemoveComponent(e, handle.ID())
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.HasComponent(e, handle.ID())
}

// Get resolves a component through a possibly stale handle. It never
// panics: dead, placeholder and mismatched lookups all report false.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	var zero T
	value, ok := w.GetComponent(e, handle.ID())
	if !ok {
		return zero, false
	}
	cast, ok := value.(T)
	if !ok {
		return zero, false
	}
	return cast, true
}

// ForEach calls fn for every live entity that has the component, ascending by id.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, T)) {
	for _, e := range w.Query(handle.ID()) {
		if v, ok := Get(w, e, handle); ok {
			fn(e, v)
		}
	}
}

// SetResource installs a process-wide singleton of type T.
func SetResource[T any](w *World, value *T) {
	if w == nil || value == nil {
		return
	}
	w.resources[reflect.TypeFor[T]()] = value
}

// Resource returns the singleton of type T, if installed.
func Resource[T any](w *World) (*T, bool) {
	if w == nil {
		return nil, false
	}
	v, ok := w.resources[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	r, ok := v.(*T)
	return r, ok
}
