package ecs

import "strconv"

// Entity is a generational handle into a World's entity arena. The zero
// value is the placeholder entity: it is never alive.
type Entity struct {
	ID  int
	Gen int
}

// Placeholder is the unbound entity handle.
var Placeholder = Entity{}

func (e Entity) String() string {
	return strconv.Itoa(e.ID) + "v" + strconv.Itoa(e.Gen)
}

// Valid reports whether the handle could refer to an entity. It does not
// check liveness; use World.IsAlive for that.
func (e Entity) Valid() bool {
	return e.ID > 0
}
