package component

// MainCamera marks the single camera entity. The orbit state itself lives
// in the system.CameraState resource.
type MainCamera struct{}

var MainCameraComponent = NewComponent[MainCamera]()
