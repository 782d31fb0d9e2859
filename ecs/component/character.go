package component

// Character tunes the motion controller for one controllable body.
type Character struct {
	LateralSpeed        float32
	LateralAcceleration float32
	// RotationSpeed drives facing only when FaceCamera is set.
	RotationSpeed float32
	// Height offsets the head point above the body origin.
	Height float32
	// FaceCamera turns the body to face away from the camera. Off by default.
	FaceCamera bool
}

func DefaultCharacter() Character {
	return Character{
		LateralSpeed:        10,
		LateralAcceleration: 10,
		RotationSpeed:       10,
		Height:              1.8,
	}
}

var CharacterComponent = NewComponent[Character]()
