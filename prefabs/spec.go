package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Vec3Spec struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

type TransformSpec struct {
	Position Vec3Spec `yaml:"position"`
	Yaw      float32  `yaml:"yaw"`
}

type Vec2Spec struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// CoefficientSpec is a friction or restitution value. Combine is one of
// average, min, multiply, max.
type CoefficientSpec struct {
	Value   float64 `yaml:"value"`
	Combine string  `yaml:"combine"`
}

type ColliderSpec struct {
	Shape       string          `yaml:"shape"`
	Radius      float32         `yaml:"radius"`
	Height      float32         `yaml:"height"`
	A           Vec3Spec        `yaml:"a"`
	B           Vec3Spec        `yaml:"b"`
	Friction    CoefficientSpec `yaml:"friction"`
	Restitution CoefficientSpec `yaml:"restitution"`
}

type BodySpec struct {
	Kind         string   `yaml:"kind"`
	Mass         float64  `yaml:"mass"`
	GravityScale float64  `yaml:"gravity_scale"`
	LockRotation []string `yaml:"lock_rotation"`
}

type CameraSpec struct {
	Name            string        `yaml:"name"`
	Transform       TransformSpec `yaml:"transform"`
	Yaw             float32       `yaml:"yaw"`
	Pitch           float32       `yaml:"pitch"`
	Distance        float32       `yaml:"distance"`
	MinDistance     float32       `yaml:"min_distance"`
	MaxDistance     float32       `yaml:"max_distance"`
	PanSensitivity  Vec2Spec      `yaml:"pan_sensitivity"`
	ZoomSensitivity float32       `yaml:"zoom_sensitivity"`
	FocusSpeed      float32       `yaml:"focus_speed"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CharacterSpec struct {
	Name                string        `yaml:"name"`
	LateralSpeed        float32       `yaml:"lateral_speed"`
	LateralAcceleration float32       `yaml:"lateral_acceleration"`
	RotationSpeed       float32       `yaml:"rotation_speed"`
	Height              float32       `yaml:"height"`
	FaceCamera          bool          `yaml:"face_camera"`
	Transform           TransformSpec `yaml:"transform"`
	Body                BodySpec      `yaml:"body"`
	Collider            ColliderSpec  `yaml:"collider"`
}

func LoadCharacterSpec() (*CharacterSpec, error) {
	spec, err := LoadSpec[CharacterSpec]("character.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type GroundSpec struct {
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
	Body      BodySpec      `yaml:"body"`
	Collider  ColliderSpec  `yaml:"collider"`
}

func LoadGroundSpec() (*GroundSpec, error) {
	spec, err := LoadSpec[GroundSpec]("ground.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// SimulationSpec drives the headless runner.
type SimulationSpec struct {
	Dt       float32 `yaml:"dt"`
	Frames   int     `yaml:"frames"`
	Script   string  `yaml:"script"`
	LogEvery uint64  `yaml:"log_every"`
	Gravity  float64 `yaml:"gravity"`
}

func LoadSimulationSpec() (*SimulationSpec, error) {
	spec, err := LoadSpec[SimulationSpec]("simulation.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Dt <= 0 {
		return nil, fmt.Errorf("prefabs: simulation.yaml: dt must be positive, got %v", spec.Dt)
	}
	return &spec, nil
}
