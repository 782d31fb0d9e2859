package main

import (
	"math"
	"testing"
)

func near(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestSimulateIdleSettles(t *testing.T) {
	res, err := simulate(options{script: "idle", frames: 180, dt: 1.0 / 60}, -9.81)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if res.Frames != 180 {
		t.Fatalf("expected 180 frames, got %d", res.Frames)
	}
	p := res.Character.Translation
	if !near(p.X(), 0, 1e-3) || !near(p.Z(), 0, 1e-3) {
		t.Fatalf("idle character drifted to %v", p)
	}
	// Ground cylinder centered at y=-1 with height 1; capsule bottom sits at
	// the body origin.
	if !near(p.Y(), -0.5, 1e-3) {
		t.Fatalf("expected character resting at y=-0.5, got %v", p.Y())
	}
	c := res.Camera.Translation
	if !near(c.X(), 0, 1e-2) || !near(c.Y(), -0.5+1.8, 1e-2) || !near(c.Z(), 5, 1e-2) {
		t.Fatalf("camera did not settle behind the head: %v", c)
	}
}

func TestSimulateOrbitWalk(t *testing.T) {
	res, err := simulate(options{script: "orbit_walk", frames: 300, dt: 1.0 / 60}, -9.81)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if res.State.Yaw >= 0 {
		t.Fatalf("positive pan should decrease yaw, got %v", res.State.Yaw)
	}
	if res.State.Distance < res.State.MinDistance || res.State.Distance > res.State.MaxDistance {
		t.Fatalf("distance %v outside [%v, %v]", res.State.Distance, res.State.MinDistance, res.State.MaxDistance)
	}
	if res.State.Pitch > 1 || res.State.Pitch < -1 {
		t.Fatalf("pitch %v outside limit", res.State.Pitch)
	}
	if res.Character.Translation.Z() >= 0 {
		t.Fatalf("walking forward from the start should move toward -Z, got %v", res.Character.Translation)
	}
}

func TestSimulateRejectsBadOptions(t *testing.T) {
	cases := []struct {
		name string
		opts options
	}{
		{"zero_dt", options{script: "idle", frames: 1, dt: 0}},
		{"negative_frames", options{script: "idle", frames: -1, dt: 0.01}},
		{"missing_script", options{script: "does_not_exist", frames: 1, dt: 0.01}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := simulate(c.opts, -9.81); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
