package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the length below which vectors are treated as zero.
const Epsilon float32 = 1e-6

var (
	Up      = mgl32.Vec3{0, 1, 0}
	Forward = mgl32.Vec3{0, 0, -1}
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// LerpVec3 is unclamped, like Lerp.
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalizeOrZero returns v scaled to unit length, or the zero vector when v
// is too short to normalize. It never produces NaN.
func NormalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < Epsilon || math.IsInf(float64(l), 0) || math.IsNaN(float64(l)) {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// RotationFromYaw is a rotation of yaw radians about +Y.
func RotationFromYaw(yaw float32) mgl32.Quat {
	return mgl32.QuatRotate(yaw, Up)
}

// OrbitRotation composes yaw about Y, then pitch about X, no roll (YXZ order).
func OrbitRotation(yaw, pitch float32) mgl32.Quat {
	return mgl32.QuatRotate(yaw, Up).Mul(mgl32.QuatRotate(pitch, mgl32.Vec3{1, 0, 0}))
}

// YawOf returns the rotation about +Y that q applies to the +Z axis.
func YawOf(q mgl32.Quat) float32 {
	f := q.Rotate(mgl32.Vec3{0, 0, 1})
	return float32(math.Atan2(float64(f.X()), float64(f.Z())))
}

// LookRotation orients -Z from eye toward target with the given up hint.
// It reports false when eye and target coincide or the direction is
// parallel to up.
func LookRotation(eye, target, up mgl32.Vec3) (mgl32.Quat, bool) {
	back := eye.Sub(target)
	if back.Len() < Epsilon {
		return mgl32.QuatIdent(), false
	}
	back = back.Normalize()
	right := up.Cross(back)
	if right.Len() < Epsilon {
		return mgl32.QuatIdent(), false
	}
	right = right.Normalize()
	newUp := back.Cross(right)
	m := mgl32.Mat4{
		right.X(), right.Y(), right.Z(), 0,
		newUp.X(), newUp.Y(), newUp.Z(), 0,
		back.X(), back.Y(), back.Z(), 0,
		0, 0, 0, 1,
	}
	return mgl32.Mat4ToQuat(m).Normalize(), true
}

// WrapAngle maps a into (-pi, pi].
func WrapAngle(a float32) float32 {
	w := math.Remainder(float64(a), 2*math.Pi)
	if w <= -math.Pi {
		w += 2 * math.Pi
	}
	return float32(w)
}
