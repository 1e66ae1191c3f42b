package gamemath

import "github.com/tanema/gween/ease"

// Vec3 is a position or velocity in world units, matching the f32 wire format.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Integrate advances pos by vel over dt seconds (explicit Euler).
func Integrate(pos, vel Vec3, dt float32) Vec3 {
	return pos.Add(vel.Scale(dt))
}

// Lerp blends from a to b by t in [0,1] using a linear ease over unit time.
func Lerp(a, b, t float32) float32 {
	return ease.Linear(t, a, b-a, 1)
}

// LerpVec3 blends each component of a toward b by t.
func LerpVec3(a, b Vec3, t float32) Vec3 {
	return Vec3{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t), Z: Lerp(a.Z, b.Z, t)}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

// ClampAxis limits a control axis to [-1, 1].
func ClampAxis(v float32) float32 {
	return Clamp(v, -1, 1)
}
