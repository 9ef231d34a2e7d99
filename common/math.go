package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ToPixels converts a physics length to pixels.
func ToPixels(v float64) float64 {
	return v * PhysicsScale
}

// ToPhysics converts a pixel length to physics units.
func ToPhysics(v float64) float64 {
	return v / PhysicsScale
}
