// Package gamemath holds the small vector helpers the behavior core shares.
// Positions are donburi math.Vec2 values on the shop floor plane.
package gamemath

import (
	"math"

	dmath "github.com/yohamta/donburi/features/math"
)

const epsilon = 1e-9

func Add(a, b dmath.Vec2) dmath.Vec2 {
	return dmath.Vec2{X: a.X + b.X, Y: a.Y + b.Y}
}

func Sub(a, b dmath.Vec2) dmath.Vec2 {
	return dmath.Vec2{X: a.X - b.X, Y: a.Y - b.Y}
}

func Scale(v dmath.Vec2, s float64) dmath.Vec2 {
	return dmath.Vec2{X: v.X * s, Y: v.Y * s}
}

func Dot(a, b dmath.Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

func Length(v dmath.Vec2) float64 {
	return math.Hypot(v.X, v.Y)
}

func Distance(a, b dmath.Vec2) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Normalize returns the unit vector of v, or the zero vector when v has no length.
func Normalize(v dmath.Vec2) dmath.Vec2 {
	l := Length(v)
	if l < epsilon {
		return dmath.Vec2{}
	}
	return dmath.Vec2{X: v.X / l, Y: v.Y / l}
}

func IsZero(v dmath.Vec2) bool {
	return math.Abs(v.X) < epsilon && math.Abs(v.Y) < epsilon
}

// AngleBetween returns the unsigned angle between a and b in degrees.
// Either vector being zero yields 0.
func AngleBetween(a, b dmath.Vec2) float64 {
	na, nb := Normalize(a), Normalize(b)
	if IsZero(na) || IsZero(nb) {
		return 0
	}
	cos := Clamp(Dot(na, nb), -1, 1)
	return math.Acos(cos) * 180 / math.Pi
}

// Rotate turns v counter-clockwise by deg degrees.
func Rotate(v dmath.Vec2, deg float64) dmath.Vec2 {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return dmath.Vec2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Clamp restricts v to [lo, hi]. NaN clamps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
