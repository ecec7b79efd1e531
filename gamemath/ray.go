package gamemath

import (
	"math"

	dmath "github.com/yohamta/donburi/features/math"
)

// Rect is an axis-aligned box with its top-left corner at X, Y.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() dmath.Vec2 {
	return dmath.Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func (r Rect) Contains(p dmath.Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Overlaps reports whether r and o share interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// RaySegmentAABB intersects the segment origin + dir*t, t in [0, maxDist],
// with r using the slab method. dir must be normalized. It returns the entry
// distance along the ray; an origin inside r enters at 0.
func RaySegmentAABB(origin, dir dmath.Vec2, maxDist float64, r Rect) (float64, bool) {
	tMin, tMax := 0.0, maxDist

	slab := func(o, d, lo, hi float64) bool {
		if math.Abs(d) < epsilon {
			// Parallel: must already be within the slab
			return o >= lo && o <= hi
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		return tMin <= tMax
	}

	if !slab(origin.X, dir.X, r.X, r.X+r.W) {
		return 0, false
	}
	if !slab(origin.Y, dir.Y, r.Y, r.Y+r.H) {
		return 0, false
	}
	return tMin, true
}
