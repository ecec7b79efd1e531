package agent

import (
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/gamemath"
)

type fakeTarget struct {
	pos     dmath.Vec2
	noise   float64
	stealth bool
	bonus   float64
	dead    bool
}

func (f *fakeTarget) Position() dmath.Vec2  { return f.pos }
func (f *fakeTarget) NoiseLevel() float64   { return f.noise }
func (f *fakeTarget) StealthMode() bool     { return f.stealth }
func (f *fakeTarget) StealthBonus() float64 { return f.bonus }
func (f *fakeTarget) Alive() bool           { return !f.dead }

// fixedRoll always draws the same number; 0 makes every roll with a
// positive chance succeed.
type fixedRoll float64

func (f fixedRoll) Float64() float64 { return float64(f) }

type guardList struct {
	guards []*Agent
}

func (g *guardList) NearestGuard(from dmath.Vec2) *Agent {
	var best *Agent
	bestDist := 0.0
	for _, a := range g.guards {
		d := gamemath.Distance(from, a.Position())
		if best == nil || d < bestDist {
			best, bestDist = a, d
		}
	}
	return best
}

func vec(x, y float64) dmath.Vec2 {
	return dmath.Vec2{X: x, Y: y}
}
