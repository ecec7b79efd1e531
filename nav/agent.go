package nav

import (
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/gamemath"
)

// Agent follows grid paths at the speed it was last asked for. Planning is
// synchronous, so a path is never pending after RequestMove returns.
type Agent struct {
	grid    *Grid
	pos     dmath.Vec2
	forward dmath.Vec2
	path    []dmath.Vec2
	speed   float64
	stopped bool
	ready   bool
}

// NewAgent places an agent at pos, snapping it onto the nearest walkable
// cell when pos is blocked. A nil grid moves in straight lines. The agent is
// not ready when no walkable cell is close enough.
func NewAgent(grid *Grid, pos dmath.Vec2) *Agent {
	a := &Agent{grid: grid, pos: pos, forward: dmath.Vec2{X: 1}, ready: true}
	if grid != nil && !grid.Walkable(pos) {
		snapped, ok := grid.Nearest(pos)
		a.ready = ok
		if ok {
			a.pos = snapped
		}
	}
	return a
}

func (a *Agent) Ready() bool             { return a.ready }
func (a *Agent) IsPathPending() bool     { return false }
func (a *Agent) SetStopped(stopped bool) { a.stopped = stopped }
func (a *Agent) Stopped() bool           { return a.stopped }
func (a *Agent) Position() dmath.Vec2    { return a.pos }
func (a *Agent) Forward() dmath.Vec2     { return a.forward }
func (a *Agent) Speed() float64          { return a.speed }
func (a *Agent) Path() []dmath.Vec2      { return append([]dmath.Vec2(nil), a.path...) }

// Face turns the agent toward dir. A zero dir keeps the current facing.
func (a *Agent) Face(dir dmath.Vec2) {
	if n := gamemath.Normalize(dir); !gamemath.IsZero(n) {
		a.forward = n
	}
}

// RequestMove plans a route to dest. An unreachable dest clears the path so
// the agent stays where it is.
func (a *Agent) RequestMove(dest dmath.Vec2, speed float64) {
	a.speed = speed
	if !a.ready {
		return
	}
	if a.grid == nil {
		a.path = []dmath.Vec2{dest}
		return
	}
	a.path = a.grid.FindPath(a.pos, dest)
}

// RemainingDistance is the length of what is left of the path.
func (a *Agent) RemainingDistance() float64 {
	total := 0.0
	prev := a.pos
	for _, p := range a.path {
		total += gamemath.Distance(prev, p)
		prev = p
	}
	return total
}

// Warp moves the agent without walking and drops its path.
func (a *Agent) Warp(pos dmath.Vec2) {
	a.pos = pos
	a.path = nil
}

// Step advances along the path by speed*dt and turns to face the direction
// of travel.
func (a *Agent) Step(dt float64) {
	if a.stopped || !a.ready || len(a.path) == 0 || a.speed <= 0 || dt <= 0 {
		return
	}

	budget := a.speed * dt
	for budget > 0 && len(a.path) > 0 {
		next := a.path[0]
		to := gamemath.Sub(next, a.pos)
		dist := gamemath.Length(to)
		if dist > 0 {
			a.forward = gamemath.Normalize(to)
		}
		if dist <= budget {
			a.pos = next
			a.path = a.path[1:]
			budget -= dist
			continue
		}
		a.pos = gamemath.Add(a.pos, gamemath.Scale(a.forward, budget))
		budget = 0
	}
}
