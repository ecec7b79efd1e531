package behavior

import (
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/gamemath"
)

// Patrol loops over the actor's waypoints, dwelling at each. With no
// waypoints it walks back to spawn and stands there.
type Patrol struct {
	actor   Patroller
	move    mover
	index   int
	wait    float64
	waiting bool
	home    bool // No route: heading to or standing at spawn
}

func NewPatrol(a Patroller) *Patrol {
	return &Patrol{actor: a}
}

func (s *Patrol) Kind() Kind { return KindPatrol }

// Waiting reports whether the actor is dwelling at a patrol point.
func (s *Patrol) Waiting() bool { return s.waiting }

func (s *Patrol) Enter() {
	s.waiting = false
	points := s.actor.Waypoints()
	if len(points) == 0 {
		s.home = true
		s.move.moveTo(s.actor.Spawn(), s.actor.Tuning().PatrolSpeed)
		return
	}
	s.home = false
	s.index = nearest(points, PositionOf(s.actor))
	s.move.moveTo(points[s.index], s.actor.Tuning().PatrolSpeed)
}

func (s *Patrol) Update() {
	nav := s.actor.Navigator()
	tuning := s.actor.Tuning()

	if s.waiting {
		s.wait -= s.actor.DeltaTime()
		if s.wait <= 0 {
			s.waiting = false
			s.next()
		}
		return
	}

	s.move.update(nav, s.actor.DeltaTime())
	if !s.move.arrived(nav, tuning.ArriveDistance) {
		return
	}

	s.move.stop(nav)
	if s.home {
		return
	}
	s.waiting = true
	s.wait = tuning.WaitTime
}

func (s *Patrol) Exit() {
	s.move.stop(s.actor.Navigator())
	s.waiting = false
}

func (s *Patrol) next() {
	points := s.actor.Waypoints()
	if len(points) == 0 {
		s.home = true
		s.move.moveTo(s.actor.Spawn(), s.actor.Tuning().PatrolSpeed)
		return
	}
	s.index = (s.index + 1) % len(points)
	s.move.moveTo(points[s.index], s.actor.Tuning().PatrolSpeed)
}

func nearest(points []dmath.Vec2, from dmath.Vec2) int {
	best, bestDist := 0, -1.0
	for i, p := range points {
		d := gamemath.Distance(p, from)
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
