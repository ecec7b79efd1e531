package behavior

import (
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/gamemath"
)

// Chase runs at the target while it is in sight, otherwise at its last known
// position. Reaching a living target while alerted resolves a catch once.
type Chase struct {
	actor  Pursuer
	move   mover
	caught bool
}

func NewChase(a Pursuer) *Chase {
	return &Chase{actor: a}
}

func (s *Chase) Kind() Kind { return KindChase }

func (s *Chase) Enter() {
	s.caught = false
	tuning := s.actor.Tuning()
	s.move.rampTo(s.destination(), tuning.PatrolSpeed, tuning.ChaseSpeed, tuning.SpeedRampTime)
}

func (s *Chase) Update() {
	if s.caught {
		return
	}
	tuning := s.actor.Tuning()
	nav := s.actor.Navigator()

	if dest := s.destination(); gamemath.Distance(dest, s.move.dest) > tuning.ArriveDistance || !s.move.active {
		s.move.retarget(dest)
	}
	s.move.update(nav, s.actor.DeltaTime())

	if !s.actor.Suspicion().IsAlerted() {
		return
	}
	target, ok := s.actor.TargetPosition()
	if !ok || gamemath.Distance(PositionOf(s.actor), target) > tuning.CatchDistance {
		return
	}
	s.caught = true
	s.move.stop(nav)
	s.actor.ResolveCatch()
}

func (s *Chase) Exit() {
	s.move.stop(s.actor.Navigator())
}

func (s *Chase) destination() dmath.Vec2 {
	if p, ok := s.actor.TargetInSight(); ok {
		return p
	}
	if p, ok := s.actor.Suspicion().LastKnown(); ok {
		return p
	}
	return PositionOf(s.actor)
}
