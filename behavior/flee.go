package behavior

import (
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/gamemath"
)

// Flee runs away from the incident for a fixed time, then calms down.
type Flee struct {
	actor Witness
	move  mover
	timer float64
	done  bool
}

func NewFlee(a Witness) *Flee {
	return &Flee{actor: a}
}

func (s *Flee) Kind() Kind { return KindFlee }

func (s *Flee) Enter() {
	tuning := s.actor.Tuning()
	s.timer = tuning.FleeDuration
	s.done = false
	s.move.rampTo(s.escapePoint(), tuning.PatrolSpeed, tuning.FleeSpeed, tuning.SpeedRampTime)
}

func (s *Flee) Update() {
	if s.done {
		return
	}
	s.timer -= s.actor.DeltaTime()
	s.move.update(s.actor.Navigator(), s.actor.DeltaTime())
	if s.timer <= 0 {
		s.done = true
		s.actor.CalmDown()
	}
}

func (s *Flee) Exit() {
	s.move.stop(s.actor.Navigator())
}

func (s *Flee) escapePoint() dmath.Vec2 {
	pos := PositionOf(s.actor)
	from, ok := s.actor.Incident()
	if !ok {
		from = pos
	}

	dir := gamemath.Normalize(gamemath.Sub(pos, from))
	if gamemath.IsZero(dir) {
		// Standing on the spot: run the way we are not facing
		if nav := s.actor.Navigator(); nav != nil {
			dir = gamemath.Scale(gamemath.Normalize(nav.Forward()), -1)
		}
		if gamemath.IsZero(dir) {
			dir = dmath.Vec2{X: -1}
		}
	}
	return gamemath.Add(pos, gamemath.Scale(dir, s.actor.Tuning().FleeDistance))
}
