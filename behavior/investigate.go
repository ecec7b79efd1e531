package behavior

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/gamemath"
)

// Investigate walks to the last known position and looks around. Each time
// the countdown runs out without a new lead, suspicion is reduced.
type Investigate struct {
	actor     Actor
	move      mover
	dest      dmath.Vec2
	countdown float64
	arrived   bool
	sweep     *gween.Tween
	facing    dmath.Vec2
}

func NewInvestigate(a Actor) *Investigate {
	return &Investigate{actor: a}
}

func (s *Investigate) Kind() Kind { return KindInvestigate }

// Searching reports whether the actor has reached the spot and is looking around.
func (s *Investigate) Searching() bool { return s.arrived }

func (s *Investigate) Enter() {
	s.countdown = s.actor.Tuning().InvestigateTime
	s.goTo(s.lead())
}

func (s *Investigate) Update() {
	tuning := s.actor.Tuning()
	nav := s.actor.Navigator()
	dt := s.actor.DeltaTime()

	s.countdown -= dt
	if s.countdown <= 0 {
		s.actor.Suspicion().ReduceSuspicion(tuning.GiveUpReduction)
		s.countdown = tuning.InvestigateTime
	}

	// A fresh lead restarts the search
	if lead := s.lead(); gamemath.Distance(lead, s.dest) > tuning.ArriveDistance {
		s.goTo(lead)
	}

	if !s.arrived {
		s.move.update(nav, dt)
		if !s.move.arrived(nav, tuning.ArriveDistance) {
			return
		}
		s.arrived = true
		s.move.stop(nav)
		if nav != nil {
			s.facing = nav.Forward()
		}
		if gamemath.IsZero(s.facing) {
			s.facing = dmath.Vec2{X: 1}
		}
		s.sweep = gween.New(0, 1, float32(tuning.InvestigateDwell), ease.InOutSine)
		return
	}

	if s.sweep == nil {
		return
	}
	phase, done := s.sweep.Update(float32(dt))
	angle := tuning.LookAroundAngle * math.Sin(2*math.Pi*float64(phase))
	if nav != nil {
		nav.Face(gamemath.Rotate(s.facing, angle))
	}
	if done {
		// Look again until the countdown gives up on this spot
		s.sweep.Reset()
	}
}

func (s *Investigate) Exit() {
	s.move.stop(s.actor.Navigator())
	s.arrived = false
	s.sweep = nil
}

func (s *Investigate) lead() dmath.Vec2 {
	if p, ok := s.actor.Suspicion().LastKnown(); ok {
		return p
	}
	return PositionOf(s.actor)
}

func (s *Investigate) goTo(dest dmath.Vec2) {
	s.dest = dest
	s.arrived = false
	s.sweep = nil
	s.move.moveTo(dest, s.actor.Tuning().InvestigateSpeed)
}
