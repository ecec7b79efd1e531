package behavior

import (
	"github.com/automoto/kradylechka/gamemath"
)

// Report heads for the nearest guard and hands over the theft location.
// The guard is looked up every tick so a moving guard is tracked.
type Report struct {
	actor Witness
	move  mover
	timer float64
	done  bool
}

func NewReport(a Witness) *Report {
	return &Report{actor: a}
}

func (s *Report) Kind() Kind { return KindReport }

func (s *Report) Enter() {
	s.timer = s.actor.Tuning().ReportDuration
	s.done = false
	if guard := s.actor.NearestGuard(); guard != nil {
		s.move.moveTo(guard.Position(), s.actor.Tuning().FleeSpeed)
	}
}

func (s *Report) Update() {
	if s.done {
		return
	}
	tuning := s.actor.Tuning()
	nav := s.actor.Navigator()

	s.timer -= s.actor.DeltaTime()
	if s.timer <= 0 {
		s.finish()
		return
	}

	guard := s.actor.NearestGuard()
	if guard == nil {
		return
	}
	gpos := guard.Position()
	if gamemath.Distance(gpos, s.move.dest) > tuning.ArriveDistance || !s.move.active {
		s.move.moveTo(gpos, tuning.FleeSpeed)
	}
	s.move.update(nav, s.actor.DeltaTime())

	if gamemath.Distance(PositionOf(s.actor), gpos) > tuning.ReportDistance {
		return
	}
	if at, ok := s.actor.Incident(); ok {
		guard.ReceiveReport(at, tuning.ReportMagnitude)
	}
	s.finish()
}

func (s *Report) Exit() {
	s.move.stop(s.actor.Navigator())
}

func (s *Report) finish() {
	s.done = true
	s.move.stop(s.actor.Navigator())
	s.actor.CalmDown()
}
