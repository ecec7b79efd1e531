package behavior

// Distracted walks to a lure and lingers there. Suspicion cannot grow while
// distracted.
type Distracted struct {
	actor Distractible
	move  mover
	timer float64
	done  bool
}

func NewDistracted(a Distractible) *Distracted {
	return &Distracted{actor: a}
}

func (s *Distracted) Kind() Kind { return KindDistracted }

func (s *Distracted) Enter() {
	tuning := s.actor.Tuning()
	s.timer = tuning.DistractionDuration * tuning.DistractionResistance
	s.done = false

	model := s.actor.Suspicion()
	model.SetSuppressed(true)
	if tuning.DistractionCalm > 0 {
		model.ReduceSuspicion(tuning.DistractionCalm)
	}

	if p, ok := s.actor.DistractionPoint(); ok {
		s.move.moveTo(p, tuning.PatrolSpeed)
	}
}

func (s *Distracted) Update() {
	if s.done {
		return
	}
	nav := s.actor.Navigator()
	s.move.update(nav, s.actor.DeltaTime())
	if s.move.arrived(nav, s.actor.Tuning().ArriveDistance) {
		s.move.stop(nav)
	}

	s.timer -= s.actor.DeltaTime()
	if s.timer <= 0 {
		s.done = true
		s.actor.EndDistraction()
	}
}

func (s *Distracted) Exit() {
	s.actor.Suspicion().SetSuppressed(false)
	s.move.stop(s.actor.Navigator())
	s.timer = 0
}
