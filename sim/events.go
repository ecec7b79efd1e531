package sim

import "github.com/automoto/kradylechka/systems"

// Notifications for animation, audio and UI collaborators. They are queued
// during a tick and delivered at its end.
type (
	BehaviorChanged   = systems.BehaviorChanged
	SuspicionChanged  = systems.SuspicionChanged
	SuspiciousChanged = systems.SuspiciousChanged
	AlertChanged      = systems.AlertChanged
	Alerted           = systems.Alerted
	TargetLost        = systems.TargetLost
	Caught            = systems.Caught
	Witnessed         = systems.Witnessed
	EpisodeEnded      = systems.EpisodeEnded
)

func (s *Simulation) OnBehaviorChanged(fn func(BehaviorChanged)) {
	systems.OnBehaviorChanged(s.ecs, fn)
}

func (s *Simulation) OnSuspicionChanged(fn func(SuspicionChanged)) {
	systems.OnSuspicionChanged(s.ecs, fn)
}

func (s *Simulation) OnSuspiciousChanged(fn func(SuspiciousChanged)) {
	systems.OnSuspiciousChanged(s.ecs, fn)
}

func (s *Simulation) OnAlertChanged(fn func(AlertChanged)) { systems.OnAlertChanged(s.ecs, fn) }

func (s *Simulation) OnAlerted(fn func(Alerted))       { systems.OnAlerted(s.ecs, fn) }
func (s *Simulation) OnTargetLost(fn func(TargetLost)) { systems.OnTargetLost(s.ecs, fn) }
func (s *Simulation) OnCaught(fn func(Caught))         { systems.OnCaught(s.ecs, fn) }
func (s *Simulation) OnWitnessed(fn func(Witnessed))   { systems.OnWitnessed(s.ecs, fn) }

func (s *Simulation) OnEpisodeEnded(fn func(EpisodeEnded)) {
	systems.OnEpisodeEnded(s.ecs, fn)
}
