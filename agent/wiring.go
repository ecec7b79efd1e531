package agent

import (
	"github.com/automoto/kradylechka/behavior"
	"github.com/automoto/kradylechka/fsm"
	"github.com/automoto/kradylechka/logging"
)

// buildGuard wires the guard and cashier machine:
//
//	any        -> Distracted   Distract accepted
//	any        -> Chase        alerted
//	Idle       -> Investigate  score >= Mid
//	Idle       -> Patrol       score >= Low
//	Patrol     -> Investigate  score >= Mid
//	Patrol     -> Idle         idles when calm and score < Low
//	Investigate-> Patrol       score < Mid
//	Chase      -> Investigate  alert cleared
//	Distracted -> start        lure expired
func (a *Agent) buildGuard() {
	idle := behavior.NewIdle(a)
	a.patrol = behavior.NewPatrol(a)
	investigate := behavior.NewInvestigate(a)
	chase := behavior.NewChase(a)
	distracted := behavior.NewDistracted(a)

	a.start = a.patrol
	if a.tuning.StartIdle {
		a.start = idle
	}
	m := fsm.New(a.start)

	m.AddAnyTransition(distracted, func() bool { return a.distractPending && !a.model.IsAlerted() })
	m.AddAnyTransition(chase, a.model.IsAlerted)

	atMid := func() bool { return a.model.Level() >= a.tuning.MidThreshold }
	belowMid := func() bool { return a.model.Level() < a.tuning.MidThreshold }

	m.AddTransition(idle, investigate, atMid)
	m.AddTransition(idle, a.patrol, func() bool { return a.model.Level() >= a.tuning.LowThreshold })
	m.AddTransition(a.patrol, investigate, atMid)
	m.AddTransition(a.patrol, idle, func() bool {
		return a.tuning.IdleWhenCalm && a.model.Level() < a.tuning.LowThreshold
	})
	m.AddTransition(investigate, a.patrol, belowMid)
	m.AddTransition(chase, investigate, func() bool { return !a.model.IsAlerted() })
	m.AddTransition(distracted, a.start, func() bool { return a.distractDone })

	m.OnChange(a.onStateChange)
	a.machine = m
}

// buildCustomer wires the customer machine. Theft reactions outrank lures
// and promos:
//
//	any    -> Report      witnessed, reports thefts, a guard exists
//	any    -> Flee        witnessed
//	any    -> Distracted  Distract accepted
//	any    -> Promo       promo announced
//	Report -> Flee        guard gone
//	Report -> start       handed over or timed out
//	Flee   -> start       flee expired
//	Promo  -> start       interest expired
//	Distracted -> start   lure expired
func (a *Agent) buildCustomer() {
	idle := behavior.NewIdle(a)
	a.patrol = behavior.NewPatrol(a)
	flee := behavior.NewFlee(a)
	report := behavior.NewReport(a)
	distracted := behavior.NewDistracted(a)
	a.promo = behavior.NewPromo(a)

	a.start = a.patrol
	if a.tuning.StartIdle {
		a.start = idle
	}
	m := fsm.New(a.start)

	m.AddAnyTransition(report, func() bool {
		return a.witnessPending && a.tuning.ReportsTheft && a.nearestGuard() != nil
	})
	m.AddAnyTransition(flee, func() bool { return a.witnessPending })
	m.AddAnyTransition(distracted, func() bool { return a.distractPending })
	m.AddAnyTransition(a.promo, func() bool { return a.promoPending })

	m.AddTransition(report, flee, func() bool { return !a.calmDone && a.nearestGuard() == nil })
	m.AddTransition(report, a.start, func() bool { return a.calmDone })
	m.AddTransition(flee, a.start, func() bool { return a.calmDone })
	m.AddTransition(a.promo, a.start, func() bool { return a.promoDone })
	m.AddTransition(distracted, a.start, func() bool { return a.distractDone })

	m.OnChange(a.onStateChange)
	a.machine = m
}

// onStateChange consumes the signal that caused the transition, then
// publishes the new kind.
func (a *Agent) onStateChange(from, to fsm.State) {
	prev := a.kind
	next := to.(behavior.State).Kind()

	switch prev {
	case behavior.KindDistracted:
		a.distractDone = false
	case behavior.KindFlee, behavior.KindReport:
		a.calmDone = false
	case behavior.KindPromo:
		a.promoDone = false
	}
	switch next {
	case behavior.KindDistracted, behavior.KindChase:
		a.distractPending = false
	case behavior.KindFlee, behavior.KindReport:
		a.witnessPending = false
	case behavior.KindPromo:
		a.promoPending = false
	}

	a.kind = next
	logging.NewEvent(a.logger.Debug()).Add(
		logging.AgentID(a.id),
		logging.AgentType(a.typeName),
		logging.FromKind(prev.String()),
		logging.ToKind(next.String()),
	).Msg("behavior changed")
	if h := a.hooks.OnKindChanged; h != nil {
		h(a, prev, next)
	}
}
