package systems

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/events"
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/agent"
	"github.com/automoto/kradylechka/behavior"
	"github.com/automoto/kradylechka/components"
	"github.com/automoto/kradylechka/logging"
)

// BehaviorChanged fires whenever an agent switches behavior state.
type BehaviorChanged struct {
	AgentID   string
	AgentType string
	From, To  behavior.Kind
	Tick      int
}

// Alerted fires when an agent crosses the alert threshold.
type Alerted struct {
	AgentID   string
	LastKnown dmath.Vec2
	Tick      int
}

// SuspicionChanged fires whenever an agent's score changes.
type SuspicionChanged struct {
	AgentID string
	Level   float64
	Tick    int
}

type SuspiciousChanged struct {
	AgentID    string
	Suspicious bool
	Tick       int
}

// AlertChanged fires when an agent's alert latches or clears.
type AlertChanged struct {
	AgentID string
	Alerted bool
	Tick    int
}

type TargetLost struct {
	AgentID string
	Tick    int
}

// Caught fires once per episode, for the agent that made the catch.
type Caught struct {
	AgentID string
	At      dmath.Vec2
	Tick    int
}

// Witnessed fires when a customer sees a theft.
type Witnessed struct {
	AgentID string
	At      dmath.Vec2
	Tick    int
}

// EpisodeEnded fires once, when the outcome stops being running.
type EpisodeEnded struct {
	Outcome components.Outcome
	AgentID string // Set for a catch
	Loot    []string
	Tick    int
}

var (
	BehaviorChangedEvent   = events.NewEventType[BehaviorChanged]()
	SuspicionChangedEvent  = events.NewEventType[SuspicionChanged]()
	SuspiciousChangedEvent = events.NewEventType[SuspiciousChanged]()
	AlertChangedEvent      = events.NewEventType[AlertChanged]()
	AlertedEvent           = events.NewEventType[Alerted]()
	TargetLostEvent        = events.NewEventType[TargetLost]()
	CaughtEvent            = events.NewEventType[Caught]()
	WitnessedEvent         = events.NewEventType[Witnessed]()
	EpisodeEndedEvent      = events.NewEventType[EpisodeEnded]()
)

// ProcessEvents delivers the notifications queued during the tick.
func ProcessEvents(e *ecs.ECS) {
	events.ProcessAllEvents(e.World)
}

// AgentHooks turns an agent's change notifications into world events. Catch
// resolution goes through CatchHandler instead.
func AgentHooks(e *ecs.ECS) agent.Hooks {
	w := e.World
	return agent.Hooks{
		OnKindChanged: func(a *agent.Agent, from, to behavior.Kind) {
			BehaviorChangedEvent.Publish(w, BehaviorChanged{
				AgentID:   a.ID(),
				AgentType: a.TypeName(),
				From:      from,
				To:        to,
				Tick:      currentTick(e),
			})
		},
		OnLevelChanged: func(a *agent.Agent, level float64) {
			SuspicionChangedEvent.Publish(w, SuspicionChanged{AgentID: a.ID(), Level: level, Tick: currentTick(e)})
		},
		OnSuspiciousChanged: func(a *agent.Agent, suspicious bool) {
			SuspiciousChangedEvent.Publish(w, SuspiciousChanged{AgentID: a.ID(), Suspicious: suspicious, Tick: currentTick(e)})
		},
		OnAlertedChanged: func(a *agent.Agent, alerted bool) {
			AlertChangedEvent.Publish(w, AlertChanged{AgentID: a.ID(), Alerted: alerted, Tick: currentTick(e)})
		},
		OnTargetDetected: func(a *agent.Agent, lastKnown dmath.Vec2) {
			logging.NewEvent(logger(e).Info()).Add(
				logging.AgentID(a.ID()),
				logging.AgentType(a.TypeName()),
				logging.Point("last_known", lastKnown.X, lastKnown.Y),
				logging.Tick(currentTick(e)),
			).Msg("target detected")
			AlertedEvent.Publish(w, Alerted{AgentID: a.ID(), LastKnown: lastKnown, Tick: currentTick(e)})
		},
		OnTargetLost: func(a *agent.Agent) {
			logging.NewEvent(logger(e).Info()).Add(
				logging.AgentID(a.ID()),
				logging.AgentType(a.TypeName()),
				logging.Tick(currentTick(e)),
			).Msg("target lost")
			TargetLostEvent.Publish(w, TargetLost{AgentID: a.ID(), Tick: currentTick(e)})
		},
		OnWitnessed: func(a *agent.Agent, at dmath.Vec2) {
			WitnessedEvent.Publish(w, Witnessed{AgentID: a.ID(), At: at, Tick: currentTick(e)})
		},
	}
}

// CatchHandler ends the episode on an agent's catch.
func CatchHandler(e *ecs.ECS) func(a *agent.Agent) {
	return func(a *agent.Agent) {
		resolveCatch(e, a)
	}
}

// resolveCatch ends the episode on the first catch and ignores the rest.
func resolveCatch(e *ecs.ECS, a *agent.Agent) {
	episode := GetEpisode(e)
	if episode == nil || episode.Outcome != components.OutcomeRunning {
		return
	}
	episode.Outcome = components.OutcomeCaught
	episode.CaughtBy = a.ID()

	var loot []string
	at := a.Position()
	if p := GetPlayer(e); p != nil {
		p.Caught = true
		at = p.Pos
		loot = append(loot, p.Loot...)
	}

	logging.NewEvent(logger(e).Info()).Add(
		logging.AgentID(a.ID()),
		logging.AgentType(a.TypeName()),
		logging.Point("at", at.X, at.Y),
		logging.Tick(episode.Tick),
	).Msg("caught")

	CaughtEvent.Publish(e.World, Caught{AgentID: a.ID(), At: at, Tick: episode.Tick})
	EpisodeEndedEvent.Publish(e.World, EpisodeEnded{
		Outcome: components.OutcomeCaught,
		AgentID: a.ID(),
		Loot:    loot,
		Tick:    episode.Tick,
	})
}

func subscribe[T any](w donburi.World, et *events.EventType[T], fn func(T)) {
	et.Subscribe(w, func(_ donburi.World, ev T) {
		fn(ev)
	})
}

// OnBehaviorChanged registers fn for every behavior change in the world.
func OnBehaviorChanged(e *ecs.ECS, fn func(BehaviorChanged)) {
	subscribe(e.World, BehaviorChangedEvent, fn)
}

func OnSuspicionChanged(e *ecs.ECS, fn func(SuspicionChanged)) {
	subscribe(e.World, SuspicionChangedEvent, fn)
}

func OnSuspiciousChanged(e *ecs.ECS, fn func(SuspiciousChanged)) {
	subscribe(e.World, SuspiciousChangedEvent, fn)
}

func OnAlertChanged(e *ecs.ECS, fn func(AlertChanged)) { subscribe(e.World, AlertChangedEvent, fn) }

func OnAlerted(e *ecs.ECS, fn func(Alerted))       { subscribe(e.World, AlertedEvent, fn) }
func OnTargetLost(e *ecs.ECS, fn func(TargetLost)) { subscribe(e.World, TargetLostEvent, fn) }
func OnCaught(e *ecs.ECS, fn func(Caught))         { subscribe(e.World, CaughtEvent, fn) }
func OnWitnessed(e *ecs.ECS, fn func(Witnessed))   { subscribe(e.World, WitnessedEvent, fn) }

func OnEpisodeEnded(e *ecs.ECS, fn func(EpisodeEnded)) {
	subscribe(e.World, EpisodeEndedEvent, fn)
}
