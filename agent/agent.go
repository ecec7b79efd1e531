// Package agent composes a state machine, a suspicion model, senses and a
// bus subscription into one guard, cashier or customer.
package agent

import (
	"github.com/felixgeelhaar/bolt/v3"
	"github.com/google/uuid"
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/behavior"
	"github.com/automoto/kradylechka/bus"
	"github.com/automoto/kradylechka/config"
	"github.com/automoto/kradylechka/fsm"
	"github.com/automoto/kradylechka/logging"
	"github.com/automoto/kradylechka/perception"
	"github.com/automoto/kradylechka/suspicion"
)

// Registry finds other agents. The simulation's ECS world implements it.
type Registry interface {
	NearestGuard(from dmath.Vec2) *Agent // Nil when no guard exists
}

// Hooks are the agent's change notifications. Every field is optional.
type Hooks struct {
	OnKindChanged       func(a *Agent, from, to behavior.Kind)
	OnLevelChanged      func(a *Agent, level float64)
	OnSuspiciousChanged func(a *Agent, suspicious bool)
	OnAlertedChanged    func(a *Agent, alerted bool)
	OnTargetDetected    func(a *Agent, lastKnown dmath.Vec2)
	OnTargetLost        func(a *Agent)
	OnCaught            func(a *Agent)
	OnWitnessed         func(a *Agent, at dmath.Vec2)
}

// Options configures a new agent. Only TypeName is required; the rest
// degrade gracefully when left empty.
type Options struct {
	ID        string // Generated when empty
	TypeName  string
	Spawn     dmath.Vec2
	Waypoints []dmath.Vec2

	Navigator behavior.Navigator
	Bus       *bus.Bus
	World     perception.Occluders
	Target    perception.Target
	Rand      perception.Roller
	Registry  Registry
	Logger    *bolt.Logger
	Hooks     Hooks
	OnCatch   func(a *Agent) // Resolves the catch; kept apart from Hooks
}

// Agent is one behaving entity.
type Agent struct {
	id       string
	typeName string
	tuning   config.AgentTypeConfig
	policy   Policy

	spawn     dmath.Vec2
	waypoints []dmath.Vec2
	nav       behavior.Navigator

	model   *suspicion.Model
	machine *fsm.Machine
	start   behavior.State
	kind    behavior.Kind
	patrol  *behavior.Patrol
	promo   *behavior.Promo

	bus      *bus.Bus
	sub      bus.Subscription
	world    perception.Occluders
	target   perception.Target
	rng      perception.Roller
	registry Registry
	logger   *bolt.Logger
	hooks    Hooks
	onCatch  func(a *Agent)

	dt float64

	// Sight
	inSight  bool
	sightPos dmath.Vec2
	unseen   float64

	// Signals read by transition guards
	distractPending bool
	distractPoint   dmath.Vec2
	distractDone    bool
	witnessed       bool
	witnessPending  bool
	incident        dmath.Vec2
	calmDone        bool
	promoPending    bool
	promoPoint      dmath.Vec2
	promoDone       bool
	caught          bool
	backupSent      bool
}

// New builds an agent and subscribes it to the bus. An unknown type name
// falls back to the default type.
func New(opts Options) *Agent {
	tuning, known := config.AgentType(opts.TypeName)
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	a := &Agent{
		id:        opts.ID,
		typeName:  tuning.Name,
		tuning:    tuning,
		policy:    DefaultPolicy(tuning),
		spawn:     opts.Spawn,
		waypoints: opts.Waypoints,
		nav:       opts.Navigator,
		bus:       opts.Bus,
		world:     opts.World,
		target:    opts.Target,
		rng:       opts.Rand,
		registry:  opts.Registry,
		logger:    logger,
		hooks:     opts.Hooks,
		onCatch:   opts.OnCatch,
	}
	if a.id == "" {
		a.id = uuid.NewString()
	}
	if !known {
		logging.NewEvent(logger.Warn()).Add(
			logging.AgentID(a.id),
			logging.Str("requested_type", opts.TypeName),
			logging.AgentType(tuning.Name),
		).Msg("unknown agent type, using default")
	}

	a.model = suspicion.New(suspicion.DefaultOptions())
	a.model.SetTarget(a.TargetPosition)
	a.model.SetHooks(a.suspicionHooks())

	if tuning.Role == config.RoleCustomer {
		a.buildCustomer()
	} else {
		a.buildGuard()
	}
	a.kind = a.start.Kind()

	if a.bus != nil {
		a.sub = a.bus.Subscribe(a.onEvent)
	}
	return a
}

func (a *Agent) ID() string                       { return a.id }
func (a *Agent) TypeName() string                 { return a.typeName }
func (a *Agent) Role() config.Role                { return a.tuning.Role }
func (a *Agent) Kind() behavior.Kind              { return a.kind }
func (a *Agent) Level() float64                   { return a.model.Level() }
func (a *Agent) IsAlerted() bool                  { return a.model.IsAlerted() }
func (a *Agent) IsSuspicious() bool               { return a.model.IsSuspicious() }
func (a *Agent) Thresholds() suspicion.Thresholds { return a.model.Thresholds() }

// LastKnown is where the target was last seen, heard or reported.
func (a *Agent) LastKnown() (dmath.Vec2, bool) {
	return a.model.LastKnown()
}

// Position is the navigator's position, or the spawn point without one.
func (a *Agent) Position() dmath.Vec2 {
	return behavior.PositionOf(a)
}

// IsBlockingVision reports whether the agent currently counts as a crowd
// body: a customer lingering at a patrol stop or standing at a promo.
func (a *Agent) IsBlockingVision() bool {
	if a.tuning.Role != config.RoleCustomer {
		return false
	}
	switch a.kind {
	case behavior.KindPatrol:
		return a.patrol.Waiting()
	case behavior.KindPromo:
		return a.promo.AtPromo()
	default:
		return false
	}
}

// SetHooks replaces the change notifications. The catch handler is not
// affected.
func (a *Agent) SetHooks(h Hooks) {
	a.hooks = h
}

// SetCatchHandler sets what happens when this agent catches the target.
func (a *Agent) SetCatchHandler(fn func(a *Agent)) {
	a.onCatch = fn
}

// SetNavigator attaches or replaces the movement backend.
func (a *Agent) SetNavigator(nav behavior.Navigator) {
	a.nav = nav
}

// Distract lures the agent to point. It is rejected while alerted or when
// a distraction is already running or queued.
func (a *Agent) Distract(point dmath.Vec2) bool {
	if a.model.IsAlerted() || a.kind == behavior.KindDistracted || a.distractPending {
		return false
	}
	a.distractPending = true
	a.distractPoint = point
	return true
}

// Promo sends a customer to a promo point. Guards decline, as do customers
// already reacting to a theft, a lure or another promo.
func (a *Agent) Promo(point dmath.Vec2) bool {
	if a.tuning.Role != config.RoleCustomer || a.witnessPending {
		return false
	}
	switch a.kind {
	case behavior.KindFlee, behavior.KindReport, behavior.KindDistracted, behavior.KindPromo:
		return false
	}
	a.promoPending = true
	a.promoPoint = point
	return true
}

// AddSuspicion raises suspicion from a stimulus at origin.
func (a *Agent) AddSuspicion(amount float64, origin dmath.Vec2) {
	a.model.AddSuspicionAt(amount, origin)
}

func (a *Agent) ReduceSuspicion(amount float64) {
	a.model.ReduceSuspicion(amount)
}

// ReceiveReport takes a witness report of a theft at pos. Magnitude uses the
// bus's 0-100 scale.
func (a *Agent) ReceiveReport(pos dmath.Vec2, magnitude float64) {
	if a.tuning.Role == config.RoleCustomer {
		return
	}
	amount := magnitude * config.Bus.MagnitudeScale
	logging.NewEvent(a.logger.Debug()).Add(
		logging.AgentID(a.id),
		logging.Point("at", pos.X, pos.Y),
		logging.Float("amount", amount),
	).Msg("theft reported")
	a.model.AddSuspicionAt(amount, pos)
}

// Tick runs one simulation step: senses, suspicion timers, then behavior.
func (a *Agent) Tick(dt float64) {
	a.dt = dt
	if a.tuning.Role != config.RoleCustomer {
		a.perceive(dt)
	}
	a.model.Tick(dt)
	a.machine.Tick()

	if a.caught {
		a.caught = false
		a.Reset()
	}
}

// Reset clears suspicion and every pending signal, and returns to the
// start state.
func (a *Agent) Reset() {
	a.model.Reset()
	a.inSight, a.unseen = false, 0
	a.distractPending, a.distractDone = false, false
	a.witnessed, a.witnessPending, a.calmDone = false, false, false
	a.promoPending, a.promoDone = false, false
	a.backupSent = false
	a.machine.SetState(a.start)
}

// Close unsubscribes from the bus and stops the navigator.
func (a *Agent) Close() {
	if a.bus != nil {
		a.bus.Unsubscribe(a.sub)
		a.bus = nil
	}
	if a.nav != nil {
		a.nav.SetStopped(true)
	}
}

func (a *Agent) observer() perception.Observer {
	obs := perception.Observer{
		Position: a.Position(),
		EyeOffset: dmath.Vec2{
			X: config.Perception.EyeOffsetX,
			Y: config.Perception.EyeOffsetY,
		},
		DetectionRange:     a.tuning.DetectionRange,
		FieldOfView:        a.tuning.FieldOfView,
		HearingRange:       a.tuning.HearingRange,
		HearingSensitivity: a.tuning.HearingSensitivity,
		Self:               a,
	}
	if a.nav != nil {
		obs.Forward = a.nav.Forward()
	}
	return obs
}

// perceive rolls sight and hearing against the target and tracks how long
// an alerted agent has gone without seeing it.
func (a *Agent) perceive(dt float64) {
	obs := a.observer()
	a.inSight = perception.CanPerceive(obs, a.target, a.world)

	if a.inSight {
		a.sightPos = a.target.Position()
		a.unseen = 0
		if perception.Roll(perception.DetectionChance(obs, a.target), a.rng) {
			a.model.AddSuspicionAt(a.tuning.GrowthRate*a.tuning.SeenScale*dt, a.sightPos)
		}
		if a.model.IsAlerted() {
			a.model.Refresh(a.sightPos)
		}
	} else if a.model.IsAlerted() {
		a.unseen += dt
		if a.unseen >= a.tuning.LoseSightGrace {
			a.unseen = 0
			a.model.LoseTarget()
		}
	} else {
		a.unseen = 0
	}

	if a.target == nil || !a.target.Alive() {
		return
	}
	strength := perception.HearingStrength(obs, a.target, a.target.NoiseLevel())
	if perception.Roll(strength, a.rng) {
		a.model.AddSuspicionAt(a.tuning.GrowthRate*a.tuning.HeardScale*dt, a.target.Position())
	}
}

func (a *Agent) onEvent(e bus.Event) {
	if e.Source == a.id {
		return
	}
	if a.tuning.Role == config.RoleCustomer {
		a.witness(e)
		return
	}

	amount, ok := a.policy.Amount(e, a.Position(), a.hasLineOfSight)
	if !ok {
		return
	}
	a.model.AddSuspicionAt(amount, e.Origin)
}

// witness turns a visible theft into a one-off reaction and passes the
// alarm on.
func (a *Agent) witness(e bus.Event) {
	if e.Category != bus.Theft || a.witnessed {
		return
	}
	if !perception.CanSeePoint(a.observer(), e.Origin, a.world) {
		return
	}

	a.witnessed, a.witnessPending = true, true
	a.incident = e.Origin
	logging.NewEvent(a.logger.Info()).Add(
		logging.AgentID(a.id),
		logging.AgentType(a.typeName),
		logging.Point("at", e.Origin.X, e.Origin.Y),
	).Msg("theft witnessed")
	if h := a.hooks.OnWitnessed; h != nil {
		h(a, e.Origin)
	}

	if a.bus != nil {
		a.bus.Publish(bus.Event{
			Origin:    e.Origin,
			Magnitude: a.tuning.WitnessMagnitude,
			Category:  bus.Theft,
			Source:    a.id,
		})
	}
}

func (a *Agent) hasLineOfSight(p dmath.Vec2) bool {
	return perception.HasLineOfSight(a.observer(), p, a.world)
}

func (a *Agent) suspicionHooks() suspicion.Hooks {
	return suspicion.Hooks{
		OnLevelChanged: func(level float64) {
			if h := a.hooks.OnLevelChanged; h != nil {
				h(a, level)
			}
		},
		OnSuspiciousChanged: func(suspicious bool) {
			if h := a.hooks.OnSuspiciousChanged; h != nil {
				h(a, suspicious)
			}
		},
		OnAlertedChanged: func(alerted bool) {
			if !alerted {
				a.backupSent = false
			}
			if h := a.hooks.OnAlertedChanged; h != nil {
				h(a, alerted)
			}
		},
		OnTargetDetected: func(lastKnown dmath.Vec2) {
			if h := a.hooks.OnTargetDetected; h != nil {
				h(a, lastKnown)
			}
			a.callBackup(lastKnown)
		},
		OnTargetLost: func() {
			a.unseen = 0
			if h := a.hooks.OnTargetLost; h != nil {
				h(a)
			}
		},
	}
}

// callBackup radios the other guards once per alert.
func (a *Agent) callBackup(at dmath.Vec2) {
	if !a.tuning.CallsBackup || a.backupSent || a.bus == nil {
		return
	}
	a.backupSent = true
	a.bus.Publish(bus.Event{
		Origin:    at,
		Magnitude: config.Bus.BackupMagnitude,
		Category:  bus.BackupCall,
		Source:    a.id,
	})
}
