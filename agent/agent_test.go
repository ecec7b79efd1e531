package agent

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/behavior"
	"github.com/automoto/kradylechka/bus"
	"github.com/automoto/kradylechka/gamemath"
	"github.com/automoto/kradylechka/logging"
	"github.com/automoto/kradylechka/nav"
	"github.com/automoto/kradylechka/tags"
	"github.com/automoto/kradylechka/world"
)

const dt = 0.5

func newGuard(opts Options) *Agent {
	if opts.TypeName == "" {
		opts.TypeName = "Guard"
	}
	return New(opts)
}

func newCustomer(b *bus.Bus, pos dmath.Vec2, registry Registry) (*Agent, *nav.Agent) {
	n := nav.NewAgent(nil, pos)
	return New(Options{
		TypeName:  "Customer",
		Spawn:     pos,
		Navigator: n,
		Bus:       b,
		Registry:  registry,
	}), n
}

func spyOn(b *bus.Bus, c bus.Category) *[]bus.Event {
	var seen []bus.Event
	b.Subscribe(func(e bus.Event) {
		if e.Category == c {
			seen = append(seen, e)
		}
	})
	return &seen
}

func TestNewAssignsIDAndStartState(t *testing.T) {
	guard := newGuard(Options{})
	cashier := New(Options{TypeName: "Cashier", ID: "till-1"})

	assert.NotEmpty(t, guard.ID())
	assert.Equal(t, behavior.KindPatrol, guard.Kind())
	assert.Equal(t, "till-1", cashier.ID())
	assert.Equal(t, behavior.KindIdle, cashier.Kind())
	assert.Equal(t, 0.8, guard.Thresholds().Alert)
}

func TestUnknownTypeFallsBackWithWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: "warn", Format: "json", Output: &buf})

	a := New(Options{TypeName: "Janitor", Logger: logger})

	assert.Equal(t, "Guard", a.TypeName())
	assert.Contains(t, buf.String(), "unknown agent type")
	assert.Contains(t, buf.String(), `"requested_type":"Janitor"`)
}

func TestDistractRejectedMidChase(t *testing.T) {
	a := newGuard(Options{})
	a.AddSuspicion(0.9, vec(3, 0))
	a.Tick(dt)
	require.Equal(t, behavior.KindChase, a.Kind())
	require.True(t, a.IsAlerted())

	assert.False(t, a.Distract(vec(1, 1)))
	a.Tick(dt)
	assert.Equal(t, behavior.KindChase, a.Kind())
}

func TestDistractRunsItsCourse(t *testing.T) {
	a := newGuard(Options{})

	require.True(t, a.Distract(vec(2, 2)))
	assert.False(t, a.Distract(vec(3, 3)), "already queued")

	a.Tick(dt)
	require.Equal(t, behavior.KindDistracted, a.Kind())
	assert.False(t, a.Distract(vec(3, 3)), "already distracted")

	a.AddSuspicion(0.5, vec(1, 1))
	assert.Zero(t, a.Level(), "growth suppressed")

	for i := 0; i < 5; i++ {
		a.Tick(dt)
	}
	assert.Equal(t, behavior.KindDistracted, a.Kind())
	a.Tick(dt)
	assert.Equal(t, behavior.KindPatrol, a.Kind())

	assert.True(t, a.Distract(vec(2, 2)), "accepted again once over")
}

func TestBandsDriveGuardStates(t *testing.T) {
	a := newGuard(Options{})
	var kinds []behavior.Kind
	a.SetHooks(Hooks{OnKindChanged: func(_ *Agent, _, to behavior.Kind) {
		kinds = append(kinds, to)
	}})

	a.AddSuspicion(0.6, vec(5, 5))
	a.Tick(dt)
	a.AddSuspicion(0.3, vec(5, 5))
	a.Tick(dt)
	a.model.LoseTarget()
	a.Tick(dt)
	a.ReduceSuspicion(0.6)
	a.Tick(dt)

	assert.Equal(t, []behavior.Kind{
		behavior.KindInvestigate,
		behavior.KindChase,
		behavior.KindInvestigate,
		behavior.KindPatrol,
	}, kinds)
}

func TestLostTargetInvestigatesDespiteResidualScore(t *testing.T) {
	a := newGuard(Options{})
	var detected int
	a.SetHooks(Hooks{OnTargetDetected: func(*Agent, dmath.Vec2) { detected++ }})

	a.AddSuspicion(0.6, vec(5, 5))
	a.Tick(dt)
	a.AddSuspicion(0.35, vec(5, 5))
	a.Tick(dt)
	require.Equal(t, behavior.KindChase, a.Kind())

	a.model.LoseTarget()
	a.AddSuspicion(0.02, vec(5, 5))
	a.AddSuspicion(0, vec(5, 5))
	a.Tick(dt)

	assert.False(t, a.IsAlerted())
	assert.Equal(t, 1, detected)
	assert.Equal(t, behavior.KindInvestigate, a.Kind())
}

func TestCatchHandlerSurvivesSetHooks(t *testing.T) {
	target := &fakeTarget{pos: vec(1, 0)}
	var resolved, hooked int
	a := newGuard(Options{
		Navigator: nav.NewAgent(nil, vec(0, 0)),
		Target:    target,
		Rand:      fixedRoll(0),
		OnCatch:   func(*Agent) { resolved++ },
	})
	a.SetHooks(Hooks{OnCaught: func(*Agent) { hooked++ }})

	a.AddSuspicion(0.9, vec(1, 0))
	a.Tick(dt)

	assert.Equal(t, 1, resolved)
	assert.Equal(t, 1, hooked)
}

func TestCashierIdlesWhenCalm(t *testing.T) {
	a := New(Options{TypeName: "Cashier"})

	a.AddSuspicion(0.3, vec(1, 1))
	a.Tick(dt)
	require.Equal(t, behavior.KindPatrol, a.Kind())

	a.ReduceSuspicion(0.3)
	a.Tick(dt)
	assert.Equal(t, behavior.KindIdle, a.Kind())
}

func TestBusFanOutReachesEveryOtherGuardInRange(t *testing.T) {
	b := bus.New()
	var updates int
	hooks := Hooks{OnLevelChanged: func(*Agent, float64) { updates++ }}

	guards := make([]*Agent, 4)
	for i := range guards {
		guards[i] = newGuard(Options{Bus: b, Hooks: hooks})
	}
	// Beyond the 20m listen radius
	far := []*Agent{
		newGuard(Options{Bus: b, Hooks: hooks, Spawn: vec(25, 0)}),
		newGuard(Options{Bus: b, Hooks: hooks, Spawn: vec(0, -40)}),
	}

	b.Publish(bus.Event{Magnitude: 50, Category: bus.LoudNoise, Source: guards[0].ID()})

	assert.Equal(t, 3, updates)
	assert.Zero(t, guards[0].Level())
	for _, g := range guards[1:] {
		assert.InDelta(t, 0.3, g.Level(), 1e-9)
		lk, ok := g.LastKnown()
		assert.True(t, ok)
		assert.Equal(t, dmath.Vec2{}, lk)
	}
	for _, g := range far {
		assert.Zero(t, g.Level())
		_, ok := g.LastKnown()
		assert.False(t, ok)
	}
}

func TestTheftNeedsLineOfSight(t *testing.T) {
	space := world.NewSpace(40, 30, 2)
	space.AddRect("wall", gamemath.Rect{X: 5, Y: 0, W: 1, H: 10}, tags.ResolvSolid)
	b := bus.New()
	behind := newGuard(Options{Bus: b, World: space, Spawn: vec(0, 5)})
	open := newGuard(Options{Bus: b, World: space, Spawn: vec(20, 5)})

	b.Publish(bus.Event{Origin: vec(10, 5), Magnitude: 30, Category: bus.Theft})

	assert.Zero(t, behind.Level())
	assert.InDelta(t, 0.225, open.Level(), 1e-9)
}

func TestAlertedGuardCallsBackupOnce(t *testing.T) {
	b := bus.New()
	calls := spyOn(b, bus.BackupCall)
	first := newGuard(Options{Bus: b})
	second := newGuard(Options{Bus: b})

	first.AddSuspicion(0.9, vec(4, 0))
	first.AddSuspicion(0.1, vec(4, 0))

	require.Len(t, *calls, 1)
	assert.Equal(t, first.ID(), (*calls)[0].Source)
	assert.Equal(t, vec(4, 0), (*calls)[0].Origin)
	assert.False(t, second.IsAlerted())
	assert.InDelta(t, 0.6*(1-0.5*4.0/20), second.Level(), 1e-9)

	// Residual score has to drop below the alert threshold first
	first.model.LoseTarget()
	first.AddSuspicion(0.1, vec(30, 0))
	require.Len(t, *calls, 1)

	first.ReduceSuspicion(0.5)
	first.AddSuspicion(0.4, vec(30, 0))
	require.Len(t, *calls, 2, "a fresh alert radios again")
	assert.Equal(t, vec(30, 0), (*calls)[1].Origin)
}

func TestCashierDoesNotCallBackup(t *testing.T) {
	b := bus.New()
	calls := spyOn(b, bus.BackupCall)
	cashier := New(Options{TypeName: "Cashier", Bus: b})

	cashier.AddSuspicion(1, vec(1, 1))

	assert.True(t, cashier.IsAlerted())
	assert.Empty(t, *calls)
}

func TestWitnessReRaisesTheftOnce(t *testing.T) {
	b := bus.New()
	thefts := spyOn(b, bus.Theft)
	customer, _ := newCustomer(b, vec(0, 0), nil)
	var witnessed int
	customer.SetHooks(Hooks{OnWitnessed: func(*Agent, dmath.Vec2) { witnessed++ }})

	b.Publish(bus.Event{Origin: vec(5, 0), Magnitude: 30, Category: bus.Theft})
	b.Publish(bus.Event{Origin: vec(6, 0), Magnitude: 30, Category: bus.Theft})

	require.Len(t, *thefts, 3)
	relay := (*thefts)[1]
	assert.Equal(t, customer.ID(), relay.Source)
	assert.Equal(t, 75.0, relay.Magnitude)
	assert.Equal(t, vec(5, 0), relay.Origin)
	assert.Equal(t, 1, witnessed)
	assert.Zero(t, customer.Level(), "customers hold no suspicion")
}

func TestCustomerIgnoresTheftOutOfView(t *testing.T) {
	b := bus.New()
	thefts := spyOn(b, bus.Theft)
	customer, _ := newCustomer(b, vec(0, 0), nil)

	b.Publish(bus.Event{Origin: vec(-5, 0), Magnitude: 30, Category: bus.Theft})
	b.Publish(bus.Event{Origin: vec(30, 0), Magnitude: 30, Category: bus.Theft})
	b.Publish(bus.Event{Origin: vec(5, 0), Magnitude: 30, Category: bus.LoudNoise})
	customer.Tick(dt)

	assert.Len(t, *thefts, 2)
	assert.Equal(t, behavior.KindPatrol, customer.Kind())
}

func TestWitnessFleesWithoutGuards(t *testing.T) {
	b := bus.New()
	customer, _ := newCustomer(b, vec(0, 0), &guardList{})

	b.Publish(bus.Event{Origin: vec(5, 0), Magnitude: 30, Category: bus.Theft})
	customer.Tick(dt)

	assert.Equal(t, behavior.KindFlee, customer.Kind())
	incident, ok := customer.Incident()
	assert.True(t, ok)
	assert.Equal(t, vec(5, 0), incident)
}

func TestReportDegradesToFleeWhenGuardLeaves(t *testing.T) {
	b := bus.New()
	guard := newGuard(Options{Spawn: vec(20, 0)})
	registry := &guardList{guards: []*Agent{guard}}
	customer, _ := newCustomer(b, vec(0, 0), registry)

	b.Publish(bus.Event{Origin: vec(5, 0), Magnitude: 30, Category: bus.Theft})
	customer.Tick(dt)
	require.Equal(t, behavior.KindReport, customer.Kind())

	registry.guards = nil
	customer.Tick(dt)
	assert.Equal(t, behavior.KindFlee, customer.Kind())
}

func TestReportHandsOverToGuard(t *testing.T) {
	b := bus.New()
	guard := newGuard(Options{Spawn: vec(4, 0)})
	customer, walker := newCustomer(b, vec(0, 0), &guardList{guards: []*Agent{guard}})
	walker.Face(vec(-1, 0))

	b.Publish(bus.Event{Origin: vec(-5, 0), Magnitude: 30, Category: bus.Theft})
	customer.Tick(dt)
	require.Equal(t, behavior.KindReport, customer.Kind())
	walker.Step(dt)
	assert.Equal(t, vec(2, 0), walker.Position())

	customer.Tick(dt)
	assert.InDelta(t, 0.5, guard.Level(), 1e-9)
	lk, ok := guard.LastKnown()
	require.True(t, ok)
	assert.Equal(t, vec(-5, 0), lk)

	customer.Tick(dt)
	assert.Equal(t, behavior.KindPatrol, customer.Kind())
}

func TestPromo(t *testing.T) {
	customer, _ := newCustomer(nil, vec(0, 0), nil)
	guard := newGuard(Options{})

	assert.False(t, guard.Promo(vec(3, 3)))
	require.True(t, customer.Promo(vec(3, 3)))
	customer.Tick(dt)
	assert.Equal(t, behavior.KindPromo, customer.Kind())
	assert.False(t, customer.Promo(vec(4, 4)), "already at a promo")
}

func TestWitnessPreemptsPromo(t *testing.T) {
	b := bus.New()
	customer, _ := newCustomer(b, vec(0, 0), nil)
	require.True(t, customer.Promo(vec(3, 0)))
	customer.Tick(dt)

	b.Publish(bus.Event{Origin: vec(5, 0), Magnitude: 30, Category: bus.Theft})
	customer.Tick(dt)

	assert.Equal(t, behavior.KindFlee, customer.Kind())
}

func TestCustomerBlocksVisionWhileWaiting(t *testing.T) {
	n := nav.NewAgent(nil, vec(1, 1))
	customer := New(Options{
		TypeName:  "Customer",
		Spawn:     vec(1, 1),
		Waypoints: []dmath.Vec2{vec(1, 1), vec(8, 1)},
		Navigator: n,
	})
	guard := newGuard(Options{Navigator: nav.NewAgent(nil, vec(0, 0))})

	assert.False(t, customer.IsBlockingVision())
	customer.Tick(dt)
	assert.True(t, customer.IsBlockingVision())

	for i := 0; i < 4; i++ {
		customer.Tick(dt)
	}
	assert.False(t, customer.IsBlockingVision(), "walking to the next stop")
	assert.False(t, guard.IsBlockingVision())
}

func TestSightGrowsSuspicionAndCatchResets(t *testing.T) {
	target := &fakeTarget{pos: vec(1, 0)}
	var caught int
	a := newGuard(Options{
		Navigator: nav.NewAgent(nil, vec(0, 0)),
		Target:    target,
		Rand:      fixedRoll(0),
		Hooks:     Hooks{OnCaught: func(*Agent) { caught++ }},
	})

	a.Tick(dt)
	assert.InDelta(t, 0.1-0.1*dt, a.Level(), 1e-9, "one sighting less one tick of decay")
	lk, _ := a.LastKnown()
	assert.Equal(t, vec(1, 0), lk)

	a.AddSuspicion(0.8, vec(1, 0))
	require.True(t, a.IsAlerted())
	a.Tick(dt)

	assert.Equal(t, 1, caught)
	assert.False(t, a.IsAlerted())
	assert.Zero(t, a.Level())
	assert.Equal(t, behavior.KindPatrol, a.Kind())

	a.Tick(dt)
	assert.Equal(t, 1, caught)
}

func TestTargetBehindIsHeard(t *testing.T) {
	target := &fakeTarget{pos: vec(-5, 0), noise: 1}
	var levels []float64
	a := newGuard(Options{
		Navigator: nav.NewAgent(nil, vec(0, 0)),
		Target:    target,
		Rand:      fixedRoll(0),
		Hooks:     Hooks{OnLevelChanged: func(_ *Agent, l float64) { levels = append(levels, l) }},
	})

	a.Tick(dt)

	require.NotEmpty(t, levels)
	assert.InDelta(t, 0.2*0.5*dt, levels[0], 1e-9)
	lk, ok := a.LastKnown()
	assert.True(t, ok)
	assert.Equal(t, vec(-5, 0), lk)
}

func TestFailedRollAddsNothing(t *testing.T) {
	target := &fakeTarget{pos: vec(5, 0)}
	a := newGuard(Options{
		Navigator: nav.NewAgent(nil, vec(0, 0)),
		Target:    target,
		Rand:      fixedRoll(0.99),
	})

	a.Tick(dt)

	assert.Zero(t, a.Level())
}

func TestTargetLostAfterGrace(t *testing.T) {
	target := &fakeTarget{pos: vec(50, 0)}
	var lost int
	a := newGuard(Options{
		Navigator: nav.NewAgent(nil, vec(0, 0)),
		Target:    target,
		Hooks:     Hooks{OnTargetLost: func(*Agent) { lost++ }},
	})
	a.AddSuspicion(0.9, vec(3, 0))

	for i := 0; i < 5; i++ {
		a.Tick(dt)
	}
	require.True(t, a.IsAlerted())
	require.Equal(t, behavior.KindChase, a.Kind())

	a.Tick(dt)
	assert.False(t, a.IsAlerted())
	assert.Equal(t, 1, lost)
	assert.InDelta(t, 0.9-0.1*dt, a.Level(), 1e-9, "residual score kept, then decays")
	assert.Equal(t, behavior.KindInvestigate, a.Kind())
}

func TestCloseUnsubscribes(t *testing.T) {
	b := bus.New()
	a := newGuard(Options{Bus: b})
	require.Equal(t, 1, b.Len())

	a.Close()
	b.Publish(bus.Event{Magnitude: 50, Category: bus.LoudNoise})

	assert.Zero(t, b.Len())
	assert.Zero(t, a.Level())
	a.Close()
}

func TestResetClearsEverything(t *testing.T) {
	a := newGuard(Options{})
	a.AddSuspicion(0.95, vec(2, 2))
	a.Tick(dt)
	require.Equal(t, behavior.KindChase, a.Kind())

	a.Reset()

	assert.Zero(t, a.Level())
	assert.False(t, a.IsAlerted())
	_, ok := a.LastKnown()
	assert.False(t, ok)
	assert.Equal(t, behavior.KindPatrol, a.Kind())
}
