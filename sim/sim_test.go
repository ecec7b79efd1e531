package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/agent"
	"github.com/automoto/kradylechka/behavior"
	"github.com/automoto/kradylechka/leveldata"
)

func vec(x, y float64) dmath.Vec2 {
	return dmath.Vec2{X: x, Y: y}
}

// openShop is a wall-free floor with one item a step from the door. Every
// position sits on a nav cell center so nothing gets snapped.
func openShop(spawns ...leveldata.AgentSpawn) *leveldata.Level {
	return &leveldata.Level{
		Name:           "open",
		Width:          30,
		Height:         20,
		Items:          []leveldata.ItemSpawn{{Name: "watch", Pos: vec(3.25, 10.25), Value: 120}},
		Spawns:         spawns,
		PlayerSpawn:    vec(2.25, 10.25),
		HasPlayerSpawn: true,
	}
}

func guardAt(x, y float64) leveldata.AgentSpawn {
	return leveldata.AgentSpawn{Type: "Guard", Pos: vec(x, y)}
}

func customerAt(x, y float64) leveldata.AgentSpawn {
	return leveldata.AgentSpawn{Type: "Customer", Pos: vec(x, y)}
}

func TestNewSpawnsDemoShop(t *testing.T) {
	level, err := leveldata.LoadDemo()
	require.NoError(t, err)

	s := New(level, WithSeed(3))
	assert.Len(t, s.Agents(), 6)
	assert.Len(t, s.Customers(), 3)
	assert.Equal(t, 6, s.Bus().Len())
	require.NotNil(t, s.Player())

	for range 10 {
		s.Step()
	}
	assert.Equal(t, 10, s.Tick())
	assert.Equal(t, OutcomeRunning, s.Outcome())
}

func TestDespawnUnsubscribes(t *testing.T) {
	s := New(openShop(guardAt(10.25, 10.25), customerAt(15.25, 5.25)))
	require.Equal(t, 2, s.Bus().Len())

	guard := s.NearestGuard(vec(10, 10))
	require.NotNil(t, guard)
	require.NoError(t, s.Despawn(guard.ID()))

	assert.Equal(t, 1, s.Bus().Len())
	assert.Len(t, s.Agents(), 1)
	assert.Nil(t, s.NearestGuard(vec(10, 10)))
	_, ok := s.Agent(guard.ID())
	assert.False(t, ok)

	err := s.Despawn(guard.ID())
	assert.ErrorIs(t, err, ErrUnknownAgent)
}

func TestNearestGuardSkipsCustomers(t *testing.T) {
	s := New(openShop(guardAt(5.25, 5.25), guardAt(25.25, 5.25), customerAt(6.25, 5.25)))

	near := s.NearestGuard(vec(20, 5))
	require.NotNil(t, near)
	assert.Equal(t, vec(25.25, 5.25), near.Position())

	near = s.NearestGuard(vec(6.25, 5.25))
	require.NotNil(t, near)
	assert.Equal(t, vec(5.25, 5.25), near.Position())
}

func TestPromoReachesOnlyRegisteredCustomers(t *testing.T) {
	level := openShop(customerAt(10.25, 5.25), customerAt(20.25, 15.25), guardAt(25.25, 5.25))
	level.HasPlayerSpawn = false
	s := New(level)

	var changes []BehaviorChanged
	s.OnBehaviorChanged(func(e BehaviorChanged) {
		changes = append(changes, e)
	})

	customers := s.Customers()
	require.Len(t, customers, 2)
	gone, kept := customers[0], customers[1]
	require.NoError(t, s.Despawn(gone.ID()))

	assert.Equal(t, 1, s.AnnouncePromo(vec(15.25, 10.25)))
	s.Step()

	assert.Equal(t, behavior.KindPromo, kept.Kind())
	assert.Equal(t, behavior.KindPatrol, gone.Kind())
	guard := s.NearestGuard(vec(25, 5))
	require.NotNil(t, guard)
	assert.Equal(t, behavior.KindPatrol, guard.Kind())

	require.Len(t, changes, 1)
	assert.Equal(t, kept.ID(), changes[0].AgentID)
	assert.Equal(t, "Customer", changes[0].AgentType)
	assert.Equal(t, behavior.KindPatrol, changes[0].From)
	assert.Equal(t, behavior.KindPromo, changes[0].To)
}

func TestDistractReachesAgentsInRadius(t *testing.T) {
	s := New(openShop(guardAt(10.25, 10.25), guardAt(25.25, 10.25)))

	assert.Equal(t, 1, s.Distract(vec(11, 10), 3))
	s.Step()

	near := s.NearestGuard(vec(10, 10))
	far := s.NearestGuard(vec(25, 10))
	assert.Equal(t, behavior.KindDistracted, near.Kind())
	assert.Equal(t, behavior.KindPatrol, far.Kind())
}

func TestReportTheftReachesGuard(t *testing.T) {
	s := New(openShop(guardAt(8.25, 10.25)))
	guard := s.NearestGuard(vec(8, 10))
	require.NotNil(t, guard)

	require.True(t, s.ReportTheft("watch"))

	// 30 magnitude * 0.01 * (1 - 0.5 * 5/20)
	assert.InDelta(t, 0.2625, guard.Level(), 1e-9)
	assert.Equal(t, []string{"watch"}, s.Player().Loot)
	assert.False(t, s.ReportTheft("watch"), "already taken")
}

func TestReportTheftNeedsReach(t *testing.T) {
	level := openShop()
	level.Items[0].Pos = vec(20.25, 10.25)
	s := New(level)

	assert.False(t, s.ReportTheft("watch"))
	assert.False(t, s.ReportTheft("nothing"))
	assert.Empty(t, s.Player().Loot)
}

func TestEscapeWithLoot(t *testing.T) {
	s := New(openShop())

	var ended []EpisodeEnded
	s.OnEpisodeEnded(func(e EpisodeEnded) {
		ended = append(ended, e)
	})

	// Standing at the door without loot does not count
	assert.Equal(t, OutcomeRunning, s.Step())

	require.True(t, s.ReportTheft("watch"))
	assert.Equal(t, OutcomeEscaped, s.Step())

	require.Len(t, ended, 1)
	assert.Equal(t, OutcomeEscaped, ended[0].Outcome)
	assert.Equal(t, []string{"watch"}, ended[0].Loot)
	assert.Equal(t, 2, ended[0].Tick)
}

func TestCatchIsEmittedOnce(t *testing.T) {
	s := New(openShop(guardAt(3.25, 10.25), guardAt(3.25, 11.25)))

	var caught []Caught
	var ended []EpisodeEnded
	var alerted []Alerted
	s.OnCaught(func(e Caught) { caught = append(caught, e) })
	s.OnEpisodeEnded(func(e EpisodeEnded) { ended = append(ended, e) })
	s.OnAlerted(func(e Alerted) { alerted = append(alerted, e) })

	for _, a := range s.Agents() {
		a.AddSuspicion(1, s.Player().Position())
	}
	assert.Equal(t, OutcomeCaught, s.Step())

	for range 5 {
		s.Step()
	}

	require.Len(t, caught, 1)
	require.Len(t, ended, 1)
	assert.Len(t, alerted, 2)
	assert.Equal(t, caught[0].AgentID, s.CaughtBy())
	assert.Equal(t, OutcomeCaught, ended[0].Outcome)
	assert.Equal(t, vec(2.25, 10.25), caught[0].At)
	assert.False(t, s.Player().Alive())
	assert.Equal(t, 1, s.Tick(), "systems stop once the episode ends")
}

func TestCatchSurvivesReplacedHooks(t *testing.T) {
	s := New(openShop(guardAt(3.25, 10.25)))
	guard := s.NearestGuard(vec(3, 10))
	require.NotNil(t, guard)

	guard.SetHooks(agent.Hooks{})
	guard.AddSuspicion(1, s.Player().Position())

	assert.Equal(t, OutcomeCaught, s.Step())
	assert.Equal(t, guard.ID(), s.CaughtBy())
}

func TestSuspicionNotifications(t *testing.T) {
	s := New(openShop(guardAt(20.25, 10.25)))
	guard := s.NearestGuard(vec(20, 10))
	require.NotNil(t, guard)

	var levels []SuspicionChanged
	var suspicious []SuspiciousChanged
	var alerts []AlertChanged
	s.OnSuspicionChanged(func(e SuspicionChanged) { levels = append(levels, e) })
	s.OnSuspiciousChanged(func(e SuspiciousChanged) { suspicious = append(suspicious, e) })
	s.OnAlertChanged(func(e AlertChanged) { alerts = append(alerts, e) })

	s.MakeNoise(vec(20.25, 10.25), 50)
	guard.AddSuspicion(0.6, vec(20.25, 10.25))
	s.Step()

	require.GreaterOrEqual(t, len(levels), 2)
	assert.Equal(t, guard.ID(), levels[0].AgentID)
	assert.InDelta(t, 0.3, levels[0].Level, 1e-9)
	require.NotEmpty(t, suspicious)
	assert.True(t, suspicious[0].Suspicious)
	require.NotEmpty(t, alerts)
	assert.True(t, alerts[0].Alerted)
	assert.Equal(t, guard.ID(), alerts[0].AgentID)
}

func TestWitnessNotification(t *testing.T) {
	s := New(openShop(customerAt(0.25, 10.25)))

	var seen []Witnessed
	s.OnWitnessed(func(e Witnessed) { seen = append(seen, e) })

	require.True(t, s.ReportTheft("watch"))
	s.Step()

	require.Len(t, seen, 1)
	assert.Equal(t, vec(3.25, 10.25), seen[0].At)
	assert.Equal(t, s.Customers()[0].ID(), seen[0].AgentID)
}

func TestBotStealsAndLeaves(t *testing.T) {
	level := openShop()
	level.Items[0].Pos = vec(8.25, 10.25)
	s := New(level, WithBot())

	for range 600 {
		if s.Step() != OutcomeRunning {
			break
		}
	}

	assert.Equal(t, OutcomeEscaped, s.Outcome())
	assert.Equal(t, []string{"watch"}, s.Player().Loot)
}

func TestMakeNoiseRaisesSuspicion(t *testing.T) {
	s := New(openShop(guardAt(10.25, 10.25)))
	guard := s.NearestGuard(vec(10, 10))
	require.NotNil(t, guard)

	s.MakeNoise(vec(10.25, 10.25), 50)

	// 50 magnitude * 0.01 * 0.6 noise weight
	assert.InDelta(t, 0.3, guard.Level(), 1e-9)
}

func TestThrowCoinLandsWithinRange(t *testing.T) {
	s := New(openShop(guardAt(8.25, 10.25), guardAt(25.25, 10.25)))

	// Aimed at 20, lands at 7.25 next to the near guard
	n, ok := s.ThrowCoin(vec(20.25, 10.25))
	require.True(t, ok)
	assert.Equal(t, 1, n)

	_, ok = s.ThrowCoin(vec(20.25, 10.25))
	assert.False(t, ok, "cooldown")
	_, ok = s.ShoutSale()
	assert.False(t, ok, "cooldown is shared")

	s.Step()
	assert.Equal(t, behavior.KindDistracted, s.NearestGuard(vec(8, 10)).Kind())
	assert.Equal(t, behavior.KindPatrol, s.NearestGuard(vec(25, 10)).Kind())
}

func TestShoutSaleDrawsCustomersInEarshot(t *testing.T) {
	s := New(openShop(customerAt(6.25, 10.25), customerAt(25.25, 10.25)))
	customers := s.Customers()
	require.Len(t, customers, 2)

	n, ok := s.ShoutSale()
	require.True(t, ok)
	assert.Equal(t, 1, n)
	s.Step()

	var kinds []behavior.Kind
	for _, c := range customers {
		kinds = append(kinds, c.Kind())
	}
	assert.ElementsMatch(t, []behavior.Kind{behavior.KindPromo, behavior.KindPatrol}, kinds)
}

type snapshot struct {
	outcome Outcome
	tick    int
	loot    []string
	player  dmath.Vec2
	kinds   []behavior.Kind
	levels  []float64
}

func runDemo(t *testing.T, seed int64, ticks int) snapshot {
	t.Helper()
	level, err := leveldata.LoadDemo()
	require.NoError(t, err)

	s := New(level, WithSeed(seed), WithBot())
	for range ticks {
		if s.Step() != OutcomeRunning {
			break
		}
	}

	snap := snapshot{
		outcome: s.Outcome(),
		tick:    s.Tick(),
		loot:    append([]string(nil), s.Player().Loot...),
		player:  s.Player().Position(),
	}
	for _, a := range s.Agents() {
		snap.kinds = append(snap.kinds, a.Kind())
		snap.levels = append(snap.levels, a.Level())
	}
	return snap
}

func TestSameSeedSameEpisode(t *testing.T) {
	first := runDemo(t, 7, 900)
	second := runDemo(t, 7, 900)
	assert.Equal(t, first, second)
}

var _ agent.Registry = (*Simulation)(nil)
