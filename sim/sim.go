// Package sim runs one shop episode. The ECS world is the agent registry and
// owns the bus, the occluder space, the navigation grid and the seeded RNG.
package sim

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/agent"
	"github.com/automoto/kradylechka/bus"
	"github.com/automoto/kradylechka/components"
	"github.com/automoto/kradylechka/config"
	"github.com/automoto/kradylechka/leveldata"
	"github.com/automoto/kradylechka/logging"
	"github.com/automoto/kradylechka/perception"
	"github.com/automoto/kradylechka/systems"
	"github.com/automoto/kradylechka/systems/factory"
	"github.com/automoto/kradylechka/tags"
)

// ErrUnknownAgent is returned for an ID no live agent has.
var ErrUnknownAgent = errors.New("sim: unknown agent")

type Outcome = components.Outcome

const (
	OutcomeRunning = components.OutcomeRunning
	OutcomeCaught  = components.OutcomeCaught
	OutcomeEscaped = components.OutcomeEscaped
)

type options struct {
	seed   int64
	logger *bolt.Logger
	bot    bool
}

type Option func(*options)

func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

func WithLogger(l *bolt.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithBot hands the player to the scripted burglar.
func WithBot() Option {
	return func(o *options) {
		o.bot = true
	}
}

// Simulation is one episode over a level.
type Simulation struct {
	ecs    *ecs.ECS
	level  *leveldata.Level
	logger *bolt.Logger
}

// New builds the world for level and spawns its player and agents.
func New(level *leveldata.Level, opts ...Option) *Simulation {
	o := options{seed: config.Sim.Seed}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}

	s := &Simulation{
		ecs:    ecs.NewECS(donburi.NewWorld()),
		level:  level,
		logger: o.logger,
	}
	s.configure()

	factory.CreateLevel(s.ecs, level)
	factory.CreateStage(s.ecs, o.seed, o.logger)
	if level.HasPlayerSpawn {
		factory.CreatePlayer(s.ecs, level.PlayerSpawn, level.PlayerSpawn, o.bot)
	}
	for _, spawn := range level.Spawns {
		s.Spawn(spawn)
	}

	logging.NewEvent(s.logger.Info()).Add(
		logging.Str("level", level.Name),
		logging.Int("agents", len(level.Spawns)),
		logging.Int("items", len(level.Items)),
		logging.Int("seed", int(o.seed)),
	).Msg("simulation ready")
	return s
}

func (s *Simulation) configure() {
	s.ecs.AddSystem(systems.WithEpisodeChecks(systems.UpdateEpisode))
	s.ecs.AddSystem(systems.WithEpisodeChecks(systems.UpdateBot)) // Must run before UpdatePlayer
	s.ecs.AddSystem(systems.WithEpisodeChecks(systems.UpdatePlayer))
	s.ecs.AddSystem(systems.WithEpisodeChecks(systems.UpdateAgents))
	s.ecs.AddSystem(systems.WithEpisodeChecks(systems.UpdateNavigation))
	s.ecs.AddSystem(systems.WithEpisodeChecks(systems.UpdateObjects))

	// Notifications are delivered even on the tick the episode ends
	s.ecs.AddSystem(systems.ProcessEvents)
}

// Step advances the simulation one fixed tick and returns the outcome.
func (s *Simulation) Step() Outcome {
	s.ecs.Update()
	return s.Outcome()
}

func (s *Simulation) Outcome() Outcome {
	if episode := systems.GetEpisode(s.ecs); episode != nil {
		return episode.Outcome
	}
	return OutcomeRunning
}

// CaughtBy is the ID of the agent that made the catch, if any.
func (s *Simulation) CaughtBy() string {
	if episode := systems.GetEpisode(s.ecs); episode != nil {
		return episode.CaughtBy
	}
	return ""
}

func (s *Simulation) Tick() int {
	if episode := systems.GetEpisode(s.ecs); episode != nil {
		return episode.Tick
	}
	return 0
}

func (s *Simulation) Level() *leveldata.Level { return s.level }

// Bus is the suspicion channel every agent listens on.
func (s *Simulation) Bus() *bus.Bus {
	if stage := systems.GetStage(s.ecs); stage != nil {
		return stage.Bus
	}
	return nil
}

// Player is the tracked target, nil for a level without a player spawn.
func (s *Simulation) Player() *components.Target {
	if p := systems.GetPlayer(s.ecs); p != nil {
		return p.Target
	}
	return nil
}

// Spawn adds an agent to the registry and subscribes it to the bus.
func (s *Simulation) Spawn(spawn leveldata.AgentSpawn) *agent.Agent {
	entry := factory.CreateAgent(s.ecs, spawn, s)
	a := components.Agent.Get(entry).Agent
	logging.NewEvent(s.logger.Debug()).Add(
		logging.AgentID(a.ID()),
		logging.AgentType(a.TypeName()),
		logging.Point("at", spawn.Pos.X, spawn.Pos.Y),
		logging.Str("route", spawn.RouteName),
	).Msg("agent spawned")
	return a
}

// Despawn removes an agent, its body and its bus subscription.
func (s *Simulation) Despawn(id string) error {
	entry, ok := systems.FindAgent(s.ecs, id)
	if !ok {
		return fmt.Errorf("despawn %s: %w", id, ErrUnknownAgent)
	}
	data := components.Agent.Get(entry)
	data.Close()
	if space := systems.GetSpace(s.ecs); space != nil {
		space.Remove(components.Object.Get(entry).Body)
	}
	s.ecs.World.Remove(entry.Entity())

	logging.NewEvent(s.logger.Debug()).Add(
		logging.AgentID(id),
		logging.AgentType(data.TypeName()),
	).Msg("agent despawned")
	return nil
}

func (s *Simulation) Agents() []*agent.Agent    { return systems.Agents(s.ecs) }
func (s *Simulation) Customers() []*agent.Agent { return systems.Customers(s.ecs) }

func (s *Simulation) Agent(id string) (*agent.Agent, bool) {
	entry, ok := systems.FindAgent(s.ecs, id)
	if !ok {
		return nil, false
	}
	return components.Agent.Get(entry).Agent, true
}

// NearestGuard returns the closest guard-role agent, or nil when there is
// none. It makes the simulation the agents' registry.
func (s *Simulation) NearestGuard(from dmath.Vec2) *agent.Agent {
	return systems.NearestGuard(s.ecs, from)
}

// AnnouncePromo sends every registered customer to point and returns how
// many went.
func (s *Simulation) AnnouncePromo(point dmath.Vec2) int {
	return systems.AnnouncePromo(s.ecs, point, 0)
}

// Distract points every agent within radius of point at it.
func (s *Simulation) Distract(point dmath.Vec2, radius float64) int {
	return systems.DistractAround(s.ecs, tags.Agent, point, radius)
}

// ReportTheft has the player take the named item and publishes the theft.
// It fails when the item is gone or out of reach.
func (s *Simulation) ReportTheft(item string) bool {
	return systems.StealItem(s.ecs, item)
}

func (s *Simulation) MakeNoise(pos dmath.Vec2, magnitude float64) {
	systems.MakeNoise(s.ecs, pos, magnitude)
}

func (s *Simulation) PlayerSprinted() {
	systems.PlayerSprinted(s.ecs)
}

// Publish puts an arbitrary stimulus on the bus.
func (s *Simulation) Publish(e bus.Event) {
	systems.Publish(s.ecs, e)
}

func (s *Simulation) MovePlayer(dest dmath.Vec2, running bool) {
	systems.MovePlayer(s.ecs, dest, running)
}

func (s *Simulation) SetPosture(p perception.Posture) {
	systems.SetPosture(s.ecs, p)
}

// ThrowCoin distracts the staff near where the coin lands.
func (s *Simulation) ThrowCoin(at dmath.Vec2) (int, bool) {
	return systems.ThrowCoin(s.ecs, at)
}

// ShoutSale draws nearby customers around the player.
func (s *Simulation) ShoutSale() (int, bool) {
	return systems.ShoutSale(s.ecs)
}

var _ agent.Registry = (*Simulation)(nil)
