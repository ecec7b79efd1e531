package factory

import (
	"math/rand/v2"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/kradylechka/archetypes"
	"github.com/automoto/kradylechka/bus"
	"github.com/automoto/kradylechka/components"
	cfg "github.com/automoto/kradylechka/config"
	"github.com/automoto/kradylechka/nav"
	"github.com/automoto/kradylechka/systems"
)

// CreateStage adds the shared context: the bus, a navigation grid over the
// current space and a seeded RNG. Call it after CreateLevel.
func CreateStage(ecs *ecs.ECS, seed int64, logger *bolt.Logger) *donburi.Entry {
	stage := archetypes.Stage.Spawn(ecs)

	var grid *nav.Grid
	if space := systems.GetSpace(ecs); space != nil {
		grid = nav.NewGrid(space, space.Width(), space.Height(), cfg.Nav.CellSize)
	}

	dt := 0.0
	if cfg.Sim.TickRate > 0 {
		dt = 1 / float64(cfg.Sim.TickRate)
	}

	components.Stage.SetValue(stage, components.StageData{
		Bus:       bus.New(bus.WithMaxDepth(cfg.Bus.MaxDepth), bus.WithLogger(logger)),
		Grid:      grid,
		Rand:      rand.New(rand.NewPCG(uint64(seed), uint64(seed))),
		Logger:    logger,
		DeltaTime: dt,
	})
	components.Episode.SetValue(stage, components.EpisodeData{Outcome: components.OutcomeRunning})
	return stage
}
