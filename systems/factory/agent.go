package factory

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/kradylechka/agent"
	"github.com/automoto/kradylechka/archetypes"
	"github.com/automoto/kradylechka/components"
	cfg "github.com/automoto/kradylechka/config"
	"github.com/automoto/kradylechka/leveldata"
	"github.com/automoto/kradylechka/logging"
	"github.com/automoto/kradylechka/nav"
	"github.com/automoto/kradylechka/systems"
	"github.com/automoto/kradylechka/tags"
)

// CreateAgent spawns a guard, cashier or customer wired to the stage: bus,
// occluders, navigation grid, RNG and the player as its target. An unknown
// type falls back to the default type.
func CreateAgent(ecs *ecs.ECS, spawn leveldata.AgentSpawn, registry agent.Registry) *donburi.Entry {
	tuning, _ := cfg.AgentType(spawn.Type)

	var entry *donburi.Entry
	if tuning.Role == cfg.RoleCustomer {
		entry = archetypes.Customer.Spawn(ecs)
	} else {
		entry = archetypes.Guard.Spawn(ecs)
	}

	opts := agent.Options{
		TypeName:  spawn.Type,
		Waypoints: spawn.Route,
		Registry:  registry,
	}

	var grid *nav.Grid
	if stage := systems.GetStage(ecs); stage != nil {
		grid = stage.Grid
		opts.Bus = stage.Bus
		opts.Logger = stage.Logger
		if stage.Rand != nil {
			opts.Rand = stage.Rand
		}
	}
	space := systems.GetSpace(ecs)
	if space != nil {
		opts.World = space
	}
	if p := systems.GetPlayer(ecs); p != nil && p.Target != nil {
		opts.Target = p.Target
	}

	navigator := nav.NewAgent(grid, spawn.Pos)
	opts.Navigator = navigator
	opts.Spawn = navigator.Position()

	a := agent.New(opts)
	a.SetHooks(systems.AgentHooks(ecs))
	a.SetCatchHandler(systems.CatchHandler(ecs))
	if spawn.RouteName != "" && len(spawn.Route) == 0 && opts.Logger != nil {
		logging.NewEvent(opts.Logger.Warn()).Add(
			logging.AgentID(a.ID()),
			logging.Str("route", spawn.RouteName),
		).Msg("unknown route, standing at spawn")
	}

	var obj components.ObjectData
	if space != nil {
		obj.Body = space.AddBody(a, navigator.Position(), tuning.BodyRadius, tags.ResolvAgent)
		obj.SetCrowd(a.IsBlockingVision)
	}
	components.Object.SetValue(entry, obj)
	components.Agent.SetValue(entry, components.AgentData{
		Agent:     a,
		Nav:       navigator,
		RouteName: spawn.RouteName,
	})
	return entry
}
