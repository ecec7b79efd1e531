package factory

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/archetypes"
	"github.com/automoto/kradylechka/components"
	cfg "github.com/automoto/kradylechka/config"
	"github.com/automoto/kradylechka/nav"
	"github.com/automoto/kradylechka/systems"
	"github.com/automoto/kradylechka/tags"
)

// CreatePlayer spawns the tracked shoplifter at pos. The door doubles as
// the exit. A bot player walks itself; otherwise the caller steers it.
func CreatePlayer(ecs *ecs.ECS, pos, exit dmath.Vec2, bot bool) *donburi.Entry {
	var player *donburi.Entry
	if bot {
		player = archetypes.Player.Spawn(ecs, components.Bot)
		components.Bot.SetValue(player, components.BotData{
			State:         components.BotShopping,
			ReactionDelay: cfg.Player.BotReactionDelay,
		})
	} else {
		player = archetypes.Player.Spawn(ecs)
	}

	var grid *nav.Grid
	if stage := systems.GetStage(ecs); stage != nil {
		grid = stage.Grid
	}
	navigator := nav.NewAgent(grid, pos)

	target := &components.Target{
		Pos:          navigator.Position(),
		StealthLevel: cfg.Player.StealthLevel,
	}

	var obj components.ObjectData
	if space := systems.GetSpace(ecs); space != nil {
		obj.Body = space.AddBody(target, target.Pos, cfg.Player.BodyRadius, tags.ResolvPlayer)
	}
	components.Object.SetValue(player, obj)
	components.Player.SetValue(player, components.PlayerData{
		Target: target,
		Nav:    navigator,
		Exit:   exit,
	})
	return player
}
