package factory

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/kradylechka/archetypes"
	"github.com/automoto/kradylechka/components"
	cfg "github.com/automoto/kradylechka/config"
	"github.com/automoto/kradylechka/leveldata"
)

// CreateLevel records the level and builds its static geometry: the space,
// walls, shelves and items. Agents and the player are spawned separately.
func CreateLevel(ecs *ecs.ECS, level *leveldata.Level) *donburi.Entry {
	entry := archetypes.Level.Spawn(ecs)
	components.Level.SetValue(entry, components.LevelData{CurrentLevel: level})

	CreateSpace(ecs, level.Width, level.Height, cfg.Nav.SpaceCellSize)
	for _, r := range level.Walls {
		CreateWall(ecs, r)
	}
	for _, r := range level.Shelves {
		CreateShelf(ecs, r)
	}
	for _, it := range level.Items {
		CreateItem(ecs, it)
	}
	return entry
}
