package factory

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/kradylechka/archetypes"
	"github.com/automoto/kradylechka/components"
	"github.com/automoto/kradylechka/leveldata"
	"github.com/automoto/kradylechka/systems"
	"github.com/automoto/kradylechka/tags"
)

const itemRadius = 0.25

func CreateItem(ecs *ecs.ECS, spawn leveldata.ItemSpawn) *donburi.Entry {
	item := archetypes.Item.Spawn(ecs)
	components.Item.SetValue(item, components.ItemData{
		Name:  spawn.Name,
		Value: spawn.Value,
		Pos:   spawn.Pos,
	})

	var obj components.ObjectData
	if space := systems.GetSpace(ecs); space != nil {
		obj.Body = space.AddBody(item, spawn.Pos, itemRadius, tags.ResolvItem)
	}
	components.Object.SetValue(item, obj)
	return item
}
