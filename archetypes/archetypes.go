package archetypes

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/kradylechka/components"
	cfg "github.com/automoto/kradylechka/config"
	"github.com/automoto/kradylechka/tags"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Object,
	)
	Guard = newArchetype(
		tags.Agent,
		tags.Guard,
		components.Agent,
		components.Object,
	)
	Customer = newArchetype(
		tags.Agent,
		tags.Customer,
		components.Agent,
		components.Object,
	)
	Space = newArchetype(
		components.Space,
	)
	Wall = newArchetype(
		tags.Wall,
		components.Object,
	)
	Shelf = newArchetype(
		tags.Shelf,
		components.Object,
	)
	Item = newArchetype(
		tags.Item,
		components.Item,
		components.Object,
	)
	Level = newArchetype(
		components.Level,
	)
	Stage = newArchetype(
		components.Stage,
		components.Episode,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
