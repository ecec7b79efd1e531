package factory

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/kradylechka/archetypes"
	"github.com/automoto/kradylechka/components"
	"github.com/automoto/kradylechka/world"
)

// CreateSpace adds the occluder space. Width and height are world units.
func CreateSpace(ecs *ecs.ECS, width, height float64, cellSize int) *donburi.Entry {
	space := archetypes.Space.Spawn(ecs)
	components.Space.SetValue(space, components.SpaceData{Space: world.NewSpace(width, height, cellSize)})
	return space
}
