package factory

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/kradylechka/archetypes"
	"github.com/automoto/kradylechka/components"
	"github.com/automoto/kradylechka/gamemath"
	"github.com/automoto/kradylechka/systems"
	"github.com/automoto/kradylechka/tags"
)

func CreateWall(ecs *ecs.ECS, r gamemath.Rect) *donburi.Entry {
	wall := archetypes.Wall.Spawn(ecs)
	addSolid(ecs, wall, r)
	return wall
}

// CreateShelf adds a shelf unit. Shelves block movement and sight like walls
// and carry their own tag for anyone who needs to tell them apart.
func CreateShelf(ecs *ecs.ECS, r gamemath.Rect) *donburi.Entry {
	shelf := archetypes.Shelf.Spawn(ecs)
	addSolid(ecs, shelf, r, tags.ResolvShelf)
	return shelf
}

func addSolid(ecs *ecs.ECS, entry *donburi.Entry, r gamemath.Rect, extra ...string) {
	space := systems.GetSpace(ecs)
	if space == nil {
		return
	}
	body := space.AddRect(entry, r, append([]string{tags.ResolvSolid}, extra...)...)
	components.Object.SetValue(entry, components.ObjectData{Body: body})
}
