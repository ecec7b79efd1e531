package systems

import (
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/kradylechka/components"
)

// UpdateObjects moves each agent and player body to its navigator's
// position so the next raycast sees it where it stands.
func UpdateObjects(ecs *ecs.ECS) {
	for e := range components.Agent.Iter(ecs.World) {
		if !e.HasComponent(components.Object) {
			continue
		}
		obj := components.Object.Get(e)
		if n := components.Agent.Get(e).Nav; obj.Body != nil && n != nil {
			obj.MoveTo(n.Position())
		}
	}
	for e := range components.Player.Iter(ecs.World) {
		obj := components.Object.Get(e)
		if p := components.Player.Get(e); obj.Body != nil && p.Nav != nil {
			obj.MoveTo(p.Nav.Position())
		}
	}
}
