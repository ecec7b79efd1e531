package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/kradylechka/world"
)

// ObjectData links an entity to its body in the occluder space.
type ObjectData struct {
	*world.Body
}

var Object = donburi.NewComponentType[ObjectData]()
