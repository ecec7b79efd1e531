package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/kradylechka/world"
)

type SpaceData struct {
	*world.Space
}

var Space = donburi.NewComponentType[SpaceData]()
