package components

import (
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

type ItemData struct {
	Name  string
	Value int
	Pos   dmath.Vec2
}

var Item = donburi.NewComponentType[ItemData]()
