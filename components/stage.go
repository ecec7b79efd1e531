package components

import (
	"math/rand/v2"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/yohamta/donburi"

	"github.com/automoto/kradylechka/bus"
	"github.com/automoto/kradylechka/nav"
)

// StageData is the singleton simulation context every system shares.
type StageData struct {
	Bus       *bus.Bus
	Grid      *nav.Grid
	Rand      *rand.Rand
	Logger    *bolt.Logger
	DeltaTime float64
}

var Stage = donburi.NewComponentType[StageData]()
