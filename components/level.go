package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/kradylechka/leveldata"
)

type LevelData struct {
	CurrentLevel *leveldata.Level
}

var Level = donburi.NewComponentType[LevelData]()
