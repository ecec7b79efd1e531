package components

import (
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/nav"
	"github.com/automoto/kradylechka/perception"
)

// Target is the shoplifter the staff watch. It satisfies perception.Target.
type Target struct {
	Pos          dmath.Vec2
	Posture      perception.Posture
	StealthLevel int
	Caught       bool
	Loot         []string
}

func (t *Target) Position() dmath.Vec2  { return t.Pos }
func (t *Target) NoiseLevel() float64   { return perception.NoiseLevel(t.Posture) }
func (t *Target) StealthMode() bool     { return t.Posture.Stealth }
func (t *Target) StealthBonus() float64 { return perception.StealthBonus(t.StealthLevel) }
func (t *Target) Alive() bool           { return !t.Caught }

type PlayerData struct {
	*Target
	Nav      *nav.Agent
	Exit     dmath.Vec2 // The shop door; reaching it with loot ends the episode
	Cooldown float64    // Seconds until the next coin toss or shout
}

var Player = donburi.NewComponentType[PlayerData]()
