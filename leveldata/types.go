// Package leveldata parses Tiled shop layouts into world-unit geometry,
// spawns and patrol routes. It has no dependency on the ECS or collision
// packages.
package leveldata

import (
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/gamemath"
)

// Level is one parsed shop. All coordinates are world units.
type Level struct {
	Name   string
	Width  float64
	Height float64

	Walls   []gamemath.Rect
	Shelves []gamemath.Rect
	Items   []ItemSpawn
	Spawns  []AgentSpawn
	Routes  map[string][]dmath.Vec2

	PlayerSpawn    dmath.Vec2
	HasPlayerSpawn bool
}

// AgentSpawn places one agent.
type AgentSpawn struct {
	Type      string
	Pos       dmath.Vec2
	RouteName string
	Route     []dmath.Vec2 // Nil when RouteName is empty or unknown
}

// ItemSpawn is something on a shelf worth stealing.
type ItemSpawn struct {
	Name  string
	Pos   dmath.Vec2
	Value int
}
