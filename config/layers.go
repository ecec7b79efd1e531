package config

import "github.com/yohamta/donburi/ecs"

// Layers for archetype spawning. The sim draws nothing, so every entity
// shares one.
const (
	Default ecs.LayerID = iota
)
