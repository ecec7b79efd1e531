package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/kradylechka/agent"
	"github.com/automoto/kradylechka/nav"
)

// AgentData holds a behaving agent and the navigator it drives.
type AgentData struct {
	*agent.Agent
	Nav       *nav.Agent
	RouteName string // Patrol route from the level, empty when none
}

var Agent = donburi.NewComponentType[AgentData]()
