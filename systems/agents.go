package systems

import (
	"math"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/agent"
	"github.com/automoto/kradylechka/components"
	"github.com/automoto/kradylechka/gamemath"
	"github.com/automoto/kradylechka/tags"
)

// UpdateAgents ticks every agent once: senses, suspicion, then behavior.
func UpdateAgents(e *ecs.ECS) {
	dt := deltaTime(e)
	for entry := range components.Agent.Iter(e.World) {
		components.Agent.Get(entry).Tick(dt)
	}
}

// UpdateNavigation moves every agent along the path its behavior requested.
func UpdateNavigation(e *ecs.ECS) {
	dt := deltaTime(e)
	for entry := range components.Agent.Iter(e.World) {
		if n := components.Agent.Get(entry).Nav; n != nil {
			n.Step(dt)
		}
	}
}

// Agents returns every registered agent in iteration order.
func Agents(e *ecs.ECS) []*agent.Agent {
	var out []*agent.Agent
	tags.Agent.Each(e.World, func(entry *donburi.Entry) {
		out = append(out, components.Agent.Get(entry).Agent)
	})
	return out
}

// Customers returns the registered customer-role agents.
func Customers(e *ecs.ECS) []*agent.Agent {
	var out []*agent.Agent
	tags.Customer.Each(e.World, func(entry *donburi.Entry) {
		out = append(out, components.Agent.Get(entry).Agent)
	})
	return out
}

// FindAgent returns the entry holding the agent with id.
func FindAgent(e *ecs.ECS, id string) (*donburi.Entry, bool) {
	var found *donburi.Entry
	tags.Agent.Each(e.World, func(entry *donburi.Entry) {
		if found == nil && components.Agent.Get(entry).ID() == id {
			found = entry
		}
	})
	return found, found != nil
}

// NearestGuard returns the closest guard-role agent to from, or nil.
func NearestGuard(e *ecs.ECS, from dmath.Vec2) *agent.Agent {
	var best *agent.Agent
	bestDist := math.MaxFloat64
	tags.Guard.Each(e.World, func(entry *donburi.Entry) {
		a := components.Agent.Get(entry).Agent
		if d := gamemath.Distance(from, a.Position()); d < bestDist {
			best, bestDist = a, d
		}
	})
	return best
}

// DistractAround distracts every agent in role within radius of point and
// returns how many accepted.
func DistractAround(e *ecs.ECS, role *donburi.ComponentType[donburi.Tag], point dmath.Vec2, radius float64) int {
	accepted := 0
	role.Each(e.World, func(entry *donburi.Entry) {
		a := components.Agent.Get(entry).Agent
		if gamemath.Distance(point, a.Position()) > radius {
			return
		}
		if a.Distract(point) {
			accepted++
		}
	})
	return accepted
}

// AnnouncePromo sends customers within radius of point to the promo. A
// radius of zero or less reaches every customer.
func AnnouncePromo(e *ecs.ECS, point dmath.Vec2, radius float64) int {
	accepted := 0
	for _, c := range Customers(e) {
		if radius > 0 && gamemath.Distance(point, c.Position()) > radius {
			continue
		}
		if c.Promo(point) {
			accepted++
		}
	}
	return accepted
}
