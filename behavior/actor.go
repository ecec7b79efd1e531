// Package behavior holds the agent behavior states. States only see agents
// through the small interfaces below, so one implementation serves guards,
// cashiers and customers alike.
package behavior

import (
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/config"
	"github.com/automoto/kradylechka/fsm"
	"github.com/automoto/kradylechka/suspicion"
)

// State is an fsm.State carrying its Kind tag.
type State interface {
	fsm.State
	Kind() Kind
}

// Navigator is the movement collaborator. The agent only asks to go
// somewhere; pathing is the navigator's problem.
type Navigator interface {
	Ready() bool // Placed on a walkable surface
	RequestMove(dest dmath.Vec2, speed float64)
	IsPathPending() bool
	RemainingDistance() float64
	SetStopped(stopped bool)
	Position() dmath.Vec2
	Forward() dmath.Vec2
	Face(dir dmath.Vec2)
}

// Actor is what every state needs from its agent.
type Actor interface {
	ID() string
	Spawn() dmath.Vec2
	Navigator() Navigator // Nil until a navigation backend is attached
	Tuning() *config.AgentTypeConfig
	Suspicion() *suspicion.Model
	DeltaTime() float64 // Seconds covered by the current tick
}

// Patroller walks an ordered route.
type Patroller interface {
	Actor
	Waypoints() []dmath.Vec2
}

// Pursuer chases the tracked target.
type Pursuer interface {
	Actor
	TargetInSight() (dmath.Vec2, bool)  // Live position while perceived
	TargetPosition() (dmath.Vec2, bool) // Live position of a living target
	ResolveCatch()
}

// Reportee is someone a witness can report a theft to.
type Reportee interface {
	Position() dmath.Vec2
	ReceiveReport(at dmath.Vec2, magnitude float64)
}

// Witness reacts to a theft it saw.
type Witness interface {
	Actor
	Incident() (dmath.Vec2, bool)
	CalmDown()
	NearestGuard() Reportee // Nil when no guard exists
}

// Distractible can be lured to a point for a while.
type Distractible interface {
	Actor
	DistractionPoint() (dmath.Vec2, bool)
	EndDistraction()
}

// Shopper reacts to promo announcements.
type Shopper interface {
	Actor
	PromoPoint() (dmath.Vec2, bool)
	EndPromo()
}

// PositionOf returns where a is standing: the navigator's position, or the
// spawn point when no navigator is attached.
func PositionOf(a Actor) dmath.Vec2 {
	if nav := a.Navigator(); nav != nil {
		return nav.Position()
	}
	return a.Spawn()
}
