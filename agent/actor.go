package agent

import (
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/behavior"
	"github.com/automoto/kradylechka/config"
	"github.com/automoto/kradylechka/suspicion"
)

// The methods below are the agent's side of the behavior.Actor contracts.

func (a *Agent) Spawn() dmath.Vec2                    { return a.spawn }
func (a *Agent) Tuning() *config.AgentTypeConfig      { return &a.tuning }
func (a *Agent) Suspicion() *suspicion.Model          { return a.model }
func (a *Agent) DeltaTime() float64                   { return a.dt }
func (a *Agent) Waypoints() []dmath.Vec2              { return a.waypoints }
func (a *Agent) Incident() (dmath.Vec2, bool)         { return a.incident, a.witnessed }
func (a *Agent) PromoPoint() (dmath.Vec2, bool)       { return a.promoPoint, true }
func (a *Agent) DistractionPoint() (dmath.Vec2, bool) { return a.distractPoint, true }

func (a *Agent) Navigator() behavior.Navigator {
	if a.nav == nil {
		return nil
	}
	return a.nav
}

// TargetInSight returns the target's position while it was perceived this
// tick.
func (a *Agent) TargetInSight() (dmath.Vec2, bool) {
	return a.sightPos, a.inSight
}

// TargetPosition is the live position of a living target.
func (a *Agent) TargetPosition() (dmath.Vec2, bool) {
	if a.target == nil || !a.target.Alive() {
		return dmath.Vec2{}, false
	}
	return a.target.Position(), true
}

// ResolveCatch reports the catch; the agent resets at the end of the tick.
func (a *Agent) ResolveCatch() {
	a.caught = true
	if a.onCatch != nil {
		a.onCatch(a)
	}
	if h := a.hooks.OnCaught; h != nil {
		h(a)
	}
}

func (a *Agent) CalmDown()       { a.calmDone = true }
func (a *Agent) EndDistraction() { a.distractDone = true }
func (a *Agent) EndPromo()       { a.promoDone = true }

// NearestGuard finds someone to report to.
func (a *Agent) NearestGuard() behavior.Reportee {
	if g := a.nearestGuard(); g != nil {
		return g
	}
	return nil
}

func (a *Agent) nearestGuard() *Agent {
	if a.registry == nil {
		return nil
	}
	return a.registry.NearestGuard(a.Position())
}

var _ behavior.Patroller = (*Agent)(nil)
var _ behavior.Pursuer = (*Agent)(nil)
var _ behavior.Witness = (*Agent)(nil)
var _ behavior.Distractible = (*Agent)(nil)
var _ behavior.Shopper = (*Agent)(nil)
var _ behavior.Reportee = (*Agent)(nil)
