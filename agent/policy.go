package agent

import (
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/bus"
	"github.com/automoto/kradylechka/config"
	"github.com/automoto/kradylechka/gamemath"
)

// Policy turns a bus event into a suspicion increase for one listener.
type Policy struct {
	ListenRadius   float64
	MagnitudeScale float64
	Falloff        float64
	Weights        map[string]float64
	RequiresSight  map[string]bool
}

// DefaultPolicy combines the shared bus tuning with the listener's radius.
func DefaultPolicy(t config.AgentTypeConfig) Policy {
	return Policy{
		ListenRadius:   t.ListenRadius,
		MagnitudeScale: config.Bus.MagnitudeScale,
		Falloff:        config.Bus.Falloff,
		Weights:        config.Bus.Weights,
		RequiresSight:  config.Bus.RequiresSight,
	}
}

// Amount returns how much suspicion e adds for a listener at pos. The
// second result is false when the listener ignores the event: too far,
// unweighted, or a sight-only category with the origin out of view.
func (p Policy) Amount(e bus.Event, pos dmath.Vec2, canSee func(dmath.Vec2) bool) (float64, bool) {
	if p.ListenRadius <= 0 {
		return 0, false
	}
	d := gamemath.Distance(pos, e.Origin)
	if d > p.ListenRadius {
		return 0, false
	}

	category := e.Category.String()
	weight := p.Weights[category]
	if weight <= 0 {
		return 0, false
	}
	if p.RequiresSight[category] && (canSee == nil || !canSee(e.Origin)) {
		return 0, false
	}

	falloff := gamemath.Clamp01(1 - p.Falloff*d/p.ListenRadius)
	amount := e.Magnitude * p.MagnitudeScale * weight * falloff
	if amount <= 0 {
		return 0, false
	}
	return amount, true
}
