package behavior

import (
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/config"
	"github.com/automoto/kradylechka/gamemath"
	"github.com/automoto/kradylechka/suspicion"
)

type moveRequest struct {
	dest  dmath.Vec2
	speed float64
}

// fakeNav teleports to each requested destination when instant is set.
type fakeNav struct {
	pos       dmath.Vec2
	forward   dmath.Vec2
	dest      dmath.Vec2
	ready     bool
	instant   bool
	stopped   bool
	requests  []moveRequest
	faced     []dmath.Vec2
	remaining float64
}

func newNav(pos dmath.Vec2) *fakeNav {
	return &fakeNav{pos: pos, forward: dmath.Vec2{X: 1}, ready: true, instant: true}
}

func (n *fakeNav) Ready() bool { return n.ready }
func (n *fakeNav) RequestMove(dest dmath.Vec2, speed float64) {
	n.requests = append(n.requests, moveRequest{dest: dest, speed: speed})
	n.dest = dest
	if n.instant {
		n.pos = dest
		n.remaining = 0
		return
	}
	n.remaining = gamemath.Distance(n.pos, dest)
}
func (n *fakeNav) IsPathPending() bool        { return false }
func (n *fakeNav) RemainingDistance() float64 { return n.remaining }
func (n *fakeNav) SetStopped(s bool)          { n.stopped = s }
func (n *fakeNav) Position() dmath.Vec2       { return n.pos }
func (n *fakeNav) Forward() dmath.Vec2        { return n.forward }
func (n *fakeNav) Face(dir dmath.Vec2)        { n.faced = append(n.faced, dir) }

func (n *fakeNav) last() moveRequest {
	return n.requests[len(n.requests)-1]
}

type fakeGuard struct {
	pos     dmath.Vec2
	reports []dmath.Vec2
	amounts []float64
}

func (g *fakeGuard) Position() dmath.Vec2 { return g.pos }
func (g *fakeGuard) ReceiveReport(at dmath.Vec2, magnitude float64) {
	g.reports = append(g.reports, at)
	g.amounts = append(g.amounts, magnitude)
}

type fakeActor struct {
	spawn  dmath.Vec2
	nav    *fakeNav
	tuning config.AgentTypeConfig
	model  *suspicion.Model
	dt     float64
	points []dmath.Vec2

	sight   *dmath.Vec2
	target  *dmath.Vec2
	catches int

	incident *dmath.Vec2
	calmed   int
	guard    *fakeGuard

	distraction *dmath.Vec2
	endedDist   int
	promo       *dmath.Vec2
	endedPromo  int
}

func newActor(typeName string, pos dmath.Vec2) *fakeActor {
	tuning, _ := config.AgentType(typeName)
	return &fakeActor{
		spawn:  pos,
		nav:    newNav(pos),
		tuning: tuning,
		model:  suspicion.New(suspicion.DefaultOptions()),
		dt:     0.5,
	}
}

func (a *fakeActor) ID() string                      { return "fake" }
func (a *fakeActor) Spawn() dmath.Vec2               { return a.spawn }
func (a *fakeActor) Tuning() *config.AgentTypeConfig { return &a.tuning }
func (a *fakeActor) Suspicion() *suspicion.Model     { return a.model }
func (a *fakeActor) DeltaTime() float64              { return a.dt }
func (a *fakeActor) Waypoints() []dmath.Vec2         { return a.points }

func (a *fakeActor) Navigator() Navigator {
	if a.nav == nil {
		return nil
	}
	return a.nav
}

func (a *fakeActor) TargetInSight() (dmath.Vec2, bool) { return deref(a.sight) }
func (a *fakeActor) TargetPosition() (dmath.Vec2, bool) {
	return deref(a.target)
}
func (a *fakeActor) ResolveCatch() { a.catches++ }

func (a *fakeActor) Incident() (dmath.Vec2, bool) { return deref(a.incident) }
func (a *fakeActor) CalmDown()                    { a.calmed++ }
func (a *fakeActor) NearestGuard() Reportee {
	if a.guard == nil {
		return nil
	}
	return a.guard
}

func (a *fakeActor) DistractionPoint() (dmath.Vec2, bool) { return deref(a.distraction) }
func (a *fakeActor) EndDistraction()                      { a.endedDist++ }
func (a *fakeActor) PromoPoint() (dmath.Vec2, bool)       { return deref(a.promo) }
func (a *fakeActor) EndPromo()                            { a.endedPromo++ }

func deref(p *dmath.Vec2) (dmath.Vec2, bool) {
	if p == nil {
		return dmath.Vec2{}, false
	}
	return *p, true
}

func vec(x, y float64) *dmath.Vec2 {
	return &dmath.Vec2{X: x, Y: y}
}
