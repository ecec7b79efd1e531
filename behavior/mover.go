package behavior

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	dmath "github.com/yohamta/donburi/features/math"
)

// mover issues move requests on behalf of a state. A request made while the
// navigator is missing or not ready is held and retried on the next update.
type mover struct {
	dest    dmath.Vec2
	speed   float64
	pending bool
	active  bool
	ramp    *gween.Tween
}

func (m *mover) moveTo(dest dmath.Vec2, speed float64) {
	m.dest, m.speed = dest, speed
	m.pending, m.active = true, true
	m.ramp = nil
}

// rampTo is moveTo with the speed easing up from "from" over rampTime seconds.
func (m *mover) rampTo(dest dmath.Vec2, from, to, rampTime float64) {
	m.moveTo(dest, to)
	if rampTime > 0 && from < to {
		m.ramp = gween.New(float32(from), float32(to), float32(rampTime), ease.OutQuad)
		m.speed = from
	}
}

// retarget changes the destination, keeping any speed ramp running.
func (m *mover) retarget(dest dmath.Vec2) {
	m.dest = dest
	m.pending, m.active = true, true
}

func (m *mover) update(nav Navigator, dt float64) {
	if m.ramp != nil {
		speed, done := m.ramp.Update(float32(dt))
		m.speed = float64(speed)
		m.pending = m.active
		if done {
			m.ramp = nil
		}
	}
	if !m.pending || nav == nil || !nav.Ready() {
		return
	}
	nav.SetStopped(false)
	nav.RequestMove(m.dest, m.speed)
	m.pending = false
}

// arrived reports whether the last issued request has been completed.
func (m *mover) arrived(nav Navigator, within float64) bool {
	if !m.active || m.pending || nav == nil {
		return false
	}
	return !nav.IsPathPending() && nav.RemainingDistance() <= within
}

func (m *mover) stop(nav Navigator) {
	m.pending, m.active = false, false
	m.ramp = nil
	if nav != nil {
		nav.SetStopped(true)
	}
}
