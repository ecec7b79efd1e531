// Package suspicion holds the per-agent suspicion score and its alert latch.
package suspicion

import (
	"math"

	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/config"
	"github.com/automoto/kradylechka/gamemath"
)

// Band is the coarse reading of a score.
type Band int

const (
	Calm Band = iota
	Suspicious
	Alerted
)

func (b Band) String() string {
	switch b {
	case Calm:
		return "calm"
	case Suspicious:
		return "suspicious"
	case Alerted:
		return "alerted"
	default:
		return "unknown"
	}
}

// Thresholds are the band edges. A model is suspicious above Clear. The
// alert latches when the score rises through Alert and holds until the target
// is lost, however far the score falls.
type Thresholds struct {
	Clear float64
	Alert float64
}

// Hooks receive change notifications. Nil hooks are skipped. Each fires only
// when the value it reports actually changes.
type Hooks struct {
	OnLevelChanged      func(level float64)
	OnSuspiciousChanged func(suspicious bool)
	OnAlertedChanged    func(alerted bool)
	OnTargetDetected    func(lastKnown dmath.Vec2)
	OnTargetLost        func()
}

// TargetFunc returns the live target position, if there is a target.
type TargetFunc func() (dmath.Vec2, bool)

type Options struct {
	Thresholds    Thresholds
	DecayRate     float64 // Per second, only while not alerted
	AlertDuration float64 // Seconds an alert lasts without a fresh sighting
	Target        TargetFunc
	Hooks         Hooks
}

// DefaultOptions reads the shared suspicion config.
func DefaultOptions() Options {
	cfg := config.Suspicion
	return Options{
		Thresholds: Thresholds{
			Clear: cfg.Clear,
			Alert: cfg.Alert,
		},
		DecayRate:     cfg.DecayRate,
		AlertDuration: cfg.AlertDuration,
	}
}

// Model is a score in [0,1] with hysteresis bands and an alert latch.
type Model struct {
	opts Options

	level      float64
	suspicious bool
	alerted    bool
	suppressed bool
	alertTimer float64

	lastKnown    dmath.Vec2
	hasLastKnown bool
}

func New(opts Options) *Model {
	return &Model{opts: opts}
}

func (m *Model) Level() float64          { return m.level }
func (m *Model) IsSuspicious() bool      { return m.suspicious }
func (m *Model) IsAlerted() bool         { return m.alerted }
func (m *Model) IsSuppressed() bool      { return m.suppressed }
func (m *Model) Thresholds() Thresholds  { return m.opts.Thresholds }
func (m *Model) AlertRemaining() float64 { return m.alertTimer }

// LastKnown returns the last known target position, if any.
func (m *Model) LastKnown() (dmath.Vec2, bool) {
	return m.lastKnown, m.hasLastKnown
}

func (m *Model) Band() Band {
	switch {
	case m.alerted:
		return Alerted
	case m.suspicious:
		return Suspicious
	default:
		return Calm
	}
}

// SetHooks replaces the notification hooks.
func (m *Model) SetHooks(h Hooks) {
	m.opts.Hooks = h
}

// SetTarget replaces the live target lookup used when an alert latches.
func (m *Model) SetTarget(fn TargetFunc) {
	m.opts.Target = fn
}

// SetSuppressed stops all growth while set. Reductions still apply.
func (m *Model) SetSuppressed(s bool) {
	m.suppressed = s
}

// AddSuspicion raises the score. Rising through the alert threshold from
// below latches the alert, snapshots the target position and fires the
// detection hooks once. A residual score already at or above the threshold
// has to fall below it before it can alert again.
func (m *Model) AddSuspicion(amount float64) {
	if m.suppressed || !finite(amount) {
		return
	}
	prev := m.level
	m.setLevel(m.level + amount)

	alert := m.opts.Thresholds.Alert
	if !m.alerted && prev < alert && m.level >= alert {
		m.raiseAlert()
	}
}

// AddSuspicionAt raises the score for a stimulus at origin. The origin
// becomes the last known position.
func (m *Model) AddSuspicionAt(amount float64, origin dmath.Vec2) {
	if m.suppressed || !finite(amount) {
		return
	}
	m.lastKnown, m.hasLastKnown = origin, true
	m.AddSuspicion(amount)
}

// ReduceSuspicion lowers the score. It never clears an alert.
func (m *Model) ReduceSuspicion(amount float64) {
	if !finite(amount) || amount <= 0 {
		return
	}
	m.setLevel(m.level - amount)
}

// Decay applies passive cool-down for dt seconds. Alerted models do not decay.
func (m *Model) Decay(dt float64) {
	if m.alerted || dt <= 0 {
		return
	}
	m.ReduceSuspicion(m.opts.DecayRate * dt)
}

// Refresh records a fresh sighting while alerted: the position becomes the
// last known one and the alert timer restarts.
func (m *Model) Refresh(pos dmath.Vec2) {
	if !m.alerted {
		return
	}
	m.lastKnown, m.hasLastKnown = pos, true
	m.alertTimer = m.opts.AlertDuration
}

// Tick advances the alert timer and applies passive decay.
func (m *Model) Tick(dt float64) {
	if m.alerted {
		m.alertTimer -= dt
		if m.alertTimer <= 0 {
			m.LoseTarget()
		}
		return
	}
	m.Decay(dt)
}

// LoseTarget clears the alert and keeps the residual score and last known
// position for the search that follows.
func (m *Model) LoseTarget() {
	if !m.alerted {
		return
	}
	m.alerted = false
	m.alertTimer = 0
	if h := m.opts.Hooks.OnAlertedChanged; h != nil {
		h(false)
	}
	if h := m.opts.Hooks.OnTargetLost; h != nil {
		h()
	}
}

// Reset returns the model to calm with no memory of the target.
func (m *Model) Reset() {
	m.LoseTarget()
	m.suppressed = false
	m.hasLastKnown = false
	m.lastKnown = dmath.Vec2{}
	m.setLevel(0)
}

func (m *Model) raiseAlert() {
	m.alerted = true
	m.alertTimer = m.opts.AlertDuration

	if m.opts.Target != nil {
		if pos, ok := m.opts.Target(); ok {
			m.lastKnown, m.hasLastKnown = pos, true
		}
	}

	if h := m.opts.Hooks.OnAlertedChanged; h != nil {
		h(true)
	}
	if h := m.opts.Hooks.OnTargetDetected; h != nil {
		h(m.lastKnown)
	}
}

func (m *Model) setLevel(v float64) {
	v = gamemath.Clamp01(v)
	if v == m.level {
		return
	}
	m.level = v
	if h := m.opts.Hooks.OnLevelChanged; h != nil {
		h(v)
	}

	suspicious := v > m.opts.Thresholds.Clear
	if suspicious != m.suspicious {
		m.suspicious = suspicious
		if h := m.opts.Hooks.OnSuspiciousChanged; h != nil {
			h(suspicious)
		}
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
