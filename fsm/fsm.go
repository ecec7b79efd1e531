// Package fsm is a small tick-driven state machine. Transitions are guarded
// edges evaluated every Tick; any-state transitions are checked first.
package fsm

// State is one behavior unit driven by a Machine.
type State interface {
	Enter()
	Update()
	Exit()
}

// Guard reports whether a transition may fire. Guards are evaluated every
// tick and must not change the machine.
type Guard func() bool

type transition struct {
	to    State
	guard Guard
}

// Machine drives a single current state.
type Machine struct {
	current  State
	any      []transition
	from     map[State][]transition
	onChange func(from, to State)
}

// New returns a machine whose current state is initial. Enter is called on it.
func New(initial State) *Machine {
	if initial == nil {
		panic("fsm: nil initial state")
	}
	m := &Machine{
		current: initial,
		from:    make(map[State][]transition),
	}
	initial.Enter()
	return m
}

// AddTransition registers from -> to, taken when guard returns true.
func (m *Machine) AddTransition(from, to State, guard Guard) {
	m.from[from] = append(m.from[from], transition{to: to, guard: guard})
}

// AddAnyTransition registers a transition to "to" usable from every state.
func (m *Machine) AddAnyTransition(to State, guard Guard) {
	m.any = append(m.any, transition{to: to, guard: guard})
}

// OnChange sets a hook called after every state change, once Enter has run.
func (m *Machine) OnChange(fn func(from, to State)) {
	m.onChange = fn
}

func (m *Machine) Current() State {
	return m.current
}

// SetState exits the current state and enters s. Setting the current state
// again does nothing.
func (m *Machine) SetState(s State) {
	if s == nil || s == m.current {
		return
	}
	prev := m.current
	prev.Exit()
	m.current = s
	s.Enter()
	if m.onChange != nil {
		m.onChange(prev, s)
	}
}

// Tick fires at most one transition, then updates the current state.
func (m *Machine) Tick() {
	if next := m.next(); next != nil {
		m.SetState(next)
	}
	m.current.Update()
}

func (m *Machine) next() State {
	for _, t := range m.any {
		if t.guard() {
			return t.to
		}
	}
	for _, t := range m.from[m.current] {
		if t.guard() {
			return t.to
		}
	}
	return nil
}
