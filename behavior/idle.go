package behavior

// Idle stands still.
type Idle struct {
	actor Actor
}

func NewIdle(a Actor) *Idle {
	return &Idle{actor: a}
}

func (s *Idle) Kind() Kind { return KindIdle }

func (s *Idle) Enter() {
	if nav := s.actor.Navigator(); nav != nil {
		nav.SetStopped(true)
	}
}

func (s *Idle) Update() {}
func (s *Idle) Exit()   {}
