package behavior

// Promo hurries a customer to an announced promotion and keeps them there
// while interest lasts. Customers crowding a promo block sight lines.
type Promo struct {
	actor   Shopper
	move    mover
	timer   float64
	atPromo bool
	done    bool
}

func NewPromo(a Shopper) *Promo {
	return &Promo{actor: a}
}

func (s *Promo) Kind() Kind { return KindPromo }

// AtPromo reports whether the customer has reached the promo point.
func (s *Promo) AtPromo() bool { return s.atPromo }

func (s *Promo) Enter() {
	tuning := s.actor.Tuning()
	s.timer = tuning.PromoInterest
	s.atPromo = false
	s.done = false
	if p, ok := s.actor.PromoPoint(); ok {
		s.move.moveTo(p, tuning.PromoSpeed)
	}
}

func (s *Promo) Update() {
	if s.done {
		return
	}
	nav := s.actor.Navigator()
	s.move.update(nav, s.actor.DeltaTime())
	if !s.atPromo && s.move.arrived(nav, s.actor.Tuning().ArriveDistance) {
		s.atPromo = true
		s.move.stop(nav)
	}

	s.timer -= s.actor.DeltaTime()
	if s.timer <= 0 {
		s.done = true
		s.actor.EndPromo()
	}
}

func (s *Promo) Exit() {
	s.move.stop(s.actor.Navigator())
	s.atPromo = false
}
