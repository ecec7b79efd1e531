package behavior

// Kind tags a behavior state so animation and UI can switch on it without
// knowing the concrete state type.
type Kind int

const (
	KindIdle Kind = iota
	KindPatrol
	KindInvestigate
	KindChase
	KindFlee
	KindReport
	KindDistracted
	KindPromo
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindPatrol:
		return "patrol"
	case KindInvestigate:
		return "investigate"
	case KindChase:
		return "chase"
	case KindFlee:
		return "flee"
	case KindReport:
		return "report"
	case KindDistracted:
		return "distracted"
	case KindPromo:
		return "promo"
	default:
		return "unknown"
	}
}
