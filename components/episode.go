package components

import "github.com/yohamta/donburi"

// Outcome is how an episode ended.
type Outcome int

const (
	OutcomeRunning Outcome = iota
	OutcomeCaught
	OutcomeEscaped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeCaught:
		return "caught"
	case OutcomeEscaped:
		return "escaped"
	default:
		return "unknown"
	}
}

// EpisodeData tracks the tick count and the terminal outcome.
type EpisodeData struct {
	Tick     int
	Outcome  Outcome
	CaughtBy string // Agent ID, set with OutcomeCaught
}

var Episode = donburi.NewComponentType[EpisodeData]()
