package components

import "github.com/yohamta/donburi"

// BotState is what the scripted burglar is currently trying to do.
type BotState int

const (
	BotShopping  BotState = iota // Walking to the next item
	BotLayingLow                 // Crouched until the staff calm down
	BotEscaping                  // Heading for the door
	BotDone
)

func (s BotState) String() string {
	switch s {
	case BotShopping:
		return "shopping"
	case BotLayingLow:
		return "laying_low"
	case BotEscaping:
		return "escaping"
	case BotDone:
		return "done"
	default:
		return "unknown"
	}
}

// BotData drives the player entity without input.
type BotData struct {
	State         BotState
	TargetItem    string
	DecisionTimer float64 // Seconds until the next re-evaluation
	ReactionDelay float64
	LowTimer      float64 // Seconds left laying low
	Sprinted      bool    // A sprint is reported once per escape
}

var Bot = donburi.NewComponentType[BotData]()
