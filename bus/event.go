package bus

import dmath "github.com/yohamta/donburi/features/math"

// Category classifies what kind of incident an Event reports.
type Category int

const (
	Theft Category = iota
	LoudNoise
	Sprinting
	WeaponDrawn
	BackupCall // A guard radioing the others after spotting the player
)

func (c Category) String() string {
	switch c {
	case Theft:
		return "Theft"
	case LoudNoise:
		return "LoudNoise"
	case Sprinting:
		return "Sprinting"
	case WeaponDrawn:
		return "WeaponDrawn"
	case BackupCall:
		return "BackupCall"
	default:
		return "Unknown"
	}
}

// Event is a suspicion stimulus. Magnitude is a severity on a 0-100 scale,
// not a suspicion score; each listener converts it.
type Event struct {
	Origin    dmath.Vec2
	Magnitude float64
	Category  Category
	Source    string // Publishing agent ID, empty for world detectors
}
