package perception

import "github.com/automoto/kradylechka/config"

// Posture describes how the target is moving this tick.
type Posture struct {
	Running    bool
	Crouched   bool
	Stealth    bool
	Overloaded bool // Carrying more than the weight limit
}

// NoiseLevel converts a posture into the noise scalar hearing expects.
func NoiseLevel(p Posture) float64 {
	cfg := config.Perception

	noise := cfg.BaseNoise
	if p.Running {
		noise = cfg.RunningNoise
	}
	if p.Crouched || p.Stealth {
		noise *= cfg.CrouchNoise
	}
	if p.Overloaded {
		noise *= cfg.OverloadedNoise
	}
	return noise
}

// StealthBonus converts a stealth skill level to a detection reduction.
func StealthBonus(level int) float64 {
	if level <= 0 {
		return 0
	}
	return min(1, float64(level)*config.Perception.StealthBonusPerLevel)
}
