package config

import "fmt"

// Difficulty scales how attentive the shop staff are
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
)

// DifficultyConfig holds multipliers applied to every guard-role agent type
type DifficultyConfig struct {
	RangeScale  float64 // Detection and hearing range
	GrowthScale float64 // Suspicion growth while seen or heard
	AlertScale  float64 // Alert timer duration
}

// DifficultyData holds all difficulty presets
type DifficultyData struct {
	Presets map[Difficulty]DifficultyConfig
}

var Difficulties DifficultyData

func init() {
	Difficulties = DifficultyData{
		Presets: map[Difficulty]DifficultyConfig{
			DifficultyEasy: {
				RangeScale:  0.75,
				GrowthScale: 0.6,
				AlertScale:  0.7,
			},
			DifficultyNormal: {
				RangeScale:  1.0,
				GrowthScale: 1.0,
				AlertScale:  1.0,
			},
			DifficultyHard: {
				RangeScale:  1.25,
				GrowthScale: 1.5,
				AlertScale:  1.5, // Guards hold a grudge
			},
		},
	}
}

// ParseDifficulty maps a CLI name to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return DifficultyEasy, nil
	case "", "normal":
		return DifficultyNormal, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return DifficultyNormal, fmt.Errorf("unknown difficulty %q", s)
	}
}

// ApplyDifficulty scales the guard-role agent types and the alert timer.
// Call it once, after any tuning overlay.
func ApplyDifficulty(d Difficulty) {
	preset, ok := Difficulties.Presets[d]
	if !ok {
		return
	}

	for name, t := range Agents.Types {
		if t.Role != RoleGuard {
			continue
		}
		t.DetectionRange *= preset.RangeScale
		t.HearingRange *= preset.RangeScale
		t.GrowthRate *= preset.GrowthScale
		Agents.Types[name] = t
	}
	Suspicion.AlertDuration *= preset.AlertScale
}
