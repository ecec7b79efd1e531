// Package perception answers whether an observer can see or hear the
// tracked target. Every function is pure; callers decide what a result means
// for suspicion.
package perception

import (
	"slices"

	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/config"
	"github.com/automoto/kradylechka/gamemath"
	"github.com/automoto/kradylechka/tags"
)

// Target is the read-only view of the tracked actor.
type Target interface {
	Position() dmath.Vec2
	NoiseLevel() float64
	StealthMode() bool
	StealthBonus() float64 // 0..1, subtracted from detection chance
	Alive() bool
}

// Hit is one body crossed by a ray.
type Hit struct {
	Distance float64
	Tags     []string
	Owner    any // Whatever the body belongs to; compared by identity
}

// Occluders answers ray queries against the world. Hits come back sorted by
// distance and include every body along the segment.
type Occluders interface {
	RaycastAll(origin, direction dmath.Vec2, maxDistance float64) []Hit
}

// Observer is the pose and sense settings of whoever is looking.
type Observer struct {
	Position  dmath.Vec2
	Forward   dmath.Vec2
	EyeOffset dmath.Vec2

	DetectionRange     float64
	FieldOfView        float64 // Full cone in degrees
	HearingRange       float64
	HearingSensitivity float64

	Self any // Hits owned by Self never block
}

// BlockingTags are the hit tags that defeat line of sight.
var BlockingTags = []string{tags.ResolvSolid, tags.ResolvCrowd}

// CanPerceive reports whether obs can see target: inside the view cone,
// within detection range and with nothing blocking along the ray.
func CanPerceive(obs Observer, target Target, world Occluders) bool {
	if !alive(target) {
		return false
	}
	return canSee(obs, target.Position(), world, target)
}

// CanSeePoint applies the vision test to a point of interest.
func CanSeePoint(obs Observer, point dmath.Vec2, world Occluders) bool {
	return canSee(obs, point, world, nil)
}

// HasLineOfSight checks occlusion only, ignoring the view cone and range.
func HasLineOfSight(obs Observer, point dmath.Vec2, world Occluders) bool {
	return clearLine(obs, point, world, nil)
}

func canSee(obs Observer, point dmath.Vec2, world Occluders, ignore any) bool {
	to := gamemath.Sub(point, obs.Position)
	if gamemath.Length(to) > obs.DetectionRange {
		return false
	}
	if !gamemath.IsZero(obs.Forward) && !gamemath.IsZero(to) &&
		gamemath.AngleBetween(obs.Forward, to) > obs.FieldOfView/2 {
		return false
	}
	return clearLine(obs, point, world, ignore)
}

func clearLine(obs Observer, point dmath.Vec2, world Occluders, ignore any) bool {
	if world == nil {
		return true
	}

	eye := gamemath.Add(obs.Position, obs.EyeOffset)
	to := gamemath.Sub(point, eye)
	dist := gamemath.Length(to)
	if dist == 0 {
		return true
	}

	for _, hit := range world.RaycastAll(eye, gamemath.Normalize(to), dist) {
		if hit.Owner != nil && (hit.Owner == obs.Self || (ignore != nil && hit.Owner == ignore)) {
			continue
		}
		if blocks(hit.Tags) {
			return false
		}
	}
	return true
}

func blocks(hitTags []string) bool {
	for _, t := range hitTags {
		if slices.Contains(BlockingTags, t) {
			return true
		}
	}
	return false
}

// HearingStrength returns how strongly obs hears target making noiseLevel
// noise, from 0 at the edge of hearing range upward, clamped to [0,1].
func HearingStrength(obs Observer, target Target, noiseLevel float64) float64 {
	if !alive(target) {
		return 0
	}
	return HearingStrengthAt(obs, target.Position(), noiseLevel)
}

// HearingStrengthAt is HearingStrength for a noise at point.
func HearingStrengthAt(obs Observer, point dmath.Vec2, noiseLevel float64) float64 {
	if obs.HearingRange <= 0 {
		return 0
	}
	d := gamemath.Distance(obs.Position, point)
	if d > obs.HearingRange {
		return 0
	}
	return gamemath.Clamp01(noiseLevel * obs.HearingSensitivity * (1 - d/obs.HearingRange))
}

// DetectionChance is the probability that a single sighting of target
// registers. Closer is likelier; stealth posture and skill lower it.
func DetectionChance(obs Observer, target Target) float64 {
	if !alive(target) || obs.DetectionRange <= 0 {
		return 0
	}
	d := gamemath.Distance(obs.Position, target.Position())
	chance := gamemath.Clamp01(1 - d/obs.DetectionRange)
	if target.StealthMode() {
		chance *= config.Perception.StealthDetectionMultiplier
	}
	chance *= 1 - gamemath.Clamp01(target.StealthBonus())
	return gamemath.Clamp01(chance)
}

// Roller is the random source for detection rolls. *rand.Rand satisfies it.
type Roller interface {
	Float64() float64
}

// Roll draws once and succeeds with probability chance.
func Roll(chance float64, rng Roller) bool {
	if chance <= 0 || rng == nil {
		return false
	}
	return rng.Float64() < chance
}

func alive(target Target) bool {
	return target != nil && target.Alive()
}
