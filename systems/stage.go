package systems

import (
	"github.com/felixgeelhaar/bolt/v3"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/kradylechka/components"
	"github.com/automoto/kradylechka/logging"
	"github.com/automoto/kradylechka/world"
)

// GetStage returns the shared simulation context, or nil before one exists.
func GetStage(e *ecs.ECS) *components.StageData {
	ent, ok := components.Stage.First(e.World)
	if !ok {
		return nil
	}
	return components.Stage.Get(ent)
}

// GetEpisode returns the episode tracker stored alongside the stage.
func GetEpisode(e *ecs.ECS) *components.EpisodeData {
	ent, ok := components.Episode.First(e.World)
	if !ok {
		return nil
	}
	return components.Episode.Get(ent)
}

func GetSpace(e *ecs.ECS) *world.Space {
	ent, ok := components.Space.First(e.World)
	if !ok {
		return nil
	}
	return components.Space.Get(ent).Space
}

// IsEpisodeOver reports whether the player was caught or escaped.
func IsEpisodeOver(e *ecs.ECS) bool {
	episode := GetEpisode(e)
	return episode != nil && episode.Outcome != components.OutcomeRunning
}

// WithEpisodeChecks wraps a system to skip execution once the episode ended.
func WithEpisodeChecks(system ecs.System) ecs.System {
	return func(e *ecs.ECS) {
		if IsEpisodeOver(e) {
			return
		}
		system(e)
	}
}

// UpdateEpisode advances the tick counter.
func UpdateEpisode(e *ecs.ECS) {
	if episode := GetEpisode(e); episode != nil {
		episode.Tick++
	}
}

func deltaTime(e *ecs.ECS) float64 {
	if stage := GetStage(e); stage != nil {
		return stage.DeltaTime
	}
	return 0
}

func currentTick(e *ecs.ECS) int {
	if episode := GetEpisode(e); episode != nil {
		return episode.Tick
	}
	return 0
}

func logger(e *ecs.ECS) *bolt.Logger {
	if stage := GetStage(e); stage != nil && stage.Logger != nil {
		return stage.Logger
	}
	return logging.Discard()
}
