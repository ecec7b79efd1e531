package systems

import (
	"strings"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/bus"
	"github.com/automoto/kradylechka/components"
	cfg "github.com/automoto/kradylechka/config"
	"github.com/automoto/kradylechka/gamemath"
	"github.com/automoto/kradylechka/logging"
	"github.com/automoto/kradylechka/perception"
	"github.com/automoto/kradylechka/tags"
)

// GetPlayer returns the player, or nil when the level has none.
func GetPlayer(e *ecs.ECS) *components.PlayerData {
	ent, ok := components.Player.First(e.World)
	if !ok {
		return nil
	}
	return components.Player.Get(ent)
}

// UpdatePlayer walks the player, counts down the distraction cooldown and
// ends the episode when the player reaches the door with enough loot.
func UpdatePlayer(e *ecs.ECS) {
	p := GetPlayer(e)
	if p == nil {
		return
	}
	dt := deltaTime(e)

	if p.Nav != nil {
		p.Nav.Step(dt)
		p.Pos = p.Nav.Position()
		if p.Nav.RemainingDistance() == 0 {
			p.Posture.Running = false
		}
	}
	p.Cooldown = max(0, p.Cooldown-dt)

	checkEscape(e, p)
}

func checkEscape(e *ecs.ECS, p *components.PlayerData) {
	episode := GetEpisode(e)
	if episode == nil || episode.Outcome != components.OutcomeRunning || p.Caught {
		return
	}
	if len(p.Loot) < cfg.Player.MinLoot || gamemath.Distance(p.Pos, p.Exit) > cfg.Player.ExitRadius {
		return
	}

	episode.Outcome = components.OutcomeEscaped
	logging.NewEvent(logger(e).Info()).Add(
		logging.Point("at", p.Pos.X, p.Pos.Y),
		logging.Str("loot", strings.Join(p.Loot, ",")),
		logging.Tick(episode.Tick),
	).Msg("escaped")

	EpisodeEndedEvent.Publish(e.World, EpisodeEnded{
		Outcome: components.OutcomeEscaped,
		Loot:    append([]string(nil), p.Loot...),
		Tick:    episode.Tick,
	})
}

// MovePlayer sends the player toward dest, running or walking.
func MovePlayer(e *ecs.ECS, dest dmath.Vec2, running bool) {
	p := GetPlayer(e)
	if p == nil || p.Nav == nil || p.Caught {
		return
	}
	p.Posture.Running = running
	speed := cfg.Player.WalkSpeed
	if running {
		speed = cfg.Player.RunSpeed
	}
	p.Nav.RequestMove(dest, speed)
}

// SetPosture sets crouch and stealth. Overload follows the loot count and
// running follows the last move request.
func SetPosture(e *ecs.ECS, posture perception.Posture) {
	p := GetPlayer(e)
	if p == nil {
		return
	}
	p.Posture.Crouched = posture.Crouched
	p.Posture.Stealth = posture.Stealth
}

// StealItem takes the named item if the player can reach it and publishes
// the theft. It reports whether the item was taken.
func StealItem(e *ecs.ECS, name string) bool {
	p := GetPlayer(e)
	if p == nil || p.Caught {
		return false
	}

	var found *donburi.Entry
	tags.Item.Each(e.World, func(entry *donburi.Entry) {
		if found == nil && components.Item.Get(entry).Name == name {
			found = entry
		}
	})
	if found == nil {
		return false
	}
	item := *components.Item.Get(found)
	if gamemath.Distance(p.Pos, item.Pos) > cfg.Player.ReachDistance {
		return false
	}

	if space := GetSpace(e); space != nil {
		space.Remove(components.Object.Get(found).Body)
	}
	e.World.Remove(found.Entity())

	p.Loot = append(p.Loot, item.Name)
	p.Posture.Overloaded = len(p.Loot) > cfg.Player.CarryLimit

	logging.NewEvent(logger(e).Info()).Add(
		logging.Str("item", item.Name),
		logging.Point("at", item.Pos.X, item.Pos.Y),
		logging.Tick(currentTick(e)),
	).Msg("theft")

	Publish(e, bus.Event{
		Origin:    item.Pos,
		Magnitude: cfg.Bus.TheftMagnitude,
		Category:  bus.Theft,
	})
	return true
}

// PlayerSprinted reports the player breaking into a run.
func PlayerSprinted(e *ecs.ECS) {
	p := GetPlayer(e)
	if p == nil {
		return
	}
	Publish(e, bus.Event{
		Origin:    p.Pos,
		Magnitude: cfg.Bus.SprintMagnitude,
		Category:  bus.Sprinting,
	})
}

// MakeNoise publishes a loud noise at pos.
func MakeNoise(e *ecs.ECS, pos dmath.Vec2, magnitude float64) {
	Publish(e, bus.Event{
		Origin:    pos,
		Magnitude: magnitude,
		Category:  bus.LoudNoise,
	})
}

// Publish puts an event on the stage bus.
func Publish(e *ecs.ECS, ev bus.Event) {
	stage := GetStage(e)
	if stage == nil || stage.Bus == nil {
		return
	}
	logging.NewEvent(logger(e).Debug()).Add(
		logging.Category(ev.Category.String()),
		logging.Float("magnitude", ev.Magnitude),
		logging.Point("origin", ev.Origin.X, ev.Origin.Y),
		logging.Tick(currentTick(e)),
	).Msg("stimulus")
	stage.Bus.Publish(ev)
}

// ThrowCoin tosses a coin toward at, landing no further than the throw
// range, and distracts the staff near where it lands. It reports how many
// agents took the bait and whether the toss happened at all.
func ThrowCoin(e *ecs.ECS, at dmath.Vec2) (int, bool) {
	p := GetPlayer(e)
	if p == nil || p.Caught || p.Cooldown > 0 {
		return 0, false
	}

	landing := at
	if off := gamemath.Sub(at, p.Pos); gamemath.Length(off) > cfg.Player.ThrowRange {
		landing = gamemath.Add(p.Pos, gamemath.Scale(gamemath.Normalize(off), cfg.Player.ThrowRange))
	}
	p.Cooldown = cfg.Player.DistractionCooldown

	n := DistractAround(e, tags.Guard, landing, cfg.Player.ThrowRange)
	logging.NewEvent(logger(e).Debug()).Add(
		logging.Point("landing", landing.X, landing.Y),
		logging.Int("distracted", n),
		logging.Tick(currentTick(e)),
	).Msg("coin thrown")
	return n, true
}

// ShoutSale announces a promo at the player's position to the customers in
// earshot, who crowd around and block the staff's view.
func ShoutSale(e *ecs.ECS) (int, bool) {
	p := GetPlayer(e)
	if p == nil || p.Caught || p.Cooldown > 0 {
		return 0, false
	}
	p.Cooldown = cfg.Player.DistractionCooldown

	n := AnnouncePromo(e, p.Pos, cfg.Player.ShoutRange)
	logging.NewEvent(logger(e).Debug()).Add(
		logging.Point("at", p.Pos.X, p.Pos.Y),
		logging.Int("drawn", n),
		logging.Tick(currentTick(e)),
	).Msg("sale shouted")
	return n, true
}
