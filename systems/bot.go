package systems

import (
	"math"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/agent"
	"github.com/automoto/kradylechka/behavior"
	"github.com/automoto/kradylechka/components"
	cfg "github.com/automoto/kradylechka/config"
	"github.com/automoto/kradylechka/gamemath"
	"github.com/automoto/kradylechka/perception"
	"github.com/automoto/kradylechka/tags"
)

// UpdateBot drives a bot-controlled player: walk to the nearest item and
// take it, lay low while the staff are suspicious, then leave by the door.
// Must run before UpdatePlayer so the move it requests is walked this tick.
func UpdateBot(e *ecs.ECS) {
	ent, ok := components.Bot.First(e.World)
	if !ok || !ent.HasComponent(components.Player) {
		return
	}
	bot := components.Bot.Get(ent)
	p := components.Player.Get(ent)
	if p.Caught || bot.State == components.BotDone {
		return
	}

	dt := deltaTime(e)
	bot.DecisionTimer -= dt
	bot.LowTimer = max(0, bot.LowTimer-dt)

	// Grab the target as soon as it is in reach
	if bot.State == components.BotShopping && bot.TargetItem != "" && StealItem(e, bot.TargetItem) {
		bot.TargetItem = ""
		bot.DecisionTimer = 0
	}

	if bot.DecisionTimer > 0 {
		return
	}
	bot.DecisionTimer = bot.ReactionDelay

	updateBotState(e, bot, p)
	generateBotMoves(e, bot, p)
}

func updateBotState(e *ecs.ECS, bot *components.BotData, p *components.PlayerData) {
	alerted, watcher := staffAttention(e)
	hasLoot := len(p.Loot) >= cfg.Player.MinLoot

	switch {
	case alerted && hasLoot:
		bot.State = components.BotEscaping
	case bot.State == components.BotEscaping:
		// Committed to leaving
	case bot.State == components.BotLayingLow && bot.LowTimer > 0:
		// Still waiting it out
	case watcher != nil && bot.State == components.BotShopping:
		bot.State = components.BotLayingLow
		bot.LowTimer = cfg.Player.BotLayLowTime
		ThrowCoin(e, watcher.Position())
	case len(p.Loot) >= cfg.Player.CarryLimit || !itemsLeft(e):
		if hasLoot {
			bot.State = components.BotEscaping
		} else {
			bot.State = components.BotDone
		}
	default:
		bot.State = components.BotShopping
	}
}

func generateBotMoves(e *ecs.ECS, bot *components.BotData, p *components.PlayerData) {
	switch bot.State {
	case components.BotShopping:
		SetPosture(e, perception.Posture{})
		name, pos, ok := nearestItem(e, p.Pos)
		if !ok {
			return
		}
		bot.TargetItem = name
		MovePlayer(e, pos, false)
	case components.BotLayingLow:
		SetPosture(e, perception.Posture{Crouched: true, Stealth: true})
		MovePlayer(e, p.Pos, false)
	case components.BotEscaping:
		SetPosture(e, perception.Posture{})
		alerted, _ := staffAttention(e)
		if alerted && !bot.Sprinted {
			bot.Sprinted = true
			PlayerSprinted(e)
		}
		MovePlayer(e, p.Exit, alerted)
	case components.BotDone:
		MovePlayer(e, p.Pos, false)
	}
}

// staffAttention reports whether any agent is alerted, and returns the
// nearest suspicious guard-role agent that is not distracted.
func staffAttention(e *ecs.ECS) (bool, *agent.Agent) {
	p := GetPlayer(e)
	alerted := false
	var watcher *agent.Agent
	bestDist := math.MaxFloat64

	tags.Guard.Each(e.World, func(entry *donburi.Entry) {
		a := components.Agent.Get(entry).Agent
		if a.IsAlerted() {
			alerted = true
			return
		}
		if !a.IsSuspicious() || a.Kind() == behavior.KindDistracted || p == nil {
			return
		}
		if d := gamemath.Distance(p.Pos, a.Position()); d < bestDist {
			watcher, bestDist = a, d
		}
	})
	return alerted, watcher
}

func nearestItem(e *ecs.ECS, from dmath.Vec2) (string, dmath.Vec2, bool) {
	name := ""
	var pos dmath.Vec2
	bestDist := math.MaxFloat64
	tags.Item.Each(e.World, func(entry *donburi.Entry) {
		item := components.Item.Get(entry)
		if d := gamemath.Distance(from, item.Pos); d < bestDist {
			name, pos, bestDist = item.Name, item.Pos, d
		}
	})
	return name, pos, name != ""
}

func itemsLeft(e *ecs.ECS) bool {
	n := 0
	tags.Item.Each(e.World, func(*donburi.Entry) { n++ })
	return n > 0
}
