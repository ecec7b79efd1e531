package sim

import (
	"context"
	"strconv"
	"time"

	"github.com/automoto/kradylechka/logging"
)

// Loop steps a simulation at a fixed tick rate, or as fast as possible.
type Loop struct {
	sim      *Simulation
	tickRate int
	fast     bool
}

func NewLoop(s *Simulation, tickRate int, fast bool) *Loop {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Loop{sim: s, tickRate: tickRate, fast: fast}
}

// Run steps until the episode ends, maxTicks ticks have run or ctx is
// cancelled, and returns the outcome at that point. A maxTicks of zero or
// less runs until the episode ends.
func (g *Loop) Run(ctx context.Context, maxTicks int) Outcome {
	logging.NewEvent(g.sim.logger.Info()).Add(
		logging.Int("tick_rate", g.tickRate),
		logging.Int("max_ticks", maxTicks),
		logging.Str("fast", strconv.FormatBool(g.fast)),
	).Msg("loop started")

	if g.fast {
		return g.runFast(ctx, maxTicks)
	}

	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			g.stopped("cancelled")
			return g.sim.Outcome()
		case <-ticker.C:
			if g.tick(maxTicks) {
				return g.sim.Outcome()
			}
		}
	}
}

func (g *Loop) runFast(ctx context.Context, maxTicks int) Outcome {
	for {
		if ctx.Err() != nil {
			g.stopped("cancelled")
			return g.sim.Outcome()
		}
		if g.tick(maxTicks) {
			return g.sim.Outcome()
		}
	}
}

// tick steps once and reports whether the loop should stop.
func (g *Loop) tick(maxTicks int) bool {
	if g.sim.Step() != OutcomeRunning {
		g.stopped("episode over")
		return true
	}
	if maxTicks > 0 && g.sim.Tick() >= maxTicks {
		g.stopped("tick limit")
		return true
	}
	return false
}

func (g *Loop) stopped(reason string) {
	logging.NewEvent(g.sim.logger.Info()).Add(
		logging.Str("reason", reason),
		logging.Str("outcome", g.sim.Outcome().String()),
		logging.Tick(g.sim.Tick()),
	).Msg("loop stopped")
}
