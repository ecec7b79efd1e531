package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/spf13/cobra"

	"github.com/automoto/kradylechka/config"
	"github.com/automoto/kradylechka/logging"
	"github.com/automoto/kradylechka/records"
	"github.com/automoto/kradylechka/sim"
)

type runOptions struct {
	levelPath  string
	tuningPath string
	difficulty string
	logLevel   string
	format     string
	ticks      int
	seed       int64
	fast       bool
	noBot      bool
	record     bool
}

func (a *app) newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one shop episode",
		Long: `Run one episode on a shop level until the burglar is caught, escapes or
the tick limit is reached.

Examples:
  # Built-in shop, scripted burglar, as fast as possible
  stealthsim run --fast

  # Custom level at real time with debug stimuli
  stealthsim run --level levels/corner.tmx --log-level debug

  # Harder guards with a tuning overlay
  stealthsim run --difficulty hard --tuning tuning.yaml --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEpisode(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.levelPath, "level", "l", "", "Path to a Tiled level (default: built-in shop)")
	cmd.Flags().StringVar(&opts.tuningPath, "tuning", "", "YAML tuning overlay")
	cmd.Flags().StringVar(&opts.difficulty, "difficulty", "normal", "Guard difficulty (easy, normal, hard)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.format, "format", "console", "Log format (console, json)")
	cmd.Flags().IntVar(&opts.ticks, "ticks", config.Sim.MaxTicks, "Tick limit, 0 for none")
	cmd.Flags().Int64Var(&opts.seed, "seed", config.Sim.Seed, "Random seed")
	cmd.Flags().BoolVar(&opts.fast, "fast", false, "Run ticks back to back instead of at the tick rate")
	cmd.Flags().BoolVar(&opts.noBot, "no-bot", false, "Leave the player idle")
	cmd.Flags().BoolVar(&opts.record, "record", false, "Append the result to the level history")

	return cmd
}

func (a *app) runEpisode(ctx context.Context, opts *runOptions) error {
	if opts.tuningPath != "" {
		if err := config.LoadTuning(opts.tuningPath); err != nil {
			return err
		}
	}
	difficulty, err := config.ParseDifficulty(opts.difficulty)
	if err != nil {
		return err
	}
	config.ApplyDifficulty(difficulty)

	level, err := loadLevel(opts.levelPath)
	if err != nil {
		return fmt.Errorf("failed to load level: %w", err)
	}

	logger := logging.New(logging.Config{
		Level:  opts.logLevel,
		Format: opts.format,
		Output: a.stderr,
	})

	simOpts := []sim.Option{sim.WithSeed(opts.seed), sim.WithLogger(logger)}
	if !opts.noBot {
		simOpts = append(simOpts, sim.WithBot())
	}
	s := sim.New(level, simOpts...)
	watch(s, logger)

	outcome := sim.NewLoop(s, config.Sim.TickRate, opts.fast).Run(ctx, opts.ticks)

	_, _ = fmt.Fprintf(a.stdout, "level:   %s\n", level.Name)
	_, _ = fmt.Fprintf(a.stdout, "outcome: %s\n", outcome)
	_, _ = fmt.Fprintf(a.stdout, "ticks:   %d\n", s.Tick())
	if p := s.Player(); p != nil {
		_, _ = fmt.Fprintf(a.stdout, "loot:    %s\n", strings.Join(p.Loot, ", "))
	}
	if by := s.CaughtBy(); by != "" {
		_, _ = fmt.Fprintf(a.stdout, "caught by %s\n", by)
	}

	if !opts.record {
		return nil
	}
	store, err := a.openRecords()
	if err != nil {
		return err
	}
	result := records.Result{
		Level:    level.Name,
		Seed:     opts.seed,
		Outcome:  outcome.String(),
		Ticks:    s.Tick(),
		CaughtBy: s.CaughtBy(),
	}
	if p := s.Player(); p != nil {
		result.Loot = append(result.Loot, p.Loot...)
	}
	return store.Add(result)
}

// watch logs the behavior notifications the simulation emits.
func watch(s *sim.Simulation, logger *bolt.Logger) {
	s.OnBehaviorChanged(func(e sim.BehaviorChanged) {
		logging.NewEvent(logger.Debug()).Add(
			logging.AgentID(e.AgentID),
			logging.AgentType(e.AgentType),
			logging.FromKind(e.From.String()),
			logging.ToKind(e.To.String()),
			logging.Tick(e.Tick),
		).Msg("behavior changed")
	})
	s.OnWitnessed(func(e sim.Witnessed) {
		logging.NewEvent(logger.Info()).Add(
			logging.AgentID(e.AgentID),
			logging.Point("at", e.At.X, e.At.Y),
			logging.Tick(e.Tick),
		).Msg("theft witnessed")
	})
	s.OnEpisodeEnded(func(e sim.EpisodeEnded) {
		logging.NewEvent(logger.Info()).Add(
			logging.Str("outcome", e.Outcome.String()),
			logging.AgentID(e.AgentID),
			logging.Tick(e.Tick),
		).Msg("episode ended")
	})
}
