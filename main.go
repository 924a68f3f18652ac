package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"rps/communication"
	"rps/communication/client"
	"rps/communication/server"
	"rps/config"
	"rps/engine"
	"rps/experiments"
	"rps/game"
	"rps/gamemaster"
	"rps/player"
	"rps/searcher/agent"
	"rps/view"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	configPath string
	cfg        config.Config
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Fatal().Msgf("%v", err)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rps",
		Short:         "Lookahead planning agents in a rock/paper/scissors battle royale",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			return applyFlags(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().Uint64("seed", 0, "spawn seed")
	root.PersistentFlags().Int("depth", -1, "lookahead depth")
	root.PersistentFlags().Duration("budget", 0, "time budget per planning call")
	root.PersistentFlags().String("opponents", "", "opponent model (sequential, simultaneous)")

	root.AddCommand(runCmd(), experimentCmd(), followCmd())
	return root
}

// applyFlags lets explicitly set flags override the loaded config.
func applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("depth") {
		cfg.Planning.Depth, _ = flags.GetInt("depth")
	}
	if flags.Changed("budget") {
		cfg.Planning.TimeBudget, _ = flags.GetDuration("budget")
	}
	if flags.Changed("opponents") {
		cfg.Planning.Opponents, _ = flags.GetString("opponents")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	level, _ := zerolog.ParseLevel(cfg.Log.Level)
	zerolog.SetGlobalLevel(level)
	if cfg.Log.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return nil
}

func runCmd() *cobra.Command {
	var serve bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate one game",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runGame(ctx, serve)
		},
	}
	cmd.Flags().BoolVar(&serve, "serve", false, "publish the game over HTTP on server.addr")
	return cmd
}

func runGame(ctx context.Context, serve bool) error {
	state, err := gamemaster.NewGameMaster(cfg.Simulation.Seed).InitializeGame(cfg.Spawn())
	if err != nil {
		return err
	}

	domain := game.NewDomain(cfg.Simulation.Visibility)
	policy := agent.NewPlannerAgent(domain, cfg.PlannerOptions()...)
	if cfg.Planning.Random {
		policy = agent.NewRandomAgent(cfg.Simulation.Seed)
	}

	options := cfg.EngineOptions()
	if cfg.Simulation.Render {
		v := view.New(os.Stdout)
		options = append(options, engine.WithHook(func(tick uint64, state *game.GlobalState) {
			fmt.Print(v.Render(tick, state))
		}))
	}

	g, gctx := errgroup.WithContext(ctx)
	if serve {
		sc := server.NewServerCommunicator(domain, cfg.PlannerOptions()...)
		sc.LimitPlans(cfg.Server.PlanRate, cfg.Server.PlanBurst)
		sc.UpdateGameState(0, state)
		options = append(options, engine.WithHook(func(tick uint64, state *game.GlobalState) {
			sc.UpdateGameState(tick+1, state)
		}))
		g.Go(func() error {
			return sc.Start(gctx, cfg.Server.Addr)
		})
	}

	g.Go(func() error {
		winner, gameMetric, _, err := engine.New(domain, policy, state, options...).Run(gctx)
		if err != nil {
			return err
		}
		log.Info().Msgf("game over after %d ticks with %d conversions, winner: %q", gameMetric.TotalTicks, gameMetric.Conversions, winner)
		if serve {
			log.Info().Msg("still serving the final state, interrupt to stop")
			<-gctx.Done()
		}
		return nil
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func experimentCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "experiment [depth|budget]",
		Short:     "Play matchups and write CSV results",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"depth", "budget"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var run func(context.Context, experiments.Settings) (*experiments.Result, error)
			switch args[0] {
			case "depth":
				run = experiments.RunDepthExperiment
			case "budget":
				run = experiments.RunBudgetExperiment
			default:
				return fmt.Errorf("unknown experiment %q", args[0])
			}
			_, err := run(cmd.Context(), cfg.ExperimentSettings())
			return err
		},
	}
}

func followCmd() *cobra.Command {
	var (
		url      string
		id       uint32
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "follow",
		Short: "Ask a running game server for advice on one agent every tick",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			depth := -1
			if cmd.Flags().Changed("depth") {
				depth = cfg.Planning.Depth
			}
			p := player.NewPlayer(game.AgentID(id), client.NewClientCommunicator(url), depth)
			return p.Play(ctx, interval, func(resp communication.PlanResponse) {
				if resp.Action == nil {
					log.Info().Msgf("tick %d: agent %d idles", resp.Tick, resp.Agent)
					return
				}
				log.Info().Msgf("tick %d: agent %d should %s (%d levels, %d nodes)", resp.Tick, resp.Agent, resp.Action, resp.Metric.Levels, resp.Metric.Nodes)
			})
		},
	}
	cmd.Flags().StringVar(&url, "server", "http://localhost:8080", "game server URL")
	cmd.Flags().Uint32Var(&id, "agent", 1, "agent to follow")
	cmd.Flags().DurationVar(&interval, "interval", 200*time.Millisecond, "polling interval")
	return cmd
}
