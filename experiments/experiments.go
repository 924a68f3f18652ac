package experiments

import (
	"context"
	"fmt"
	"time"

	"rps/engine"
	"rps/experiments/metrics"
	"rps/game"
	"rps/gamemaster"
	"rps/searcher"
	"rps/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Settings describe the games played for every matchup.
type Settings struct {
	Games      int // Per match up
	Spawn      gamemaster.SpawnConfig
	Seed       uint64
	MaxTicks   int
	Workers    int
	Visibility int
	OutDir     string
}

func DefaultSettings() Settings {
	return Settings{
		Games:    10,
		Spawn:    gamemaster.SpawnConfig{Contestants: 9, Width: 15, Height: 15},
		Seed:     1,
		MaxTicks: engine.DefaultMaxTicks,
		Workers:  engine.DefaultWorkers,
		OutDir:   "experiments",
	}
}

// Result is what an experiment wrote to Dir.
type Result struct {
	RunID   string
	Dir     string
	Configs []metrics.AgentConfig
	Games   []metrics.GameRecord
	Moves   []metrics.MoveRecord
}

const TimeBudget = 5 * time.Millisecond

// RunDepthExperiment pits planners of increasing depth, playing the rock
// agents, against a depth 0 planner and a random mover playing the rest.
func RunDepthExperiment(ctx context.Context, s Settings) (*Result, error) {
	baseline := metrics.AgentConfig{ID: 0, Depth: 0, Opponents: searcher.Sequential.String()}
	random := metrics.AgentConfig{ID: 100, Random: true}
	depthConfigs := []metrics.AgentConfig{
		{ID: 1, Depth: 0, Opponents: searcher.Sequential.String()}, // Baseline equivalent
		{ID: 2, Depth: 1, Opponents: searcher.Sequential.String()},
		{ID: 3, Depth: 2, Opponents: searcher.Sequential.String()},
		{ID: 4, Depth: 3, Opponents: searcher.Sequential.String()},
		{ID: 5, Depth: 2, Opponents: searcher.Simultaneous.String()},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range depthConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, baseline})
	}
	matchUps = append(matchUps, []metrics.AgentConfig{depthConfigs[1], random})

	configs := append(depthConfigs, baseline, random)
	return runExperiment(ctx, s, "depth", configs, matchUps)
}

// RunBudgetExperiment gives deep planners a shrinking time budget so that
// they stop early, against a depth 1 baseline.
func RunBudgetExperiment(ctx context.Context, s Settings) (*Result, error) {
	baseline := metrics.AgentConfig{ID: 0, Depth: 1, Opponents: searcher.Sequential.String()}
	budgetConfigs := []metrics.AgentConfig{
		{ID: 1, Depth: 6, Duration: TimeBudget / 5, Opponents: searcher.Sequential.String()},
		{ID: 2, Depth: 6, Duration: TimeBudget, Opponents: searcher.Sequential.String()},
		{ID: 3, Depth: 6, Duration: 4 * TimeBudget, Opponents: searcher.Sequential.String()},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range budgetConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, baseline})
	}

	return runExperiment(ctx, s, "budget", append(budgetConfigs, baseline), matchUps)
}

func runExperiment(ctx context.Context, s Settings, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (*Result, error) {
	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		challenger := matchup[0]
		baseline := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between challenger=%+v and baseline=%+v...", mi+1, len(matchUps), challenger, baseline)

		for i := 0; i < s.Games; i++ {
			// Every matchup replays the same spawns
			seed := s.Seed + uint64(i)
			winner, gameMetric, moveMetrics, err := runGame(ctx, s, seed, challenger, baseline)
			if err != nil {
				return nil, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Challenger: challenger.ID,
				Baseline:   baseline.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %q", mi+1, len(matchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(s.OutDir, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return nil, fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return nil, fmt.Errorf("failed to store game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return nil, fmt.Errorf("failed to store move records: %w", err)
	}
	log.Info().Msgf("stored %s experiment run %s in %s", name, writer.RunID, writer.Dir())

	return &Result{
		RunID:   writer.RunID.String(),
		Dir:     writer.Dir(),
		Configs: configs,
		Games:   gameRecords,
		Moves:   moveRecords,
	}, nil
}

// runGame spawns a game in which the challenger plays every rock agent.
func runGame(ctx context.Context, s Settings, seed uint64, challenger, baseline metrics.AgentConfig) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	gm := gamemaster.NewGameMaster(seed)
	state, err := gm.InitializeGame(s.Spawn)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}

	domain := game.NewDomain(s.Visibility)
	challengerAgent, err := createAgent(challenger, domain, seed)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	baselineAgent, err := createAgent(baseline, domain, seed)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}

	options := []engine.Option{engine.WithMaxTicks(s.MaxTicks), engine.WithWorkers(s.Workers)}
	for _, id := range state.IDs() {
		if state.Agents[id].Type == game.Rock {
			options = append(options, engine.WithAgent(id, challengerAgent))
		}
	}
	e := engine.New(domain, baselineAgent, state, options...)

	return e.Run(ctx)
}

func createAgent(config metrics.AgentConfig, domain *game.Domain, seed uint64) (agent.Agent, error) {
	if config.Random {
		return agent.NewRandomAgent(seed), nil
	}

	options := []searcher.Option{searcher.WithDepth(config.Depth)}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Opponents != "" {
		mode, err := searcher.ParseOpponentMode(config.Opponents)
		if err != nil {
			return nil, err
		}
		options = append(options, searcher.WithOpponentMode(mode))
	}

	options = append(options, searcher.WithMetrics())
	return agent.NewPlannerAgent(domain, options...), nil
}
