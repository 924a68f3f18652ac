package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"rps/engine"
	"rps/experiments"
	"rps/gamemaster"
	"rps/searcher"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Simulation  SimulationConfig  `yaml:"simulation"`
	Planning    PlanningConfig    `yaml:"planning"`
	Log         LogConfig         `yaml:"log"`
	Server      ServerConfig      `yaml:"server"`
	Experiments ExperimentsConfig `yaml:"experiments"`
}

type SimulationConfig struct {
	Contestants int           `yaml:"contestants"`
	Width       int           `yaml:"width"`
	Height      int           `yaml:"height"`
	MaxTicks    int           `yaml:"max_ticks"`
	Seed        uint64        `yaml:"seed"`
	StepDelay   time.Duration `yaml:"step_delay"`
	Visibility  int           `yaml:"visibility"`
	Render      bool          `yaml:"render"`
}

type PlanningConfig struct {
	Depth      int           `yaml:"depth"`
	TimeBudget time.Duration `yaml:"time_budget"`
	Opponents  string        `yaml:"opponents"`
	Workers    int           `yaml:"workers"`
	Random     bool          `yaml:"random"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type ServerConfig struct {
	Addr      string  `yaml:"addr"`
	PlanRate  float64 `yaml:"plan_rate"` // Requests per second, 0 for unlimited
	PlanBurst int     `yaml:"plan_burst"`
}

type ExperimentsConfig struct {
	Games  int    `yaml:"games"`
	OutDir string `yaml:"out_dir"`
}

func Default() Config {
	return Config{
		Simulation: SimulationConfig{
			Contestants: 9,
			Width:       15,
			Height:      15,
			MaxTicks:    engine.DefaultMaxTicks,
			Seed:        1,
			Visibility:  5,
		},
		Planning: PlanningConfig{
			Depth:     searcher.DefaultDepth,
			Opponents: searcher.Sequential.String(),
			Workers:   engine.DefaultWorkers,
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
		Server: ServerConfig{
			Addr:      ":8080",
			PlanRate:  20,
			PlanBurst: 5,
		},
		Experiments: ExperimentsConfig{
			Games:  10,
			OutDir: "experiments",
		},
	}
}

// Load reads path over the defaults, applies RPS_* environment overrides and
// validates the result. An empty path only applies the environment.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return config, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("parse config file: %w", err)
		}
	}

	loadFromEnv(&config)

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func loadFromEnv(config *Config) {
	if v := os.Getenv("RPS_DEPTH"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Planning.Depth = i
		}
	}
	if v := os.Getenv("RPS_TIME_BUDGET"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Planning.TimeBudget = d
		}
	}
	if v := os.Getenv("RPS_OPPONENTS"); v != "" {
		config.Planning.Opponents = v
	}
	if v := os.Getenv("RPS_SEED"); v != "" {
		if i, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Simulation.Seed = i
		}
	}
	if v := os.Getenv("RPS_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv("RPS_SERVER_ADDR"); v != "" {
		config.Server.Addr = v
	}
}

func (c Config) Validate() error {
	if c.Simulation.Contestants < 1 {
		return fmt.Errorf("contestants must be >= 1")
	}
	if c.Simulation.Width < 1 || c.Simulation.Height < 1 {
		return fmt.Errorf("width and height must be >= 1")
	}
	if c.Simulation.MaxTicks < 1 {
		return fmt.Errorf("max_ticks must be >= 1")
	}
	if c.Simulation.StepDelay < 0 {
		return fmt.Errorf("step_delay must be >= 0")
	}
	if c.Planning.Depth < 0 {
		return fmt.Errorf("depth must be >= 0")
	}
	if c.Planning.TimeBudget < 0 {
		return fmt.Errorf("time_budget must be >= 0")
	}
	if c.Planning.Workers < 1 {
		return fmt.Errorf("workers must be >= 1")
	}
	if _, err := searcher.ParseOpponentMode(c.Planning.Opponents); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.Server.PlanRate < 0 {
		return fmt.Errorf("plan_rate must be >= 0")
	}
	if c.Experiments.Games < 1 {
		return fmt.Errorf("games must be >= 1")
	}
	return nil
}

func (c Config) Spawn() gamemaster.SpawnConfig {
	return gamemaster.SpawnConfig{
		Contestants: c.Simulation.Contestants,
		Width:       c.Simulation.Width,
		Height:      c.Simulation.Height,
	}
}

// PlannerOptions assumes c has been validated.
func (c Config) PlannerOptions() []searcher.Option {
	mode, _ := searcher.ParseOpponentMode(c.Planning.Opponents)
	return []searcher.Option{
		searcher.WithDepth(c.Planning.Depth),
		searcher.WithDuration(c.Planning.TimeBudget),
		searcher.WithOpponentMode(mode),
		searcher.WithMetrics(),
	}
}

func (c Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithMaxTicks(c.Simulation.MaxTicks),
		engine.WithWorkers(c.Planning.Workers),
		engine.WithStepDelay(c.Simulation.StepDelay),
	}
}

func (c Config) ExperimentSettings() experiments.Settings {
	return experiments.Settings{
		Games:      c.Experiments.Games,
		Spawn:      c.Spawn(),
		Seed:       c.Simulation.Seed,
		MaxTicks:   c.Simulation.MaxTicks,
		Workers:    c.Planning.Workers,
		Visibility: c.Simulation.Visibility,
		OutDir:     c.Experiments.OutDir,
	}
}
