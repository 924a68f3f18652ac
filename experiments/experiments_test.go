package experiments

import (
	"context"
	"path/filepath"
	"testing"

	"rps/experiments/metrics"
	"rps/gamemaster"

	"github.com/stretchr/testify/require"
)

func smallSettings(t *testing.T) Settings {
	s := DefaultSettings()
	s.Games = 1
	s.Spawn = gamemaster.SpawnConfig{Contestants: 3, Width: 5, Height: 5}
	s.MaxTicks = 4
	s.OutDir = t.TempDir()
	return s
}

func TestRunDepthExperiment(t *testing.T) {
	s := smallSettings(t)

	result, err := RunDepthExperiment(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, result.Configs, 7)
	require.Len(t, result.Games, 6)
	require.NotEmpty(t, result.Moves)
	for _, record := range result.Games {
		require.LessOrEqual(t, record.TotalTicks, s.MaxTicks)
		require.Equal(t, 3, record.Contestants)
	}

	for _, file := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
		require.FileExists(t, filepath.Join(result.Dir, file))
	}
	require.Equal(t, s.OutDir, filepath.Dir(filepath.Dir(result.Dir)))
}

func TestRunBudgetExperiment(t *testing.T) {
	result, err := RunBudgetExperiment(context.Background(), smallSettings(t))
	require.NoError(t, err)
	require.Len(t, result.Games, 3)
	require.Equal(t, 0, result.Games[0].Baseline)
}

func TestCreateAgent(t *testing.T) {
	t.Run("unknown opponent mode", func(t *testing.T) {
		_, err := createAgent(metrics.AgentConfig{Depth: 1, Opponents: "alternating"}, nil, 1)
		require.Error(t, err)
	})

	t.Run("random", func(t *testing.T) {
		a, err := createAgent(metrics.AgentConfig{Random: true}, nil, 1)
		require.NoError(t, err)
		require.NotNil(t, a)
	})
}
