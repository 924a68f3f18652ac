package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "depth")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())
	require.Equal(t, "depth", filepath.Base(filepath.Dir(w.Dir())))
	require.Contains(t, filepath.Base(w.Dir()), w.RunID.String()[:8])

	other, err := NewWriter(t.TempDir(), "depth")
	require.NoError(t, err)
	require.NotEqual(t, w.RunID, other.RunID)

	t.Run("agent configs", func(t *testing.T) {
		err := w.WriteAgentConfigs([]AgentConfig{
			{ID: 1, Depth: 2, Duration: 10 * time.Millisecond, Opponents: "sequential"},
			{ID: 2, Random: true},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Equal(t, [][]string{
			{"id", "depth", "duration", "opponents", "random"},
			{"1", "2", "10ms", "sequential", "false"},
			{"2", "0", "0s", "", "true"},
		}, rows)
	})

	t.Run("game records", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		err := w.WriteGameRecords([]GameRecord{{
			ID:         1,
			Challenger: 2,
			Baseline:   0,
			GameMetric: GameMetric{
				Contestants: 9,
				Winner:      "paper",
				StartTime:   start,
				EndTime:     start.Add(time.Second),
				Duration:    time.Second,
				TotalTicks:  40,
				Conversions: 8,
			},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "2", "0", "9", "paper", "2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s", "40", "8"}, rows[1])
	})

	t.Run("move records", func(t *testing.T) {
		err := w.WriteMoveRecords([]MoveRecord{
			{Game: 1, MoveMetric: MoveMetric{Tick: 3, Agent: 4, Action: "move(up)", SearchMetric: SearchMetric{Depth: 2, Levels: 1, Branches: 4, Nodes: 21, Opponents: "sequential", Truncated: true}}},
			{Game: 1, MoveMetric: MoveMetric{Tick: 3, Agent: 5}},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, []string{"1", "3", "4", "move(up)", "2", "1", "4", "21", "sequential", "0s", "true"}, rows[1])
		require.Equal(t, "", rows[2][3])
	})
}

func TestCollector(t *testing.T) {
	t.Run("counts a planning run", func(t *testing.T) {
		c := NewCollector()
		c.Start(3, "simultaneous")
		c.SetBranches(4)
		c.AddNodes(5)
		c.AddNodes(16)
		c.AddLevel()
		c.SetTruncated(true)

		m := c.Complete()
		require.Equal(t, 3, m.Depth)
		require.Equal(t, 1, m.Levels)
		require.Equal(t, 4, m.Branches)
		require.Equal(t, 21, m.Nodes)
		require.Equal(t, "simultaneous", m.Opponents)
		require.True(t, m.Truncated)
	})

	t.Run("dummy collects nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(3, "sequential")
		c.AddNodes(5)
		require.Equal(t, SearchMetric{}, c.Complete())
	})
}
