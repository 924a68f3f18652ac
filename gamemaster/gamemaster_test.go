package gamemaster

import (
	"testing"

	"rps/game"

	"github.com/stretchr/testify/require"
)

func TestInitializeGame(t *testing.T) {
	t.Run("contestants on distinct cells with dealt types", func(t *testing.T) {
		gm := NewGameMaster(7)

		state, err := gm.InitializeGame(SpawnConfig{Contestants: 10, Width: 10, Height: 10})

		require.NoError(t, err)
		require.Len(t, state.Agents, 10)
		require.Equal(t, game.NewMap(10, 10), state.Map)

		seen := map[game.Coord]bool{}
		for _, agent := range state.Agents {
			require.False(t, state.Map.OutOfBounds(agent.Location))
			require.False(t, seen[agent.Location], "Cells should be distinct")
			seen[agent.Location] = true
			require.Zero(t, agent.Conversions)
		}
		counts := state.Counts()
		require.Equal(t, 4, counts[game.Rock])
		require.Equal(t, 3, counts[game.Paper])
		require.Equal(t, 3, counts[game.Scissors])
	})

	t.Run("same seed spawns the same game", func(t *testing.T) {
		cfg := SpawnConfig{Contestants: 6, Width: 8, Height: 8}

		a, err := NewGameMaster(42).InitializeGame(cfg)
		require.NoError(t, err)
		b, err := NewGameMaster(42).InitializeGame(cfg)
		require.NoError(t, err)

		require.Equal(t, a, b)
	})

	t.Run("invalid contestant counts", func(t *testing.T) {
		gm := NewGameMaster(1)

		_, err := gm.InitializeGame(SpawnConfig{Contestants: 0, Width: 5, Height: 5})
		require.Error(t, err)

		_, err = gm.InitializeGame(SpawnConfig{Contestants: 26, Width: 5, Height: 5})
		require.Error(t, err)
	})
}

func TestCheckGameOver(t *testing.T) {
	gm := NewGameMaster(1)
	state := game.NewGlobalState(game.NewMap(5, 5))
	state.Agents[1] = game.AgentState{Type: game.Rock}
	state.Agents[2] = game.AgentState{Type: game.Scissors}

	_, over := gm.CheckGameOver(state)
	require.False(t, over)

	state.Agents[2] = game.AgentState{Type: game.Rock, Conversions: -1}
	winner, over := gm.CheckGameOver(state)
	require.True(t, over)
	require.Equal(t, game.Rock, winner)
}
