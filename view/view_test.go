package view

import (
	"bytes"
	"testing"

	"rps/game"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	state := game.NewGlobalState(game.NewMap(3, 3))
	state.Agents[1] = game.AgentState{Type: game.Rock, Location: game.Coord{X: 0, Y: 0}}
	state.Agents[2] = game.AgentState{Type: game.Paper, Location: game.Coord{X: 2, Y: 1}}
	state.Agents[3] = game.AgentState{Type: game.Scissors, Location: game.Coord{X: 1, Y: 2}}
	state.Agents[4] = game.AgentState{Type: game.Rock, Location: game.Coord{X: 1, Y: 2}}

	// A buffer is not a terminal, so no escape sequences are written
	out := New(&bytes.Buffer{}).Render(7, state)
	require.Equal(t, "tick 7  rock 2  paper 1  scissors 1\n"+
		"r . .\n"+
		". . p\n"+
		". S .\n", out)
}

func TestRenderEmpty(t *testing.T) {
	out := New(&bytes.Buffer{}).Render(0, game.NewGlobalState(game.NewMap(1, 2)))
	// Even sides are rounded up
	require.Equal(t, "tick 0  rock 0  paper 0  scissors 0\n. . .\n", out)
}
