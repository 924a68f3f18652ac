package gamemaster

import (
	"fmt"

	"rps/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type SpawnConfig struct {
	Contestants int
	Width       int
	Height      int
}

// GameMaster sets up games and decides when they are over.
type GameMaster struct {
	rng *rand.Rand
}

// NewGameMaster initializes a new GameMaster. The same seed always spawns
// the same game.
func NewGameMaster(seed uint64) *GameMaster {
	return &GameMaster{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// InitializeGame places the contestants on distinct cells. Types are dealt
// round robin so that each type starts with as many agents as possible.
func (gm *GameMaster) InitializeGame(cfg SpawnConfig) (*game.GlobalState, error) {
	m := game.NewMap(cfg.Height, cfg.Width)
	if cfg.Contestants < 1 {
		return nil, fmt.Errorf("need at least one contestant, got %d", cfg.Contestants)
	}
	if cfg.Contestants > m.Cells() {
		return nil, fmt.Errorf("%d contestants do not fit on a %dx%d map", cfg.Contestants, m.Width, m.Height)
	}

	state := game.NewGlobalState(m)
	cells := gm.rng.Perm(m.Cells())
	for i := 0; i < cfg.Contestants; i++ {
		cell := cells[i]
		state.Agents[game.AgentID(i+1)] = game.AgentState{
			Type:     game.AgentTypes[i%len(game.AgentTypes)],
			Location: game.Coord{X: cell % m.Width, Y: cell / m.Width},
		}
	}

	log.Debug().Msgf("spawned %d contestants on a %dx%d map", cfg.Contestants, m.Width, m.Height)
	return state, nil
}

// CheckGameOver determines if the game has ended.
func (gm *GameMaster) CheckGameOver(state *game.GlobalState) (game.AgentType, bool) {
	winner, ok := game.Winner(state)
	if ok {
		log.Info().Msgf("all %d contestants are %s", len(state.Agents), winner)
	}
	return winner, ok
}
