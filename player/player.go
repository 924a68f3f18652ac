package player

import (
	"context"
	"time"

	"rps/communication"
	"rps/game"

	"github.com/rs/zerolog/log"
)

// Player follows one agent of a remote game and asks the server for its next
// action whenever a new tick is published.
type Player struct {
	ID             game.AgentID
	Communicator   communication.Communicator
	LocalGameState *communication.StateResponse
	depth          *int
}

// NewPlayer creates a new Player instance. A negative depth keeps the
// server's default.
func NewPlayer(id game.AgentID, comm communication.Communicator, depth int) *Player {
	p := &Player{
		ID:           id,
		Communicator: comm,
	}
	if depth >= 0 {
		p.depth = &depth
	}
	return p
}

// SyncGameState updates the player's local game state and reports whether the
// tick advanced.
func (p *Player) SyncGameState(ctx context.Context) (bool, error) {
	state, err := p.Communicator.GetGameState(ctx)
	if err != nil {
		return false, err
	}
	advanced := p.LocalGameState == nil || state.Tick != p.LocalGameState.Tick
	p.LocalGameState = &state
	return advanced, nil
}

func (p *Player) TakeTurn(ctx context.Context) (communication.PlanResponse, error) {
	return p.Communicator.Plan(ctx, communication.PlanRequest{Agent: p.ID, Depth: p.depth})
}

// Play polls every interval until ctx is done and passes each advice to fn.
// Failed polls are logged and retried.
func (p *Player) Play(ctx context.Context, interval time.Duration, fn func(communication.PlanResponse)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		advanced, err := p.SyncGameState(ctx)
		switch {
		case ctx.Err() != nil:
			return nil
		case err != nil:
			log.Warn().Msgf("failed to sync game state: %v", err)
		case advanced:
			if _, ok := p.LocalGameState.State.Agents[p.ID]; !ok {
				log.Warn().Msgf("agent %d is not in the game", p.ID)
				break
			}
			resp, err := p.TakeTurn(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			fn(resp)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
