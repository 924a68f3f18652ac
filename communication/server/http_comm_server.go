package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"rps/communication"
	"rps/game"
	"rps/searcher"
	"rps/searcher/agent"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

var ErrNoState = errors.New("no game state yet")

// ServerCommunicator publishes the latest snapshot of a running game and
// plans on it for callers.
type ServerCommunicator struct {
	domain  *game.Domain
	options []searcher.Option
	limiter *rate.Limiter

	mutex     sync.RWMutex
	gameState *game.GlobalState
	tick      uint64
}

var _ communication.Communicator = (*ServerCommunicator)(nil)

// NewServerCommunicator plans with options unless a request overrides the
// depth.
func NewServerCommunicator(domain *game.Domain, options ...searcher.Option) *ServerCommunicator {
	return &ServerCommunicator{
		domain:  domain,
		options: options,
	}
}

// LimitPlans caps POST /plan at perSecond requests with the given burst.
// Requests over the limit get 429. A non-positive rate removes the limit.
func (sc *ServerCommunicator) LimitPlans(perSecond float64, burst int) {
	if perSecond <= 0 {
		sc.limiter = nil
		return
	}
	sc.limiter = rate.NewLimiter(rate.Limit(perSecond), max(1, burst))
}

// UpdateGameState stores a copy of state. It matches engine.Hook.
func (sc *ServerCommunicator) UpdateGameState(tick uint64, state *game.GlobalState) {
	snapshot := state.Clone()
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	sc.gameState = snapshot
	sc.tick = tick
}

func (sc *ServerCommunicator) GetGameState(context.Context) (communication.StateResponse, error) {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()
	if sc.gameState == nil {
		return communication.StateResponse{}, ErrNoState
	}
	return communication.StateResponse{Tick: sc.tick, State: sc.gameState.Clone()}, nil
}

func (sc *ServerCommunicator) Plan(ctx context.Context, req communication.PlanRequest) (communication.PlanResponse, error) {
	snapshot, err := sc.GetGameState(ctx)
	if err != nil {
		return communication.PlanResponse{}, err
	}

	options := append([]searcher.Option{}, sc.options...)
	if req.Depth != nil {
		if *req.Depth < 0 {
			return communication.PlanResponse{}, fmt.Errorf("depth must be >= 0, got %d", *req.Depth)
		}
		options = append(options, searcher.WithDepth(*req.Depth))
	}

	resp := communication.PlanResponse{Tick: snapshot.Tick, Agent: req.Agent}
	action, metric, err := agent.NewPlannerAgent(sc.domain, options...).FindAction(ctx, snapshot.State, snapshot.Tick, req.Agent)
	resp.Metric = metric
	switch {
	case errors.Is(err, searcher.ErrNoCandidateActions):
		return resp, nil
	case err != nil:
		return resp, err
	}
	resp.Action = &action
	return resp, nil
}

// Handler serves GET /state, POST /plan and GET /metrics.
func (sc *ServerCommunicator) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /state", sc.handleGetGameState)
	mux.HandleFunc("POST /plan", sc.handlePlan)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// Start serves Handler on addr until ctx is done.
func (sc *ServerCommunicator) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           sc.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Msgf("serving game state on %s", addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return err
		}
		return nil
	}
}

func (sc *ServerCommunicator) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	resp, err := sc.GetGameState(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, resp)
}

func (sc *ServerCommunicator) handlePlan(w http.ResponseWriter, r *http.Request) {
	if sc.limiter != nil && !sc.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, errors.New("too many plan requests"))
		return
	}

	var req communication.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid plan request: %w", err))
		return
	}

	resp, err := sc.Plan(r.Context(), req)
	switch {
	case errors.Is(err, ErrNoState):
		writeError(w, http.StatusServiceUnavailable, err)
	case errors.Is(err, searcher.ErrMissingAgentState):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		log.Warn().Msgf("failed to plan for agent %d: %v", req.Agent, err)
		writeError(w, http.StatusBadRequest, err)
	default:
		writeJSON(w, resp)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Msgf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
