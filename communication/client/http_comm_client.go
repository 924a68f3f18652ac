package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"rps/communication"
)

type ClientCommunicator struct {
	serverURL string
	http      *http.Client
}

var _ communication.Communicator = (*ClientCommunicator)(nil)

// NewClientCommunicator talks to a ServerCommunicator at serverURL.
func NewClientCommunicator(serverURL string) *ClientCommunicator {
	return &ClientCommunicator{
		serverURL: serverURL,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

func (cc *ClientCommunicator) GetGameState(ctx context.Context) (communication.StateResponse, error) {
	var resp communication.StateResponse
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cc.serverURL+"/state", nil)
	if err != nil {
		return resp, err
	}
	err = cc.do(req, &resp)
	return resp, err
}

func (cc *ClientCommunicator) Plan(ctx context.Context, plan communication.PlanRequest) (communication.PlanResponse, error) {
	var resp communication.PlanResponse
	data, err := json.Marshal(plan)
	if err != nil {
		return resp, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cc.serverURL+"/plan", bytes.NewReader(data))
	if err != nil {
		return resp, err
	}
	req.Header.Set("Content-Type", "application/json")
	err = cc.do(req, &resp)
	return resp, err
}

func (cc *ClientCommunicator) do(req *http.Request, v any) error {
	resp, err := cc.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &body) != nil || body.Error == "" {
			body.Error = string(data)
		}
		return fmt.Errorf("%s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, body.Error)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
