package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"connect4/game"
)

// MoveRequest is the body posted to an agent server's /findmove endpoint.
type MoveRequest struct {
	Board  *game.Board `json:"board"`
	Player game.Cell   `json:"player"`
}

type MoveResponse struct {
	Column int `json:"column"`
}

type remoteAgent struct {
	player game.Cell
	url    string
	client *http.Client
}

// NewRemote returns an agent that asks the agent server at url for its moves.
func NewRemote(player game.Cell, url string, client *http.Client) Agent {
	if client == nil {
		client = &http.Client{Timeout: time.Minute}
	}
	return &remoteAgent{player: player, url: strings.TrimRight(url, "/"), client: client}
}

func (a *remoteAgent) Name() string      { return "remote(" + a.url + ")" }
func (a *remoteAgent) Player() game.Cell { return a.player }

func (a *remoteAgent) Move(b *game.Board) error {
	body, err := json.Marshal(MoveRequest{Board: b, Player: a.player})
	if err != nil {
		return err
	}

	resp, err := a.client.Post(a.url+"/findmove", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("requesting move: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("agent server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(out)))
	}

	var move MoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&move); err != nil {
		return fmt.Errorf("decoding move: %w", err)
	}
	return commit(b, move.Column, a.player)
}
