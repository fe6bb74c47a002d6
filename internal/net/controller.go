package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/JaTvoiRabotnik/bushido/internal/duel"
	"github.com/JaTvoiRabotnik/bushido/internal/log"
)

// NetworkController implements match.Controller over a TCP connection. It
// also implements duel.DraftPicker so the remote duelist drafts their own
// hand.
type NetworkController struct {
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
	role duel.Role
	mu   sync.Mutex
}

// NewNetworkController creates a new controller for the given connection.
func NewNetworkController(conn net.Conn, role duel.Role) *NetworkController {
	return &NetworkController{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
		role: role,
	}
}

// send sends a server message to the client. Must be called with mu held.
func (nc *NetworkController) send(msg ServerMessage) error {
	return nc.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (nc *NetworkController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := nc.dec.Decode(&msg)
	return msg, err
}

// ChooseIntent implements match.Controller. A malformed submission is
// bounced back to the client with the parse error attached.
func (nc *NetworkController) ChooseIntent(ctx context.Context, state *duel.DuelState, role duel.Role) (duel.TurnIntent, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{
		Type:  "choose_intent",
		State: BuildStateView(state, role),
	}
	for {
		if err := ctx.Err(); err != nil {
			return duel.TurnIntent{}, err
		}
		if err := nc.send(msg); err != nil {
			return duel.TurnIntent{}, fmt.Errorf("send choose_intent: %w", err)
		}
		resp, err := nc.recv()
		if err != nil {
			return duel.TurnIntent{}, fmt.Errorf("recv intent: %w", err)
		}
		intent, err := ParseIntent(resp.Intent)
		if err != nil {
			msg.Error = err.Error()
			continue
		}
		return intent, nil
	}
}

// Pick implements duel.DraftPicker over the wire.
func (nc *NetworkController) Pick(role duel.Role, candidates []string) (int, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{Type: "choose_pick", Candidates: candidates}
	if err := nc.send(msg); err != nil {
		return 0, fmt.Errorf("send choose_pick: %w", err)
	}
	resp, err := nc.recv()
	if err != nil {
		return 0, fmt.Errorf("recv pick: %w", err)
	}
	if resp.Index < 0 || resp.Index >= len(candidates) {
		return 0, nil // fall back to the first candidate
	}
	return resp.Index, nil
}

// Notify implements match.Controller.
func (nc *NetworkController) Notify(ctx context.Context, event log.GameEvent) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{
		Type: "notify",
		Event: &EventView{
			Turn:      event.Turn,
			Range:     event.Range,
			Player:    event.Player,
			Type:      event.Type.String(),
			Technique: event.Technique,
			Details:   event.Details,
		},
	}
	return nc.send(msg)
}

// SendGameOver sends a game_over message to the client.
func (nc *NetworkController) SendGameOver(outcome duel.Outcome) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	msg := ServerMessage{Type: "game_over", Result: outcome.String()}
	if outcome.Kind == duel.Win || outcome.Kind == duel.DishonorLoss {
		msg.Winner = outcome.Winner.String()
	}
	return nc.send(msg)
}
