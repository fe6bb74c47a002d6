package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"

	bushidonet "github.com/JaTvoiRabotnik/bushido/internal/net"

	"github.com/JaTvoiRabotnik/bushido/internal/duel"
	"github.com/JaTvoiRabotnik/bushido/internal/log"
	"github.com/JaTvoiRabotnik/bushido/internal/match"

	stdnet "net"
)

// DecisionType identifies what kind of decision the engine is waiting for.
type DecisionType string

const (
	DecisionChooseIntent DecisionType = "choose_intent"
	DecisionChoosePick   DecisionType = "choose_pick"
	DecisionGameOver     DecisionType = "game_over"
)

// PendingDecision represents a decision the engine is waiting for.
type PendingDecision struct {
	Type       DecisionType          `json:"type"`
	Role       duel.Role             `json:"role"`
	State      *bushidonet.StateView `json:"state,omitempty"`
	Candidates []string              `json:"candidates,omitempty"`
}

// Response types sent back from MCP tools to the controller.

type IntentResponse struct {
	Intent duel.TurnIntent
}

type PickResponse struct {
	Index int
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []bushidonet.EventView `json:"events"`
	State    *bushidonet.StateView  `json:"state,omitempty"`
	Pending  *PendingView           `json:"pending,omitempty"`
	GameOver bool                   `json:"game_over"`
	Winner   string                 `json:"winner,omitempty"`
	Result   string                 `json:"result,omitempty"`
	Port     string                 `json:"port,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type       DecisionType `json:"type"`
	ForPlayer  string       `json:"for_player"`
	Candidates []string     `json:"candidates,omitempty"`
}

// GameSession holds the state of a single MCP duel session.
type GameSession struct {
	claudeCtrl *MCPController
	humanCtrl  *bushidonet.NetworkController
	claudeRole duel.Role

	listener  stdnet.Listener
	humanConn stdnet.Conn

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu        sync.Mutex
	events    []bushidonet.EventView
	lastState *bushidonet.StateView
	gameOver  bool
	result    string
	winner    string
}

// NewGameSession starts a TCP listener, waits for the human duelist to
// connect via `bushido join`, then starts the duel. The MCP agent drafts
// and plays through the tool surface; the human plays over TCP.
func NewGameSession(loadoutFile, claudeProfile, pool string, claudeRole duel.Role, port string, seed int64) (*GameSession, error) {
	loadouts, err := duel.ParseLoadoutFile(loadoutFile)
	if err != nil {
		return nil, fmt.Errorf("load loadouts: %w", err)
	}
	claudeAttrs, err := loadouts.Profile(claudeProfile)
	if err != nil {
		return nil, fmt.Errorf("claude profile: %w", err)
	}

	// Start TCP listener for the human duelist
	ln, err := stdnet.Listen("tcp", ":"+port)
	if err != nil {
		return nil, fmt.Errorf("listen on port %s: %w", port, err)
	}

	// Accept one connection (blocks until the human runs `bushido join`)
	conn, err := ln.Accept()
	if err != nil {
		ln.Close()
		return nil, fmt.Errorf("accept: %w", err)
	}

	// Read join message to get the human's profile choice
	dec := json.NewDecoder(conn)
	var joinMsg bushidonet.ClientMessage
	if err := dec.Decode(&joinMsg); err != nil {
		conn.Close()
		ln.Close()
		return nil, fmt.Errorf("read join message: %w", err)
	}
	humanProfile := joinMsg.Profile
	if humanProfile == "" {
		humanProfile = claudeProfile
	}
	humanAttrs, err := loadouts.Profile(humanProfile)
	if err != nil {
		conn.Close()
		ln.Close()
		return nil, fmt.Errorf("human profile: %w", err)
	}
	poolNames, err := loadouts.Pool(pool)
	if err != nil {
		conn.Close()
		ln.Close()
		return nil, fmt.Errorf("draft pool: %w", err)
	}

	sess := &GameSession{
		claudeRole: claudeRole,
		pendingCh:  make(chan *PendingDecision, 1),
		listener:   ln,
		humanConn:  conn,
	}

	sess.claudeCtrl = NewMCPController(claudeRole, sess)
	sess.humanCtrl = bushidonet.NewNetworkController(conn, claudeRole.Opponent())

	cfg := duel.MatchConfig{}
	if claudeRole == duel.Challenger {
		cfg.Challenger = claudeAttrs
		cfg.Defender = humanAttrs
		cfg.ChallengerPicker = sess.claudeCtrl
		cfg.DefenderPicker = sess.humanCtrl
	} else {
		cfg.Challenger = humanAttrs
		cfg.Defender = claudeAttrs
		cfg.ChallengerPicker = sess.humanCtrl
		cfg.DefenderPicker = sess.claudeCtrl
	}
	cfg.Pool = poolNames
	if seed != 0 {
		cfg.Rand = rand.New(rand.NewSource(seed))
	}

	var chalCtrl, defCtrl match.Controller
	if claudeRole == duel.Challenger {
		chalCtrl, defCtrl = sess.claudeCtrl, sess.humanCtrl
	} else {
		chalCtrl, defCtrl = sess.humanCtrl, sess.claudeCtrl
	}

	// The draft already solicits picks through both controllers, so the
	// whole match lives in its own goroutine from creation on.
	go func() {
		m, err := match.New(cfg, log.NewMemoryLogger(), chalCtrl, defCtrl)
		if err != nil {
			sess.finish(duel.Outcome{}, fmt.Sprintf("error: %v", err))
			return
		}
		outcome, err := m.Run(context.Background())
		result := outcome.String()
		if err != nil {
			result = fmt.Sprintf("error: %v", err)
		}

		// Notify the human over TCP, then clean up
		_ = sess.humanCtrl.SendGameOver(outcome)
		sess.humanConn.Close()
		sess.listener.Close()

		sess.finish(outcome, result)

		// Notify the agent via the pending channel
		sess.pendingCh <- &PendingDecision{
			Type:  DecisionGameOver,
			Role:  sess.claudeRole,
			State: bushidonet.BuildStateView(m.State, sess.claudeRole),
		}
	}()

	return sess, nil
}

func (s *GameSession) finish(outcome duel.Outcome, result string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gameOver = true
	s.result = result
	if outcome.Kind == duel.Win || outcome.Kind == duel.DishonorLoss {
		s.winner = outcome.Winner.String()
	}
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev bushidonet.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []bushidonet.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	return events
}

// waitForPending blocks until the next decision arrives from the engine,
// then builds a ToolResponse with accumulated events + the pending decision.
func (s *GameSession) waitForPending() (*ToolResponse, error) {
	pending := <-s.pendingCh
	s.currentPending = pending
	if pending.State != nil {
		s.mu.Lock()
		s.lastState = pending.State
		s.mu.Unlock()
	}

	resp := &ToolResponse{
		Events: s.drainEvents(),
		State:  pending.State,
	}

	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Winner = s.winner
		resp.Result = s.result
		s.mu.Unlock()
		return resp, nil
	}

	resp.Pending = &PendingView{
		Type:       pending.Type,
		ForPlayer:  s.playerLabel(pending.Role),
		Candidates: pending.Candidates,
	}

	return resp, nil
}

// playerLabel returns "claude" or "human" for the given role.
func (s *GameSession) playerLabel(role duel.Role) string {
	if role == s.claudeRole {
		return "claude"
	}
	return "human"
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
