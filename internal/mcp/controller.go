package mcp

import (
	"context"

	"github.com/JaTvoiRabotnik/bushido/internal/duel"
	"github.com/JaTvoiRabotnik/bushido/internal/log"
	"github.com/JaTvoiRabotnik/bushido/internal/net"
)

// MCPController implements match.Controller and duel.DraftPicker by
// sending decisions to the MCP session's pending channel and blocking on a
// response channel.
type MCPController struct {
	role       duel.Role
	session    *GameSession
	responseCh chan any
}

// NewMCPController creates a controller for the given role.
func NewMCPController(role duel.Role, session *GameSession) *MCPController {
	return &MCPController{
		role:       role,
		session:    session,
		responseCh: make(chan any),
	}
}

// ChooseIntent implements match.Controller.
func (c *MCPController) ChooseIntent(ctx context.Context, state *duel.DuelState, role duel.Role) (duel.TurnIntent, error) {
	c.session.pendingCh <- &PendingDecision{
		Type:  DecisionChooseIntent,
		Role:  c.role,
		State: net.BuildStateView(state, c.role),
	}

	resp := <-c.responseCh
	ir := resp.(IntentResponse)
	return ir.Intent, nil
}

// Pick implements duel.DraftPicker.
func (c *MCPController) Pick(role duel.Role, candidates []string) (int, error) {
	c.session.pendingCh <- &PendingDecision{
		Type:       DecisionChoosePick,
		Role:       c.role,
		Candidates: candidates,
	}

	resp := <-c.responseCh
	pr := resp.(PickResponse)

	if pr.Index < 0 || pr.Index >= len(candidates) {
		return 0, nil
	}
	return pr.Index, nil
}

// Notify implements match.Controller.
// Only the agent-side controller appends events to avoid duplicates.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	if c.role == c.session.claudeRole {
		c.session.appendEvent(net.EventView{
			Turn:      event.Turn,
			Range:     event.Range,
			Player:    event.Player,
			Type:      event.Type.String(),
			Technique: event.Technique,
			Details:   event.Details,
		})
	}
	return nil
}
