package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/JaTvoiRabotnik/bushido/internal/duel"
	bushidonet "github.com/JaTvoiRabotnik/bushido/internal/net"
)

// activeSession is the singleton duel session (one per stdio process).
var activeSession *GameSession

// loadoutFile is the path to the loadouts YAML file, set by main.
var loadoutFile string

// port is the TCP port for the human duelist connection, set by main.
var port string

// SetLoadoutFile sets the path to the loadouts YAML file.
func SetLoadoutFile(path string) {
	loadoutFile = path
}

// SetPort sets the TCP port for the human duelist connection.
func SetPort(p string) {
	port = p
}

// RegisterTools adds all duel tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startDuelTool(), handleStartDuel)
	s.AddTool(pickTechniqueTool(), handlePickTechnique)
	s.AddTool(submitIntentTool(), handleSubmitIntent)
	s.AddTool(getDuelStateTool(), handleGetDuelState)
}

// --- Tool definitions ---

func startDuelTool() mcp.Tool {
	return mcp.NewTool("start_duel",
		mcp.WithDescription("Start a new bushido duel. Returns the first pending decision (usually a draft pick). "+
			"The human duelist connects via `bushido join --addr localhost:<port> --profile NAME` in a separate terminal. "+
			"This call blocks until the human connects."),
		mcp.WithString("profile", mcp.Required(), mcp.Description("Attribute profile name for the agent (from loadouts.yaml)")),
		mcp.WithNumber("role", mcp.Required(), mcp.Description("Which side the agent plays: 0 = challenger, 1 = defender")),
		mcp.WithString("pool", mcp.Description("Draft pool name; empty for the standard ten techniques")),
		mcp.WithNumber("seed", mcp.Description("Random seed for a reproducible draft; 0 seeds from the clock")),
	)
}

func pickTechniqueTool() mcp.Tool {
	return mcp.NewTool("pick_technique",
		mcp.WithDescription("Pick one technique from the pending draft candidates. Use this when the pending decision type is 'choose_pick'."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into the candidates list")),
	)
}

func submitIntentTool() mcp.Tool {
	return mcp.NewTool("submit_intent",
		mcp.WithDescription("Submit the agent's hidden intent for this turn. Use this when the pending decision type is 'choose_intent'. "+
			"Insight cannot be combined with a combat action, and retreating on turn 4 or later forfeits the duel."),
		mcp.WithString("movement", mcp.Description("advance, retreat, or stay (default stay)")),
		mcp.WithString("combat", mcp.Description("attack, defend, or none")),
		mcp.WithString("insight", mcp.Description("Fact to read: speed, strength, defense, or technique")),
		mcp.WithString("technique", mcp.Description("Technique from the hand to make active this turn")),
		mcp.WithBoolean("reset", mcp.Description("Empty both resources before combat (Mushin only)")),
	)
}

func getDuelStateTool() mcp.Tool {
	return mcp.NewTool("get_duel_state",
		mcp.WithDescription("Get the current duel state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

// --- Tool handlers ---

func handleStartDuel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		return mcp.NewToolResultError("A duel is already running. Only one duel at a time is supported."), nil
	}

	profile := request.GetString("profile", "")
	role := request.GetInt("role", 0)
	pool := request.GetString("pool", "")
	seed := request.GetInt("seed", 0)

	if profile == "" {
		return mcp.NewToolResultError("profile is required"), nil
	}
	if role != 0 && role != 1 {
		return mcp.NewToolResultError("role must be 0 (challenger) or 1 (defender)"), nil
	}

	sess, err := NewGameSession(loadoutFile, profile, pool, duel.Role(role), port, int64(seed))
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start duel: %v", err), nil
	}

	activeSession = sess

	resp, err := sess.waitForPending()
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}

	resp.Port = port

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handlePickTechnique(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No duel is running. Use start_duel first."), nil
	}

	sess := activeSession
	pending := sess.currentPending
	if pending == nil {
		return mcp.NewToolResultError("No pending decision."), nil
	}
	if pending.Role != sess.claudeRole {
		return mcp.NewToolResultError("Waiting for the human duelist to respond via their terminal."), nil
	}
	if pending.Type != DecisionChoosePick {
		return mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', not 'choose_pick'. Use the correct tool.", pending.Type), nil
	}

	index := request.GetInt("index", -1)
	if index < 0 || index >= len(pending.Candidates) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(pending.Candidates)-1), nil
	}

	sess.claudeCtrl.responseCh <- PickResponse{Index: index}

	resp, err := sess.waitForPending()
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}

	if resp.GameOver {
		activeSession = nil
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleSubmitIntent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No duel is running. Use start_duel first."), nil
	}

	sess := activeSession
	pending := sess.currentPending
	if pending == nil {
		return mcp.NewToolResultError("No pending decision."), nil
	}
	if pending.Role != sess.claudeRole {
		return mcp.NewToolResultError("Waiting for the human duelist to respond via their terminal."), nil
	}
	if pending.Type != DecisionChooseIntent {
		return mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', not 'choose_intent'. Use the correct tool.", pending.Type), nil
	}

	intent, err := bushidonet.ParseIntent(&bushidonet.IntentView{
		Movement:  request.GetString("movement", ""),
		Combat:    request.GetString("combat", ""),
		Insight:   request.GetString("insight", ""),
		Technique: request.GetString("technique", ""),
		Reset:     request.GetBool("reset", false),
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid intent: %v", err), nil
	}

	sess.claudeCtrl.responseCh <- IntentResponse{Intent: intent}

	resp, err := sess.waitForPending()
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}

	if resp.GameOver {
		activeSession = nil
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGetDuelState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No duel is running. Use start_duel first."), nil
	}

	sess := activeSession
	events := sess.drainEvents()

	sess.mu.Lock()
	gameOver := sess.gameOver
	winner := sess.winner
	result := sess.result
	state := sess.lastState
	sess.mu.Unlock()

	resp := &ToolResponse{
		Events:   events,
		State:    state,
		GameOver: gameOver,
		Winner:   winner,
		Result:   result,
	}

	if !gameOver && sess.currentPending != nil {
		resp.Pending = &PendingView{
			Type:       sess.currentPending.Type,
			ForPlayer:  sess.playerLabel(sess.currentPending.Role),
			Candidates: sess.currentPending.Candidates,
		}
	}

	// Ensure events is never null in JSON
	if resp.Events == nil {
		resp.Events = []bushidonet.EventView{}
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}
