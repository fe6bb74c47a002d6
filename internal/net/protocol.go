package net

import (
	"fmt"
	"strings"

	"github.com/JaTvoiRabotnik/bushido/internal/duel"
)

// Message types for the JSON protocol over TCP.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose_intent": the state from this client's perspective, plus
	// an error description when the previous submission failed to parse.
	State *StateView `json:"state,omitempty"`
	Error string     `json:"error,omitempty"`

	// For "choose_pick" (draft)
	Candidates []string `json:"candidates,omitempty"`

	// For "game_over"
	Winner string `json:"winner,omitempty"`
	Result string `json:"result,omitempty"`
}

// EventView is a simplified duel event for the client.
type EventView struct {
	Turn      int    `json:"turn"`
	Range     string `json:"range"`
	Player    int    `json:"player"`
	Type      string `json:"type"`
	Technique string `json:"technique,omitempty"`
	Details   string `json:"details"`
}

// StateView is the duel state from one duelist's perspective.
type StateView struct {
	Turn     int         `json:"turn"`
	Range    string      `json:"range"`
	You      DuelistView `json:"you"`
	Opponent DuelistView `json:"opponent"`
	Outcome  string      `json:"outcome,omitempty"`
}

// DuelistView shows one side of the duel. Hidden fields are pointers so
// unrevealed attributes simply vanish from the opponent's view.
type DuelistView struct {
	Role     string `json:"role"`
	Health   int    `json:"health"`
	Momentum int    `json:"momentum"`
	Balance  int    `json:"balance"`

	Speed    *int `json:"speed,omitempty"`
	Strength *int `json:"strength,omitempty"`
	Defense  *int `json:"defense,omitempty"`

	Hand   []string `json:"hand,omitempty"`
	Active string   `json:"active,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "join" (initial handshake)
	Profile string `json:"profile,omitempty"`

	// For "intent"
	Intent *IntentView `json:"intent,omitempty"`

	// For "pick" (draft)
	Index int `json:"index,omitempty"`
}

// IntentView is the wire form of a turn intent.
type IntentView struct {
	Movement  string `json:"movement,omitempty"`
	Combat    string `json:"combat,omitempty"`
	Insight   string `json:"insight,omitempty"` // the fact to read
	Technique string `json:"technique,omitempty"`
	Reset     bool   `json:"reset,omitempty"`
}

// BuildStateView filters the authoritative state into what one duelist may
// see: own side in full, opponent reduced to public resources plus
// whatever Insight has revealed.
func BuildStateView(state *duel.DuelState, role duel.Role) *StateView {
	me := state.Duelist(role)
	opp := state.Duelist(role.Opponent())

	sv := &StateView{
		Turn:  state.Turn,
		Range: state.Range.String(),
	}
	if state.Outcome.Terminal() {
		sv.Outcome = state.Outcome.String()
	}

	sv.You = DuelistView{
		Role:     me.Role.String(),
		Health:   me.Health,
		Momentum: me.Momentum,
		Balance:  me.Balance,
		Speed:    intp(me.Attributes.Speed),
		Strength: intp(me.Attributes.Strength),
		Defense:  intp(me.Attributes.Defense),
		Hand:     append([]string(nil), me.Hand...),
		Active:   me.Active,
	}

	sv.Opponent = DuelistView{
		Role:     opp.Role.String(),
		Health:   opp.Health,
		Momentum: opp.Momentum,
		Balance:  opp.Balance,
	}
	if opp.Knows(duel.FactSpeed) {
		sv.Opponent.Speed = intp(opp.Attributes.Speed)
	}
	if opp.Knows(duel.FactStrength) {
		sv.Opponent.Strength = intp(opp.Attributes.Strength)
	}
	if opp.Knows(duel.FactDefense) {
		sv.Opponent.Defense = intp(opp.Attributes.Defense)
	}
	if opp.Knows(duel.FactTechnique) {
		sv.Opponent.Active = opp.Active
	}
	return sv
}

func intp(v int) *int {
	return &v
}

// ParseIntent converts the wire form into an engine intent. Unknown words
// are rejected here so the engine only ever sees well-formed values.
func ParseIntent(v *IntentView) (duel.TurnIntent, error) {
	var intent duel.TurnIntent
	if v == nil {
		return intent, fmt.Errorf("missing intent")
	}

	switch strings.ToLower(v.Movement) {
	case "", "stay":
		intent.Movement = duel.Stay
	case "advance":
		intent.Movement = duel.Advance
	case "retreat":
		intent.Movement = duel.Retreat
	default:
		return intent, fmt.Errorf("unknown movement %q", v.Movement)
	}

	switch strings.ToLower(v.Combat) {
	case "", "none":
		intent.Combat = duel.CombatNone
	case "attack":
		intent.Combat = duel.Attack
	case "defend":
		intent.Combat = duel.Defend
	default:
		return intent, fmt.Errorf("unknown combat action %q", v.Combat)
	}

	if v.Insight != "" {
		intent.Insight = true
		intent.InsightTarget = duel.Fact(strings.ToLower(v.Insight))
		if !duel.ValidInsightTarget(intent.InsightTarget) {
			return intent, fmt.Errorf("unknown insight target %q", v.Insight)
		}
	}

	intent.Technique = v.Technique
	intent.ResetResources = v.Reset
	return intent, nil
}
