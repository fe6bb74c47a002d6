package duel

import "encoding/json"

// TurnIntent is one duelist's complete hidden plan for a turn. Zero value
// means "do nothing but hold ground" (Stay, no combat, no insight).
type TurnIntent struct {
	Movement Move         `json:"movement"`
	Combat   CombatAction `json:"combat"`
	Insight  bool         `json:"insight,omitempty"`
	// InsightTarget names the fact queried when Insight is set.
	InsightTarget Fact `json:"insight_target,omitempty"`
	// Technique, when non-empty, switches the active technique before the
	// turn resolves. Must name a technique in hand.
	Technique string `json:"technique,omitempty"`
	// ResetResources invokes Mushin's emptying of both resources.
	ResetResources bool `json:"reset_resources,omitempty"`
}

// DuelState is the full authoritative match state. It is plain data:
// serializing and restoring it mid-match yields identical continuations.
type DuelState struct {
	Turn       int     `json:"turn"`
	Range      Range   `json:"range"`
	Challenger Duelist `json:"challenger"`
	Defender   Duelist `json:"defender"`
	Outcome    Outcome `json:"outcome"`
}

// Duelist returns the duelist playing the given role.
func (s *DuelState) Duelist(r Role) *Duelist {
	if r == Challenger {
		return &s.Challenger
	}
	return &s.Defender
}

// Clone deep-copies the state.
func (s *DuelState) Clone() *DuelState {
	out := *s
	out.Challenger = s.Challenger.clone()
	out.Defender = s.Defender.clone()
	return &out
}

// MarshalState serializes the state for persistence or transport.
func MarshalState(s *DuelState) ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalState restores a state produced by MarshalState.
func UnmarshalState(data []byte) (*DuelState, error) {
	var s DuelState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
