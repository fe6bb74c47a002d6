package duel

import (
	"math/rand"
	"testing"
)

// testState builds a mid-match state directly, bypassing the draft, so
// combat scenarios can pin hands and attributes exactly.
func testState(rng Range, turn int) *DuelState {
	return &DuelState{
		Turn:  turn,
		Range: rng,
		Challenger: Duelist{
			Role:       Challenger,
			Attributes: AttributeSet{Speed: 2, Strength: 3, Defense: 1},
			Health:     StartingHealth,
			Hand:       []string{"Kuzushi", "Mushin"},
			Active:     "Kuzushi",
		},
		Defender: Duelist{
			Role:       Defender,
			Attributes: AttributeSet{Speed: 2, Strength: 1, Defense: 3},
			Health:     StartingHealth,
			Hand:       []string{"Ma-ai", "Zanshin"},
			Active:     "Ma-ai",
		},
	}
}

func attack(move Move) TurnIntent {
	return TurnIntent{Movement: move, Combat: Attack}
}

func defend(move Move) TurnIntent {
	return TurnIntent{Movement: move, Combat: Defend}
}

func mustSubmit(t *testing.T, s *DuelState, ci, di TurnIntent) (*DuelState, *TurnResult) {
	t.Helper()
	next, res, err := SubmitTurn(s, ci, di)
	if err != nil {
		t.Fatalf("SubmitTurn: %v", err)
	}
	return next, res
}

func seededState(t *testing.T, seed int64) *DuelState {
	t.Helper()
	s, err := StartMatch(MatchConfig{
		Challenger: AttributeSet{Speed: 2, Strength: 3, Defense: 1},
		Defender:   AttributeSet{Speed: 2, Strength: 1, Defense: 3},
		Rand:       rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		t.Fatalf("StartMatch: %v", err)
	}
	return s
}
