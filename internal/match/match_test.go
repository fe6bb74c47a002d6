package match

import (
	"context"
	"math/rand"
	"testing"

	"github.com/JaTvoiRabotnik/bushido/internal/duel"
	"github.com/JaTvoiRabotnik/bushido/internal/log"
)

// scripted plays a fixed sequence of intents, repeating the last one when
// the script runs out, and counts what the match asks of it.
type scripted struct {
	intents []duel.TurnIntent
	asked   int
	events  []log.GameEvent
}

func (s *scripted) ChooseIntent(_ context.Context, _ *duel.DuelState, _ duel.Role) (duel.TurnIntent, error) {
	i := s.asked
	s.asked++
	if i >= len(s.intents) {
		i = len(s.intents) - 1
	}
	return s.intents[i], nil
}

func (s *scripted) Notify(_ context.Context, e log.GameEvent) error {
	s.events = append(s.events, e)
	return nil
}

func newTestMatch(t *testing.T, chal, def Controller) *Match {
	t.Helper()
	m, err := New(duel.MatchConfig{
		Challenger: duel.AttributeSet{Speed: 2, Strength: 3, Defense: 1},
		Defender:   duel.AttributeSet{Speed: 2, Strength: 1, Defense: 3},
		Rand:       rand.New(rand.NewSource(17)),
	}, log.NewMemoryLogger(), chal, def)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

// Relentless pressure against a pure guard must end the match, and every
// logged event must also have reached both controllers.
func TestRunPlaysToCompletion(t *testing.T) {
	chal := &scripted{intents: []duel.TurnIntent{{Movement: duel.Advance, Combat: duel.Attack}}}
	def := &scripted{intents: []duel.TurnIntent{{Movement: duel.Advance, Combat: duel.Defend}}}
	m := newTestMatch(t, chal, def)

	outcome, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !outcome.Terminal() {
		t.Fatalf("match ended without a terminal outcome: %v", outcome)
	}
	if !duel.IsTerminal(m.State) {
		t.Error("state disagrees with the returned outcome")
	}

	logged := m.Logger.(*log.MemoryLogger).Events()
	if len(logged) == 0 {
		t.Fatal("nothing was logged")
	}
	if len(chal.events) != len(logged) || len(def.events) != len(logged) {
		t.Errorf("controllers saw %d/%d events, logger has %d",
			len(chal.events), len(def.events), len(logged))
	}
}

// An intent that is illegal on its own must be re-asked from that side
// only; the opponent's submission stands.
func TestResolicitOffendingSide(t *testing.T) {
	chal := &scripted{intents: []duel.TurnIntent{
		{Movement: duel.Advance, Technique: "Tsuki"}, // never drafted
		{Movement: duel.Advance},
	}}
	def := &scripted{intents: []duel.TurnIntent{{Movement: duel.Advance}}}
	m := newTestMatch(t, chal, def)

	if err := m.PlayTurn(context.Background()); err != nil {
		t.Fatalf("PlayTurn: %v", err)
	}
	if chal.asked != 2 {
		t.Errorf("challenger was asked %d times, want 2", chal.asked)
	}
	if def.asked != 1 {
		t.Errorf("defender was asked %d times, want 1", def.asked)
	}
	if m.State.Turn != 2 {
		t.Errorf("turn is %d after one resolved turn, want 2", m.State.Turn)
	}
}

// A combat action stranded by the opponent's movement is legal in
// isolation; the side that held ground while fighting must be the one
// re-asked.
func TestResolicitStrandedCombat(t *testing.T) {
	chal := &scripted{intents: []duel.TurnIntent{
		{Movement: duel.Stay, Combat: duel.Attack},
		{Movement: duel.Advance, Combat: duel.Attack},
	}}
	def := &scripted{intents: []duel.TurnIntent{{Movement: duel.Retreat}}}
	m := newTestMatch(t, chal, def)
	// Sword range, so the defender's retreat pulls the fight apart.
	m.State.Range = duel.Sword

	if err := m.PlayTurn(context.Background()); err != nil {
		t.Fatalf("PlayTurn: %v", err)
	}
	if chal.asked != 2 {
		t.Errorf("challenger was asked %d times, want 2", chal.asked)
	}
	if def.asked != 1 {
		t.Errorf("defender was asked %d times, want 1", def.asked)
	}
	if m.State.Range != duel.Sword {
		// Advance against retreat from Sword holds the range.
		t.Errorf("range is %v, want Sword", m.State.Range)
	}
}

// Persistent illegality must abort the turn instead of looping.
func TestResolicitGivesUp(t *testing.T) {
	bad := duel.TurnIntent{Movement: duel.Advance, Technique: "Tsuki"}
	chal := &scripted{intents: []duel.TurnIntent{bad}}
	def := &scripted{intents: []duel.TurnIntent{{Movement: duel.Advance}}}
	m := newTestMatch(t, chal, def)

	if err := m.PlayTurn(context.Background()); err == nil {
		t.Fatal("PlayTurn accepted a permanently illegal intent")
	}
	if chal.asked > maxRetries+2 {
		t.Errorf("challenger was asked %d times, want at most %d", chal.asked, maxRetries+2)
	}
}
