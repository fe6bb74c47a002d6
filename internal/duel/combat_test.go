package duel

import "testing"

// TestPlainStrikeAgainstGuard: at Sword Range, a strength-4 strike against
// a defense-2 guard lands for 2 damage.
func TestPlainStrikeAgainstGuard(t *testing.T) {
	s := testState(Sword, 2)
	s.Challenger.Attributes = AttributeSet{Speed: 1, Strength: 4, Defense: 1}
	s.Defender.Attributes = AttributeSet{Speed: 3, Strength: 1, Defense: 2}
	// Neither form adds attack or defense here, and the guard has no
	// momentum to pay Tsubame Gaeshi's evade with.
	s.Challenger.Hand = []string{"Irimi", "Mushin"}
	s.Challenger.Active = "Irimi"
	s.Defender.Hand = []string{"Tsubame Gaeshi", "Kiai"}
	s.Defender.Active = "Tsubame Gaeshi"
	s.Defender.Momentum = 0
	s.Defender.Balance = 0

	next, res := mustSubmit(t, s, attack(Stay), defend(Stay))

	if res.Combat == nil {
		t.Fatal("expected combat to resolve")
	}
	if got := res.Combat.Challenger.AttackTotal; got != 4 {
		t.Errorf("attack total = %d, want 4", got)
	}
	if got := res.Combat.Defender.DefenseTotal; got != 2 {
		t.Errorf("defense total = %d, want 2", got)
	}
	if got := res.Combat.Defender.DamageTaken; got != 2 {
		t.Errorf("damage = %d, want 2", got)
	}
	if next.Defender.Health != 1 {
		t.Errorf("defender health = %d, want 1", next.Defender.Health)
	}
	if next.Outcome.Terminal() {
		t.Errorf("outcome = %v, want ongoing", next.Outcome)
	}
}

// TestWeakStrikeDealsNothing: a guard stronger than the strike floors
// damage at zero rather than healing the defender.
func TestWeakStrikeDealsNothing(t *testing.T) {
	s := testState(Sword, 2)
	s.Challenger.Attributes = AttributeSet{Speed: 2, Strength: 1, Defense: 3}
	s.Defender.Attributes = AttributeSet{Speed: 2, Strength: 1, Defense: 3}
	s.Challenger.Hand = []string{"Irimi", "Mushin"}
	s.Challenger.Active = "Irimi"
	s.Defender.Hand = []string{"Tsubame Gaeshi", "Kiai"}
	s.Defender.Active = "Tsubame Gaeshi"
	s.Defender.Momentum = 0

	next, res := mustSubmit(t, s, attack(Stay), defend(Stay))

	if res.Combat == nil {
		t.Fatal("expected combat to resolve")
	}
	if res.Combat.Defender.Evaded {
		t.Error("defender evaded a strike that would deal no damage")
	}
	if got := res.Combat.Defender.DamageTaken; got != 0 {
		t.Errorf("damage = %d, want 0", got)
	}
	if next.Defender.Health != StartingHealth {
		t.Errorf("defender health = %d, want %d", next.Defender.Health, StartingHealth)
	}
}

// TestEvadePaysBalance: a faster guard slips a 4-point strike for one
// point of balance and takes nothing.
func TestEvadePaysBalance(t *testing.T) {
	s := testState(Sword, 2)
	s.Challenger.Attributes = AttributeSet{Speed: 1, Strength: 4, Defense: 1}
	s.Defender.Attributes = AttributeSet{Speed: 4, Strength: 1, Defense: 1}
	s.Challenger.Hand = []string{"Irimi", "Mushin"}
	s.Challenger.Active = "Irimi"
	s.Defender.Hand = []string{"Ma-ai", "Zanshin"} // Ma-ai: evade for 1 balance at a distance
	s.Defender.Active = "Ma-ai"
	s.Defender.Balance = 1 // staying put brings this to 2 before combat

	next, res := mustSubmit(t, s, attack(Stay), TurnIntent{Movement: Stay})

	if res.Combat == nil {
		t.Fatal("expected combat to resolve")
	}
	if !res.Combat.Defender.Evaded {
		t.Fatal("expected the defender to evade")
	}
	if !res.Combat.Challenger.AttackEvaded {
		t.Error("challenger's attack should be marked evaded")
	}
	if got := res.Combat.Defender.EvadeCost; got != (Cost{Balance: 1}) {
		t.Errorf("evade cost = %+v, want 1 balance", got)
	}
	if next.Defender.Health != StartingHealth {
		t.Errorf("defender health = %d, want untouched %d", next.Defender.Health, StartingHealth)
	}
	if next.Defender.Balance != 1 {
		t.Errorf("defender balance = %d, want 1 after paying the evade", next.Defender.Balance)
	}
}

// TestInsightLeavesDefenseless: reading the opponent zeroes the reader's
// defense total for the turn, but only the defense total.
func TestInsightLeavesDefenseless(t *testing.T) {
	s := testState(Sword, 2)
	s.Challenger.Attributes = AttributeSet{Speed: 1, Strength: 3, Defense: 2}
	s.Defender.Attributes = AttributeSet{Speed: 2, Strength: 1, Defense: 3}
	s.Challenger.Hand = []string{"Irimi", "Mushin"}
	s.Challenger.Active = "Irimi"
	s.Defender.Hand = []string{"Tsubame Gaeshi", "Kiai"}
	s.Defender.Active = "Tsubame Gaeshi"
	s.Defender.Momentum = 0

	next, res := mustSubmit(t, s, attack(Stay), TurnIntent{
		Movement:      Stay,
		Insight:       true,
		InsightTarget: FactStrength,
	})

	if len(res.Reveals) != 1 {
		t.Fatalf("reveals = %v, want exactly one", res.Reveals)
	}
	if r := res.Reveals[0]; r.Fact != FactStrength || r.Value != 3 {
		t.Errorf("reveal = %+v, want challenger strength 3", r)
	}
	if res.Combat == nil {
		t.Fatal("expected combat to resolve")
	}
	if got := res.Combat.Defender.DefenseTotal; got != 0 {
		t.Errorf("defenseless total = %d, want 0", got)
	}
	// Attack total 3, defense 0: full damage lands.
	if next.Defender.Health != 0 {
		t.Errorf("defender health = %d, want 0", next.Defender.Health)
	}
	if next.Outcome.Kind != Win || next.Outcome.Winner != Challenger {
		t.Errorf("outcome = %v, want challenger win", next.Outcome)
	}
}

// TestAiUchiIgnoresDefenseAndEvades: the mutual strike punches through a
// guard and cannot be slipped, but its bearer keeps no guard either.
func TestAiUchiCutsBothWays(t *testing.T) {
	s := testState(Close, 3)
	s.Challenger.Attributes = AttributeSet{Speed: 2, Strength: 2, Defense: 2}
	s.Defender.Attributes = AttributeSet{Speed: 2, Strength: 2, Defense: 2}
	s.Challenger.Hand = []string{"Ai Uchi", "Mushin"}
	s.Challenger.Active = "Ai Uchi"
	s.Defender.Hand = []string{"Ma-ai", "Zanshin"}
	s.Defender.Active = "Zanshin"
	s.Defender.Balance = 3 // could easily afford an evade, but none is allowed

	next, res := mustSubmit(t, s, attack(Stay), attack(Stay))

	if res.Combat.Defender.Evaded || res.Combat.Challenger.Evaded {
		t.Fatal("no evade should resolve against or by Ai Uchi")
	}
	// Challenger: 2 strength + 1 close = 3 through ignored defense.
	if got := res.Combat.Challenger.DamageDealt; got != 3 {
		t.Errorf("challenger damage dealt = %d, want 3", got)
	}
	// Defender strikes back into a forfeited guard: 2 + 1 close = 3.
	if got := res.Combat.Defender.DamageDealt; got != 3 {
		t.Errorf("defender damage dealt = %d, want 3", got)
	}
	if next.Outcome.Kind != Draw {
		t.Errorf("outcome = %v, want draw by mutual demise", next.Outcome)
	}
}

// TestTsubameMomentumConversion: all momentum converts into the strike and
// the strike cannot be evaded at close quarters with momentum 3 or more.
func TestTsubameMomentumConversion(t *testing.T) {
	s := testState(Close, 3)
	s.Challenger.Attributes = AttributeSet{Speed: 2, Strength: 3, Defense: 1}
	s.Defender.Attributes = AttributeSet{Speed: 2, Strength: 1, Defense: 3}
	s.Challenger.Hand = []string{"Tsubame Gaeshi", "Mushin"}
	s.Challenger.Active = "Tsubame Gaeshi"
	s.Challenger.Momentum = 3
	s.Defender.Hand = []string{"Ma-ai", "Zanshin"}
	s.Defender.Active = "Zanshin"
	s.Defender.Balance = 3

	_, res := mustSubmit(t, s, attack(Stay), defend(Stay))

	// 3 strength + 3 momentum + 1 close.
	if got := res.Combat.Challenger.AttackTotal; got != 7 {
		t.Errorf("attack total = %d, want 7", got)
	}
	if res.Combat.Defender.Evaded {
		t.Error("evade should be bypassed at close quarters with full momentum")
	}
	if res.State.Challenger.Momentum != 0 {
		t.Errorf("momentum = %d, want 0 after conversion", res.State.Challenger.Momentum)
	}
}

// TestNagashiAbsorbsAndCounters: prevented damage becomes momentum, and a
// 5+ point strike is countered for 2.
func TestNagashiAbsorbsAndCounters(t *testing.T) {
	// Starting Apart: the advance carries the challenger to Sword Range.
	s := testState(Apart, 2)
	s.Challenger.Attributes = AttributeSet{Speed: 2, Strength: 4, Defense: 1} // wants a big strike
	s.Defender.Attributes = AttributeSet{Speed: 2, Strength: 1, Defense: 3}
	s.Challenger.Hand = []string{"Kuzushi", "Mushin"}
	s.Challenger.Active = "Kuzushi"
	s.Defender.Hand = []string{"Nagashi", "Zanshin"}
	s.Defender.Active = "Nagashi"
	s.Defender.Momentum = 0 // cannot afford Nagashi's evade

	next, res := mustSubmit(t, s, attack(Advance), defend(Stay))

	// Attack: 4 strength + 2 Kuzushi-advance + 1 advance = 7.
	if got := res.Combat.Challenger.AttackTotal; got != 7 {
		t.Errorf("attack total = %d, want 7", got)
	}
	// Defense: 3 + 1 Nagashi = 4; damage 3, prevented 4.
	if got := res.Combat.Defender.DamageTaken; got != 3 {
		t.Errorf("damage taken = %d, want 3", got)
	}
	if got := res.Combat.Defender.CounterDamage; got != 2 {
		t.Errorf("counter damage = %d, want 2", got)
	}
	if got := res.Combat.Challenger.DamageTaken; got != 2 {
		t.Errorf("challenger damage taken = %d, want the 2-point counter", got)
	}
	// Prevented force became momentum, clamped at the cap.
	if next.Defender.Momentum != DefaultResourceCap {
		t.Errorf("defender momentum = %d, want capped %d", next.Defender.Momentum, DefaultResourceCap)
	}
}

// TestMushinEmptyHandedPower: with both resources at zero, Mushin grants
// +3 to both totals.
func TestMushinEmptyHandedPower(t *testing.T) {
	s := testState(Sword, 2)
	s.Challenger.Attributes = AttributeSet{Speed: 2, Strength: 2, Defense: 2}
	s.Defender.Attributes = AttributeSet{Speed: 2, Strength: 2, Defense: 2}
	s.Challenger.Hand = []string{"Mushin", "Kuzushi"}
	s.Challenger.Active = "Mushin"
	s.Challenger.Momentum = 1
	s.Challenger.Balance = 2
	s.Defender.Hand = []string{"Tsubame Gaeshi", "Kiai"}
	s.Defender.Active = "Tsubame Gaeshi"
	s.Defender.Momentum = 0

	// The reset empties both resources before combat, so the empty-mind
	// bonus applies: 2 strength + 3 = 5.
	_, res := mustSubmit(t, s,
		TurnIntent{Movement: Stay, Combat: Attack, ResetResources: true},
		defend(Stay))

	if got := res.Combat.Challenger.AttackTotal; got != 5 {
		t.Errorf("attack total = %d, want 5 with the empty-mind bonus", got)
	}
	if res.State.Challenger.Momentum != 0 || res.State.Challenger.Balance != 0 {
		t.Errorf("resources = %d/%d, want 0/0 after reset",
			res.State.Challenger.Momentum, res.State.Challenger.Balance)
	}
}

// TestKuzushiStealsBalanceOnHit.
func TestKuzushiStealsBalanceOnHit(t *testing.T) {
	s := testState(Sword, 2)
	s.Challenger.Attributes = AttributeSet{Speed: 2, Strength: 3, Defense: 1}
	s.Defender.Attributes = AttributeSet{Speed: 2, Strength: 1, Defense: 3}
	s.Challenger.Hand = []string{"Kuzushi", "Mushin"}
	s.Challenger.Active = "Kuzushi"
	s.Challenger.Balance = 0
	s.Defender.Hand = []string{"Tsubame Gaeshi", "Kiai"}
	s.Defender.Active = "Tsubame Gaeshi"
	s.Defender.Momentum = 0
	s.Defender.Balance = 2

	next, _ := mustSubmit(t, s, attack(Advance), TurnIntent{Movement: Stay})

	// Defender stayed: balance 2 → 3, then the landed hit steals one.
	if next.Defender.Balance != 2 {
		t.Errorf("defender balance = %d, want 2 after the steal", next.Defender.Balance)
	}
	if next.Challenger.Balance != 1 {
		t.Errorf("challenger balance = %d, want the stolen point", next.Challenger.Balance)
	}
}
