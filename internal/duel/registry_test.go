package duel

import "testing"

// Every registered name must build a technique that knows its own name,
// and the standard pool must be the full registry.
func TestRegistryRoundTrip(t *testing.T) {
	names := TechniqueNames()
	if len(names) != 10 {
		t.Fatalf("registry holds %d techniques, want 10", len(names))
	}
	for _, name := range names {
		if !KnownTechnique(name) {
			t.Errorf("KnownTechnique(%q) = false", name)
		}
		tech := LookupTechnique(name)
		if tech == nil {
			t.Fatalf("LookupTechnique(%q) returned nil", name)
		}
		if tech.Name != name {
			t.Errorf("technique registered as %q names itself %q", name, tech.Name)
		}
	}
	pool := DefaultPool()
	if len(pool) != len(names) {
		t.Errorf("standard pool has %d entries, want %d", len(pool), len(names))
	}
}

// Hook closures resolve the opposing side's active technique through the
// registry while they run; a bonus hook must be callable on a freshly
// built exchange.
func TestHooksResolveThroughRegistry(t *testing.T) {
	s := testState(Close, 2)
	s.Challenger.Hand = []string{"Tsubame Gaeshi", "Mushin"}
	s.Challenger.Active = "Tsubame Gaeshi"
	s.Challenger.Momentum = 2
	s.Defender.Hand = []string{"Irimi", "Zanshin"}
	s.Defender.Active = "Irimi" // blunts momentum at close quarters

	cs := newSide(&s.Challenger, attack(Stay))
	ds := newSide(&s.Defender, defend(Stay))
	x := &Exchange{Range: Close, Challenger: cs, Defender: ds}

	tech := cs.Technique()
	if tech == nil || tech.AttackBonus == nil {
		t.Fatal("challenger's active technique did not resolve")
	}
	if got := tech.AttackBonus(x, cs); got != 1 {
		t.Errorf("momentum 2 halved at close quarters buys %d attack, want 1", got)
	}
	if s.Challenger.Momentum != 0 {
		t.Errorf("momentum = %d after the spend, want 0", s.Challenger.Momentum)
	}
}
