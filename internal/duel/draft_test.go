package duel

import (
	"errors"
	"math/rand"
	"testing"
)

func TestDraftProducesTwoCardHands(t *testing.T) {
	s := seededState(t, 7)
	for _, d := range []*Duelist{&s.Challenger, &s.Defender} {
		if len(d.Hand) != HandSize {
			t.Fatalf("%s hand = %v, want %d techniques", d.Role, d.Hand, HandSize)
		}
		for _, name := range d.Hand {
			if !KnownTechnique(name) {
				t.Errorf("%s drafted unknown technique %q", d.Role, name)
			}
		}
		if d.Active != d.Hand[0] {
			t.Errorf("%s active = %q, want first drafted %q", d.Role, d.Active, d.Hand[0])
		}
	}

	// No technique can end up in both hands.
	for _, c := range s.Challenger.Hand {
		for _, d := range s.Defender.Hand {
			if c == d {
				t.Errorf("technique %q drafted by both duelists", c)
			}
		}
	}
}

func TestDraftDeterministicGivenSeed(t *testing.T) {
	a := seededState(t, 42)
	b := seededState(t, 42)
	for i := range a.Challenger.Hand {
		if a.Challenger.Hand[i] != b.Challenger.Hand[i] {
			t.Fatalf("challenger hands diverge: %v vs %v", a.Challenger.Hand, b.Challenger.Hand)
		}
	}
	for i := range a.Defender.Hand {
		if a.Defender.Hand[i] != b.Defender.Hand[i] {
			t.Fatalf("defender hands diverge: %v vs %v", a.Defender.Hand, b.Defender.Hand)
		}
	}
}

func TestDraftHonorsPickers(t *testing.T) {
	// A first-candidate picker always takes index 0; the draft must respect
	// the choice and remove the card from later slates.
	first := PickerFunc(func(role Role, candidates []string) (int, error) {
		return 0, nil
	})
	rng := rand.New(rand.NewSource(3))
	chal, def, err := runDraft(DefaultPool(), rng, first, first)
	if err != nil {
		t.Fatalf("runDraft: %v", err)
	}
	if len(chal) != 2 || len(def) != 2 {
		t.Fatalf("hands = %v / %v, want 2 each", chal, def)
	}
	seen := map[string]bool{}
	for _, name := range append(append([]string{}, chal...), def...) {
		if seen[name] {
			t.Fatalf("technique %q drafted twice", name)
		}
		seen[name] = true
	}
}

func TestDraftRejectsBadPools(t *testing.T) {
	pools := [][]string{
		DefaultPool()[:9],                      // too small
		append(DefaultPool(), "Kiai"),          // duplicate makes 11
		append(DefaultPool()[:9], "Kiai"),      // duplicate at size 10
		append(DefaultPool()[:9], "Tsuki Off"), // unregistered name
	}
	for _, pool := range pools {
		_, err := StartMatch(MatchConfig{
			Challenger: AttributeSet{Speed: 2, Strength: 2, Defense: 2},
			Defender:   AttributeSet{Speed: 2, Strength: 2, Defense: 2},
			Pool:       pool,
		})
		if !errors.Is(err, ErrInvalidPoolSize) {
			t.Errorf("pool %v: expected ErrInvalidPoolSize, got %v", pool, err)
		}
	}
}
