package duel

import "testing"

func TestResolvePositionTable(t *testing.T) {
	cases := []struct {
		from Range
		a, b Move
		want Range
	}{
		// From Apart.
		{Apart, Advance, Advance, Sword},
		{Apart, Advance, Stay, Sword},
		{Apart, Advance, Retreat, Apart},
		{Apart, Stay, Stay, Apart},
		{Apart, Retreat, Retreat, Apart},
		{Apart, Retreat, Stay, Apart},

		// From Sword Range.
		{Sword, Advance, Advance, Close},
		{Sword, Advance, Stay, Close},
		{Sword, Advance, Retreat, Sword},
		{Sword, Stay, Stay, Sword},
		{Sword, Retreat, Retreat, Apart},
		{Sword, Retreat, Stay, Apart},

		// From Close Combat.
		{Close, Advance, Advance, Close},
		{Close, Advance, Stay, Close},
		{Close, Advance, Retreat, Close},
		{Close, Stay, Stay, Close},
		{Close, Retreat, Retreat, Apart},
		{Close, Retreat, Stay, Sword},
	}
	for _, c := range cases {
		got := ResolvePosition(c.from, c.a, c.b)
		if got != c.want {
			t.Errorf("ResolvePosition(%v, %v, %v) = %v, want %v", c.from, c.a, c.b, got, c.want)
		}
		// Movement resolution must not care which duelist chose which move.
		if sym := ResolvePosition(c.from, c.b, c.a); sym != got {
			t.Errorf("ResolvePosition(%v, %v, %v) = %v, not symmetric with %v", c.from, c.b, c.a, sym, got)
		}
	}
}

func TestPositionStepLimit(t *testing.T) {
	// A mutual retreat from Close Combat breaks contact entirely; every
	// other transition moves at most one step.
	moves := []Move{Stay, Advance, Retreat}
	for _, from := range []Range{Apart, Sword, Close} {
		for _, a := range moves {
			for _, b := range moves {
				if from == Close && a == Retreat && b == Retreat {
					continue
				}
				to := ResolvePosition(from, a, b)
				d := int(to) - int(from)
				if d < -1 || d > 1 {
					t.Errorf("ResolvePosition(%v, %v, %v) jumped %d steps", from, a, b, d)
				}
			}
		}
	}
}
