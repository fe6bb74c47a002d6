package duel

import (
	"fmt"
	"math/rand"
)

// DraftPicker chooses one technique from a slate of candidates during the
// draft. Implementations return the index of the chosen candidate.
type DraftPicker interface {
	Pick(role Role, candidates []string) (int, error)
}

// RandomPicker drafts uniformly at random from the slate.
type RandomPicker struct {
	Rand *rand.Rand
}

func (p RandomPicker) Pick(role Role, candidates []string) (int, error) {
	return p.Rand.Intn(len(candidates)), nil
}

// PickerFunc adapts a function to the DraftPicker interface.
type PickerFunc func(role Role, candidates []string) (int, error)

func (f PickerFunc) Pick(role Role, candidates []string) (int, error) {
	return f(role, candidates)
}

// validatePool checks the ten-distinct-registered-techniques invariant.
func validatePool(pool []string) error {
	if len(pool) != 10 {
		return fmt.Errorf("%w: got %d", ErrInvalidPoolSize, len(pool))
	}
	seen := make(map[string]bool, len(pool))
	for _, name := range pool {
		if !KnownTechnique(name) {
			return fmt.Errorf("%w: unregistered technique %q", ErrInvalidPoolSize, name)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate technique %q", ErrInvalidPoolSize, name)
		}
		seen[name] = true
	}
	return nil
}

// runDraft executes the alternating blind draft and returns each duelist's
// two-technique hand. The pool must already be validated. All randomness
// flows through rng, so a fixed seed reproduces the same draft when the
// pickers are deterministic.
func runDraft(pool []string, rng *rand.Rand, chal, def DraftPicker) (chalHand, defHand []string, err error) {
	remaining := append([]string(nil), pool...)

	discardRandom := func(n int) {
		for i := 0; i < n; i++ {
			remaining = removeAt(remaining, rng.Intn(len(remaining)))
		}
	}
	pick := func(p DraftPicker, role Role) (string, error) {
		idx, err := p.Pick(role, append([]string(nil), remaining...))
		if err != nil {
			return "", fmt.Errorf("%s draft pick: %w", role, err)
		}
		if idx < 0 || idx >= len(remaining) {
			return "", fmt.Errorf("%s draft pick: index %d out of range", role, idx)
		}
		name := remaining[idx]
		remaining = removeAt(remaining, idx)
		return name, nil
	}

	discardRandom(1)

	c1, err := pick(chal, Challenger)
	if err != nil {
		return nil, nil, err
	}
	d1, err := pick(def, Defender)
	if err != nil {
		return nil, nil, err
	}
	discardRandom(2)

	c2, err := pick(chal, Challenger)
	if err != nil {
		return nil, nil, err
	}
	discardRandom(1)

	d2, err := pick(def, Defender)
	if err != nil {
		return nil, nil, err
	}
	// Two techniques remain face down, seen by no one.

	return []string{c1, c2}, []string{d1, d2}, nil
}

func removeAt(list []string, i int) []string {
	out := append([]string(nil), list[:i]...)
	return append(out, list[i+1:]...)
}
