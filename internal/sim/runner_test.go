package sim

import (
	"context"
	"math/rand"
	"testing"

	"github.com/JaTvoiRabotnik/bushido/internal/duel"
)

func batchConfig(n int, seed int64) Config {
	return Config{
		Matches:    n,
		Seed:       seed,
		Challenger: duel.AttributeSet{Speed: 2, Strength: 3, Defense: 1},
		Defender:   duel.AttributeSet{Speed: 2, Strength: 1, Defense: 3},
	}
}

// A small seeded batch must account for every match exactly once and
// count four drafted techniques per match.
func TestBatchAccounting(t *testing.T) {
	const n = 8
	r, err := NewRunner(batchConfig(n, 42))
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	stats, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.Matches != n {
		t.Fatalf("played %d matches, want %d", stats.Matches, n)
	}
	total := stats.ChallengerWins + stats.DefenderWins + stats.Draws + stats.Unfinished
	if total != n {
		t.Errorf("outcomes sum to %d, want %d (stats: %s)", total, n, stats)
	}

	picks := 0
	for _, c := range stats.TechniquePicks {
		picks += c
	}
	if picks != 4*n {
		t.Errorf("counted %d technique picks, want %d", picks, 4*n)
	}
	for name := range stats.TechniquePicks {
		if !duel.KnownTechnique(name) {
			t.Errorf("picked unknown technique %q", name)
		}
	}
	for name, wins := range stats.TechniqueWins {
		if wins > stats.TechniquePicks[name] {
			t.Errorf("%s won %d matches but was only picked %d times", name, wins, stats.TechniquePicks[name])
		}
	}
}

// The same seed must reproduce the same batch.
func TestBatchDeterministicGivenSeed(t *testing.T) {
	run := func() *Stats {
		r, err := NewRunner(batchConfig(6, 99))
		if err != nil {
			t.Fatalf("NewRunner: %v", err)
		}
		stats, err := r.Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return stats
	}
	a, b := run(), run()
	if a.String() != b.String() {
		t.Errorf("same seed diverged:\n  %s\n  %s", a, b)
	}
}

// Concurrent workers must not lose or duplicate matches.
func TestBatchConcurrent(t *testing.T) {
	cfg := batchConfig(12, 7)
	cfg.Concurrency = 4
	r, err := NewRunner(cfg)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	stats, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Matches != 12 {
		t.Errorf("played %d matches, want 12", stats.Matches)
	}
}

// Random intents must respect the rules that do not depend on the
// opponent's hidden choice.
func TestRandomStrategyShape(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	state, err := duel.StartMatch(duel.MatchConfig{
		Challenger: duel.AttributeSet{Speed: 2, Strength: 2, Defense: 2},
		Defender:   duel.AttributeSet{Speed: 2, Strength: 2, Defense: 2},
		Rand:       rand.New(rand.NewSource(3)),
	})
	if err != nil {
		t.Fatalf("StartMatch: %v", err)
	}

	var s RandomStrategy
	for i := 0; i < 500; i++ {
		intent := s.ChooseIntent(rng, state, duel.Challenger)
		if intent.Insight && intent.Combat != duel.CombatNone {
			t.Fatalf("intent %d pairs insight with combat", i)
		}
		if intent.Insight && !duel.ValidInsightTarget(intent.InsightTarget) {
			t.Fatalf("intent %d targets invalid fact %q", i, intent.InsightTarget)
		}
		if intent.Technique != "" && !state.Challenger.HasInHand(intent.Technique) {
			t.Fatalf("intent %d switches to unheld technique %q", i, intent.Technique)
		}
	}
}
