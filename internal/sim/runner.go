package sim

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/JaTvoiRabotnik/bushido/internal/duel"
	"github.com/JaTvoiRabotnik/bushido/internal/log"
	"github.com/JaTvoiRabotnik/bushido/internal/match"
)

// Config describes a batch of unattended matches.
type Config struct {
	Matches     int
	Concurrency int

	Challenger duel.AttributeSet
	Defender   duel.AttributeSet
	// Pool is the draft pool; nil selects the standard ten techniques.
	Pool []string

	ChallengerStrategy Strategy
	DefenderStrategy   Strategy

	// Seed is the base seed; match i plays with Seed+i. Zero draws a fresh
	// seed from crypto/rand.
	Seed int64

	// MaxTurns is a safety limit per match; a duel still ongoing after this
	// many turns counts as unfinished rather than looping forever.
	MaxTurns int

	// Store receives a record per match when non-nil.
	Store *Store
}

// Stats aggregates outcomes across a batch.
type Stats struct {
	Matches        int
	ChallengerWins int
	DefenderWins   int
	Draws          int
	DishonorEnds   int
	Unfinished     int
	TotalTurns     int

	// TechniquePicks counts drafts per technique; TechniqueWins counts how
	// often a drafted technique ended up on the winning side.
	TechniquePicks map[string]int
	TechniqueWins  map[string]int
}

// AvgTurns is the mean number of completed turns per match.
func (s *Stats) AvgTurns() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Matches)
}

func (s *Stats) String() string {
	return fmt.Sprintf("%d matches: challenger %d, defender %d, draws %d, unfinished %d (%d ended by dishonor), avg %.1f turns",
		s.Matches, s.ChallengerWins, s.DefenderWins, s.Draws, s.Unfinished, s.DishonorEnds, s.AvgTurns())
}

type matchOutcome struct {
	seed    int64
	turns   int
	outcome duel.Outcome
	chal    []string
	def     []string
	err     error
}

// Runner plays a batch of matches and aggregates their outcomes.
type Runner struct {
	cfg Config
}

// NewRunner validates the config and fills in defaults.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Matches <= 0 {
		cfg.Matches = 1
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.ChallengerStrategy == nil {
		cfg.ChallengerStrategy = RandomStrategy{}
	}
	if cfg.DefenderStrategy == nil {
		cfg.DefenderStrategy = RandomStrategy{}
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = 40
	}
	if cfg.Seed == 0 {
		seed, err := NewSeed()
		if err != nil {
			return nil, err
		}
		cfg.Seed = seed
	}
	if err := cfg.Challenger.Validate(); err != nil {
		return nil, fmt.Errorf("challenger: %w", err)
	}
	if err := cfg.Defender.Validate(); err != nil {
		return nil, fmt.Errorf("defender: %w", err)
	}
	return &Runner{cfg: cfg}, nil
}

// Run plays the batch. Matches are independent, so they fan out across
// Concurrency workers; the first hard error aborts the batch.
func (r *Runner) Run(ctx context.Context) (*Stats, error) {
	seeds := make(chan int64)
	results := make(chan matchOutcome, r.cfg.Concurrency)

	var wg sync.WaitGroup
	for w := 0; w < r.cfg.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range seeds {
				results <- r.playOne(ctx, seed)
			}
		}()
	}
	go func() {
		defer close(seeds)
		for i := 0; i < r.cfg.Matches; i++ {
			select {
			case seeds <- r.cfg.Seed + int64(i):
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	stats := &Stats{
		TechniquePicks: make(map[string]int),
		TechniqueWins:  make(map[string]int),
	}
	var firstErr error
	for out := range results {
		if out.err != nil {
			if firstErr == nil {
				firstErr = out.err
			}
			continue
		}
		stats.record(out)
		if r.cfg.Store != nil {
			rec := newMatchRecord(out, r.cfg.ChallengerStrategy.Name(), r.cfg.DefenderStrategy.Name())
			if err := r.cfg.Store.Save(rec); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr != nil {
		return stats, firstErr
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}

func (r *Runner) playOne(ctx context.Context, seed int64) matchOutcome {
	rng := rand.New(rand.NewSource(seed))
	chal := &controller{strategy: r.cfg.ChallengerStrategy, rng: rng}
	def := &controller{strategy: r.cfg.DefenderStrategy, rng: rng}

	m, err := match.New(duel.MatchConfig{
		Challenger: r.cfg.Challenger,
		Defender:   r.cfg.Defender,
		Pool:       append([]string(nil), r.cfg.Pool...),
		Rand:       rng,
	}, log.NewMemoryLogger(), chal, def)
	if err != nil {
		return matchOutcome{seed: seed, err: fmt.Errorf("seed %d: %w", seed, err)}
	}

	for turn := 0; turn < r.cfg.MaxTurns && !duel.IsTerminal(m.State); turn++ {
		if err := m.PlayTurn(ctx); err != nil {
			return matchOutcome{seed: seed, err: fmt.Errorf("seed %d: %w", seed, err)}
		}
	}
	return matchOutcome{
		seed:    seed,
		turns:   m.State.Turn - 1,
		outcome: m.State.Outcome,
		chal:    append([]string(nil), m.State.Challenger.Hand...),
		def:     append([]string(nil), m.State.Defender.Hand...),
	}
}

func (s *Stats) record(out matchOutcome) {
	s.Matches++
	s.TotalTurns += out.turns
	for _, t := range out.chal {
		s.TechniquePicks[t]++
	}
	for _, t := range out.def {
		s.TechniquePicks[t]++
	}

	switch out.outcome.Kind {
	case duel.Ongoing:
		s.Unfinished++
		return
	case duel.Draw:
		s.Draws++
		if out.outcome.Reason == "mutual dishonorable retreat" {
			s.DishonorEnds++
		}
		return
	case duel.DishonorLoss:
		s.DishonorEnds++
	case duel.Win:
	default:
		return
	}

	winning := out.chal
	if out.outcome.Winner == duel.Challenger {
		s.ChallengerWins++
	} else {
		s.DefenderWins++
		winning = out.def
	}
	for _, t := range winning {
		s.TechniqueWins[t]++
	}
}
