package duel

import (
	"fmt"
	"math/rand"
	"time"
)

// HonorTurnLimit is the turn from which retreating becomes dishonorable.
const HonorTurnLimit = 4

// MatchConfig collects everything needed to start a duel. Zero-value
// fields other than the attribute sets fall back to sensible defaults.
type MatchConfig struct {
	Challenger AttributeSet
	Defender   AttributeSet

	// Pool is the draft pool; nil selects the standard ten techniques.
	Pool []string
	// Rand drives the draft's random discards and any random pickers.
	// Nil gets a time-seeded source; pass a fixed seed for reproducible
	// matches.
	Rand *rand.Rand

	ChallengerPicker DraftPicker
	DefenderPicker   DraftPicker
}

// StartMatch validates attributes, runs the draft, and returns the opening
// state: duelists Apart at full health, the challenger holding a point of
// momentum and the defender a point of balance.
func StartMatch(cfg MatchConfig) (*DuelState, error) {
	if err := cfg.Challenger.Validate(); err != nil {
		return nil, fmt.Errorf("challenger: %w", err)
	}
	if err := cfg.Defender.Validate(); err != nil {
		return nil, fmt.Errorf("defender: %w", err)
	}

	pool := cfg.Pool
	if pool == nil {
		pool = DefaultPool()
	}
	if err := validatePool(pool); err != nil {
		return nil, err
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	chalPicker := cfg.ChallengerPicker
	if chalPicker == nil {
		chalPicker = RandomPicker{Rand: rng}
	}
	defPicker := cfg.DefenderPicker
	if defPicker == nil {
		defPicker = RandomPicker{Rand: rng}
	}

	chalHand, defHand, err := runDraft(pool, rng, chalPicker, defPicker)
	if err != nil {
		return nil, err
	}

	return &DuelState{
		Turn:  1,
		Range: Apart,
		Challenger: Duelist{
			Role:       Challenger,
			Attributes: cfg.Challenger,
			Health:     StartingHealth,
			Momentum:   1,
			Hand:       chalHand,
			Active:     chalHand[0],
		},
		Defender: Duelist{
			Role:       Defender,
			Attributes: cfg.Defender,
			Health:     StartingHealth,
			Balance:    1,
			Hand:       defHand,
			Active:     defHand[0],
		},
	}, nil
}

// ResourceDelta is the net change to a duelist over one turn.
type ResourceDelta struct {
	Momentum int `json:"momentum"`
	Balance  int `json:"balance"`
	Health   int `json:"health"`
}

// TurnResult is the full record of one resolved turn, including a snapshot
// of the state it produced.
type TurnResult struct {
	Turn        int   `json:"turn"`
	RangeBefore Range `json:"range_before"`
	Range       Range `json:"range"`

	ChallengerIntent TurnIntent    `json:"challenger_intent"`
	DefenderIntent   TurnIntent    `json:"defender_intent"`
	ChallengerDelta  ResourceDelta `json:"challenger_delta"`
	DefenderDelta    ResourceDelta `json:"defender_delta"`

	Reveals []Reveal      `json:"reveals,omitempty"`
	Combat  *CombatReport `json:"combat,omitempty"`
	Outcome Outcome       `json:"outcome"`
	State   *DuelState    `json:"state"`
}

// Intent returns the submitted intent for the given role.
func (r *TurnResult) Intent(role Role) TurnIntent {
	if role == Challenger {
		return r.ChallengerIntent
	}
	return r.DefenderIntent
}

// Delta returns the resource delta for the given role.
func (r *TurnResult) Delta(role Role) ResourceDelta {
	if role == Challenger {
		return r.ChallengerDelta
	}
	return r.DefenderDelta
}

// SubmitTurn resolves one turn from both duelists' hidden intents. The
// input state is never mutated; the returned state is the new truth.
// Resolution order: validation, honor, position, resources, insight,
// combat, outcome.
func SubmitTurn(state *DuelState, ci, di TurnIntent) (*DuelState, *TurnResult, error) {
	if state.Outcome.Terminal() {
		return nil, nil, ErrMatchAlreadyConcluded
	}
	resulting := ResolvePosition(state.Range, ci.Movement, di.Movement)
	if err := validateIntent(state, Challenger, ci, resulting); err != nil {
		return nil, nil, err
	}
	if err := validateIntent(state, Defender, di, resulting); err != nil {
		return nil, nil, err
	}

	next := state.Clone()
	res := &TurnResult{
		Turn:             next.Turn,
		RangeBefore:      state.Range,
		Range:            state.Range,
		ChallengerIntent: ci,
		DefenderIntent:   di,
	}
	beforeC, beforeD := next.Challenger, next.Defender

	// Technique switches take effect before anything resolves.
	if ci.Technique != "" {
		next.Challenger.Active = ci.Technique
	}
	if di.Technique != "" {
		next.Defender.Active = di.Technique
	}

	// Honor. A dishonorable retreat ends the match before any movement or
	// combat resolves; only the turn counter advances.
	cViolates := ci.Movement == Retreat && next.Turn >= HonorTurnLimit
	dViolates := di.Movement == Retreat && next.Turn >= HonorTurnLimit
	if cViolates || dViolates {
		switch {
		case cViolates && dViolates:
			next.Outcome = Outcome{Kind: Draw, Reason: "mutual dishonorable retreat"}
		case cViolates:
			next.Outcome = Outcome{Kind: DishonorLoss, Winner: Defender, Violator: Challenger, Reason: "dishonorable retreat"}
		default:
			next.Outcome = Outcome{Kind: DishonorLoss, Winner: Challenger, Violator: Defender, Reason: "dishonorable retreat"}
		}
		return finishTurn(next, res, beforeC, beforeD)
	}

	next.Range = resulting
	res.Range = resulting

	applyMovementResources(&next.Challenger, ci.Movement, state.Range, resulting)
	applyMovementResources(&next.Defender, di.Movement, state.Range, resulting)

	for _, p := range []struct {
		d      *Duelist
		intent TurnIntent
	}{{&next.Challenger, ci}, {&next.Defender, di}} {
		if p.intent.ResetResources {
			if t := p.d.ActiveTechnique(); t != nil && t.CanResetResources {
				p.d.Momentum = 0
				p.d.Balance = 0
			}
		}
	}

	if ci.Insight {
		res.Reveals = append(res.Reveals, resolveInsight(next, Challenger, ci, di))
	}
	if di.Insight {
		res.Reveals = append(res.Reveals, resolveInsight(next, Defender, di, ci))
	}

	if resulting.AllowsCombat() && (ci.Combat == Attack || di.Combat == Attack) {
		res.Combat = resolveCombat(next, ci, di)
	}

	cDead := next.Challenger.Health <= 0
	dDead := next.Defender.Health <= 0
	switch {
	case cDead && dDead:
		next.Outcome = Outcome{Kind: Draw, Reason: "mutual demise"}
	case cDead:
		next.Outcome = Outcome{Kind: Win, Winner: Defender, Reason: "challenger's health exhausted"}
	case dDead:
		next.Outcome = Outcome{Kind: Win, Winner: Challenger, Reason: "defender's health exhausted"}
	}

	return finishTurn(next, res, beforeC, beforeD)
}

func finishTurn(next *DuelState, res *TurnResult, beforeC, beforeD Duelist) (*DuelState, *TurnResult, error) {
	next.Turn++
	res.ChallengerDelta = delta(beforeC, next.Challenger)
	res.DefenderDelta = delta(beforeD, next.Defender)
	res.Outcome = next.Outcome
	res.State = next.Clone()
	return next, res, nil
}

func delta(before, after Duelist) ResourceDelta {
	return ResourceDelta{
		Momentum: after.Momentum - before.Momentum,
		Balance:  after.Balance - before.Balance,
		Health:   after.Health - before.Health,
	}
}

// validateIntent enforces the per-turn action matrix. Legal shapes are
// movement alone, movement with combat, movement with insight, insight
// alone, and combat alone when the resolved range would allow it.
func validateIntent(state *DuelState, role Role, intent TurnIntent, resulting Range) error {
	d := state.Duelist(role)
	if intent.Technique != "" && !d.HasInHand(intent.Technique) {
		return fmt.Errorf("%s: %w: %q", role, ErrUnknownTechniqueSelected, intent.Technique)
	}
	if intent.Insight && intent.Combat != CombatNone {
		return fmt.Errorf("%s: %w: insight cannot be combined with a combat action", role, ErrIllegalIntentCombination)
	}
	if intent.Insight && !ValidInsightTarget(intent.InsightTarget) {
		return fmt.Errorf("%s: %w: invalid insight target %q", role, ErrIllegalIntentCombination, intent.InsightTarget)
	}
	if intent.Combat != CombatNone && intent.Movement == Stay && !resulting.AllowsCombat() {
		return fmt.Errorf("%s: %w: combat action while apart", role, ErrIllegalIntentCombination)
	}
	return nil
}

// IsTerminal reports whether the match has concluded.
func IsTerminal(state *DuelState) bool {
	return state.Outcome.Terminal()
}

// KnownFact is one piece of opponent information a duelist has learned.
type KnownFact struct {
	Fact      Fact   `json:"fact"`
	Value     int    `json:"value,omitempty"`
	Technique string `json:"technique,omitempty"`
}

// AttributeView is what one duelist knows: their own full attributes plus
// whatever Insight has revealed of the opponent.
type AttributeView struct {
	Own      AttributeSet `json:"own"`
	Opponent []KnownFact  `json:"opponent,omitempty"`
}

// QueryKnownAttributes returns the given duelist's knowledge: own
// attributes in full, opponent facts only as revealed, in stable order.
func QueryKnownAttributes(state *DuelState, r Role) AttributeView {
	opp := state.Duelist(r.Opponent())
	view := AttributeView{Own: state.Duelist(r).Attributes}
	for _, f := range []Fact{FactSpeed, FactStrength, FactDefense} {
		if opp.Knows(f) {
			view.Opponent = append(view.Opponent, KnownFact{Fact: f, Value: opp.Attributes.Value(f)})
		}
	}
	if opp.Knows(FactTechnique) {
		view.Opponent = append(view.Opponent, KnownFact{Fact: FactTechnique, Technique: opp.Active})
	}
	return view
}

// MatchOutcome returns the match outcome, Ongoing included.
func MatchOutcome(state *DuelState) Outcome {
	return state.Outcome
}
