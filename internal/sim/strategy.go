package sim

import (
	"context"
	"math/rand"

	"github.com/JaTvoiRabotnik/bushido/internal/duel"
	"github.com/JaTvoiRabotnik/bushido/internal/log"
)

// Strategy produces intents for one duelist. Implementations may consult
// the full state but only the side they play is theirs to reason about.
type Strategy interface {
	Name() string
	ChooseIntent(rng *rand.Rand, state *duel.DuelState, role duel.Role) duel.TurnIntent
}

// RandomStrategy plays uniformly random legal-looking intents. Intents
// whose legality depends on the opponent's movement can still bounce; the
// match loop re-solicits those.
type RandomStrategy struct{}

func (RandomStrategy) Name() string { return "random" }

func (RandomStrategy) ChooseIntent(rng *rand.Rand, state *duel.DuelState, role duel.Role) duel.TurnIntent {
	me := state.Duelist(role)
	var intent duel.TurnIntent

	switch rng.Intn(6) {
	case 0:
		intent.Movement = duel.Stay
	case 1, 2, 3:
		intent.Movement = duel.Advance
	default:
		// Retreating past the honor limit concedes; keep it rare so most
		// matches resolve by combat.
		if state.Turn >= duel.HonorTurnLimit && rng.Intn(10) != 0 {
			intent.Movement = duel.Advance
		} else {
			intent.Movement = duel.Retreat
		}
	}

	switch rng.Intn(5) {
	case 0, 1:
		intent.Combat = duel.Attack
	case 2:
		intent.Combat = duel.Defend
	case 3:
		intent.Insight = true
		facts := []duel.Fact{duel.FactSpeed, duel.FactStrength, duel.FactDefense, duel.FactTechnique}
		intent.InsightTarget = facts[rng.Intn(len(facts))]
	}

	// Holding ground with a combat action is only guaranteed to stay in
	// reach at close range; anywhere else the opponent can slip away and
	// strand the action, so step in instead.
	if intent.Combat != duel.CombatNone && intent.Movement == duel.Stay && state.Range != duel.Close {
		intent.Movement = duel.Advance
	}

	if len(me.Hand) > 0 && rng.Intn(4) == 0 {
		intent.Technique = me.Hand[rng.Intn(len(me.Hand))]
	}
	if t := me.ActiveTechnique(); t != nil && t.CanResetResources && rng.Intn(8) == 0 {
		intent.ResetResources = true
	}
	return intent
}

// controller adapts a Strategy to the match loop.
type controller struct {
	strategy Strategy
	rng      *rand.Rand
}

func (c *controller) ChooseIntent(_ context.Context, state *duel.DuelState, role duel.Role) (duel.TurnIntent, error) {
	return c.strategy.ChooseIntent(c.rng, state, role), nil
}

func (c *controller) Notify(context.Context, log.GameEvent) error { return nil }
