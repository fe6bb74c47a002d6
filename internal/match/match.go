// Package match drives a duel turn by turn, soliciting hidden intents from
// two controllers and feeding resolved events back to them.
package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/JaTvoiRabotnik/bushido/internal/duel"
	"github.com/JaTvoiRabotnik/bushido/internal/log"
)

// Controller supplies one duelist's decisions. Implementations receive the
// full state and are trusted to look only at their own side; anything
// crossing a network boundary must filter the state into a view first.
type Controller interface {
	ChooseIntent(ctx context.Context, state *duel.DuelState, role duel.Role) (duel.TurnIntent, error)
	Notify(ctx context.Context, event log.GameEvent) error
}

// maxRetries bounds how often an illegal intent is re-solicited before the
// match is abandoned.
const maxRetries = 3

// Match owns one duel's state and its event log.
type Match struct {
	State  *duel.DuelState
	Logger log.EventLogger

	challenger Controller
	defender   Controller
}

// New starts a match from the given config.
func New(cfg duel.MatchConfig, logger log.EventLogger, chal, def Controller) (*Match, error) {
	state, err := duel.StartMatch(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	return &Match{State: state, Logger: logger, challenger: chal, defender: def}, nil
}

// Run plays the match to its terminal outcome. Illegal intents are
// re-solicited from the offending controller a bounded number of times.
func (m *Match) Run(ctx context.Context) (duel.Outcome, error) {
	for !duel.IsTerminal(m.State) {
		if err := ctx.Err(); err != nil {
			return m.State.Outcome, err
		}
		if err := m.PlayTurn(ctx); err != nil {
			return m.State.Outcome, err
		}
	}
	return m.State.Outcome, nil
}

// PlayTurn solicits both intents and resolves a single turn. Callers that
// need a turn cap (batch simulation) drive this directly instead of Run.
func (m *Match) PlayTurn(ctx context.Context) error {
	ci, err := m.challenger.ChooseIntent(ctx, m.State, duel.Challenger)
	if err != nil {
		return fmt.Errorf("challenger intent: %w", err)
	}
	di, err := m.defender.ChooseIntent(ctx, m.State, duel.Defender)
	if err != nil {
		return fmt.Errorf("defender intent: %w", err)
	}

	var res *duel.TurnResult
	var next *duel.DuelState
	for retry := 0; ; retry++ {
		next, res, err = duel.SubmitTurn(m.State, ci, di)
		if err == nil {
			break
		}
		if retry >= maxRetries || !isIntentError(err) {
			return fmt.Errorf("turn %d: %w", m.State.Turn, err)
		}
		// Only the offending side re-chooses; the other intent stands.
		ci, di, err = m.resolicit(ctx, err, ci, di)
		if err != nil {
			return err
		}
	}

	m.State = next
	for _, e := range log.EventsFromResult(res) {
		m.Logger.Log(e)
		if err := m.challenger.Notify(ctx, e); err != nil {
			return fmt.Errorf("notify challenger: %w", err)
		}
		if err := m.defender.Notify(ctx, e); err != nil {
			return fmt.Errorf("notify defender: %w", err)
		}
	}
	return nil
}

func (m *Match) resolicit(ctx context.Context, cause error, ci, di duel.TurnIntent) (duel.TurnIntent, duel.TurnIntent, error) {
	// Probe each intent against a passive opponent to find which side's
	// submission fails on its own.
	_, _, cBad := duel.SubmitTurn(m.State, ci, duel.TurnIntent{})
	_, _, dBad := duel.SubmitTurn(m.State, duel.TurnIntent{}, di)
	if cBad == nil && dBad == nil {
		// Both intents are fine in isolation, so the illegality comes from
		// the combination (a combat action stranded out of reach by the
		// opponent's movement). Re-ask whoever held ground while fighting.
		if ci.Combat != duel.CombatNone && ci.Movement == duel.Stay {
			cBad = cause
		}
		if di.Combat != duel.CombatNone && di.Movement == duel.Stay {
			dBad = cause
		}
	}

	var err error
	if cBad != nil {
		ci, err = m.challenger.ChooseIntent(ctx, m.State, duel.Challenger)
		if err != nil {
			return ci, di, fmt.Errorf("challenger intent: %w", err)
		}
	}
	if dBad != nil {
		di, err = m.defender.ChooseIntent(ctx, m.State, duel.Defender)
		if err != nil {
			return ci, di, fmt.Errorf("defender intent: %w", err)
		}
	}
	return ci, di, nil
}

func isIntentError(err error) bool {
	return errors.Is(err, duel.ErrIllegalIntentCombination) ||
		errors.Is(err, duel.ErrUnknownTechniqueSelected)
}
