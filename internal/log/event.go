package log

import (
	"fmt"

	"github.com/JaTvoiRabotnik/bushido/internal/duel"
)

// EventType enumerates all observable duel events.
type EventType int

const (
	EventNewTurn EventType = iota
	EventTechniqueChange
	EventRangeChange
	EventResourceChange
	EventInsight
	EventHonorViolation
	EventAttackTotals
	EventEvade
	EventDamage
	EventCounter
	EventWin
	EventDraw
)

func (e EventType) String() string {
	switch e {
	case EventNewTurn:
		return "NewTurn"
	case EventTechniqueChange:
		return "TechniqueChange"
	case EventRangeChange:
		return "RangeChange"
	case EventResourceChange:
		return "ResourceChange"
	case EventInsight:
		return "Insight"
	case EventHonorViolation:
		return "HonorViolation"
	case EventAttackTotals:
		return "AttackTotals"
	case EventEvade:
		return "Evade"
	case EventDamage:
		return "Damage"
	case EventCounter:
		return "Counter"
	case EventWin:
		return "Win"
	case EventDraw:
		return "Draw"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a duel.
type GameEvent struct {
	Seq       int       // monotonic sequence number
	Turn      int       // which turn (1-based)
	Range     string    // range name at the time of the event
	Player    int       // acting duelist (0 = challenger, 1 = defender)
	Type      EventType // event type
	Technique string    // technique name (if applicable)
	Details   string    // human-readable detail string
}

// playerName returns the duelist's display name.
func playerName(p int) string {
	return duel.Role(p).String()
}

// --- Helper constructors for common events ---

func NewTurnEvent(turn int, rng duel.Range) GameEvent {
	return GameEvent{
		Turn:    turn,
		Range:   rng.String(),
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, rng),
	}
}

func NewTechniqueChangeEvent(turn int, rng duel.Range, player int, technique string) GameEvent {
	return GameEvent{
		Turn:      turn,
		Range:     rng.String(),
		Player:    player,
		Type:      EventTechniqueChange,
		Technique: technique,
		Details:   fmt.Sprintf("%s takes up %s", playerName(player), technique),
	}
}

func NewRangeChangeEvent(turn int, from, to duel.Range) GameEvent {
	return GameEvent{
		Turn:    turn,
		Range:   to.String(),
		Type:    EventRangeChange,
		Details: fmt.Sprintf("Range: %s -> %s", from, to),
	}
}

func NewResourceChangeEvent(turn int, rng duel.Range, player int, delta duel.ResourceDelta) GameEvent {
	return GameEvent{
		Turn:   turn,
		Range:  rng.String(),
		Player: player,
		Type:   EventResourceChange,
		Details: fmt.Sprintf("%s momentum %+d, balance %+d",
			playerName(player), delta.Momentum, delta.Balance),
	}
}

func NewInsightEvent(turn int, rng duel.Range, player int, r duel.Reveal) GameEvent {
	detail := fmt.Sprintf("%s reads %s's %s", playerName(player), playerName(int(r.Subject)), r.Fact)
	switch {
	case r.Empty:
		detail = fmt.Sprintf("%s reads %s but the form is at rest", playerName(player), playerName(int(r.Subject)))
	case r.Fact == duel.FactTechnique:
		detail += fmt.Sprintf(": %s", r.Technique)
	default:
		detail += fmt.Sprintf(": %d", r.Value)
	}
	return GameEvent{
		Turn:    turn,
		Range:   rng.String(),
		Player:  player,
		Type:    EventInsight,
		Details: detail,
	}
}

func NewHonorViolationEvent(turn int, rng duel.Range, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Range:   rng.String(),
		Player:  player,
		Type:    EventHonorViolation,
		Details: fmt.Sprintf("%s retreats dishonorably on turn %d", playerName(player), turn),
	}
}

func NewAttackTotalsEvent(turn int, rng duel.Range, player int, technique string, sr duel.SideReport) GameEvent {
	return GameEvent{
		Turn:      turn,
		Range:     rng.String(),
		Player:    player,
		Type:      EventAttackTotals,
		Technique: technique,
		Details: fmt.Sprintf("%s: attack %d, defense %d, initiative %d",
			playerName(player), sr.AttackTotal, sr.DefenseTotal, sr.Initiative),
	}
}

func NewEvadeEvent(turn int, rng duel.Range, player int, cost duel.Cost) GameEvent {
	return GameEvent{
		Turn:   turn,
		Range:  rng.String(),
		Player: player,
		Type:   EventEvade,
		Details: fmt.Sprintf("%s evades (momentum %d, balance %d)",
			playerName(player), cost.Momentum, cost.Balance),
	}
}

func NewDamageEvent(turn int, rng duel.Range, player int, damage, health int) GameEvent {
	return GameEvent{
		Turn:   turn,
		Range:  rng.String(),
		Player: player,
		Type:   EventDamage,
		Details: fmt.Sprintf("%s takes %d damage (health %d)",
			playerName(player), damage, health),
	}
}

func NewCounterEvent(turn int, rng duel.Range, player int, damage int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Range:   rng.String(),
		Player:  player,
		Type:    EventCounter,
		Details: fmt.Sprintf("%s counters for %d", playerName(player), damage),
	}
}

func NewWinEvent(turn int, rng duel.Range, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Range:   rng.String(),
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s)", playerName(winner), reason),
	}
}

func NewDrawEvent(turn int, rng duel.Range, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Range:   rng.String(),
		Type:    EventDraw,
		Details: fmt.Sprintf("Draw (%s)", reason),
	}
}

// EventsFromResult expands one resolved turn into its observable events,
// in resolution order.
func EventsFromResult(res *duel.TurnResult) []GameEvent {
	events := []GameEvent{NewTurnEvent(res.Turn, res.RangeBefore)}

	for _, role := range []duel.Role{duel.Challenger, duel.Defender} {
		if tech := res.Intent(role).Technique; tech != "" {
			events = append(events, NewTechniqueChangeEvent(res.Turn, res.RangeBefore, int(role), tech))
		}
	}

	if dishonorTurn(res) {
		for _, role := range []duel.Role{duel.Challenger, duel.Defender} {
			if res.Intent(role).Movement == duel.Retreat {
				events = append(events, NewHonorViolationEvent(res.Turn, res.RangeBefore, int(role)))
			}
		}
	} else {
		if res.Range != res.RangeBefore {
			events = append(events, NewRangeChangeEvent(res.Turn, res.RangeBefore, res.Range))
		}
		for _, role := range []duel.Role{duel.Challenger, duel.Defender} {
			d := res.Delta(role)
			if d.Momentum != 0 || d.Balance != 0 {
				events = append(events, NewResourceChangeEvent(res.Turn, res.Range, int(role), d))
			}
		}
		for _, r := range res.Reveals {
			events = append(events, NewInsightEvent(res.Turn, res.Range, int(r.Observer), r))
		}
		if res.Combat != nil {
			for _, role := range []duel.Role{duel.Challenger, duel.Defender} {
				events = append(events, NewAttackTotalsEvent(res.Turn, res.Range, int(role),
					res.State.Duelist(role).Active, *res.Combat.Side(role)))
			}
			for _, role := range []duel.Role{duel.Challenger, duel.Defender} {
				sr := res.Combat.Side(role)
				if sr.Evaded {
					events = append(events, NewEvadeEvent(res.Turn, res.Range, int(role), sr.EvadeCost))
				}
				if sr.CounterDamage > 0 {
					events = append(events, NewCounterEvent(res.Turn, res.Range, int(role), sr.CounterDamage))
				}
			}
			for _, role := range []duel.Role{duel.Challenger, duel.Defender} {
				sr := res.Combat.Side(role)
				if sr.DamageTaken > 0 {
					events = append(events, NewDamageEvent(res.Turn, res.Range, int(role),
						sr.DamageTaken, res.State.Duelist(role).Health))
				}
			}
		}
	}

	switch res.Outcome.Kind {
	case duel.Win, duel.DishonorLoss:
		events = append(events, NewWinEvent(res.Turn, res.Range, int(res.Outcome.Winner), res.Outcome.Reason))
	case duel.Draw:
		events = append(events, NewDrawEvent(res.Turn, res.Range, res.Outcome.Reason))
	}
	return events
}

// dishonorTurn reports whether this turn ended on the honor check, before
// any movement or combat resolved.
func dishonorTurn(res *duel.TurnResult) bool {
	if res.Outcome.Kind == duel.DishonorLoss {
		return true
	}
	if res.Outcome.Kind != duel.Draw {
		return false
	}
	return res.ChallengerIntent.Movement == duel.Retreat &&
		res.DefenderIntent.Movement == duel.Retreat &&
		res.Turn >= duel.HonorTurnLimit
}
