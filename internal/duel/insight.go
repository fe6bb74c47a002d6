package duel

// Reveal records one fact surfaced by an Insight action.
type Reveal struct {
	Observer Role `json:"observer"`
	Subject  Role `json:"subject"`
	Fact     Fact `json:"fact"`
	// Value carries the revealed attribute for attribute facts.
	Value int `json:"value,omitempty"`
	// Technique carries the revealed form for FactTechnique.
	Technique string `json:"technique,omitempty"`
	// Empty marks a technique query made on a turn where the subject took
	// no combat action: the read spends the turn but learns nothing.
	Empty bool `json:"empty,omitempty"`
}

// resolveInsight executes one duelist's read of the opponent. Attribute
// queries always succeed. A technique query only reads a form in motion:
// it reveals nothing unless the opponent attacked or defended this turn.
// Revealed facts persist on the subject for the rest of the match.
func resolveInsight(state *DuelState, observer Role, observerIntent, oppIntent TurnIntent) Reveal {
	subject := observer.Opponent()
	target := state.Duelist(subject)

	r := Reveal{Observer: observer, Subject: subject, Fact: observerIntent.InsightTarget}
	switch r.Fact {
	case FactTechnique:
		if oppIntent.Combat == CombatNone {
			r.Empty = true
			return r
		}
		r.Technique = target.Active
	default:
		r.Value = target.Attributes.Value(r.Fact)
	}
	target.Reveal(r.Fact)
	return r
}
