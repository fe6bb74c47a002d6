package duel

// --- Enums ---

// Role identifies a duelist. Roles are fixed at match creation.
type Role int

const (
	Challenger Role = iota
	Defender
)

func (r Role) String() string {
	if r == Challenger {
		return "Challenger"
	}
	return "Defender"
}

// Opponent returns the other role.
func (r Role) Opponent() Role {
	return 1 - r
}

// Range is the distance between the duelists.
type Range int

const (
	Apart Range = iota
	Sword
	Close
)

func (g Range) String() string {
	switch g {
	case Apart:
		return "Apart"
	case Sword:
		return "Sword Range"
	case Close:
		return "Close Combat"
	default:
		return "Unknown"
	}
}

// AllowsCombat reports whether attacks can land at this range.
func (g Range) AllowsCombat() bool {
	return g != Apart
}

// Move is a movement choice within a turn. No movement card counts as Stay.
type Move int

const (
	Stay Move = iota
	Advance
	Retreat
)

func (m Move) String() string {
	switch m {
	case Advance:
		return "Advance"
	case Retreat:
		return "Retreat"
	default:
		return "Stay"
	}
}

// CombatAction is the combat choice within a turn.
type CombatAction int

const (
	CombatNone CombatAction = iota
	Attack
	Defend
)

func (c CombatAction) String() string {
	switch c {
	case Attack:
		return "Attack"
	case Defend:
		return "Defend"
	default:
		return "None"
	}
}

// Fact names a hidden piece of information about a duelist that Insight can
// reveal. String-typed so revealed-fact sets serialize cleanly.
type Fact string

const (
	FactSpeed     Fact = "speed"
	FactStrength  Fact = "strength"
	FactDefense   Fact = "defense"
	FactTechnique Fact = "technique"
)

// ValidInsightTarget reports whether f is a fact Insight can query.
func ValidInsightTarget(f Fact) bool {
	switch f {
	case FactSpeed, FactStrength, FactDefense, FactTechnique:
		return true
	}
	return false
}

// --- Outcome ---

// OutcomeKind categorizes how a match stands or ended.
type OutcomeKind int

const (
	Ongoing OutcomeKind = iota
	Win
	Draw
	DishonorLoss
)

func (k OutcomeKind) String() string {
	switch k {
	case Win:
		return "Win"
	case Draw:
		return "Draw"
	case DishonorLoss:
		return "DishonorLoss"
	default:
		return "Ongoing"
	}
}

// Outcome is the match result. For Win, Winner holds the victor; for
// DishonorLoss, Violator holds the dishonored loser and Winner the other
// role. Terminal outcomes absorb all further turn submissions.
type Outcome struct {
	Kind     OutcomeKind `json:"kind"`
	Winner   Role        `json:"winner,omitempty"`
	Violator Role        `json:"violator,omitempty"`
	Reason   string      `json:"reason,omitempty"`
}

// Terminal reports whether no further turns may be resolved.
func (o Outcome) Terminal() bool {
	return o.Kind != Ongoing
}

func (o Outcome) String() string {
	switch o.Kind {
	case Win:
		return o.Winner.String() + " wins (" + o.Reason + ")"
	case Draw:
		return "Draw (" + o.Reason + ")"
	case DishonorLoss:
		return o.Winner.String() + " wins by dishonor of " + o.Violator.String() + " (" + o.Reason + ")"
	default:
		return "Ongoing"
	}
}
