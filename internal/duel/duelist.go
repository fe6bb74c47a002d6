package duel

const (
	// StartingHealth is each duelist's health at match start.
	StartingHealth = 3

	// DefaultResourceCap bounds momentum and balance unless the active
	// technique raises it.
	DefaultResourceCap = 3

	// HandSize is the number of techniques each duelist leaves the draft with.
	HandSize = 2
)

// Duelist is one side of a duel. Attributes and hand contents are hidden
// from the opponent until revealed through Insight.
type Duelist struct {
	Role       Role          `json:"role"`
	Attributes AttributeSet  `json:"attributes"`
	Health     int           `json:"health"`
	Momentum   int           `json:"momentum"`
	Balance    int           `json:"balance"`
	Hand       []string      `json:"hand"`
	Active     string        `json:"active"`
	Revealed   map[Fact]bool `json:"revealed,omitempty"`
}

// ActiveTechnique resolves the currently stanced technique, or nil if none
// has been taken up yet.
func (d *Duelist) ActiveTechnique() *Technique {
	if d.Active == "" {
		return nil
	}
	return LookupTechnique(d.Active)
}

// HasInHand reports whether the duelist drafted the named technique.
func (d *Duelist) HasInHand(name string) bool {
	for _, h := range d.Hand {
		if h == name {
			return true
		}
	}
	return false
}

// ResourceCap returns the momentum/balance ceiling given the active
// technique.
func (d *Duelist) ResourceCap() int {
	if t := d.ActiveTechnique(); t != nil && t.ResourceCap > DefaultResourceCap {
		return t.ResourceCap
	}
	return DefaultResourceCap
}

// AdjustMomentum applies a delta and clamps to [0, cap].
func (d *Duelist) AdjustMomentum(delta int) {
	d.Momentum = clamp(d.Momentum+delta, 0, d.ResourceCap())
}

// AdjustBalance applies a delta and clamps to [0, cap].
func (d *Duelist) AdjustBalance(delta int) {
	d.Balance = clamp(d.Balance+delta, 0, d.ResourceCap())
}

// TakeDamage reduces health, flooring at zero.
func (d *Duelist) TakeDamage(amount int) {
	if amount <= 0 {
		return
	}
	d.Health -= amount
	if d.Health < 0 {
		d.Health = 0
	}
}

// Reveal marks a fact as known to the opponent.
func (d *Duelist) Reveal(f Fact) {
	if d.Revealed == nil {
		d.Revealed = make(map[Fact]bool)
	}
	d.Revealed[f] = true
}

// Knows reports whether the opponent has learned the given fact.
func (d *Duelist) Knows(f Fact) bool {
	return d.Revealed[f]
}

func (d *Duelist) clone() Duelist {
	out := *d
	out.Hand = append([]string(nil), d.Hand...)
	if d.Revealed != nil {
		out.Revealed = make(map[Fact]bool, len(d.Revealed))
		for k, v := range d.Revealed {
			out.Revealed[k] = v
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
