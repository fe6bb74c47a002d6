package duel

// Cost is a resource price, typically for an evade.
type Cost struct {
	Momentum int `json:"momentum,omitempty"`
	Balance  int `json:"balance,omitempty"`
}

// Affordable reports whether the duelist can pay the cost right now.
func (c Cost) Affordable(d *Duelist) bool {
	return d.Momentum >= c.Momentum && d.Balance >= c.Balance
}

// Pay deducts the cost from live resources.
func (c Cost) Pay(d *Duelist) {
	d.AdjustMomentum(-c.Momentum)
	d.AdjustBalance(-c.Balance)
}

// Side is one duelist's slice of an exchange while combat resolves.
// Start values snapshot resources at the top of combat, before any
// technique spends them.
type Side struct {
	Duelist *Duelist
	Intent  TurnIntent

	MomentumAtStart int
	BalanceAtStart  int
	UsedInsight     bool
	Defenseless     bool

	AttackTotal  int
	DefenseTotal int
	Initiative   int

	attackNegated  bool
	evadedIncoming bool
	evadePaid      Cost
	counterDealt   int
}

// Technique returns the side's active technique. Never nil during combat.
func (s *Side) Technique() *Technique {
	return s.Duelist.ActiveTechnique()
}

// Attacking reports whether the side committed to an attack this turn.
func (s *Side) Attacking() bool {
	return s.Intent.Combat == Attack
}

// Defending reports whether the side committed to a defense this turn.
func (s *Side) Defending() bool {
	return s.Intent.Combat == Defend
}

// Exchange is the shared combat context handed to technique hooks.
type Exchange struct {
	Range      Range
	Challenger *Side
	Defender   *Side
}

// Opponent returns the side facing s.
func (x *Exchange) Opponent(s *Side) *Side {
	if s == x.Challenger {
		return x.Defender
	}
	return x.Challenger
}

// SpendMomentumForAttack drains the side's momentum and returns the attack
// bonus it buys, honoring opposing techniques that blunt momentum at close
// quarters.
func (x *Exchange) SpendMomentumForAttack(self *Side) int {
	n := self.Duelist.Momentum
	self.Duelist.Momentum = 0
	if opp := x.Opponent(self); x.Range == Close {
		if t := opp.Technique(); t != nil && t.HalvesMomentumAtClose {
			return n / 2
		}
	}
	return n
}

// SpendBalanceForDefense drains the side's balance and returns the defense
// bonus it buys.
func (x *Exchange) SpendBalanceForDefense(self *Side) int {
	n := self.Duelist.Balance
	self.Duelist.Balance = 0
	return n
}

// Technique is a martial form: a bundle of hooks the combat resolver calls
// at fixed points. All hooks are optional. Bonus hooks may spend the
// owner's live resources as a side effect.
type Technique struct {
	Name        string
	Style       string
	Description string

	// ResourceCap, when above the default, raises the owner's momentum and
	// balance ceiling while the technique is active.
	ResourceCap int

	// AttackBonus is added to strength when the owner attacks.
	AttackBonus func(x *Exchange, self *Side) int
	// DefenseBonus is added to defense when the owner defends.
	DefenseBonus func(x *Exchange, self *Side) int

	// EvadeCost returns the price of evading an incoming attack and whether
	// evasion is even possible in this exchange. A nil hook means the
	// technique offers no evade at all.
	EvadeCost func(x *Exchange, self *Side) (Cost, bool)
	// BypassesEvade lets the owner's attack ignore the opponent's evade
	// attempts. Checked against start-of-combat resources.
	BypassesEvade func(x *Exchange, self *Side) bool
	// IgnoresDefense lets the owner's attack strike as if the opponent's
	// defense total were zero.
	IgnoresDefense bool
	// ForfeitsDefense zeroes the owner's defense total; the form offers no
	// guard at all.
	ForfeitsDefense bool
	// HalvesMomentumAtClose blunts the opponent's momentum-bought attack
	// bonus at Close Combat.
	HalvesMomentumAtClose bool
	// KeepsMomentumOnRetreat waives the usual momentum loss when retreating.
	KeepsMomentumOnRetreat bool
	// CanResetResources lets the owner's intent empty both resources
	// before combat.
	CanResetResources bool

	// MovementBonus fires after the standard movement resource deltas.
	MovementBonus func(d *Duelist, move Move, from, to Range)

	// OnHit fires after the owner's attack deals damage to the opponent.
	OnHit func(x *Exchange, self *Side, damage int)
	// OnDamagePrevented fires when the owner's defense absorbed part or all
	// of an incoming attack.
	OnDamagePrevented func(x *Exchange, self *Side, prevented int)
	// OnEvade fires after the owner successfully evades.
	OnEvade func(x *Exchange, self *Side)
	// CounterDamage returns extra damage dealt back to an attacker whose
	// blow landed on the owner.
	CounterDamage func(x *Exchange, self *Side) int
}
