package duel

// The ten techniques of the standard pool. Each constructor returns a fresh
// value so hooks never share state between matches.

// NewTsubameGaeshi is the swallow cut: pour every point of momentum into a
// single strike.
func NewTsubameGaeshi() *Technique {
	return &Technique{
		Name:        "Tsubame Gaeshi",
		Style:       "Kenjutsu",
		Description: "Converts all momentum into attack. Unstoppable at close quarters when momentum runs high.",
		AttackBonus: func(x *Exchange, self *Side) int {
			return x.SpendMomentumForAttack(self)
		},
		EvadeCost: func(x *Exchange, self *Side) (Cost, bool) {
			return Cost{Momentum: 3}, true
		},
		BypassesEvade: func(x *Exchange, self *Side) bool {
			return x.Range == Close && self.MomentumAtStart >= 3
		},
	}
}

// NewMizuNoKokoro is the mind-like-water guard: balance becomes defense.
func NewMizuNoKokoro() *Technique {
	return &Technique{
		Name:        "Mizu no Kokoro",
		Style:       "Kenjutsu",
		Description: "Converts all balance into defense. At sword range, great balance makes its strikes impossible to slip.",
		AttackBonus: func(x *Exchange, self *Side) int {
			return 0
		},
		DefenseBonus: func(x *Exchange, self *Side) int {
			return x.SpendBalanceForDefense(self)
		},
		EvadeCost: func(x *Exchange, self *Side) (Cost, bool) {
			return Cost{Balance: 3}, true
		},
		BypassesEvade: func(x *Exchange, self *Side) bool {
			return x.Range == Sword && self.BalanceAtStart >= 3
		},
	}
}

// NewKuzushi unbalances the opponent, stealing their footing on a hit.
func NewKuzushi() *Technique {
	return &Technique{
		Name:        "Kuzushi",
		Style:       "Jujutsu",
		Description: "Strikes hardest while advancing. A landed blow steals a point of the opponent's balance.",
		AttackBonus: func(x *Exchange, self *Side) int {
			if self.Intent.Movement == Advance {
				return 2
			}
			return 0
		},
		EvadeCost: func(x *Exchange, self *Side) (Cost, bool) {
			return Cost{Balance: 3}, true
		},
		OnHit: func(x *Exchange, self *Side, damage int) {
			opp := x.Opponent(self)
			if opp.Duelist.Balance > 0 {
				opp.Duelist.AdjustBalance(-1)
				self.Duelist.AdjustBalance(1)
			}
		},
	}
}

// NewAiUchi is the mutual strike: all attack, no guard, no escape.
func NewAiUchi() *Technique {
	return &Technique{
		Name:            "Ai Uchi",
		Style:           "Kenjutsu",
		Description:     "The blow that ignores all defense and cannot be evaded. Its bearer keeps no guard and may not evade.",
		IgnoresDefense:  true,
		ForfeitsDefense: true,
		BypassesEvade: func(x *Exchange, self *Side) bool {
			return true
		},
		// No EvadeCost hook: the bearer cannot evade at all.
	}
}

// NewIrimi enters the opponent's space, trading reach for footing.
func NewIrimi() *Technique {
	return &Technique{
		Name:                  "Irimi",
		Style:                 "Aikijutsu",
		Description:           "Entering gains balance when it closes the distance. Blunts momentum-driven attacks in close combat.",
		HalvesMomentumAtClose: true,
		MovementBonus: func(d *Duelist, move Move, from, to Range) {
			if move == Advance && to == Close {
				d.AdjustBalance(2)
			}
		},
		EvadeCost: func(x *Exchange, self *Side) (Cost, bool) {
			if x.Range != Close {
				return Cost{}, false
			}
			return Cost{Momentum: 2}, true
		},
	}
}

// NewMaai masters distance: retreating costs nothing and defends well.
func NewMaai() *Technique {
	return &Technique{
		Name:                   "Ma-ai",
		Style:                  "Iaijutsu",
		Description:            "Keeps momentum while giving ground and defends best in retreat. Slips attacks cheaply at a distance.",
		KeepsMomentumOnRetreat: true,
		DefenseBonus: func(x *Exchange, self *Side) int {
			if self.Intent.Movement == Retreat {
				return 2
			}
			return 0
		},
		EvadeCost: func(x *Exchange, self *Side) (Cost, bool) {
			if x.Range == Close {
				return Cost{}, false
			}
			return Cost{Balance: 1}, true
		},
	}
}

// NewMushin is the empty mind: power flows only from nothing.
func NewMushin() *Technique {
	emptied := func(s *Side) bool {
		return s.MomentumAtStart == 0 && s.BalanceAtStart == 0
	}
	return &Technique{
		Name:              "Mushin",
		Style:             "Zen",
		Description:       "With both resources emptied, strikes and guards with uncanny force and evades freely.",
		CanResetResources: true,
		AttackBonus: func(x *Exchange, self *Side) int {
			if emptied(self) {
				return 3
			}
			return 0
		},
		DefenseBonus: func(x *Exchange, self *Side) int {
			if emptied(self) {
				return 3
			}
			return 0
		},
		EvadeCost: func(x *Exchange, self *Side) (Cost, bool) {
			if !emptied(self) {
				return Cost{}, false
			}
			return Cost{}, true
		},
	}
}

// NewNagashi flows around attacks, turning absorbed force into momentum.
func NewNagashi() *Technique {
	return &Technique{
		Name:        "Nagashi",
		Style:       "Aikijutsu",
		Description: "Absorbed force becomes momentum, slipped blows restore balance, and overcommitted attackers are countered.",
		DefenseBonus: func(x *Exchange, self *Side) int {
			return 1
		},
		EvadeCost: func(x *Exchange, self *Side) (Cost, bool) {
			return Cost{Momentum: 2}, true
		},
		OnEvade: func(x *Exchange, self *Side) {
			self.Duelist.AdjustBalance(1)
		},
		OnDamagePrevented: func(x *Exchange, self *Side, prevented int) {
			self.Duelist.AdjustMomentum(prevented)
		},
		CounterDamage: func(x *Exchange, self *Side) int {
			if self.Defending() && x.Opponent(self).AttackTotal >= 5 {
				return 2
			}
			return 0
		},
	}
}

// NewKiai is the focused shout: greater reserves, sharper strikes.
func NewKiai() *Technique {
	return &Technique{
		Name:        "Kiai",
		Style:       "Kenjutsu",
		Description: "Raises the bearer's resource ceiling to six. Spends a point of balance to sharpen each strike.",
		ResourceCap: 6,
		AttackBonus: func(x *Exchange, self *Side) int {
			if self.Duelist.Balance >= 2 {
				self.Duelist.AdjustBalance(-1)
				return 2
			}
			return 1
		},
	}
}

// NewZanshin is lingering awareness: study the opponent, then slip away.
func NewZanshin() *Technique {
	return &Technique{
		Name:        "Zanshin",
		Style:       "Zen",
		Description: "A watchful guard. Evading costs nothing on a turn spent reading the opponent.",
		DefenseBonus: func(x *Exchange, self *Side) int {
			return 1
		},
		EvadeCost: func(x *Exchange, self *Side) (Cost, bool) {
			if self.UsedInsight {
				return Cost{}, true
			}
			return Cost{Balance: 1}, true
		},
	}
}
