package duel

// SideReport is one duelist's record of a resolved exchange.
type SideReport struct {
	AttackTotal  int  `json:"attack_total"`
	DefenseTotal int  `json:"defense_total"`
	Initiative   int  `json:"initiative"`
	Evaded       bool `json:"evaded,omitempty"`
	EvadeCost    Cost `json:"evade_cost,omitempty"`
	// AttackEvaded is set when the opponent slipped this duelist's attack.
	AttackEvaded  bool `json:"attack_evaded,omitempty"`
	DamageDealt   int  `json:"damage_dealt"`
	DamageTaken   int  `json:"damage_taken"`
	CounterDamage int  `json:"counter_damage,omitempty"`
}

// CombatReport records a turn's exchange for both duelists.
type CombatReport struct {
	Challenger SideReport `json:"challenger"`
	Defender   SideReport `json:"defender"`
}

// Side returns the report for the given role.
func (r *CombatReport) Side(role Role) *SideReport {
	if role == Challenger {
		return &r.Challenger
	}
	return &r.Defender
}

// resolveCombat works through one exchange: totals, initiative, evades,
// then simultaneous damage. It mutates the duelists' resources and health
// and returns the per-side report. Call only when the range allows combat
// and at least one side is attacking.
func resolveCombat(state *DuelState, ci, di TurnIntent) *CombatReport {
	cs := newSide(&state.Challenger, ci)
	ds := newSide(&state.Defender, di)
	x := &Exchange{Range: state.Range, Challenger: cs, Defender: ds}
	sides := []*Side{cs, ds}

	// Totals. Bonus hooks may spend live resources.
	for _, s := range sides {
		t := s.Technique()
		if s.Attacking() {
			at := s.Duelist.Attributes.Strength
			if t != nil && t.AttackBonus != nil {
				at += t.AttackBonus(x, s)
			}
			if s.Intent.Movement == Advance {
				at++
			}
			if x.Range == Close {
				at++
			}
			s.AttackTotal = at
		}
		if s.Defending() && !s.Defenseless {
			dt := s.Duelist.Attributes.Defense
			if t != nil && t.DefenseBonus != nil {
				dt += t.DefenseBonus(x, s)
			}
			if s.Intent.Movement == Retreat {
				dt++
			}
			s.DefenseTotal = dt
		}
		if t != nil && t.ForfeitsDefense {
			s.DefenseTotal = 0
		}
	}

	// Initiative reads balance as it stands after any bonus spends.
	for _, s := range sides {
		s.Initiative = s.Duelist.Attributes.Speed + s.Duelist.Balance
	}

	resolveEvades(x, cs, ds)

	// Damage is computed for both sides before either blow lands.
	taken := map[*Side]int{}
	dealt := map[*Side]int{}
	for _, s := range sides {
		if !s.Attacking() || s.attackNegated {
			continue
		}
		opp := x.Opponent(s)
		dmg := s.AttackTotal - effectiveDefense(s, opp)
		if dmg < 0 {
			dmg = 0
		}
		dealt[s] = dmg
		taken[opp] += dmg

		if prevented := s.AttackTotal - dmg; prevented > 0 {
			if ot := opp.Technique(); ot != nil && ot.OnDamagePrevented != nil {
				ot.OnDamagePrevented(x, opp, prevented)
			}
		}
		if ot := opp.Technique(); ot != nil && ot.CounterDamage != nil {
			if counter := ot.CounterDamage(x, opp); counter > 0 {
				taken[s] += counter
				opp.counterDealt += counter
			}
		}
	}
	for _, s := range sides {
		s.Duelist.TakeDamage(taken[s])
	}
	for _, s := range sides {
		if dealt[s] > 0 {
			if t := s.Technique(); t != nil && t.OnHit != nil {
				t.OnHit(x, s, dealt[s])
			}
		}
	}

	report := &CombatReport{}
	for _, s := range sides {
		sr := report.Side(s.Duelist.Role)
		sr.AttackTotal = s.AttackTotal
		sr.DefenseTotal = s.DefenseTotal
		sr.Initiative = s.Initiative
		sr.Evaded = s.evadedIncoming
		sr.EvadeCost = s.evadePaid
		sr.AttackEvaded = s.attackNegated
		sr.CounterDamage = s.counterDealt
		sr.DamageDealt = dealt[s]
		sr.DamageTaken = taken[s]
	}
	return report
}

func newSide(d *Duelist, intent TurnIntent) *Side {
	return &Side{
		Duelist:         d,
		Intent:          intent,
		MomentumAtStart: d.Momentum,
		BalanceAtStart:  d.Balance,
		UsedInsight:     intent.Insight,
		Defenseless:     intent.Insight,
	}
}

// effectiveDefense is the defense total attacker faces when striking opp.
func effectiveDefense(attacker, opp *Side) int {
	if t := attacker.Technique(); t != nil && t.IgnoresDefense {
		return 0
	}
	return opp.DefenseTotal
}

// resolveEvades runs evade declarations in initiative order. The faster
// duelist commits first with live resources; an exact initiative and speed
// tie resolves both declarations against a shared resource snapshot.
func resolveEvades(x *Exchange, cs, ds *Side) {
	first, second := cs, ds
	switch {
	case ds.Initiative > cs.Initiative:
		first, second = ds, cs
	case ds.Initiative == cs.Initiative &&
		ds.Duelist.Attributes.Speed > cs.Duelist.Attributes.Speed:
		first, second = ds, cs
	case ds.Initiative == cs.Initiative &&
		ds.Duelist.Attributes.Speed == cs.Duelist.Attributes.Speed:
		// Simultaneous: both decide against the pre-evade snapshot.
		cCost, cOK := evadeDecision(x, cs, cs.Duelist.Momentum, cs.Duelist.Balance)
		dCost, dOK := evadeDecision(x, ds, ds.Duelist.Momentum, ds.Duelist.Balance)
		if cOK {
			commitEvade(x, cs, cCost)
		}
		if dOK {
			commitEvade(x, ds, dCost)
		}
		return
	}
	if cost, ok := evadeDecision(x, first, first.Duelist.Momentum, first.Duelist.Balance); ok {
		commitEvade(x, first, cost)
	}
	if cost, ok := evadeDecision(x, second, second.Duelist.Momentum, second.Duelist.Balance); ok {
		commitEvade(x, second, cost)
	}
}

// evadeDecision applies the standing declaration policy: evade whenever an
// incoming attack would deal damage, evasion is possible, and the cost is
// payable from the given resources.
func evadeDecision(x *Exchange, s *Side, momentum, balance int) (Cost, bool) {
	opp := x.Opponent(s)
	if !opp.Attacking() || opp.attackNegated {
		return Cost{}, false
	}
	if ot := opp.Technique(); ot != nil && ot.BypassesEvade != nil && ot.BypassesEvade(x, opp) {
		return Cost{}, false
	}
	if opp.AttackTotal-effectiveDefense(opp, s) <= 0 {
		return Cost{}, false
	}
	t := s.Technique()
	if t == nil || t.EvadeCost == nil {
		return Cost{}, false
	}
	cost, ok := t.EvadeCost(x, s)
	if !ok {
		return Cost{}, false
	}
	if momentum < cost.Momentum || balance < cost.Balance {
		return Cost{}, false
	}
	return cost, true
}

func commitEvade(x *Exchange, s *Side, cost Cost) {
	cost.Pay(s.Duelist)
	opp := x.Opponent(s)
	opp.attackNegated = true
	s.evadedIncoming = true
	s.evadePaid = cost
	if t := s.Technique(); t != nil && t.OnEvade != nil {
		t.OnEvade(x, s)
	}
}
