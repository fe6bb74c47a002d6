package duel

// applyMovementResources translates a movement choice into resource deltas,
// then lets the active technique react to the footwork. Deltas clamp to
// [0, cap] as they land.
func applyMovementResources(d *Duelist, move Move, from, to Range) {
	t := d.ActiveTechnique()
	switch move {
	case Advance:
		d.AdjustMomentum(1)
		d.AdjustBalance(-1)
	case Retreat:
		if t == nil || !t.KeepsMomentumOnRetreat {
			d.AdjustMomentum(-1)
		}
	case Stay:
		d.AdjustBalance(1)
	}
	if t != nil && t.MovementBonus != nil {
		t.MovementBonus(d, move, from, to)
	}
}
