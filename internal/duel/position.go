package duel

// ResolvePosition combines both duelists' simultaneous movement choices
// into the new range. Movement is symmetric in the two arguments and
// shifts the range by at most one step per turn, except that a mutual
// retreat from grappling range breaks all the way to Apart.
func ResolvePosition(current Range, a, b Move) Range {
	advances, retreats := 0, 0
	for _, m := range []Move{a, b} {
		switch m {
		case Advance:
			advances++
		case Retreat:
			retreats++
		}
	}

	switch current {
	case Apart:
		// One side closing is enough, unless the other gives ground.
		if advances >= 1 && retreats == 0 {
			return Sword
		}
		return Apart

	case Sword:
		switch {
		case advances >= 1 && retreats == 0:
			return Close
		case advances == 1 && retreats == 1:
			return Sword // the pursuit maintains distance
		case retreats == 2:
			return Apart
		case retreats == 1:
			return Apart
		default:
			return Sword
		}

	case Close:
		switch {
		case advances >= 1:
			return Close // grappling range is held by either side
		case retreats == 2:
			return Apart
		case retreats == 1:
			return Sword
		default:
			return Close
		}
	}
	return current
}
