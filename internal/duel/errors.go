package duel

import "errors"

var (
	// ErrInvalidAttributeDistribution is returned when a duelist's attributes
	// fall outside 1..4 per attribute or do not sum to exactly 6.
	ErrInvalidAttributeDistribution = errors.New("invalid attribute distribution")

	// ErrInvalidPoolSize is returned when the draft pool does not hold
	// exactly ten distinct techniques.
	ErrInvalidPoolSize = errors.New("draft pool must hold exactly 10 distinct techniques")

	// ErrIllegalIntentCombination is returned when a submitted intent
	// combines actions that cannot be taken together, or takes a combat
	// action at a range where combat is impossible.
	ErrIllegalIntentCombination = errors.New("illegal intent combination")

	// ErrUnknownTechniqueSelected is returned when an intent names a
	// technique outside the duelist's drafted hand.
	ErrUnknownTechniqueSelected = errors.New("selected technique is not in hand")

	// ErrMatchAlreadyConcluded is returned when a turn is submitted after a
	// terminal outcome has been reached.
	ErrMatchAlreadyConcluded = errors.New("match has already concluded")
)
