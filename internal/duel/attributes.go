package duel

import "fmt"

// Attribute bounds for duelist creation.
const (
	AttributeMin = 1
	AttributeMax = 4
	AttributeSum = 6
)

// AttributeSet holds a duelist's three hidden combat attributes.
type AttributeSet struct {
	Speed    int `json:"speed" yaml:"speed"`
	Strength int `json:"strength" yaml:"strength"`
	Defense  int `json:"defense" yaml:"defense"`
}

// Validate checks the point-buy constraints: each attribute in
// [AttributeMin, AttributeMax] and a total of exactly AttributeSum.
func (a AttributeSet) Validate() error {
	for _, v := range []int{a.Speed, a.Strength, a.Defense} {
		if v < AttributeMin || v > AttributeMax {
			return fmt.Errorf("%w: attribute %d outside [%d, %d]",
				ErrInvalidAttributeDistribution, v, AttributeMin, AttributeMax)
		}
	}
	if sum := a.Speed + a.Strength + a.Defense; sum != AttributeSum {
		return fmt.Errorf("%w: attributes sum to %d, want %d",
			ErrInvalidAttributeDistribution, sum, AttributeSum)
	}
	return nil
}

// Value returns the attribute named by f, or 0 for FactTechnique.
func (a AttributeSet) Value(f Fact) int {
	switch f {
	case FactSpeed:
		return a.Speed
	case FactStrength:
		return a.Strength
	case FactDefense:
		return a.Defense
	}
	return 0
}
