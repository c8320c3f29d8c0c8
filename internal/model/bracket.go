package model

// TaxBracket is one row of a progressive rate table. A nil Lower means the
// bracket is open below, a nil Upper means it is open above. Amounts are
// matched with Lower < x <= Upper.
type TaxBracket struct {
	Lower          *float64 `json:"lower" yaml:"lower"`
	Upper          *float64 `json:"upper" yaml:"upper"`
	Rate           float64  `json:"rate" yaml:"rate"`
	QuickDeduction float64  `json:"quick_deduction" yaml:"quick_deduction"`
}

// Contains reports whether amount falls inside the bracket.
func (b TaxBracket) Contains(amount float64) bool {
	return (b.Lower == nil || *b.Lower < amount) && (b.Upper == nil || *b.Upper >= amount)
}

// Bound is a helper for building bracket tables in code.
func Bound(v float64) *float64 {
	return &v
}
