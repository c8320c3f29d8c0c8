package bracket

import (
	"fmt"

	"bonus-tax-engine/internal/model"
)

// Check validates the shape of a bracket table: non-empty, open at both
// ends, contiguous, rates within [0, 1]. It does not judge whether the
// quick deductions are consistent with the rates.
func Check(brackets []model.TaxBracket) error {
	if len(brackets) == 0 {
		return &ConfigError{Reason: "table is empty"}
	}
	if brackets[0].Lower != nil {
		return &ConfigError{Reason: "first bracket must be open below"}
	}
	if brackets[len(brackets)-1].Upper != nil {
		return &ConfigError{Reason: "last bracket must be open above"}
	}

	for i, b := range brackets {
		if b.Rate < 0 || b.Rate > 1 {
			return &ConfigError{Reason: fmt.Sprintf("bracket %d has rate %v outside [0, 1]", i, b.Rate)}
		}
		if b.Lower != nil && b.Upper != nil && *b.Lower >= *b.Upper {
			return &ConfigError{Reason: fmt.Sprintf("bracket %d has lower bound %v not below upper bound %v", i, *b.Lower, *b.Upper)}
		}
		if i == 0 {
			continue
		}
		prev := brackets[i-1]
		if prev.Upper == nil || b.Lower == nil {
			return &ConfigError{Reason: fmt.Sprintf("bracket %d is open-ended in the middle of the table", i)}
		}
		if *prev.Upper != *b.Lower {
			return &ConfigError{Reason: fmt.Sprintf("gap or overlap between bracket %d (upper %v) and bracket %d (lower %v)", i-1, *prev.Upper, i, *b.Lower)}
		}
	}
	return nil
}
