// Package bracket locates the applicable row of a progressive rate table and
// performs the basic well-formedness checks on such tables.
package bracket

import (
	"errors"
	"fmt"

	"bonus-tax-engine/internal/model"
)

// ErrNoMatchingBracket is wrapped by every ConfigError raised when a table
// cannot place an amount.
var ErrNoMatchingBracket = errors.New("no matching bracket")

// ConfigError reports a rate table that violates the bracket invariants.
// It is a configuration fault: the scheme must be fixed, retrying is useless.
type ConfigError struct {
	Amount float64
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid tax bracket table: %s", e.Reason)
	}
	return fmt.Sprintf("invalid tax bracket table: no bracket contains %v", e.Amount)
}

func (e *ConfigError) Unwrap() error {
	return ErrNoMatchingBracket
}

// Resolve returns the first bracket in table order whose range contains
// amount. Callers clamp negative taxable income to zero beforehand.
func Resolve(brackets []model.TaxBracket, amount float64) (model.TaxBracket, error) {
	for _, b := range brackets {
		if b.Contains(amount) {
			return b, nil
		}
	}
	return model.TaxBracket{}, &ConfigError{Amount: amount}
}
