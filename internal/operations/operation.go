package operations

import (
	"bonus-tax-engine/internal/model"
	"bonus-tax-engine/internal/tax"
)

// OperationHandler defines the contract for all calculation operations.
// Validate checks the properties without computing anything; Apply runs
// the calculation and returns its JSON-encodable output.
type OperationHandler interface {
	Validate(calc *tax.Calculator, c *model.Calculation) []model.CalculationMessage
	Apply(calc *tax.Calculator, c *model.Calculation) (any, []model.CalculationMessage)
}
