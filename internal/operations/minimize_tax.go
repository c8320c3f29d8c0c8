package operations

import (
	"bonus-tax-engine/internal/model"
	"bonus-tax-engine/internal/tax"
)

type MinimizeTaxHandler struct{}

func (h *MinimizeTaxHandler) Validate(calc *tax.Calculator, c *model.Calculation) []model.CalculationMessage {
	var props splitProps
	if msgs := decodeProps(c, &props); msgs != nil {
		return msgs
	}
	return deductionWarning(calc.Scheme(), props.AnnualCompensation/12, props.MonthlyDeduction)
}

func (h *MinimizeTaxHandler) Apply(calc *tax.Calculator, c *model.Calculation) (any, []model.CalculationMessage) {
	var props splitProps
	if msgs := decodeProps(c, &props); msgs != nil {
		return nil, msgs
	}

	best, err := calc.MinimizeTax(props.AnnualCompensation, props.MonthlyDeduction)
	if err != nil {
		return nil, failure(err)
	}
	return best, nil
}

// AvoidedTaxHandler reports how much the optimal split saves over paying
// the whole compensation as salary.
type AvoidedTaxHandler struct{}

func (h *AvoidedTaxHandler) Validate(calc *tax.Calculator, c *model.Calculation) []model.CalculationMessage {
	return (&MinimizeTaxHandler{}).Validate(calc, c)
}

func (h *AvoidedTaxHandler) Apply(calc *tax.Calculator, c *model.Calculation) (any, []model.CalculationMessage) {
	var props splitProps
	if msgs := decodeProps(c, &props); msgs != nil {
		return nil, msgs
	}

	res, err := calc.AvoidedTax(props.AnnualCompensation, props.MonthlyDeduction)
	if err != nil {
		return nil, failure(err)
	}
	return res, nil
}
