package operations

import (
	"bonus-tax-engine/internal/model"
	"bonus-tax-engine/internal/tax"
)

type computeTaxOutput struct {
	TotalTax float64 `json:"total_tax"`
}

type ComputeTaxHandler struct{}

func (h *ComputeTaxHandler) Validate(calc *tax.Calculator, c *model.Calculation) []model.CalculationMessage {
	var props taxProps
	if msgs := decodeProps(c, &props); msgs != nil {
		return msgs
	}
	return deductionWarning(calc.Scheme(), props.MonthlySalary, props.MonthlyDeduction)
}

func (h *ComputeTaxHandler) Apply(calc *tax.Calculator, c *model.Calculation) (any, []model.CalculationMessage) {
	var props taxProps
	if msgs := decodeProps(c, &props); msgs != nil {
		return nil, msgs
	}

	total, err := calc.ComputeTax(props.MonthlySalary, props.AnnualBonus, props.MonthlyDeduction)
	if err != nil {
		return nil, failure(err)
	}
	return computeTaxOutput{TotalTax: total}, nil
}

// BreakdownHandler is compute_tax with every intermediate leg in the output.
type BreakdownHandler struct{}

func (h *BreakdownHandler) Validate(calc *tax.Calculator, c *model.Calculation) []model.CalculationMessage {
	return (&ComputeTaxHandler{}).Validate(calc, c)
}

func (h *BreakdownHandler) Apply(calc *tax.Calculator, c *model.Calculation) (any, []model.CalculationMessage) {
	var props taxProps
	if msgs := decodeProps(c, &props); msgs != nil {
		return nil, msgs
	}

	b, err := calc.Breakdown(props.MonthlySalary, props.AnnualBonus, props.MonthlyDeduction)
	if err != nil {
		return nil, failure(err)
	}
	return b, nil
}
