package tax

import (
	"fmt"
	"math"

	"bonus-tax-engine/internal/model"
)

// Origin records which generation step produced a candidate split.
type Origin int

const (
	// OriginSalaryBoundary puts monthly taxable income exactly on a bracket boundary.
	OriginSalaryBoundary Origin = iota
	// OriginAllSalary pays the whole compensation as salary.
	OriginAllSalary
	// OriginBonusBoundary puts bonus/12 exactly on a bracket boundary.
	OriginBonusBoundary
	// OriginAllBonus pays the whole compensation as bonus.
	OriginAllBonus
)

func (o Origin) String() string {
	switch o {
	case OriginSalaryBoundary:
		return "salary_boundary"
	case OriginAllSalary:
		return "all_salary"
	case OriginBonusBoundary:
		return "bonus_boundary"
	case OriginAllBonus:
		return "all_bonus"
	default:
		return fmt.Sprintf("origin(%d)", int(o))
	}
}

// Candidate is one split evaluated by the optimizer.
type Candidate struct {
	Origin        Origin
	Boundary      float64
	MonthlySalary float64
	AnnualBonus   float64
}

func (c Candidate) feasible() bool {
	return c.MonthlySalary >= 0 && c.AnnualBonus >= 0
}

// Candidates returns the feasible splits of total in evaluation order.
//
// Annual tax is piecewise linear in the split with kinks only where the
// monthly taxable income or bonus/12 crosses a bracket boundary, so the
// minimum is attained at one of these points. The order matters: on equal
// tax the earlier candidate wins.
func Candidates(scheme model.TaxScheme, total, monthlyDeduction float64) []Candidate {
	return New(scheme).Candidates(total, monthlyDeduction)
}

func (c *Calculator) Candidates(total, monthlyDeduction float64) []Candidate {
	points := c.scheme.Boundaries()
	all := make([]Candidate, 0, 2*len(points)+2)

	for _, p := range points {
		salary := c.scheme.MonthlyStartPoint + monthlyDeduction + p
		all = append(all, Candidate{
			Origin:        OriginSalaryBoundary,
			Boundary:      p,
			MonthlySalary: salary,
			AnnualBonus:   total - float64(12*salary),
		})
	}
	all = append(all, Candidate{Origin: OriginAllSalary, MonthlySalary: total / 12})

	for _, p := range points {
		bonus := 12 * p
		all = append(all, Candidate{
			Origin:        OriginBonusBoundary,
			Boundary:      p,
			MonthlySalary: (total - bonus) / 12,
			AnnualBonus:   bonus,
		})
	}
	all = append(all, Candidate{Origin: OriginAllBonus, AnnualBonus: total})

	out := all[:0]
	for _, cand := range all {
		if cand.feasible() {
			out = append(out, cand)
		}
	}
	return out
}

// MinimizeTax finds the salary/bonus split of total annual compensation with
// the lowest annual tax.
func MinimizeTax(scheme model.TaxScheme, total, monthlyDeduction float64) (model.SplitResult, error) {
	return New(scheme).MinimizeTax(total, monthlyDeduction)
}

func (c *Calculator) MinimizeTax(total, monthlyDeduction float64) (model.SplitResult, error) {
	if total < 0 || monthlyDeduction < 0 {
		return model.SplitResult{}, fmt.Errorf("%w: compensation %v, monthly deduction %v", ErrInvalidInput, total, monthlyDeduction)
	}

	best := model.SplitResult{TotalTax: math.Inf(1)}
	found := false
	for _, cand := range c.Candidates(total, monthlyDeduction) {
		t, err := c.ComputeTax(cand.MonthlySalary, cand.AnnualBonus, monthlyDeduction)
		if err != nil {
			return model.SplitResult{}, err
		}
		if t < best.TotalTax {
			best = model.SplitResult{TotalTax: t, MonthlySalary: cand.MonthlySalary, AnnualBonus: cand.AnnualBonus}
			found = true
		}
	}
	if !found {
		return model.SplitResult{}, fmt.Errorf("%w: no feasible split for compensation %v", ErrInvalidInput, total)
	}
	return best, nil
}

// AvoidedTax compares the all-salary payout with the optimal split.
func AvoidedTax(scheme model.TaxScheme, total, monthlyDeduction float64) (model.AvoidedTax, error) {
	return New(scheme).AvoidedTax(total, monthlyDeduction)
}

func (c *Calculator) AvoidedTax(total, monthlyDeduction float64) (model.AvoidedTax, error) {
	best, err := c.MinimizeTax(total, monthlyDeduction)
	if err != nil {
		return model.AvoidedTax{}, err
	}
	raw, err := c.ComputeTax(total/12, 0, monthlyDeduction)
	if err != nil {
		return model.AvoidedTax{}, err
	}
	return model.AvoidedTax{
		AnnualCompensation: total,
		AllSalaryTax:       raw,
		Optimal:            best,
		Avoided:            raw - best.TotalTax,
	}, nil
}
