// Package tax computes annual personal income tax for a salary/bonus split
// and searches the split of a fixed compensation that minimises it.
//
// All functions are pure: they only read the immutable scheme passed in and
// are safe for concurrent use without synchronisation.
package tax

import (
	"errors"
	"fmt"

	"bonus-tax-engine/internal/bracket"
	"bonus-tax-engine/internal/model"
)

// ErrInvalidInput is returned for negative compensation or deduction values.
// Front ends reject such input before it reaches the optimizer.
var ErrInvalidInput = errors.New("invalid input")

// SocialInsuranceFunc returns the monthly social-insurance contribution
// withheld from a monthly salary before tax.
type SocialInsuranceFunc func(monthlySalary float64) float64

// NoSocialInsurance is the fixed-zero contribution used by default.
func NoSocialInsurance(float64) float64 {
	return 0
}

// Calculator evaluates a single tax scheme.
type Calculator struct {
	scheme          model.TaxScheme
	socialInsurance SocialInsuranceFunc
}

type Option func(*Calculator)

// WithSocialInsurance replaces the zero contribution stub.
func WithSocialInsurance(fn SocialInsuranceFunc) Option {
	return func(c *Calculator) {
		if fn != nil {
			c.socialInsurance = fn
		}
	}
}

func New(scheme model.TaxScheme, opts ...Option) *Calculator {
	c := &Calculator{
		scheme:          scheme,
		socialInsurance: NoSocialInsurance,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Calculator) Scheme() model.TaxScheme {
	return c.scheme
}

// ComputeTax returns the total annual tax for twelve months of monthlySalary
// plus a one-off annualBonus.
func ComputeTax(scheme model.TaxScheme, monthlySalary, annualBonus, monthlyDeduction float64) (float64, error) {
	return New(scheme).ComputeTax(monthlySalary, annualBonus, monthlyDeduction)
}

func (c *Calculator) ComputeTax(monthlySalary, annualBonus, monthlyDeduction float64) (float64, error) {
	b, err := c.Breakdown(monthlySalary, annualBonus, monthlyDeduction)
	if err != nil {
		return 0, err
	}
	return b.TotalTax, nil
}

// Breakdown computes the annual tax and keeps every intermediate leg.
//
// The bonus is taxed on its own: its bracket is picked by annualBonus/12 and
// the rate applies to the whole bonus, not accumulated with the salary. This
// is the statutory one-off bonus rule and produces jumps at bracket edges.
func (c *Calculator) Breakdown(monthlySalary, annualBonus, monthlyDeduction float64) (model.TaxBreakdown, error) {
	insurance := c.socialInsurance(monthlySalary)
	taxable := monthlySalary - insurance - c.scheme.MonthlyStartPoint - monthlyDeduction
	if taxable < 0 {
		taxable = 0
	}

	monthlyBracket, err := bracket.Resolve(c.scheme.Brackets, taxable)
	if err != nil {
		return model.TaxBreakdown{}, fmt.Errorf("resolve monthly bracket: %w", err)
	}
	// Explicit float64 conversions stop the compiler from fusing the
	// multiply-add, so results are identical on every architecture.
	monthlyTax := float64(taxable*monthlyBracket.Rate) - monthlyBracket.QuickDeduction

	bonusBracket, err := bracket.Resolve(c.scheme.Brackets, annualBonus/12)
	if err != nil {
		return model.TaxBreakdown{}, fmt.Errorf("resolve bonus bracket: %w", err)
	}
	bonusTax := float64(annualBonus*bonusBracket.Rate) - bonusBracket.QuickDeduction

	return model.TaxBreakdown{
		MonthlySalary:        monthlySalary,
		AnnualBonus:          annualBonus,
		MonthlyDeduction:     monthlyDeduction,
		SocialInsurance:      insurance,
		MonthlyTaxableIncome: taxable,
		MonthlyBracket:       monthlyBracket,
		MonthlyTax:           monthlyTax,
		BonusBracket:         bonusBracket,
		BonusTax:             bonusTax,
		TotalTax:             float64(12*monthlyTax) + bonusTax,
	}, nil
}
