package model

// SplitResult is the outcome of a split optimization.
// 12*MonthlySalary + AnnualBonus equals the optimized total compensation.
type SplitResult struct {
	TotalTax      float64 `json:"total_tax"`
	MonthlySalary float64 `json:"monthly_salary"`
	AnnualBonus   float64 `json:"annual_bonus"`
}

// TaxBreakdown holds the intermediate legs of a single annual tax computation.
type TaxBreakdown struct {
	MonthlySalary        float64    `json:"monthly_salary"`
	AnnualBonus          float64    `json:"annual_bonus"`
	MonthlyDeduction     float64    `json:"monthly_deduction"`
	SocialInsurance      float64    `json:"social_insurance"`
	MonthlyTaxableIncome float64    `json:"monthly_taxable_income"`
	MonthlyBracket       TaxBracket `json:"monthly_bracket"`
	MonthlyTax           float64    `json:"monthly_tax"`
	BonusBracket         TaxBracket `json:"bonus_bracket"`
	BonusTax             float64    `json:"bonus_tax"`
	TotalTax             float64    `json:"total_tax"`
}

// AvoidedTax compares paying everything as salary against the optimal split.
type AvoidedTax struct {
	AnnualCompensation float64     `json:"annual_compensation"`
	AllSalaryTax       float64     `json:"all_salary_tax"`
	Optimal            SplitResult `json:"optimal"`
	Avoided            float64     `json:"avoided_tax"`
}
