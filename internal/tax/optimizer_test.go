package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimizeTax(t *testing.T) {
	tests := []struct {
		name      string
		total     float64
		deduction float64
		want      [3]float64
	}{
		{"zero compensation", 0, 0, [3]float64{0, 0, 0}},
		{"below threshold", 36000, 0, [3]float64{0, 3000, 0}},
		{"threshold exactly", 60000, 0, [3]float64{0, 5000, 0}},
		{"100k", 100000, 0, [3]float64{1200, 8000, 4000}},
		{"200k", 200000, 0, [3]float64{8960, 200000.0 / 12 - 3000, 36000}},
		{"200k with deduction", 200000, 2000, [3]float64{6560, 200000.0 / 12 - 3000, 36000}},
		{"500k with deduction", 500000, 1000, [3]float64{54070, (500000.0 - 144000) / 12, 144000}},
		{"1m", 1000000, 0, [3]float64{197670, 700000.0 / 12, 300000}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MinimizeTax(scheme2019, tc.total, tc.deduction)
			require.NoError(t, err)
			assert.InDelta(t, tc.want[0], got.TotalTax, tolerance, "tax")
			assert.InDelta(t, tc.want[1], got.MonthlySalary, tolerance, "monthly salary")
			assert.InDelta(t, tc.want[2], got.AnnualBonus, tolerance, "bonus")
		})
	}
}

func TestMinimizeTaxTieKeepsFirstCandidate(t *testing.T) {
	// (8000, 0) and (5000, 36000) both cost 1080; the salary-boundary
	// candidate at 3000 is generated first.
	got, err := MinimizeTax(scheme2019, 96000, 0)
	require.NoError(t, err)
	assert.Equal(t, 1080.0, got.TotalTax)
	assert.Equal(t, 8000.0, got.MonthlySalary)
	assert.Equal(t, 0.0, got.AnnualBonus)
}

func TestMinimizeTaxPrefersAllSalaryBelowFirstBoundary(t *testing.T) {
	// Between the threshold and the first boundary the all-salary split ties
	// with (5000, total-60000) and must win.
	tests := []struct {
		total      float64
		wantTax    float64
		wantSalary float64
	}{
		{90000, 900, 7500},
		{80000, 600, 80000.0 / 12},
	}
	for _, tc := range tests {
		got, err := MinimizeTax(scheme2019, tc.total, 0)
		require.NoError(t, err)
		assert.InDelta(t, tc.wantTax, got.TotalTax, tolerance)
		assert.Equal(t, tc.wantSalary, got.MonthlySalary)
		assert.Equal(t, 0.0, got.AnnualBonus)
	}

	for _, c := range Candidates(scheme2019, 90000, 0) {
		if c.Origin == OriginSalaryBoundary || c.Origin == OriginBonusBoundary {
			assert.NotZero(t, c.Boundary, "candidate %+v", c)
		}
	}
}

func TestCandidatesOrder(t *testing.T) {
	got := Candidates(scheme2019, 200000, 0)

	want := []Candidate{
		{Origin: OriginSalaryBoundary, Boundary: 3000, MonthlySalary: 8000, AnnualBonus: 104000},
		{Origin: OriginAllSalary, MonthlySalary: 200000.0 / 12},
		{Origin: OriginBonusBoundary, Boundary: 3000, MonthlySalary: (200000.0 - 36000) / 12, AnnualBonus: 36000},
		{Origin: OriginBonusBoundary, Boundary: 12000, MonthlySalary: (200000.0 - 144000) / 12, AnnualBonus: 144000},
		{Origin: OriginAllBonus, AnnualBonus: 200000},
	}

	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Origin, got[i].Origin, "candidate %d", i)
		assert.Equal(t, want[i].Boundary, got[i].Boundary, "candidate %d", i)
		assert.InDelta(t, want[i].MonthlySalary, got[i].MonthlySalary, tolerance, "candidate %d", i)
		assert.InDelta(t, want[i].AnnualBonus, got[i].AnnualBonus, tolerance, "candidate %d", i)
	}
}

func TestCandidatesZeroCompensation(t *testing.T) {
	got := Candidates(scheme2019, 0, 0)
	require.NotEmpty(t, got)
	for _, c := range got {
		assert.Zero(t, c.MonthlySalary)
		assert.Zero(t, c.AnnualBonus)
	}
}

func TestCandidatesFilterWithoutOrderAssumption(t *testing.T) {
	shuffled := scheme2019
	shuffled.Brackets = append(shuffled.Brackets[:0:0], scheme2019.Brackets...)
	// Swap two middle rows: a later small boundary must still be generated.
	shuffled.Brackets[2], shuffled.Brackets[5] = shuffled.Brackets[5], shuffled.Brackets[2]

	var boundaries []float64
	for _, c := range Candidates(shuffled, 200000, 0) {
		if c.Origin == OriginBonusBoundary {
			boundaries = append(boundaries, c.Boundary)
		}
	}
	assert.Equal(t, []float64{3000, 12000}, boundaries)
}

func TestMinimizeTaxMatchesGridSearch(t *testing.T) {
	const total = 200000.0

	bestTax, bestSalary, bestBonus := -1.0, 0.0, 0.0
	for bonus := 0.0; bonus <= total; bonus++ {
		salary := (total - bonus) / 12
		got, err := ComputeTax(scheme2019, salary, bonus, 0)
		require.NoError(t, err)
		if bestTax < 0 || got < bestTax {
			bestTax, bestSalary, bestBonus = got, salary, bonus
		}
	}

	opt, err := MinimizeTax(scheme2019, total, 0)
	require.NoError(t, err)
	assert.InDelta(t, bestTax, opt.TotalTax, 1)
	assert.InDelta(t, bestSalary, opt.MonthlySalary, 1)
	assert.InDelta(t, bestBonus, opt.AnnualBonus, 1)
}

func TestMinimizeTaxProperties(t *testing.T) {
	for _, deduction := range []float64{0, 1500, 20000} {
		for total := 0.0; total <= 3000000; total += 12000 {
			opt, err := MinimizeTax(scheme2019, total, deduction)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, opt.MonthlySalary, 0.0)
			assert.GreaterOrEqual(t, opt.AnnualBonus, 0.0)
			assert.InDelta(t, total, 12*opt.MonthlySalary+opt.AnnualBonus, tolerance)

			allSalary, err := ComputeTax(scheme2019, total/12, 0, deduction)
			require.NoError(t, err)
			assert.LessOrEqual(t, opt.TotalTax, allSalary+tolerance, "total %v deduction %v", total, deduction)
		}
	}
}

func TestMinimizeTaxRejectsNegativeInput(t *testing.T) {
	_, err := MinimizeTax(scheme2019, -1, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = MinimizeTax(scheme2019, 1000, -5)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAvoidedTax(t *testing.T) {
	got, err := AvoidedTax(scheme2019, 200000, 0)
	require.NoError(t, err)

	assert.Equal(t, 200000.0, got.AnnualCompensation)
	assert.InDelta(t, 11480, got.AllSalaryTax, tolerance)
	assert.InDelta(t, 8960, got.Optimal.TotalTax, tolerance)
	assert.InDelta(t, 2520, got.Avoided, tolerance)
}

func TestOriginString(t *testing.T) {
	assert.Equal(t, "salary_boundary", OriginSalaryBoundary.String())
	assert.Equal(t, "all_salary", OriginAllSalary.String())
	assert.Equal(t, "bonus_boundary", OriginBonusBoundary.String())
	assert.Equal(t, "all_bonus", OriginAllBonus.String())
	assert.Equal(t, "origin(9)", Origin(9).String())
}
