package bracket

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bonus-tax-engine/internal/model"
)

var bound = model.Bound

var rates2019 = []model.TaxBracket{
	{Lower: nil, Upper: bound(3000), Rate: 0.03, QuickDeduction: 0},
	{Lower: bound(3000), Upper: bound(12000), Rate: 0.1, QuickDeduction: 210},
	{Lower: bound(12000), Upper: bound(25000), Rate: 0.2, QuickDeduction: 1410},
	{Lower: bound(25000), Upper: bound(35000), Rate: 0.25, QuickDeduction: 2660},
	{Lower: bound(35000), Upper: bound(55000), Rate: 0.3, QuickDeduction: 4410},
	{Lower: bound(55000), Upper: bound(80000), Rate: 0.35, QuickDeduction: 7160},
	{Lower: bound(80000), Upper: nil, Rate: 0.45, QuickDeduction: 15160},
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		rate      float64
		deduction float64
	}{
		{"zero", 0, 0.03, 0},
		{"inside first", 1500, 0.03, 0},
		{"upper bound is inclusive", 3000, 0.03, 0},
		{"just above boundary", 3000.01, 0.1, 210},
		{"middle", 30000, 0.25, 2660},
		{"boundary 55000", 55000, 0.3, 4410},
		{"boundary 80000", 80000, 0.35, 7160},
		{"open above", 1e9, 0.45, 15160},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Resolve(rates2019, tc.amount)
			require.NoError(t, err)
			assert.Equal(t, tc.rate, b.Rate)
			assert.Equal(t, tc.deduction, b.QuickDeduction)
		})
	}
}

func TestResolveExactlyOneBracket(t *testing.T) {
	for x := 0.0; x <= 120000; x += 250 {
		matches := 0
		for _, b := range rates2019 {
			if b.Contains(x) {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "amount %v", x)
	}
}

func TestResolveRateIsMonotonic(t *testing.T) {
	prev := -1.0
	for x := 0.0; x <= 200000; x += 100 {
		b, err := Resolve(rates2019, x)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, b.Rate, prev, "rate dropped at %v", x)
		prev = b.Rate
	}
}

func TestResolveNoMatch(t *testing.T) {
	gapped := []model.TaxBracket{
		{Upper: bound(3000), Rate: 0.03},
		{Lower: bound(5000), Rate: 0.1, QuickDeduction: 210},
	}

	_, err := Resolve(gapped, 4000)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoMatchingBracket))

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, 4000.0, cfgErr.Amount)
	assert.Contains(t, err.Error(), "no bracket contains 4000")

	_, err = Resolve(nil, 0)
	assert.ErrorIs(t, err, ErrNoMatchingBracket)
}

func TestResolveIsPure(t *testing.T) {
	a, err := Resolve(rates2019, 12345)
	require.NoError(t, err)
	b, err := Resolve(rates2019, 12345)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
