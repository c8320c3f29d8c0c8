package model

// TaxScheme bundles a bracket table with the monthly tax-free threshold.
// One instance per tax year and jurisdiction; never mutated after loading.
type TaxScheme struct {
	ID                string       `json:"scheme_id" yaml:"id"`
	Name              string       `json:"name" yaml:"name"`
	MonthlyStartPoint float64      `json:"monthly_start_point" yaml:"monthly_start_point"`
	Brackets          []TaxBracket `json:"brackets" yaml:"brackets"`
}

// Boundaries returns the split points used by the optimizer: every finite
// lower bound in table order.
func (s TaxScheme) Boundaries() []float64 {
	points := make([]float64, 0, len(s.Brackets))
	for _, b := range s.Brackets {
		if b.Lower != nil {
			points = append(points, *b.Lower)
		}
	}
	return points
}
