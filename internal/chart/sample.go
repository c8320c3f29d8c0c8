// Package chart samples the tax calculator over input ranges and renders
// the samples as PDF charts. It only uses the calculator's public methods.
package chart

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"bonus-tax-engine/internal/tax"
)

// MaxPoints caps the number of values a single Range may expand to.
const MaxPoints = 100_000

// Range is a half-open sequence Start, Start+Step, ... below Stop.
type Range struct {
	Start float64
	Stop  float64
	Step  float64
}

// Values expands the range. Values are computed as Start+i*Step so long
// ranges do not accumulate rounding drift.
func (r Range) Values() ([]float64, error) {
	if r.Step <= 0 {
		return nil, fmt.Errorf("range step must be positive, got %v", r.Step)
	}
	if r.Stop <= r.Start {
		return nil, nil
	}
	count := math.Ceil((r.Stop - r.Start) / r.Step)
	if !(count <= MaxPoints) {
		return nil, fmt.Errorf("range %v..%v step %v yields more than %d points", r.Start, r.Stop, r.Step, MaxPoints)
	}
	out := make([]float64, int(count))
	for i := range out {
		out[i] = r.Start + float64(i)*r.Step
	}
	return out, nil
}

// Surface is the after-tax income over a monthly salary x annual bonus grid.
type Surface struct {
	Salaries []float64
	Bonuses  []float64
	// AfterTax[i][j] is the after-tax annual income for Salaries[i] and Bonuses[j].
	AfterTax [][]float64
}

// SweepPoint is the optimal split of one annual compensation figure.
type SweepPoint struct {
	AnnualCompensation float64
	MinTax             float64
	AfterTax           float64
	AvoidedTax         float64
	MonthlySalary      float64
	AnnualBonus        float64
}

// SampleSurface evaluates ComputeTax on every grid point. Rows are sampled
// in parallel.
func SampleSurface(ctx context.Context, calc *tax.Calculator, salaries, bonuses Range, monthlyDeduction float64) (*Surface, error) {
	xs, err := salaries.Values()
	if err != nil {
		return nil, fmt.Errorf("salary range: %w", err)
	}
	ys, err := bonuses.Values()
	if err != nil {
		return nil, fmt.Errorf("bonus range: %w", err)
	}

	s := &Surface{Salaries: xs, Bonuses: ys, AfterTax: make([][]float64, len(xs))}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, salary := range xs {
		i, salary := i, salary
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := make([]float64, len(ys))
			for j, bonus := range ys {
				t, err := calc.ComputeTax(salary, bonus, monthlyDeduction)
				if err != nil {
					return fmt.Errorf("salary %v bonus %v: %w", salary, bonus, err)
				}
				row[j] = 12*salary + bonus - t
			}
			s.AfterTax[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}

// SampleMinTax runs the split optimizer for every compensation in totals.
func SampleMinTax(ctx context.Context, calc *tax.Calculator, totals Range, monthlyDeduction float64) ([]SweepPoint, error) {
	values, err := totals.Values()
	if err != nil {
		return nil, fmt.Errorf("compensation range: %w", err)
	}

	points := make([]SweepPoint, len(values))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, total := range values {
		i, total := i, total
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := calc.AvoidedTax(total, monthlyDeduction)
			if err != nil {
				return fmt.Errorf("compensation %v: %w", total, err)
			}
			points[i] = SweepPoint{
				AnnualCompensation: total,
				MinTax:             res.Optimal.TotalTax,
				AfterTax:           total - res.Optimal.TotalTax,
				AvoidedTax:         res.Avoided,
				MonthlySalary:      res.Optimal.MonthlySalary,
				AnnualBonus:        res.Optimal.AnnualBonus,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}
