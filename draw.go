package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bonus-tax-engine/internal/chart"
	"bonus-tax-engine/internal/logger"
)

var drawFlags struct {
	out       string
	deduction float64
	totals    chart.Range
	salaries  chart.Range
	bonuses   chart.Range
}

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Render tax charts as PDF",
}

var drawMinTaxCmd = &cobra.Command{
	Use:   "min-tax",
	Short: "Chart the minimal tax, after-tax income, avoided tax and best bonus per annual compensation",
	Args:  cobra.NoArgs,
	RunE:  runDrawMinTax,
}

var drawSurfaceCmd = &cobra.Command{
	Use:   "surface",
	Short: "Chart after-tax income over a monthly salary x annual bonus grid",
	Args:  cobra.NoArgs,
	RunE:  runDrawSurface,
}

func init() {
	pf := drawCmd.PersistentFlags()
	pf.StringVarP(&drawFlags.out, "out", "o", "", "Output PDF path")
	pf.Float64VarP(&drawFlags.deduction, "deduction", "d", 0, "Monthly special additional deduction")
	_ = drawCmd.MarkPersistentFlagRequired("out")

	f := drawMinTaxCmd.Flags()
	f.Float64Var(&drawFlags.totals.Start, "from", 0, "First annual compensation")
	f.Float64Var(&drawFlags.totals.Stop, "to", 3000000, "Annual compensation upper bound (exclusive)")
	f.Float64Var(&drawFlags.totals.Step, "step", 12000, "Annual compensation step")

	f = drawSurfaceCmd.Flags()
	f.Float64Var(&drawFlags.salaries.Start, "salary-from", 0, "First monthly salary")
	f.Float64Var(&drawFlags.salaries.Stop, "salary-to", 200000, "Monthly salary upper bound (exclusive)")
	f.Float64Var(&drawFlags.salaries.Step, "salary-step", 2000, "Monthly salary step")
	f.Float64Var(&drawFlags.bonuses.Start, "bonus-from", 0, "First annual bonus")
	f.Float64Var(&drawFlags.bonuses.Stop, "bonus-to", 2000000, "Annual bonus upper bound (exclusive)")
	f.Float64Var(&drawFlags.bonuses.Step, "bonus-step", 20000, "Annual bonus step")

	drawCmd.AddCommand(drawMinTaxCmd, drawSurfaceCmd)
	rootCmd.AddCommand(drawCmd)
}

func runDrawMinTax(cmd *cobra.Command, _ []string) error {
	calc, err := calculator(cmd)
	if err != nil {
		return err
	}
	points, err := chart.SampleMinTax(cmd.Context(), calc, drawFlags.totals, drawFlags.deduction)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("Minimal tax per annual compensation (%s)", calc.Scheme().Name)
	return writePDF(drawFlags.out, func(f *os.File) error {
		return chart.RenderMinTaxPDF(f, title, points)
	})
}

func runDrawSurface(cmd *cobra.Command, _ []string) error {
	calc, err := calculator(cmd)
	if err != nil {
		return err
	}
	surface, err := chart.SampleSurface(cmd.Context(), calc, drawFlags.salaries, drawFlags.bonuses, drawFlags.deduction)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("After-tax income by salary and bonus (%s)", calc.Scheme().Name)
	return writePDF(drawFlags.out, func(f *os.File) error {
		return chart.RenderSurfacePDF(f, title, surface)
	})
}

func writePDF(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.L.Info("chart written", "path", path)
	return nil
}
