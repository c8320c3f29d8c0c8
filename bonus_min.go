package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"bonus-tax-engine/internal/money"
	"bonus-tax-engine/internal/tax"
)

var bonusMinDeduction float64

var bonusMinCmd = &cobra.Command{
	Use:   "bonus-min SALARY",
	Short: "Find the salary/bonus split with the least annual tax",
	Long: "Splits SALARY (total annual compensation) into twelve equal monthly salaries and one " +
		"annual bonus so that the total individual income tax is minimal.",
	Example: "  bonus-tax bonus-min 200000\n  bonus-tax bonus-min 500000 -d 1000",
	Args:    cobra.ExactArgs(1),
	RunE:    runBonusMin,
}

func init() {
	bonusMinCmd.Flags().Float64VarP(&bonusMinDeduction, "deduction", "d", 0, "Monthly special additional deduction")
	rootCmd.AddCommand(bonusMinCmd)
}

func runBonusMin(cmd *cobra.Command, args []string) error {
	total, err := parseNonNegative("salary", args[0])
	if err != nil {
		return err
	}
	if bonusMinDeduction < 0 {
		return fmt.Errorf("deduction must be non-negative, got %v", bonusMinDeduction)
	}

	calc, err := calculator(cmd)
	if err != nil {
		return err
	}

	res, err := calc.AvoidedTax(total, bonusMinDeduction)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total tax:      %s\n", money.Format(res.Optimal.TotalTax))
	fmt.Fprintf(out, "Monthly salary: %s\n", money.Format(res.Optimal.MonthlySalary))
	fmt.Fprintf(out, "Annual bonus:   %s\n", money.Format(res.Optimal.AnnualBonus))
	fmt.Fprintf(out, "Tax avoided:    %s (all-salary tax %s)\n", money.Format(res.Avoided), money.Format(res.AllSalaryTax))
	return nil
}

func calculator(cmd *cobra.Command) (*tax.Calculator, error) {
	registry, err := newRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load tax schemes: %w", err)
	}
	scheme, err := registry.Get(cmd.Context(), schemeID)
	if err != nil {
		return nil, err
	}
	return tax.New(scheme), nil
}

func parseNonNegative(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must be non-negative, got %v", name, v)
	}
	return v, nil
}
