package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bonus-tax-engine/internal/money"
)

var countTaxFlags struct {
	salary    float64
	bonus     float64
	deduction float64
	detail    bool
}

var countTaxCmd = &cobra.Command{
	Use:     "count-tax",
	Short:   "Compute the annual tax of a fixed salary/bonus split",
	Example: "  bonus-tax count-tax --salary 8000 --bonus 36000\n  bonus-tax count-tax -s 10000 -d 1000 --detail",
	Args:    cobra.NoArgs,
	RunE:    runCountTax,
}

func init() {
	f := countTaxCmd.Flags()
	f.Float64VarP(&countTaxFlags.salary, "salary", "s", 0, "Monthly salary")
	f.Float64VarP(&countTaxFlags.bonus, "bonus", "b", 0, "Annual bonus")
	f.Float64VarP(&countTaxFlags.deduction, "deduction", "d", 0, "Monthly special additional deduction")
	f.BoolVar(&countTaxFlags.detail, "detail", false, "Print the brackets and partial taxes")
	rootCmd.AddCommand(countTaxCmd)
}

func runCountTax(cmd *cobra.Command, _ []string) error {
	for name, v := range map[string]float64{
		"salary":    countTaxFlags.salary,
		"bonus":     countTaxFlags.bonus,
		"deduction": countTaxFlags.deduction,
	} {
		if v < 0 {
			return fmt.Errorf("%s must be non-negative, got %v", name, v)
		}
	}

	calc, err := calculator(cmd)
	if err != nil {
		return err
	}

	b, err := calc.Breakdown(countTaxFlags.salary, countTaxFlags.bonus, countTaxFlags.deduction)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if countTaxFlags.detail {
		fmt.Fprintf(out, "Monthly taxable income: %s\n", money.Format(b.MonthlyTaxableIncome))
		fmt.Fprintf(out, "Monthly rate:           %g%% (quick deduction %s)\n", b.MonthlyBracket.Rate*100, money.Format(b.MonthlyBracket.QuickDeduction))
		fmt.Fprintf(out, "Monthly tax:            %s\n", money.Format(b.MonthlyTax))
		fmt.Fprintf(out, "Bonus rate:             %g%% (quick deduction %s)\n", b.BonusBracket.Rate*100, money.Format(b.BonusBracket.QuickDeduction))
		fmt.Fprintf(out, "Bonus tax:              %s\n", money.Format(b.BonusTax))
	}
	fmt.Fprintf(out, "Total tax: %s\n", money.Format(b.TotalTax))
	return nil
}
