package operations

import "sort"

const (
	OpComputeTax  = "compute_tax"
	OpBreakdown   = "breakdown"
	OpMinimizeTax = "minimize_tax"
	OpAvoidedTax  = "avoided_tax"
)

var registry = map[string]OperationHandler{
	OpComputeTax:  &ComputeTaxHandler{},
	OpBreakdown:   &BreakdownHandler{},
	OpMinimizeTax: &MinimizeTaxHandler{},
	OpAvoidedTax:  &AvoidedTaxHandler{},
}

func Get(name string) (OperationHandler, bool) {
	h, ok := registry[name]
	return h, ok
}

// Names lists the registered operations.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
