package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/mortgage-cli/internal/mortgage"
	"github.com/sells-group/mortgage-cli/internal/search"
)

// addFinancingFlags registers the financing-offer override flags shared by
// the pricing and search commands.
func addFinancingFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64("interest-rate", 0, "APR as a decimal fraction, e.g. 0.06 (overrides config)")
	f.Int("term-months", 0, "loan term in months (overrides config)")
	f.Float64("closing-cost-rate", 0, "closing costs as a fraction of the mortgage size (overrides config)")
}

// addRestrictionFlags registers the buyer-restriction flags.
func addRestrictionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64("savings", 0, "money available for down payment plus closing costs (required)")
	f.Float64("max-monthly-payment", 0, "maximum acceptable monthly payment")
	f.Float64("max-mortgage", 0, "maximum acceptable loan size")
	f.Float64("hoa", 0, "monthly HOA cost (overrides config)")
	f.Float64("tax-rate", 0, "property tax rate as a decimal fraction (overrides config)")
}

// financingFromFlags returns the configured financing offer with CLI flag
// overrides applied.
func financingFromFlags(cmd *cobra.Command) mortgage.FinancingTerms {
	terms := cfg.Financing.Terms()

	if v, _ := cmd.Flags().GetFloat64("interest-rate"); v > 0 {
		terms.InterestRate = v
	}
	if v, _ := cmd.Flags().GetInt("term-months"); v > 0 {
		terms.TermMonths = v
	}
	if v, _ := cmd.Flags().GetFloat64("closing-cost-rate"); v > 0 {
		terms.ClosingCostRate = v
	}

	return terms
}

// restrictionsFromFlags builds buyer restrictions from flags, falling back to
// configured defaults for HOA and tax rate. Validation happens in the search
// layer, not here.
func restrictionsFromFlags(cmd *cobra.Command) search.Restrictions {
	r := search.Restrictions{
		TaxRate:    cfg.Search.TaxRate,
		HOAMonthly: cfg.Search.HOAMonthly,
	}

	if v, _ := cmd.Flags().GetFloat64("savings"); v > 0 {
		r.Savings = v
	}
	if v, _ := cmd.Flags().GetFloat64("max-monthly-payment"); v > 0 {
		r.MaxMonthlyPayment = v
	}
	if v, _ := cmd.Flags().GetFloat64("max-mortgage"); v > 0 {
		r.MaxMortgage = v
	}
	if v, _ := cmd.Flags().GetFloat64("hoa"); v > 0 {
		r.HOAMonthly = v
	}
	if v, _ := cmd.Flags().GetFloat64("tax-rate"); v > 0 {
		r.TaxRate = v
	}

	return r
}
