package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/mortgage-cli/internal/config"
)

func withTestConfig(t *testing.T) {
	t.Helper()
	orig := cfg
	cfg = &config.Config{
		Financing: config.FinancingConfig{InterestRate: 0.06, TermMonths: 360, ClosingCostRate: 0.05},
		Search:    config.SearchConfig{TaxRate: 0.015, HOAMonthly: 100},
	}
	t.Cleanup(func() { cfg = orig })
}

func newFlagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addFinancingFlags(cmd)
	addRestrictionFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestFinancingFromFlags(t *testing.T) {
	withTestConfig(t)

	t.Run("defaults from config", func(t *testing.T) {
		terms := financingFromFlags(newFlagCmd(t))
		assert.InDelta(t, 0.06, terms.InterestRate, 1e-12)
		assert.Equal(t, 360, terms.TermMonths)
		assert.InDelta(t, 0.05, terms.ClosingCostRate, 1e-12)
	})

	t.Run("flag overrides", func(t *testing.T) {
		terms := financingFromFlags(newFlagCmd(t,
			"--interest-rate", "0.045", "--term-months", "180", "--closing-cost-rate", "0.03"))
		assert.InDelta(t, 0.045, terms.InterestRate, 1e-12)
		assert.Equal(t, 180, terms.TermMonths)
		assert.InDelta(t, 0.03, terms.ClosingCostRate, 1e-12)
	})
}

func TestRestrictionsFromFlags(t *testing.T) {
	withTestConfig(t)

	t.Run("defaults from config", func(t *testing.T) {
		r := restrictionsFromFlags(newFlagCmd(t, "--savings", "50000", "--max-monthly-payment", "3000"))
		assert.InDelta(t, 50000, r.Savings, 1e-9)
		assert.InDelta(t, 3000, r.MaxMonthlyPayment, 1e-9)
		assert.Zero(t, r.MaxMortgage)
		assert.InDelta(t, 0.015, r.TaxRate, 1e-12)
		assert.InDelta(t, 100, r.HOAMonthly, 1e-9)
	})

	t.Run("flag overrides", func(t *testing.T) {
		r := restrictionsFromFlags(newFlagCmd(t,
			"--savings", "60000", "--max-mortgage", "250000", "--hoa", "320", "--tax-rate", "0.02"))
		assert.InDelta(t, 60000, r.Savings, 1e-9)
		assert.InDelta(t, 250000, r.MaxMortgage, 1e-9)
		assert.InDelta(t, 320, r.HOAMonthly, 1e-9)
		assert.InDelta(t, 0.02, r.TaxRate, 1e-12)
	})
}
