package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/mortgage-cli/internal/search"
	"github.com/sells-group/mortgage-cli/internal/store"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Find the highest-value affordable home purchase",
	Long: `Searches across home values for the most expensive purchase that fits the
buyer's restrictions, refining the search step down to single-dollar
resolution.

Requires --savings and at least one of --max-monthly-payment / --max-mortgage.

Examples:
  # Max purchase with $50k savings and a $3k/mo ceiling
  optimize --savings 50000 --max-monthly-payment 3000

  # Cap the loan size instead, and save the run
  optimize --savings 50000 --max-mortgage 300000 --save`,
	RunE: runOptimize,
}

func init() {
	addFinancingFlags(optimizeCmd)
	addRestrictionFlags(optimizeCmd)
	optimizeCmd.Flags().String("format", "table", "output format: table or json")
	optimizeCmd.Flags().Bool("save", false, "record this run in the run-history store")
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return eris.Errorf("optimize: --format must be table or json (got %q)", format)
	}
	save, _ := cmd.Flags().GetBool("save")

	financing := financingFromFlags(cmd)
	restrictions := restrictionsFromFlags(cmd)

	log := zap.L().With(zap.String("command", "optimize"))
	log.Info("starting affordability search",
		zap.Float64("savings", restrictions.Savings),
		zap.Float64("max_monthly_payment", restrictions.MaxMonthlyPayment),
		zap.Float64("max_mortgage", restrictions.MaxMortgage),
		zap.Float64("interest_rate", financing.InterestRate),
	)

	engine := search.New(financing)
	m, err := engine.Optimize(restrictions)
	if err != nil {
		return err
	}

	if save {
		st, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}
		run, err := st.SaveRun(ctx, financing, restrictions, m)
		if err != nil {
			return eris.Wrap(err, "optimize: save run")
		}
		fmt.Fprintf(os.Stderr, "Run saved: %s\n", run.ID)
	}

	if !m.IsValid() {
		log.Info("search found no viable purchase")
		fmt.Fprintln(os.Stderr, "No home purchase satisfies these restrictions.")
		return nil
	}

	c := m.Cost()
	log.Info("search converged",
		zap.Float64("home_value", m.HomeValue),
		zap.Float64("monthly_payment", c.MonthlyPayment),
		zap.Float64("initial_cost", c.InitialCost),
	)

	if format == "json" {
		out := struct {
			HomeValue float64 `json:"home_value"`
			Breakdown any     `json:"breakdown"`
		}{m.HomeValue, c}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(out), "optimize: encode result")
	}

	printBreakdown(os.Stdout, m, c)
	return nil
}
