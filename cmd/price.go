package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/mortgage-cli/internal/search"
)

var priceCmd = &cobra.Command{
	Use:   "price <home-value>",
	Short: "Price a single home purchase",
	Long: `Derives the lowest-cost viable mortgage for one target home value: the down
payment is solved so that down payment plus closing costs consume exactly the
buyer's savings, then the full cost structure is itemized.

Examples:
  # Price a $300k home with $50k savings at the configured rate
  price 300000 --savings 50000 --max-monthly-payment 3000

  # Override the financing offer
  price 300000 --savings 50000 --max-mortgage 400000 --interest-rate 0.055`,
	Args: cobra.ExactArgs(1),
	RunE: runPrice,
}

func init() {
	addFinancingFlags(priceCmd)
	addRestrictionFlags(priceCmd)
	priceCmd.Flags().String("format", "table", "output format: table or json")
	rootCmd.AddCommand(priceCmd)
}

func runPrice(cmd *cobra.Command, args []string) error {
	homeValue, err := strconv.ParseFloat(args[0], 64)
	if err != nil || homeValue <= 0 {
		return eris.Errorf("price: home value must be a positive number (got %q)", args[0])
	}

	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return eris.Errorf("price: --format must be table or json (got %q)", format)
	}

	financing := financingFromFlags(cmd)
	restrictions := restrictionsFromFlags(cmd)

	engine := search.New(financing)
	m, err := engine.BestMortgageFor(homeValue, restrictions)
	if err != nil {
		return err
	}

	if !m.IsValid() {
		// The derived down payment went negative: the bank would have to
		// lend the closing costs.
		fmt.Fprintln(os.Stderr, "No bank would underwrite this purchase: the savings cannot cover the closing costs at this home value.")
		return nil
	}

	c := m.Cost()
	zap.L().Debug("priced home purchase",
		zap.Float64("home_value", homeValue),
		zap.Float64("monthly_payment", c.MonthlyPayment),
	)

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(c), "price: encode breakdown")
	}

	printBreakdown(os.Stdout, m, c)
	return nil
}
