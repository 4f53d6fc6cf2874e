package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/mortgage-cli/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect saved affordability searches",
	Long:  "Commands for listing and viewing runs recorded with 'optimize --save'.",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		limit, _ := cmd.Flags().GetInt("limit")
		minValue, _ := cmd.Flags().GetFloat64("min-home-value")

		runs, err := st.ListRuns(ctx, store.RunFilter{Limit: limit, MinHomeValue: minValue})
		if err != nil {
			return eris.Wrap(err, "runs list")
		}

		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs found.")
			return nil
		}

		formatRunsList(runs)
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show full details of a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrapf(err, "runs show %s", args[0])
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(run), "runs show: encode")
	},
}

func init() {
	runsListCmd.Flags().Int("limit", 50, "max runs to list")
	runsListCmd.Flags().Float64("min-home-value", 0, "only show runs that found at least this home value")
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func openStore(ctx context.Context) (*store.SQLiteStore, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

func formatRunsList(runs []store.Run) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSAVINGS\tHOME VALUE\tMONTHLY")
	for _, r := range runs {
		homeValue := "-"
		monthly := "-"
		if r.Breakdown != nil {
			homeValue = formatMoney(r.HomeValue)
			monthly = formatMoney(r.Breakdown.MonthlyPayment)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.CreatedAt.Format(time.RFC3339),
			formatMoney(r.Restrictions.Savings),
			homeValue,
			monthly,
		)
	}
	tw.Flush()
}
