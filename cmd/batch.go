package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/mortgage-cli/internal/scenario"
)

var batchCmd = &cobra.Command{
	Use:   "batch <scenarios.yaml>",
	Short: "Evaluate many buyer scenarios from a file",
	Long: `Runs the affordability search for every scenario in a YAML file, in
parallel. Scenarios share the file-level financing offer unless they carry
their own.

Example file:
  financing:
    interest_rate: 0.06
  scenarios:
    - name: baseline
      restrictions:
        savings: 50000
        max_monthly_payment: 3000
    - name: lower-rate
      financing:
        interest_rate: 0.045
      restrictions:
        savings: 50000
        max_monthly_payment: 3000`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Int("concurrency", 0, "max scenarios evaluated in parallel (default from config)")
	batchCmd.Flags().String("format", "table", "output format: table, csv, or xlsx")
	batchCmd.Flags().String("output", "", "output file path (default: stdout; required for xlsx)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	if format != "table" && format != "csv" && format != "xlsx" {
		return eris.Errorf("batch: --format must be table, csv, or xlsx (got %q)", format)
	}
	if format == "xlsx" && outputPath == "" {
		return eris.New("batch: --output is required with --format xlsx")
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency <= 0 {
		concurrency = cfg.Batch.MaxConcurrentScenarios
	}

	f, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	if f.Financing.InterestRate == 0 {
		f.Financing = cfg.Financing.Terms()
	}

	log := zap.L().With(zap.String("command", "batch"))
	log.Info("evaluating scenarios",
		zap.Int("scenarios", len(f.Scenarios)),
		zap.Int("concurrency", concurrency),
	)

	results := scenario.EvaluateAll(ctx, f, concurrency)

	var matched, failed int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			log.Warn("scenario failed", zap.String("scenario", r.Name), zap.Error(r.Err))
		case r.Mortgage.IsValid():
			matched++
		}
	}
	log.Info("batch complete",
		zap.Int("matched", matched),
		zap.Int("no_match", len(results)-matched-failed),
		zap.Int("failed", failed),
	)

	if format == "xlsx" {
		return writeBatchXLSX(outputPath, results)
	}

	w := os.Stdout
	if outputPath != "" {
		var err error
		w, err = os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "batch: create output file %s", outputPath)
		}
		defer w.Close() //nolint:errcheck
	}

	if format == "csv" {
		return writeBatchCSV(w, results)
	}
	return writeBatchTable(w, results)
}
