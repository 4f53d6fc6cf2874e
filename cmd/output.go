package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/mortgage-cli/internal/mortgage"
	"github.com/sells-group/mortgage-cli/internal/scenario"
)

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// formatMoney renders a dollar amount with digit grouping.
func formatMoney(v float64) string {
	return moneyPrinter.Sprintf("$%.2f", v)
}

// printBreakdown writes an itemized cost table for one priced mortgage.
func printBreakdown(w io.Writer, m mortgage.Mortgage, c *mortgage.CostBreakdown) {
	fmt.Fprintf(w, "Home value:        %s\n", formatMoney(m.HomeValue))
	fmt.Fprintf(w, "Mortgage size:     %s\n", formatMoney(c.MortgageSize))
	fmt.Fprintf(w, "Down payment:      %s (%.1f%% down)\n", formatMoney(c.DownPaymentCost), c.PercentDown*100)
	fmt.Fprintf(w, "Closing costs:     %s\n", formatMoney(c.ClosingCost))
	fmt.Fprintf(w, "Upfront total:     %s\n", formatMoney(c.InitialCost))
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "Loan payment:      %s/mo\n", formatMoney(c.MortgagePayment))
	fmt.Fprintf(w, "PMI:               %s/mo\n", formatMoney(c.PMIPayment))
	fmt.Fprintf(w, "Property tax:      %s/mo\n", formatMoney(c.TaxPayment))
	fmt.Fprintf(w, "Insurance:         %s/mo\n", formatMoney(c.InsurancePayment))
	fmt.Fprintf(w, "HOA:               %s/mo\n", formatMoney(c.HOA))
	fmt.Fprintf(w, "Monthly total:     %s/mo\n", formatMoney(c.MonthlyPayment))
}

var batchHeader = []string{"scenario", "home_value", "down_payment", "mortgage_size", "upfront_cost", "monthly_payment", "status"}

// batchRow flattens one scenario result for tabular output.
func batchRow(r scenario.Result) []string {
	if r.Err != nil {
		return []string{r.Name, "", "", "", "", "", "error: " + r.Err.Error()}
	}
	if !r.Mortgage.IsValid() {
		return []string{r.Name, "", "", "", "", "", "no viable purchase"}
	}
	c := r.Mortgage.Cost()
	return []string{
		r.Name,
		fmt.Sprintf("%.2f", r.Mortgage.HomeValue),
		fmt.Sprintf("%.2f", c.DownPaymentCost),
		fmt.Sprintf("%.2f", c.MortgageSize),
		fmt.Sprintf("%.2f", c.InitialCost),
		fmt.Sprintf("%.2f", c.MonthlyPayment),
		"ok",
	}
}

func writeBatchTable(w io.Writer, results []scenario.Result) error {
	header := fmt.Sprintf("%-20s %14s %14s %14s %14s %14s  %s\n",
		"Scenario", "Home Value", "Down Payment", "Loan Size", "Upfront", "Monthly", "Status")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "batch: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 112)); err != nil {
		return eris.Wrap(err, "batch: write table separator")
	}

	for _, r := range results {
		row := batchRow(r)
		line := fmt.Sprintf("%-20s %14s %14s %14s %14s %14s  %s\n",
			row[0], row[1], row[2], row[3], row[4], row[5], row[6])
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "batch: write table row")
		}
	}
	return nil
}

func writeBatchCSV(w io.Writer, results []scenario.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(batchHeader); err != nil {
		return eris.Wrap(err, "batch: write CSV header")
	}
	for _, r := range results {
		if err := cw.Write(batchRow(r)); err != nil {
			return eris.Wrap(err, "batch: write CSV row")
		}
	}
	return nil
}

func writeBatchXLSX(path string, results []scenario.Result) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("scenarios")
	if err != nil {
		return eris.Wrap(err, "batch: add sheet")
	}

	hr := sheet.AddRow()
	for _, h := range batchHeader {
		hr.AddCell().SetString(h)
	}
	for _, r := range results {
		row := sheet.AddRow()
		for _, v := range batchRow(r) {
			row.AddCell().SetString(v)
		}
	}

	return eris.Wrapf(f.Save(path), "batch: save %s", path)
}
