// Package summary handles the expense summary command
package summary

import (
	"fmt"
	"os"

	"finman/ledger-csv/cmd/root"
	"finman/ledger-csv/internal/ledger"
	"finman/ledger-csv/internal/logging"
	"finman/ledger-csv/internal/matcher"
	"finman/ledger-csv/internal/report"
	"finman/ledger-csv/internal/rulestore"

	"github.com/spf13/cobra"
)

var format string

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize expenses by category",
	Long: `Parse and categorize a bank CSV export, then print per-category
debit totals (largest first) and the total of credit payments.`,
	Run: summaryFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json, or csv")
}

func summaryFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" {
		root.Log.Fatal("Input file is required (--input)")
	}

	adapter := logging.NewLogrusAdapterFromLogger(root.Log)

	parsed, err := ledger.ParseFile(root.SharedFlags.Input)
	if err != nil {
		root.Log.Fatalf("Error parsing ledger: %v", err)
	}

	rules := rulestore.Load(root.Cfg.Rules.File, adapter)
	matcher.Categorize(parsed.Transactions, rules)

	generator := report.NewGenerator(adapter)
	generator.LogCoverage(parsed)

	out, err := generator.Generate(report.Summarize(parsed), format)
	if err != nil {
		root.Log.Fatalf("Error generating summary: %v", err)
	}

	if root.SharedFlags.Output != "" {
		if err := os.WriteFile(root.SharedFlags.Output, out, 0600); err != nil {
			root.Log.Fatalf("Error writing summary: %v", err)
		}
		return
	}
	fmt.Print(string(out))
}
