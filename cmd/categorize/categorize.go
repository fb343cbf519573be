// Package categorize handles the ledger categorization command
package categorize

import (
	"finman/ledger-csv/cmd/root"
	"finman/ledger-csv/internal/common"
	"finman/ledger-csv/internal/ledger"
	"finman/ledger-csv/internal/logging"
	"finman/ledger-csv/internal/matcher"
	"finman/ledger-csv/internal/rulestore"

	"github.com/spf13/cobra"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a bank CSV export",
	Long: `Parse a bank-exported transaction CSV, assign each transaction a
category from the keyword dictionary, and write the categorized ledger to
the output CSV.`,
	Run: categorizeFunc,
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" {
		root.Log.Fatal("Input file is required (--input)")
	}
	if root.SharedFlags.Output == "" {
		root.Log.Fatal("Output file is required (--output)")
	}

	adapter := logging.NewLogrusAdapterFromLogger(root.Log)

	parsed, err := ledger.ParseFile(root.SharedFlags.Input)
	if err != nil {
		if parseErr, ok := ledger.AsParseError(err); ok {
			root.Log.Fatalf("Cannot process file: %v", parseErr)
		}
		root.Log.Fatalf("Error parsing ledger: %v", err)
	}

	rules := rulestore.Load(root.Cfg.Rules.File, adapter)
	matcher.Categorize(parsed.Transactions, rules)

	if err := common.WriteTransactionsCSV(parsed.Transactions, root.SharedFlags.Output, root.Cfg.CSV.DateFormat); err != nil {
		root.Log.Fatalf("Error writing categorized CSV: %v", err)
	}

	root.Log.WithField("count", len(parsed.Transactions)).Info("Categorized ledger written")
}
