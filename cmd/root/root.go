// Package root contains the root command for the application
package root

import (
	"finman/ledger-csv/internal/common"
	"finman/ledger-csv/internal/config"
	"finman/ledger-csv/internal/ledger"
	"finman/ledger-csv/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
	Rules  string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the resolved application configuration
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "ledger-csv",
		Short: "Categorize bank CSV exports with a user-editable keyword dictionary.",
		Long: `ledger-csv ingests a bank-exported transaction CSV and assigns each
transaction to a spending category using a persistent keyword dictionary.
Category edits migrate keywords between categories and retroactively
reclassify every transaction with the same details text.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to ledger-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.Initialize()
			if err != nil {
				Log.Fatalf("Invalid configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLogging(cfg)

			adapter := logging.NewLogrusAdapterFromLogger(Log)
			ledger.SetLogger(adapter)
			common.SetLogger(adapter)

			common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			ledger.SetDateLayout(cfg.CSV.DateFormat)

			// --rules beats the configured path
			if SharedFlags.Rules != "" {
				Cfg.Rules.File = SharedFlags.Rules
			}
		},
	}

	// SharedFlags holds common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input CSV file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Rules, "rules", "r", "", "Rule dictionary file (overrides config)")
}
