// Package serve handles the HTTP presentation backend command
package serve

import (
	"net/http"

	"finman/ledger-csv/cmd/root"
	"finman/ledger-csv/internal/logging"
	"finman/ledger-csv/internal/rulestore"
	"finman/ledger-csv/internal/server"

	"github.com/spf13/cobra"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP backend for the table UI",
	Long: `Serve the presentation API: upload a ledger CSV, browse the
categorized transaction table, edit row categories, and read the expense
summary.`,
	Run: serveFunc,
}

func init() {
	Cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides config)")
}

func serveFunc(cmd *cobra.Command, args []string) {
	adapter := logging.NewLogrusAdapterFromLogger(root.Log)
	rules := rulestore.Load(root.Cfg.Rules.File, adapter)

	listen := root.Cfg.Server.Addr
	if addr != "" {
		listen = addr
	}

	srv := server.New(rules, adapter)
	root.Log.WithField("addr", listen).Info("Server starting")
	if err := http.ListenAndServe(listen, srv.Router()); err != nil {
		root.Log.Fatalf("Server failed: %v", err)
	}
}
