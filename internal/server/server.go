// Package server exposes the presentation surfaces over HTTP: ledger
// upload, the transaction table, per-row category edits, category
// management, and the expense summary.
package server

import (
	stdsync "sync"

	"finman/ledger-csv/internal/ledger"
	"finman/ledger-csv/internal/logging"
	"finman/ledger-csv/internal/rulestore"
	appsync "finman/ledger-csv/internal/sync"

	"github.com/gorilla/mux"
)

// Server holds one user session: the rule store and the currently loaded
// ledger. The model is a single sequential session; the mutex only guards
// against overlapping HTTP requests, not multi-user use.
type Server struct {
	rules      *rulestore.RuleStore
	controller *appsync.Controller
	logger     logging.Logger

	mu      stdsync.Mutex
	current *ledger.Ledger
}

// New creates a Server bound to the given rule store.
func New(rules *rulestore.RuleStore, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Server{
		rules:      rules,
		controller: appsync.NewController(rules, logger),
		logger:     logger,
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/ledger", s.UploadLedger).Methods("POST")
	api.HandleFunc("/transactions", s.GetTransactions).Methods("GET")
	api.HandleFunc("/transactions/{id}/category", s.UpdateTransactionCategory).Methods("PUT")
	api.HandleFunc("/categories", s.GetCategories).Methods("GET")
	api.HandleFunc("/categories", s.CreateCategory).Methods("POST")
	api.HandleFunc("/summary", s.GetSummary).Methods("GET")

	return r
}
