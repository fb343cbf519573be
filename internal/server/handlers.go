package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"finman/ledger-csv/internal/ledger"
	"finman/ledger-csv/internal/logging"
	"finman/ledger-csv/internal/matcher"
	"finman/ledger-csv/internal/models"
	"finman/ledger-csv/internal/report"
	appsync "finman/ledger-csv/internal/sync"

	"github.com/gorilla/mux"
)

// maxUploadBytes bounds ledger uploads; bank exports are small.
const maxUploadBytes = 16 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// UploadLedger parses an uploaded bank CSV, categorizes it against the
// current rules, and makes it the session ledger. The body is either a
// multipart form with a "file" field or the raw CSV itself.
func (s *Server) UploadLedger(w http.ResponseWriter, r *http.Request) {
	data, err := readUpload(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	parsed, err := ledger.Parse(data)
	if err != nil {
		if parseErr, ok := ledger.AsParseError(err); ok {
			http.Error(w, parseErr.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	matcher.Categorize(parsed.Transactions, s.rules)
	s.current = parsed

	s.logger.WithField(logging.FieldCount, len(parsed.Transactions)).Info("Loaded ledger")
	writeJSON(w, http.StatusCreated, map[string]int{
		"transactions": len(parsed.Transactions),
		"debits":       len(parsed.Debits()),
		"credits":      len(parsed.Credits()),
	})
}

func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(file)
	}
	return io.ReadAll(r.Body)
}

// GetTransactions returns the session ledger's rows, optionally filtered by
// ?direction=Debit or ?direction=Credit, in original row order.
func (s *Server) GetTransactions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		http.Error(w, "no ledger loaded", http.StatusNotFound)
		return
	}

	var transactions []models.Transaction
	switch r.URL.Query().Get("direction") {
	case "":
		transactions = s.current.Transactions
	case models.DirectionDebit:
		transactions = s.current.Debits()
	case models.DirectionCredit:
		transactions = s.current.Credits()
	default:
		http.Error(w, "direction must be Debit or Credit", http.StatusBadRequest)
		return
	}

	if transactions == nil {
		transactions = []models.Transaction{}
	}
	writeJSON(w, http.StatusOK, transactions)
}

// UpdateTransactionCategory applies a single-row category edit. The row's
// Details keyword migrates from its old category to the chosen one, and
// when the rules changed the whole ledger is recategorized, so every row
// sharing the same Details follows.
func (s *Server) UpdateTransactionCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.Category) == "" {
		http.Error(w, "category is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		http.Error(w, "no ledger loaded", http.StatusNotFound)
		return
	}

	tx := s.current.FindByID(mux.Vars(r)["id"])
	if tx == nil {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}

	recategorized, err := s.controller.ApplyEdit(appsync.Edit{
		Details:     tx.Details,
		OldCategory: tx.Category,
		NewCategory: body.Category,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	tx.Category = body.Category
	if recategorized {
		s.controller.Recategorize(s.current)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"recategorized": recategorized,
		"transaction":   s.current.FindByID(tx.ID),
	})
}

// GetCategories returns the sorted category names that populate the
// selection options of each row.
func (s *Server) GetCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.rules.Categories())
}

// CreateCategory registers a new empty category. Duplicate names are a
// soft no-op reported through "created": false.
func (s *Server) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	created, err := s.rules.AddCategory(body.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]bool{"created": created})
}

// GetSummary returns the expense/payment summary of the session ledger.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		http.Error(w, "no ledger loaded", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, report.Summarize(s.current))
}
