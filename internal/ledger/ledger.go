// Package ledger parses a bank-exported transaction CSV into the canonical
// in-memory form: typed dates, decimal amounts, and a debit/credit split.
package ledger

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"finman/ledger-csv/internal/common"
	"finman/ledger-csv/internal/logging"
	"finman/ledger-csv/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var log = logging.GetLogger()

// DefaultDateLayout matches the bank export's date column, e.g. "05 Mar 2024".
const DefaultDateLayout = "02 Jan 2006"

// dateLayout is the expected Date column format, overridable from config.
var dateLayout = DefaultDateLayout

// requiredColumns are the header names a valid export must carry, after
// trimming. Status is optional; it only feeds the credit display.
var requiredColumns = []string{"Date", "Details", "Amount", "Debit/Credit"}

// SetLogger allows setting a configured logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
		common.SetLogger(logger)
	}
}

// SetDateLayout sets the expected Date column layout.
func SetDateLayout(layout string) {
	if layout != "" {
		dateLayout = layout
	}
}

// Ledger holds the normalized transactions of one parsed file in original
// row order. Ledgers are never persisted; categorization is recomputed from
// the rule store on every load and every rule change.
type Ledger struct {
	Transactions []models.Transaction
}

// Debits returns the debit subset in original row order.
func (l *Ledger) Debits() []models.Transaction {
	return l.filter(models.DirectionDebit)
}

// Credits returns the credit subset in original row order.
func (l *Ledger) Credits() []models.Transaction {
	return l.filter(models.DirectionCredit)
}

func (l *Ledger) filter(direction string) []models.Transaction {
	var out []models.Transaction
	for _, tx := range l.Transactions {
		if tx.Direction == direction {
			out = append(out, tx)
		}
	}
	return out
}

// FindByID returns a pointer to the transaction with the given ID, or nil.
func (l *Ledger) FindByID(id string) *models.Transaction {
	for i := range l.Transactions {
		if l.Transactions[i].ID == id {
			return &l.Transactions[i]
		}
	}
	return nil
}

// bankCSVRow is the raw row shape of the bank export.
type bankCSVRow struct {
	Date        string `csv:"Date"`
	Details     string `csv:"Details"`
	Amount      string `csv:"Amount"`
	DebitCredit string `csv:"Debit/Credit"`
	Status      string `csv:"Status"`
}

// ParseFile reads and parses a bank CSV export from disk.
func ParseFile(filePath string) (*Ledger, error) {
	log.WithField(logging.FieldFile, filePath).Info("Parsing ledger CSV file")

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading ledger file: %w", err)
	}
	return Parse(data)
}

// Parse parses bank CSV data. It validates the header, normalizes every
// row, and fails with a ParseError on the first malformed cell, producing
// no partial ledger.
func Parse(data []byte) (*Ledger, error) {
	if err := validateHeader(data); err != nil {
		return nil, err
	}

	rows, err := common.ReadCSV[bankCSVRow](data)
	if err != nil {
		return nil, err
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		// Fully empty trailing lines are not transactions.
		if strings.TrimSpace(row.Date) == "" && strings.TrimSpace(row.Details) == "" {
			continue
		}

		tx, err := convertRow(row, i+1)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	log.WithField(logging.FieldCount, len(transactions)).Info("Parsed ledger")
	return &Ledger{Transactions: transactions}, nil
}

// validateHeader checks that all required columns are present, comparing
// trimmed header names.
func validateHeader(data []byte) error {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = common.Delimiter

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("error reading CSV header: %w", err)
	}

	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[strings.TrimSpace(col)] = true
	}

	for _, col := range requiredColumns {
		if !present[col] {
			log.WithField("column", col).Warn("Required column missing from ledger CSV")
			return &ParseError{Kind: KindMissingColumn, Column: col}
		}
	}
	return nil
}

// convertRow normalizes one raw row into a Transaction. New transactions
// always start Uncategorised; the matcher assigns real categories.
func convertRow(row bankCSVRow, rowNum int) (models.Transaction, error) {
	amount, err := parseAmount(row.Amount)
	if err != nil {
		return models.Transaction{}, &ParseError{
			Kind:   KindAmountFormat,
			Column: "Amount",
			Value:  row.Amount,
			Row:    rowNum,
			Err:    err,
		}
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(row.Date))
	if err != nil {
		return models.Transaction{}, &ParseError{
			Kind:   KindDateFormat,
			Column: "Date",
			Value:  row.Date,
			Row:    rowNum,
			Err:    err,
		}
	}

	return models.Transaction{
		ID:        uuid.NewString(),
		Date:      date,
		Details:   row.Details,
		Amount:    amount,
		Direction: strings.TrimSpace(row.DebitCredit),
		Status:    strings.TrimSpace(row.Status),
		Category:  models.CategoryUncategorised,
	}, nil
}

// parseAmount strips thousands separators and parses the remainder as a
// decimal, e.g. "1,234.56" -> 1234.56.
func parseAmount(amountStr string) (decimal.Decimal, error) {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, ",", "")
	amount = strings.ReplaceAll(amount, "'", "")

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, err
	}
	return dec, nil
}
