// Package common provides shared CSV plumbing used by the ledger parser and
// the categorized-output writer.
package common

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"finman/ledger-csv/internal/logging"
	"finman/ledger-csv/internal/models"

	"github.com/gocarina/gocsv"
)

var log = logging.GetLogger()

// Delimiter is the CSV field delimiter used for both reading and writing.
// It can be overridden from configuration.
var Delimiter rune = ','

func init() {
	// Bank exports routinely pad header cells with whitespace; the column
	// contract is on the trimmed names.
	gocsv.SetHeaderNormalizer(strings.TrimSpace)
}

// SetDelimiter sets the CSV field delimiter.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// SetLogger allows setting a configured logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// ReadCSV unmarshals CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type whose csv tags map to the columns.
func ReadCSV[TCSVRow any](data []byte) ([]TCSVRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = Delimiter
	reader.TrimLeadingSpace = true

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}

	log.WithField(logging.FieldCount, len(rows)).Debug("Read CSV rows")
	return rows, nil
}

// TransactionCSVRow is the on-disk shape of a categorized transaction row.
type TransactionCSVRow struct {
	Date        string `csv:"Date"`
	Details     string `csv:"Details"`
	Amount      string `csv:"Amount"`
	DebitCredit string `csv:"Debit/Credit"`
	Status      string `csv:"Status"`
	Category    string `csv:"Category"`
}

// WriteTransactionsCSV writes categorized transactions to a CSV file,
// formatting dates with dateLayout and amounts with two decimal places.
func WriteTransactionsCSV(transactions []models.Transaction, csvFile, dateLayout string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
	).Info("Writing transactions to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]TransactionCSVRow, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, TransactionCSVRow{
			Date:        tx.Date.Format(dateLayout),
			Details:     tx.Details,
			Amount:      tx.Amount.StringFixed(2),
			DebitCredit: tx.Direction,
			Status:      tx.Status,
			Category:    tx.Category,
		})
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	return nil
}
