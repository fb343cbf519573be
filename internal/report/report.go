// Package report aggregates a categorized ledger into the expense and
// payment summaries and renders them in several formats.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"finman/ledger-csv/internal/ledger"
	"finman/ledger-csv/internal/logging"
	"finman/ledger-csv/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// CategoryTotal is the summed debit amount of one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Summary is the aggregate view of a categorized ledger: per-category
// debit totals sorted by amount descending, plus the credit total.
type Summary struct {
	Expenses      []CategoryTotal `json:"expenses"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	TotalPayments decimal.Decimal `json:"total_payments"`
}

// Summarize computes the summary of a categorized ledger. Ties between
// equal totals are broken by category name so output is deterministic.
func Summarize(l *ledger.Ledger) *Summary {
	totals := make(map[string]decimal.Decimal)
	totalExpenses := decimal.Zero
	for _, tx := range l.Debits() {
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
		totalExpenses = totalExpenses.Add(tx.Amount)
	}

	expenses := make([]CategoryTotal, 0, len(totals))
	for category, amount := range totals {
		expenses = append(expenses, CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(expenses, func(i, j int) bool {
		if !expenses[i].Amount.Equal(expenses[j].Amount) {
			return expenses[i].Amount.GreaterThan(expenses[j].Amount)
		}
		return expenses[i].Category < expenses[j].Category
	})

	totalPayments := decimal.Zero
	for _, tx := range l.Credits() {
		totalPayments = totalPayments.Add(tx.Amount)
	}

	return &Summary{
		Expenses:      expenses,
		TotalExpenses: totalExpenses,
		TotalPayments: totalPayments,
	}
}

// Generator renders summaries in a chosen output format.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Generator{logger: logger}
}

// Generate renders the summary as "json", "csv", or "table".
func (g *Generator) Generate(summary *Summary, format string) ([]byte, error) {
	switch format {
	case "json":
		return g.generateJSON(summary)
	case "csv":
		return g.generateCSV(summary)
	case "table":
		return g.generateTable(summary)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) generateJSON(summary *Summary) ([]byte, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return data, nil
}

// summaryCSVRow is the CSV shape of one expense line.
type summaryCSVRow struct {
	Category string `csv:"Category"`
	Amount   string `csv:"Amount"`
}

func (g *Generator) generateCSV(summary *Summary) ([]byte, error) {
	rows := make([]summaryCSVRow, 0, len(summary.Expenses))
	for _, expense := range summary.Expenses {
		rows = append(rows, summaryCSVRow{
			Category: expense.Category,
			Amount:   expense.Amount.StringFixed(2),
		})
	}

	var buf bytes.Buffer
	writer := gocsv.NewSafeCSVWriter(csv.NewWriter(&buf))
	if err := gocsv.MarshalCSV(rows, writer); err != nil {
		return nil, fmt.Errorf("failed to marshal CSV report: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) generateTable(summary *Summary) ([]byte, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "Category\tAmount")
	for _, expense := range summary.Expenses {
		fmt.Fprintf(w, "%s\t%s\n", expense.Category, expense.Amount.StringFixed(2))
	}
	fmt.Fprintf(w, "%s\t%s\n", "Total expenses", summary.TotalExpenses.StringFixed(2))
	fmt.Fprintf(w, "%s\t%s\n", "Total payments", summary.TotalPayments.StringFixed(2))

	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to render table report: %w", err)
	}
	return buf.Bytes(), nil
}

// uncategorisedShare reports how many debit rows are still Uncategorised.
// It feeds log output after categorization passes.
func uncategorisedShare(l *ledger.Ledger) int {
	count := 0
	for _, tx := range l.Debits() {
		if tx.Category == models.CategoryUncategorised {
			count++
		}
	}
	return count
}

// LogCoverage logs how much of the ledger the rules currently cover.
func (g *Generator) LogCoverage(l *ledger.Ledger) {
	g.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(l.Transactions)},
		logging.Field{Key: "uncategorised", Value: uncategorisedShare(l)},
	).Info("Categorization coverage")
}
