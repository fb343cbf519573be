package report

import (
	"encoding/json"
	"testing"

	"finman/ledger-csv/internal/ledger"
	"finman/ledger-csv/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func sampleLedger() *ledger.Ledger {
	return &ledger.Ledger{Transactions: []models.Transaction{
		{Details: "Carrefour", Amount: amount("120.50"), Direction: models.DirectionDebit, Category: "Groceries"},
		{Details: "Lidl", Amount: amount("80.00"), Direction: models.DirectionDebit, Category: "Groceries"},
		{Details: "Metro Card", Amount: amount("35.00"), Direction: models.DirectionDebit, Category: "Transport"},
		{Details: "Mystery Shop", Amount: amount("5.00"), Direction: models.DirectionDebit, Category: models.CategoryUncategorised},
		{Details: "Salary", Amount: amount("2500.00"), Direction: models.DirectionCredit, Category: models.CategoryUncategorised},
		{Details: "Refund", Amount: amount("42.10"), Direction: models.DirectionCredit, Category: models.CategoryUncategorised},
	}}
}

func TestSummarize_TotalsAndOrder(t *testing.T) {
	summary := Summarize(sampleLedger())

	require.Len(t, summary.Expenses, 3)
	assert.Equal(t, "Groceries", summary.Expenses[0].Category)
	assert.True(t, amount("200.50").Equal(summary.Expenses[0].Amount))
	assert.Equal(t, "Transport", summary.Expenses[1].Category)
	assert.Equal(t, models.CategoryUncategorised, summary.Expenses[2].Category)

	assert.True(t, amount("240.50").Equal(summary.TotalExpenses))
	assert.True(t, amount("2542.10").Equal(summary.TotalPayments))
}

func TestSummarize_TiesBreakByName(t *testing.T) {
	l := &ledger.Ledger{Transactions: []models.Transaction{
		{Amount: amount("10.00"), Direction: models.DirectionDebit, Category: "Zoo"},
		{Amount: amount("10.00"), Direction: models.DirectionDebit, Category: "Aquarium"},
	}}

	summary := Summarize(l)
	require.Len(t, summary.Expenses, 2)
	assert.Equal(t, "Aquarium", summary.Expenses[0].Category)
	assert.Equal(t, "Zoo", summary.Expenses[1].Category)
}

func TestSummarize_EmptyLedger(t *testing.T) {
	summary := Summarize(&ledger.Ledger{})
	assert.Empty(t, summary.Expenses)
	assert.True(t, summary.TotalExpenses.IsZero())
	assert.True(t, summary.TotalPayments.IsZero())
}

func TestGenerate_JSON(t *testing.T) {
	generator := NewGenerator(nil)
	out, err := generator.Generate(Summarize(sampleLedger()), "json")
	require.NoError(t, err)

	var decoded Summary
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Len(t, decoded.Expenses, 3)
	assert.True(t, amount("2542.10").Equal(decoded.TotalPayments))
}

func TestGenerate_CSV(t *testing.T) {
	generator := NewGenerator(nil)
	out, err := generator.Generate(Summarize(sampleLedger()), "csv")
	require.NoError(t, err)

	assert.Contains(t, string(out), "Category,Amount")
	assert.Contains(t, string(out), "Groceries,200.50")
	assert.Contains(t, string(out), "Transport,35.00")
}

func TestGenerate_Table(t *testing.T) {
	generator := NewGenerator(nil)
	out, err := generator.Generate(Summarize(sampleLedger()), "table")
	require.NoError(t, err)

	assert.Contains(t, string(out), "Groceries")
	assert.Contains(t, string(out), "Total payments")
	assert.Contains(t, string(out), "2542.10")
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	generator := NewGenerator(nil)
	_, err := generator.Generate(Summarize(sampleLedger()), "xml")
	assert.Error(t, err)
}
