package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"finman/ledger-csv/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRow struct {
	Name  string `csv:"Name"`
	Value string `csv:"Value"`
}

func TestReadCSV(t *testing.T) {
	rows, err := ReadCSV[testRow]([]byte("Name,Value\nfoo,1\nbar,2\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, testRow{Name: "foo", Value: "1"}, rows[0])
}

func TestReadCSV_TrimsHeaders(t *testing.T) {
	rows, err := ReadCSV[testRow]([]byte(" Name , Value \nfoo,1\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "foo", rows[0].Name)
}

func TestReadCSV_CustomDelimiter(t *testing.T) {
	SetDelimiter(';')
	defer SetDelimiter(',')

	rows, err := ReadCSV[testRow]([]byte("Name;Value\nfoo;1\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0].Value)
}

func TestWriteTransactionsCSV(t *testing.T) {
	amount, err := decimal.NewFromString("1234.5")
	require.NoError(t, err)

	transactions := []models.Transaction{{
		Date:      time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		Details:   "Carrefour",
		Amount:    amount,
		Direction: models.DirectionDebit,
		Status:    "Settled",
		Category:  "Groceries",
	}}

	path := filepath.Join(t.TempDir(), "out", "ledger.csv")
	require.NoError(t, WriteTransactionsCSV(transactions, path, "02 Jan 2006"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Date,Details,Amount,Debit/Credit,Status,Category")
	assert.Contains(t, string(data), "05 Mar 2024,Carrefour,1234.50,Debit,Settled,Groceries")
}

func TestWriteTransactionsCSV_NilTransactions(t *testing.T) {
	err := WriteTransactionsCSV(nil, filepath.Join(t.TempDir(), "out.csv"), "02 Jan 2006")
	assert.Error(t, err)
}
