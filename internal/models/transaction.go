// Package models provides the data structures shared across the application.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one normalized ledger row. The identity fields (everything
// except Category) are fixed at parse time; Category is re-derived from the
// rule store whenever rules change.
type Transaction struct {
	ID        string          `json:"id"`
	Date      time.Time       `json:"date"`
	Details   string          `json:"details"`
	Amount    decimal.Decimal `json:"amount"`
	Direction string          `json:"direction"`
	Status    string          `json:"status"`
	Category  string          `json:"category"`
}

// IsDebit returns true if the transaction is a debit (outgoing money).
func (t *Transaction) IsDebit() bool {
	return t.Direction == DirectionDebit
}

// IsCredit returns true if the transaction is a credit (incoming money).
func (t *Transaction) IsCredit() bool {
	return t.Direction == DirectionCredit
}

// NormalizeKeyword trims surrounding whitespace and lowercases a keyword or
// a Details string. Matching compares normalized forms on both sides.
func NormalizeKeyword(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
