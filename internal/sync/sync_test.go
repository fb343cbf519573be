package sync

import (
	"path/filepath"
	"testing"

	"finman/ledger-csv/internal/ledger"
	"finman/ledger-csv/internal/matcher"
	"finman/ledger-csv/internal/models"
	"finman/ledger-csv/internal/rulestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *rulestore.RuleStore {
	t.Helper()
	return rulestore.Load(filepath.Join(t.TempDir(), "categories.json"), nil)
}

func TestApplyEdit_MigratesKeyword(t *testing.T) {
	store := newStore(t)
	_, err := store.AddKeyword("Groceries", "Carrefour")
	require.NoError(t, err)

	controller := NewController(store, nil)
	changed, err := controller.ApplyEdit(Edit{
		Details:     "Carrefour",
		OldCategory: "Groceries",
		NewCategory: "Food",
	})
	require.NoError(t, err)
	assert.True(t, changed)

	// The keyword lives in exactly one category afterwards.
	assert.Empty(t, store.Keywords("Groceries"))
	assert.Equal(t, []string{"Carrefour"}, store.Keywords("Food"))
}

func TestApplyEdit_ReclassifiesIdenticalDetails(t *testing.T) {
	store := newStore(t)
	_, err := store.AddKeyword("Groceries", "Carrefour")
	require.NoError(t, err)

	l := &ledger.Ledger{Transactions: []models.Transaction{
		{ID: "a", Details: "Carrefour", Direction: models.DirectionDebit},
		{ID: "b", Details: "Carrefour", Direction: models.DirectionDebit},
	}}
	matcher.Categorize(l.Transactions, store)
	require.Equal(t, "Groceries", l.Transactions[1].Category)

	controller := NewController(store, nil)
	changed, err := controller.ApplyEdit(Edit{
		Details:     l.Transactions[0].Details,
		OldCategory: l.Transactions[0].Category,
		NewCategory: "Food",
	})
	require.NoError(t, err)
	require.True(t, changed)

	// A single-row edit governs every row with the same Details text.
	controller.Recategorize(l)
	assert.Equal(t, "Food", l.Transactions[0].Category)
	assert.Equal(t, "Food", l.Transactions[1].Category)
}

func TestApplyEdit_SameCategoryIsNoOp(t *testing.T) {
	store := newStore(t)
	_, err := store.AddKeyword("Groceries", "Carrefour")
	require.NoError(t, err)

	controller := NewController(store, nil)
	changed, err := controller.ApplyEdit(Edit{
		Details:     "Carrefour",
		OldCategory: "Groceries",
		NewCategory: "Groceries",
	})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, []string{"Carrefour"}, store.Keywords("Groceries"))
}

func TestApplyEdit_BlankDetailsDoesNotRegisterKeyword(t *testing.T) {
	store := newStore(t)
	controller := NewController(store, nil)

	changed, err := controller.ApplyEdit(Edit{
		Details:     "   ",
		OldCategory: models.CategoryUncategorised,
		NewCategory: "Food",
	})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, store.Keywords("Food"))
}

func TestApplyEdits_ReportsAnyChange(t *testing.T) {
	store := newStore(t)
	_, err := store.AddKeyword("Groceries", "Carrefour")
	require.NoError(t, err)

	controller := NewController(store, nil)
	changed, err := controller.ApplyEdits([]Edit{
		{Details: "Carrefour", OldCategory: "Groceries", NewCategory: "Groceries"},
		{Details: "Metro Card", OldCategory: models.CategoryUncategorised, NewCategory: "Transport"},
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"Metro Card"}, store.Keywords("Transport"))
}
