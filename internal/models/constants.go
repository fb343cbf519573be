package models

// Transaction directions as they appear in the bank export's
// "Debit/Credit" column.
const (
	DirectionDebit  = "Debit"
	DirectionCredit = "Credit"
)

// CategoryUncategorised is the reserved category every transaction starts
// in. It always exists in the rule store, owns no keywords, and cannot be
// removed.
const CategoryUncategorised = "Uncategorised"
