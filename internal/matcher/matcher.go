// Package matcher assigns a category to each transaction by exact keyword
// lookup against the rule store.
package matcher

import (
	"finman/ledger-csv/internal/models"
)

// RuleSource is the view of the rule store the matcher needs. Categories
// must be returned in a deterministic order; the concrete store returns
// them lexicographically sorted.
type RuleSource interface {
	Categories() []string
	Keywords(category string) []string
}

// Categorize assigns exactly one category to every transaction in place.
// Each transaction starts as Uncategorised; a transaction whose normalized
// Details exactly equals a normalized keyword of a category is assigned
// that category. Categories are processed in the source's order, and a
// later category overwrites an earlier assignment. Duplicate keywords
// across categories should not occur, but a transiently inconsistent store
// is tolerated: the category processed last wins.
func Categorize(transactions []models.Transaction, rules RuleSource) {
	for i := range transactions {
		transactions[i].Category = models.CategoryUncategorised
	}

	for _, category := range rules.Categories() {
		if category == models.CategoryUncategorised {
			continue
		}

		keywords := rules.Keywords(category)
		if len(keywords) == 0 {
			continue
		}

		lookup := make(map[string]struct{}, len(keywords))
		for _, kw := range keywords {
			lookup[models.NormalizeKeyword(kw)] = struct{}{}
		}

		for i := range transactions {
			if _, ok := lookup[models.NormalizeKeyword(transactions[i].Details)]; ok {
				transactions[i].Category = category
			}
		}
	}
}
