// Package sync reconciles user-driven category edits from the presentation
// layer back into the rule store and re-derives categories from the updated
// rules.
package sync

import (
	"fmt"

	"finman/ledger-csv/internal/ledger"
	"finman/ledger-csv/internal/logging"
	"finman/ledger-csv/internal/matcher"
	"finman/ledger-csv/internal/rulestore"
)

// Edit describes one row's category reassignment as seen in the table:
// the row's Details text, the category it was displayed under, and the
// category the user picked.
type Edit struct {
	Details     string
	OldCategory string
	NewCategory string
}

// Controller propagates table edits into the rule store. An edit migrates
// the row's Details keyword from the old category to the new one, which is
// a global side effect: every transaction sharing the same Details text is
// reclassified on the next categorization pass.
type Controller struct {
	rules  *rulestore.RuleStore
	logger logging.Logger
}

// NewController creates a Controller bound to the given rule store.
func NewController(rules *rulestore.RuleStore, logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Controller{rules: rules, logger: logger}
}

// ApplyEdit applies one edit to the rule store. It returns true when the
// rules actually changed and a full recategorization is needed. Edits that
// keep the category unchanged are no-ops.
func (c *Controller) ApplyEdit(edit Edit) (bool, error) {
	if edit.NewCategory == edit.OldCategory {
		return false, nil
	}

	if _, err := c.rules.RemoveKeyword(edit.OldCategory, edit.Details); err != nil {
		return false, fmt.Errorf("error removing keyword from %q: %w", edit.OldCategory, err)
	}

	added, err := c.rules.AddKeyword(edit.NewCategory, edit.Details)
	if err != nil {
		return false, fmt.Errorf("error adding keyword to %q: %w", edit.NewCategory, err)
	}
	if added {
		c.logger.WithFields(
			logging.Field{Key: logging.FieldDetails, Value: edit.Details},
			logging.Field{Key: logging.FieldCategory, Value: edit.NewCategory},
		).Info("Migrated keyword to new category")
	}
	return added, nil
}

// ApplyEdits applies a batch of edits and reports whether any of them
// changed the rules.
func (c *Controller) ApplyEdits(edits []Edit) (bool, error) {
	changed := false
	for _, edit := range edits {
		added, err := c.ApplyEdit(edit)
		if err != nil {
			return changed, err
		}
		changed = changed || added
	}
	return changed, nil
}

// Recategorize re-runs the matcher over the whole ledger so every
// transaction reflects the current rules.
func (c *Controller) Recategorize(l *ledger.Ledger) {
	matcher.Categorize(l.Transactions, c.rules)
	c.logger.WithField(logging.FieldCount, len(l.Transactions)).Debug("Recategorized ledger")
}
