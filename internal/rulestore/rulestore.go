// Package rulestore manages the persistent category-to-keyword dictionary
// that drives transaction categorization. The store is written through to
// disk as a whole JSON snapshot on every mutation, so the persisted file
// always equals the in-memory state.
package rulestore

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"finman/ledger-csv/internal/fileutils"
	"finman/ledger-csv/internal/logging"
	"finman/ledger-csv/internal/models"
)

// RuleStore owns the category -> keyword set mapping and its on-disk
// snapshot. A keyword belongs to at most one category; AddKeyword enforces
// this by removing the keyword from every other category first.
type RuleStore struct {
	path   string
	mu     sync.Mutex
	rules  map[string][]string
	logger logging.Logger
}

// Load reads the persisted rule snapshot from path. It never fails the
// caller: a missing, unreadable, or corrupt file falls back to the default
// store {"Uncategorised": []} with a logged warning. Note that the fallback
// means a corrupt file is overwritten with the default on the next save.
func Load(path string, logger logging.Logger) *RuleStore {
	if logger == nil {
		logger = logging.GetLogger()
	}

	s := &RuleStore{
		path:   path,
		rules:  map[string][]string{models.CategoryUncategorised: {}},
		logger: logger,
	}

	if !fileutils.FileExists(path) {
		logger.WithField(logging.FieldFile, path).Debug("Rule file not found, starting with default store")
		return s
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.WithError(err).WithField(logging.FieldFile, path).Warn("Failed to read rule file, falling back to default store")
		return s
	}

	var rules map[string][]string
	if err := json.Unmarshal(data, &rules); err != nil {
		logger.WithError(err).WithField(logging.FieldFile, path).Warn("Failed to parse rule file, falling back to default store")
		return s
	}

	// The reserved category must exist even if the file predates it.
	if _, ok := rules[models.CategoryUncategorised]; !ok {
		rules[models.CategoryUncategorised] = []string{}
	}
	for name, keywords := range rules {
		if keywords == nil {
			rules[name] = []string{}
		}
	}

	s.rules = rules
	s.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(rules)},
	).Debug("Loaded rule store")
	return s
}

// Path returns the file the store persists to.
func (s *RuleStore) Path() string {
	return s.path
}

// Categories returns all category names in lexicographic order. This is the
// iteration order the matcher uses and the order the selection surface
// displays.
func (s *RuleStore) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.rules))
	for name := range s.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Keywords returns a copy of the keyword set owned by category. An unknown
// category yields an empty set.
func (s *RuleStore) Keywords(category string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keywords := s.rules[category]
	out := make([]string, len(keywords))
	copy(out, keywords)
	return out
}

// Snapshot returns a deep copy of the full mapping.
func (s *RuleStore) Snapshot() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string][]string, len(s.rules))
	for name, keywords := range s.rules {
		kw := make([]string, len(keywords))
		copy(kw, keywords)
		out[name] = kw
	}
	return out
}

// AddCategory registers a new empty category and persists the store.
// Blank names and names that already exist (including the reserved
// category) are soft no-ops returning false.
func (s *RuleStore) AddCategory(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rules[name]; exists {
		s.logger.WithField(logging.FieldCategory, name).Debug("Category already exists")
		return false, nil
	}

	s.rules[name] = []string{}
	if err := s.save(); err != nil {
		return false, err
	}
	s.logger.WithField(logging.FieldCategory, name).Info("Added category")
	return true, nil
}

// AddKeyword registers keyword under category and persists the store.
// The keyword is trimmed first; blank keywords and keywords already present
// in the category are soft no-ops returning false. A keyword may live in at
// most one category, so it is removed from every other category before
// being appended.
func (s *RuleStore) AddKeyword(category, keyword string) (bool, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.rules[category] {
		if existing == keyword {
			return false, nil
		}
	}

	// Keyword exclusivity: evict case-insensitive matches everywhere else.
	normalized := models.NormalizeKeyword(keyword)
	for name := range s.rules {
		if name == category {
			continue
		}
		s.removeNormalizedLocked(name, normalized)
	}

	s.rules[category] = append(s.rules[category], keyword)
	if err := s.save(); err != nil {
		return false, err
	}
	s.logger.WithFields(
		logging.Field{Key: logging.FieldCategory, Value: category},
		logging.Field{Key: logging.FieldKeyword, Value: keyword},
	).Debug("Added keyword")
	return true, nil
}

// RemoveKeyword deletes every case-insensitive match of keyword from
// category's set. The store is persisted only when the set actually
// changed; the returned bool reports whether it did.
func (s *RuleStore) RemoveKeyword(category, keyword string) (bool, error) {
	normalized := models.NormalizeKeyword(keyword)
	if normalized == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.removeNormalizedLocked(category, normalized) {
		return false, nil
	}
	if err := s.save(); err != nil {
		return true, err
	}
	s.logger.WithFields(
		logging.Field{Key: logging.FieldCategory, Value: category},
		logging.Field{Key: logging.FieldKeyword, Value: keyword},
	).Debug("Removed keyword")
	return true, nil
}

// removeNormalizedLocked drops all keywords in category whose normalized
// form equals normalized. Caller must hold s.mu.
func (s *RuleStore) removeNormalizedLocked(category, normalized string) bool {
	keywords, ok := s.rules[category]
	if !ok {
		return false
	}

	kept := keywords[:0]
	for _, kw := range keywords {
		if models.NormalizeKeyword(kw) != normalized {
			kept = append(kept, kw)
		}
	}
	if len(kept) == len(keywords) {
		return false
	}
	s.rules[category] = kept
	return true
}

// save writes the whole snapshot to disk. Caller must hold s.mu.
func (s *RuleStore) save() error {
	data, err := json.MarshalIndent(s.rules, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding rule store: %w", err)
	}
	if err := fileutils.WriteFile(s.path, data); err != nil {
		return fmt.Errorf("error persisting rule store: %w", err)
	}
	return nil
}
