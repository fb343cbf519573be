// Package rules handles keyword dictionary management commands
package rules

import (
	"fmt"
	"os"

	"finman/ledger-csv/cmd/root"
	"finman/ledger-csv/internal/logging"
	"finman/ledger-csv/internal/rulestore"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Cmd represents the rules command
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage the category keyword dictionary",
	Long: `Inspect and edit the persistent category-to-keyword dictionary that
drives categorization. Every mutation rewrites the dictionary file.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories and their keywords",
	Run: func(cmd *cobra.Command, args []string) {
		store := loadStore()
		for _, category := range store.Categories() {
			fmt.Printf("%s:\n", category)
			for _, keyword := range store.Keywords(category) {
				fmt.Printf("  %s\n", keyword)
			}
		}
	},
}

var addCmd = &cobra.Command{
	Use:   "add <category> <keyword>",
	Short: "Register a keyword under a category",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store := loadStore()
		added, err := store.AddKeyword(args[0], args[1])
		if err != nil {
			root.Log.Fatalf("Error adding keyword: %v", err)
		}
		if !added {
			root.Log.Warn("Keyword is blank or already registered, nothing to do")
			return
		}
		root.Log.Infof("Added %q to %q", args[1], args[0])
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <category> <keyword>",
	Short: "Remove a keyword from a category",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store := loadStore()
		removed, err := store.RemoveKeyword(args[0], args[1])
		if err != nil {
			root.Log.Fatalf("Error removing keyword: %v", err)
		}
		if !removed {
			root.Log.Warn("Keyword not found, nothing to do")
			return
		}
		root.Log.Infof("Removed %q from %q", args[1], args[0])
	},
}

var addCategoryCmd = &cobra.Command{
	Use:   "add-category <name>",
	Short: "Create a new empty category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := loadStore()
		created, err := store.AddCategory(args[0])
		if err != nil {
			root.Log.Fatalf("Error adding category: %v", err)
		}
		if !created {
			root.Log.Warn("Category already exists, nothing to do")
			return
		}
		root.Log.Infof("Added category %q", args[0])
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the dictionary as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		store := loadStore()
		out, err := yaml.Marshal(store.Snapshot())
		if err != nil {
			root.Log.Fatalf("Error encoding rules: %v", err)
		}
		if root.SharedFlags.Output != "" {
			if err := os.WriteFile(root.SharedFlags.Output, out, 0600); err != nil {
				root.Log.Fatalf("Error writing rules export: %v", err)
			}
			return
		}
		fmt.Print(string(out))
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge a YAML dictionary into the store",
	Long: `Merge categories and keywords from a YAML file (the export format)
into the dictionary. Existing keywords keep their category unless the
imported file assigns them elsewhere; keyword exclusivity is preserved.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			root.Log.Fatalf("Error reading import file: %v", err)
		}

		var imported map[string][]string
		if err := yaml.Unmarshal(data, &imported); err != nil {
			root.Log.Fatalf("Error parsing import file: %v", err)
		}

		store := loadStore()
		for category, keywords := range imported {
			if _, err := store.AddCategory(category); err != nil {
				root.Log.Fatalf("Error importing category %q: %v", category, err)
			}
			for _, keyword := range keywords {
				if _, err := store.AddKeyword(category, keyword); err != nil {
					root.Log.Fatalf("Error importing keyword %q: %v", keyword, err)
				}
			}
		}
		root.Log.WithField("categories", len(imported)).Info("Imported rules")
	},
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(addCategoryCmd)
	Cmd.AddCommand(exportCmd)
	Cmd.AddCommand(importCmd)
}

func loadStore() *rulestore.RuleStore {
	return rulestore.Load(root.Cfg.Rules.File, logging.NewLogrusAdapterFromLogger(root.Log))
}
