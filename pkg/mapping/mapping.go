// Package mapping maps Actual account and category names to Beancount
// account paths.
package mapping

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table holds the two name lookups loaded from the mapping file.
// It is populated once at startup and read-only afterwards.
type Table struct {
	Accounts   map[string]string `yaml:"accounts"`
	Categories map[string]string `yaml:"categories"`
}

// Load reads a mapping table from a YAML file with two flat sections:
//
//	accounts:
//	  "Checking": "Assets:Bank:Checking"
//	categories:
//	  "Food": "Expenses:Food"
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a mapping table from YAML bytes.
func Parse(data []byte) (*Table, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	if table.Accounts == nil {
		table.Accounts = make(map[string]string)
	}
	if table.Categories == nil {
		table.Categories = make(map[string]string)
	}

	return &table, nil
}

// Account returns the Beancount account path for an Actual account name.
func (t *Table) Account(name string) (string, bool) {
	path, ok := t.Accounts[name]
	return path, ok
}

// Category returns the Beancount account path for an Actual category name.
func (t *Table) Category(name string) (string, bool) {
	path, ok := t.Categories[name]
	return path, ok
}

// Validate checks that every given account and category name has a mapping.
// All missing names are collected into a single error so the mapping file
// can be fixed in one pass.
func (t *Table) Validate(accountNames, categoryNames []string) error {
	var missing []string

	for _, name := range accountNames {
		if _, ok := t.Accounts[name]; !ok {
			missing = append(missing, fmt.Sprintf("account %q", name))
		}
	}
	for _, name := range categoryNames {
		if _, ok := t.Categories[name]; !ok {
			missing = append(missing, fmt.Sprintf("category %q", name))
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("mapping file is missing entries for: %s", strings.Join(missing, ", "))
	}

	return nil
}
