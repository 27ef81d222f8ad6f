package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

const testYAML = `accounts:
  "Checking": "Assets:Bank:Checking"
  "Savings": "Assets:Bank:Savings"
categories:
  "Food": "Expenses:Food"
  "Salary": "Income:Salary"
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(testYAML), 0644))

	table, err := Load(path)
	assert.NoError(t, err)

	account, ok := table.Account("Checking")
	assert.True(t, ok)
	assert.Equal(t, "Assets:Bank:Checking", account)

	category, ok := table.Category("Food")
	assert.True(t, ok)
	assert.Equal(t, "Expenses:Food", category)

	_, ok = table.Account("Unknown")
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseEmptySections(t *testing.T) {
	table, err := Parse([]byte("accounts:\n"))
	assert.NoError(t, err)

	_, ok := table.Account("anything")
	assert.False(t, ok)
	_, ok = table.Category("anything")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	table, err := Parse([]byte(testYAML))
	assert.NoError(t, err)

	tests := []struct {
		name       string
		accounts   []string
		categories []string
		wantErr    string
	}{
		{
			name:       "all mapped",
			accounts:   []string{"Checking", "Savings"},
			categories: []string{"Food", "Salary"},
		},
		{
			name:     "one missing account",
			accounts: []string{"Checking", "Brokerage"},
			wantErr:  `mapping file is missing entries for: account "Brokerage"`,
		},
		{
			name:       "all missing names collected",
			accounts:   []string{"Brokerage", "Cash"},
			categories: []string{"Rent"},
			wantErr:    `mapping file is missing entries for: account "Brokerage", account "Cash", category "Rent"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := table.Validate(tt.accounts, tt.categories)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}
