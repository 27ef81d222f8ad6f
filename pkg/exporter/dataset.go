package exporter

import "github.com/rufex/actualbean/pkg/actual"

// Dataset holds the four fetched collections, indexed by identifier.
// It is built once per run and read-only afterwards.
type Dataset struct {
	Accounts     []actual.Account
	Categories   []actual.Category
	Payees       []actual.Payee
	Transactions []actual.Transaction

	accountsByID     map[string]*actual.Account
	categoriesByID   map[string]*actual.Category
	payeesByID       map[string]*actual.Payee
	transactionsByID map[string]*actual.Transaction
}

// NewDataset indexes the fetched collections for id lookups.
func NewDataset(accounts []actual.Account, categories []actual.Category, payees []actual.Payee, transactions []actual.Transaction) *Dataset {
	d := &Dataset{
		Accounts:     accounts,
		Categories:   categories,
		Payees:       payees,
		Transactions: transactions,

		accountsByID:     make(map[string]*actual.Account, len(accounts)),
		categoriesByID:   make(map[string]*actual.Category, len(categories)),
		payeesByID:       make(map[string]*actual.Payee, len(payees)),
		transactionsByID: make(map[string]*actual.Transaction, len(transactions)),
	}

	for i := range accounts {
		d.accountsByID[accounts[i].ID] = &accounts[i]
	}
	for i := range categories {
		d.categoriesByID[categories[i].ID] = &categories[i]
	}
	for i := range payees {
		d.payeesByID[payees[i].ID] = &payees[i]
	}
	for i := range transactions {
		d.transactionsByID[transactions[i].ID] = &transactions[i]
	}

	return d
}

// AccountByID returns the account with the given identifier.
func (d *Dataset) AccountByID(id string) (*actual.Account, bool) {
	account, ok := d.accountsByID[id]
	return account, ok
}

// CategoryByID returns the category with the given identifier.
func (d *Dataset) CategoryByID(id string) (*actual.Category, bool) {
	category, ok := d.categoriesByID[id]
	return category, ok
}

// PayeeByID returns the payee with the given identifier.
func (d *Dataset) PayeeByID(id string) (*actual.Payee, bool) {
	payee, ok := d.payeesByID[id]
	return payee, ok
}

// TransactionByID returns the top-level transaction with the given
// identifier. Transfer partners are resolved through this lookup.
func (d *Dataset) TransactionByID(id string) (*actual.Transaction, bool) {
	txn, ok := d.transactionsByID[id]
	return txn, ok
}

// AccountNames returns the names of all fetched accounts.
func (d *Dataset) AccountNames() []string {
	names := make([]string, 0, len(d.Accounts))
	for i := range d.Accounts {
		names = append(names, d.Accounts[i].Name)
	}
	return names
}

// CategoryNames returns the names of all fetched categories.
func (d *Dataset) CategoryNames() []string {
	names := make([]string, 0, len(d.Categories))
	for i := range d.Categories {
		names = append(names, d.Categories[i].Name)
	}
	return names
}
