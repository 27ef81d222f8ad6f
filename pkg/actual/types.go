// Package actual provides an Actual Budget server API client and types.
package actual

// Transaction represents a transaction in the Actual Budget API.
// Amounts are integers in minor currency units (cents).
type Transaction struct {
	ID              string        `json:"id"`
	Account         string        `json:"account"`
	Category        string        `json:"category,omitempty"`
	Date            string        `json:"date"` // YYYY-MM-DD
	Amount          int64         `json:"amount"`
	Payee           string        `json:"payee,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	TransferID      string        `json:"transfer_id,omitempty"`
	Subtransactions []Transaction `json:"subtransactions,omitempty"`
	IsParent        bool          `json:"is_parent,omitempty"`
	IsChild         bool          `json:"is_child,omitempty"`
}

// Account represents a budget account.
type Account struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Closed    bool   `json:"closed,omitempty"`
	OffBudget bool   `json:"offbudget,omitempty"`
}

// Category represents a budget category.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	GroupID  string `json:"group_id,omitempty"`
	IsIncome bool   `json:"is_income,omitempty"`
}

// Payee represents a payee.
type Payee struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	TransferAccount string `json:"transfer_acct,omitempty"`
}

// accountsResponse represents the response from the accounts endpoint.
type accountsResponse struct {
	Data []Account `json:"data"`
}

// categoriesResponse represents the response from the categories endpoint.
type categoriesResponse struct {
	Data []Category `json:"data"`
}

// payeesResponse represents the response from the payees endpoint.
type payeesResponse struct {
	Data []Payee `json:"data"`
}

// transactionsResponse represents the response from the transactions endpoint.
type transactionsResponse struct {
	Data []Transaction `json:"data"`
}

// balanceResponse represents the response from the account balance endpoint.
// The balance is an integer in minor currency units.
type balanceResponse struct {
	Data int64 `json:"data"`
}

// loginResponse represents the response from the login endpoint.
type loginResponse struct {
	Data struct {
		Token string `json:"token"`
	} `json:"data"`
}

// ErrorResponse represents an error response from the Actual API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
