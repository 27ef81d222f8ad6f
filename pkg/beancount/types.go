// Package beancount renders double-entry directives and accumulates them
// into a single ledger artifact.
package beancount

import (
	"strings"

	"github.com/shopspring/decimal"
)

// accountColumn is the column at which posting amounts start. Account paths
// shorter than this are padded with spaces, longer ones keep a single space.
const accountColumn = 60

// AmountFromMinor converts an integer amount in minor currency units to a
// decimal amount with two fraction digits (1500 -> 15.00).
func AmountFromMinor(v int64) decimal.Decimal {
	return decimal.New(v, -2)
}

// Posting represents one account/amount line within a transaction.
type Posting struct {
	Account  string
	Amount   decimal.Decimal
	Currency string
	Comment  string
}

// Transaction represents a Beancount transaction directive.
type Transaction struct {
	// Comments are rendered as "; " lines above the header, one per line.
	Comments  []string
	Date      string // YYYY-MM-DD
	Payee     string
	Narration string
	// HasNarration renders the narration string after the payee even when
	// it is empty. Transfer and split records carry a single quoted string.
	HasNarration bool
	Postings     []Posting
}

// String renders the transaction as a Beancount record.
func (t Transaction) String() string {
	var sb strings.Builder

	for _, comment := range t.Comments {
		sb.WriteString("; ")
		sb.WriteString(comment)
		sb.WriteString("\n")
	}

	sb.WriteString(t.Date)
	sb.WriteString(" txn \"")
	sb.WriteString(t.Payee)
	sb.WriteString("\"")
	if t.HasNarration {
		sb.WriteString(" \"")
		sb.WriteString(t.Narration)
		sb.WriteString("\"")
	}
	sb.WriteString("\n")

	for _, posting := range t.Postings {
		sb.WriteString("  ")
		sb.WriteString(posting.Account)
		sb.WriteString(pad(posting.Account))
		sb.WriteString(posting.Amount.StringFixed(2))
		sb.WriteString(" ")
		sb.WriteString(posting.Currency)
		if posting.Comment != "" {
			sb.WriteString(" ; ")
			sb.WriteString(posting.Comment)
		}
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// Open represents an account opening directive.
type Open struct {
	Date     string // YYYY-MM-DD
	Account  string
	Currency string
}

// String renders the open directive.
func (o Open) String() string {
	var sb strings.Builder
	sb.WriteString(o.Date)
	sb.WriteString(" open ")
	sb.WriteString(o.Account)
	sb.WriteString(pad(o.Account))
	sb.WriteString(o.Currency)
	return sb.String()
}

// Balance represents a balance assertion directive.
type Balance struct {
	// Comment is rendered as a "; " line above the directive.
	Comment  string
	Date     string // YYYY-MM-DD
	Account  string
	Amount   decimal.Decimal
	Currency string
}

// String renders the balance assertion.
func (b Balance) String() string {
	var sb strings.Builder
	if b.Comment != "" {
		sb.WriteString("; ")
		sb.WriteString(b.Comment)
		sb.WriteString("\n")
	}
	sb.WriteString(b.Date)
	sb.WriteString(" balance ")
	sb.WriteString(b.Account)
	sb.WriteString(pad(b.Account))
	sb.WriteString(b.Amount.StringFixed(2))
	sb.WriteString(" ")
	sb.WriteString(b.Currency)
	return sb.String()
}

// pad returns the spaces between an account path and its amount, keeping at
// least one space for paths longer than the alignment column.
func pad(account string) string {
	spaces := accountColumn - len(account)
	if spaces < 1 {
		spaces = 1
	}
	return strings.Repeat(" ", spaces)
}
