// Package exporter turns Actual Budget transactions into Beancount records.
package exporter

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/rufex/actualbean/pkg/actual"
	"github.com/rufex/actualbean/pkg/beancount"
	"github.com/rufex/actualbean/pkg/mapping"
)

// BalanceSource provides the current running balance of an account in minor
// currency units. The Actual API client implements it; tests stub it.
type BalanceSource interface {
	AccountBalance(accountID string) (int64, error)
}

// kind is the resolved classification of a transaction. Exactly one kind
// applies per transaction; splits take precedence because their fields
// subsume the others.
type kind int

const (
	kindUnclassified kind = iota
	kindSplit
	kindExpense
	kindTransfer
)

// classify resolves a transaction to its single classification.
func classify(tx *actual.Transaction) kind {
	switch {
	case tx.IsParent && len(tx.Subtransactions) > 0:
		return kindSplit
	case tx.Category != "":
		return kindExpense
	case tx.TransferID != "":
		return kindTransfer
	}
	return kindUnclassified
}

// Summary reports what a run produced.
type Summary struct {
	Transactions   int
	Exported       int
	Skipped        int
	AccountsOpened int
	Balances       int
}

// Exporter owns all mutable state of a single export run: the set of opened
// accounts, the set of processed transaction ids, and the output ledger.
// None of it is shared or persisted; a new Exporter is created per run.
type Exporter struct {
	table    *mapping.Table
	data     *Dataset
	currency string

	// Today dates the balance assertions. Defaults to the wall-clock date.
	Today string

	ledger    *beancount.Ledger
	opened    map[string]bool
	processed map[string]bool
	summary   Summary
}

// New creates an exporter over a fetched dataset.
func New(table *mapping.Table, data *Dataset, currency string) *Exporter {
	return &Exporter{
		table:     table,
		data:      data,
		currency:  currency,
		Today:     time.Now().Format("2006-01-02"),
		ledger:    beancount.NewLedger(),
		opened:    make(map[string]bool),
		processed: make(map[string]bool),
	}
}

// Ledger returns the output accumulator.
func (e *Exporter) Ledger() *beancount.Ledger {
	return e.ledger
}

// Run processes all transactions in chronological order and then emits one
// balance assertion per mapped account. Resolution failures inside the
// rendering path skip the affected record and continue; only a failed
// balance fetch aborts.
func (e *Exporter) Run(balances BalanceSource) (Summary, error) {
	txns := chronological(e.data.Transactions)
	e.summary.Transactions = len(txns)

	for i := range txns {
		e.process(&txns[i])
	}

	if err := e.emitBalances(balances); err != nil {
		return e.summary, err
	}

	return e.summary, nil
}

// chronological returns the transactions sorted oldest first. The source
// delivers them newest first; a stable sort keeps the relative order of
// same-day transactions deterministic.
func chronological(txns []actual.Transaction) []actual.Transaction {
	out := make([]actual.Transaction, len(txns))
	copy(out, txns)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// process renders a single top-level transaction.
func (e *Exporter) process(tx *actual.Transaction) {
	if e.processed[tx.ID] {
		return
	}
	if tx.IsChild {
		// Split children can surface as their own rows in the feed,
		// possibly before their parent. The parent's split record owns
		// them; rendering the row here would emit the child twice.
		return
	}

	switch classify(tx) {
	case kindSplit:
		e.processSplit(tx)
	case kindExpense:
		e.processExpense(tx)
	case kindTransfer:
		e.processTransfer(tx)
	default:
		slog.Warn("transaction has no category, transfer or splits; skipping", "id", tx.ID, "date", tx.Date)
		e.skip(tx.ID)
	}
}

// processExpense renders a plain expense/income transaction: the account
// posting at the original amount and the category posting at its negation.
func (e *Exporter) processExpense(tx *actual.Transaction) {
	accountPath, ok := e.accountPath(tx.Account)
	if !ok {
		e.skip(tx.ID)
		return
	}
	categoryPath, ok := e.categoryPath(tx.Category)
	if !ok {
		e.skip(tx.ID)
		return
	}

	e.open(accountPath, tx.Date)
	e.open(categoryPath, tx.Date)

	amount := beancount.AmountFromMinor(tx.Amount)
	e.ledger.Add(beancount.Transaction{
		Comments:     []string{"actual-tx-id:" + tx.ID},
		Date:         tx.Date,
		Payee:        e.payeeName(tx.Payee),
		Narration:    tx.Notes,
		HasNarration: true,
		Postings: []beancount.Posting{
			{Account: accountPath, Amount: amount, Currency: e.currency},
			{Account: categoryPath, Amount: amount.Neg(), Currency: e.currency},
		},
	})

	e.processed[tx.ID] = true
	e.summary.Exported++
}

// processTransfer renders both legs of a transfer as one record. Amounts
// are natively opposite-signed in the source, so neither leg is negated.
func (e *Exporter) processTransfer(tx *actual.Transaction) {
	partner, ok := e.data.TransactionByID(tx.TransferID)
	if !ok {
		slog.Warn("transfer partner not found; skipping", "id", tx.ID, "transfer_id", tx.TransferID)
		e.skip(tx.ID)
		return
	}
	if partner.IsChild {
		// Transfers into split children are out of scope.
		slog.Warn("transfer partner is a split child; skipping", "id", tx.ID, "transfer_id", tx.TransferID)
		e.skip(tx.ID)
		return
	}

	ownPath, ok := e.accountPath(tx.Account)
	if !ok {
		e.skip(tx.ID)
		return
	}
	partnerPath, ok := e.accountPath(partner.Account)
	if !ok {
		e.skip(tx.ID)
		return
	}

	e.open(ownPath, tx.Date)
	e.open(partnerPath, tx.Date)

	description := tx.Notes
	if description == "" {
		description = partner.Notes
	}
	if description == "" {
		description = "Transfer"
	}

	e.ledger.Add(beancount.Transaction{
		Comments: []string{"actual-tx-id:" + tx.ID, "actual-tx-id:" + partner.ID},
		Date:     tx.Date,
		Payee:    description,
		Postings: []beancount.Posting{
			{Account: ownPath, Amount: beancount.AmountFromMinor(tx.Amount), Currency: e.currency},
			{Account: partnerPath, Amount: beancount.AmountFromMinor(partner.Amount), Currency: e.currency},
		},
	})

	e.processed[tx.ID] = true
	e.processed[partner.ID] = true
	e.summary.Exported++
}

// splitLeg pairs a sub-transaction with its resolved destination path.
type splitLeg struct {
	path string
	sub  *actual.Transaction
}

// processSplit renders a split parent and all of its sub-transactions as one
// multi-posting record. A failure on any single sub-transaction discards the
// whole record.
func (e *Exporter) processSplit(tx *actual.Transaction) {
	parentPath, ok := e.accountPath(tx.Account)
	if !ok {
		e.skipSplit(tx)
		return
	}

	legs := make([]splitLeg, 0, len(tx.Subtransactions))
	for i := range tx.Subtransactions {
		sub := &tx.Subtransactions[i]

		var path string
		switch {
		case sub.Category != "":
			path, ok = e.categoryPath(sub.Category)
		case sub.TransferID != "":
			path, ok = e.transferDestination(sub)
		default:
			slog.Warn("subtransaction has neither category nor transfer; dropping split", "id", tx.ID, "sub_id", sub.ID)
			ok = false
		}
		if !ok {
			e.skipSplit(tx)
			return
		}

		legs = append(legs, splitLeg{path: path, sub: sub})
	}

	e.open(parentPath, tx.Date)

	comments := make([]string, 0, 1+len(legs))
	comments = append(comments, "actual-tx-id:"+tx.ID)
	for _, leg := range legs {
		comments = append(comments, "actual-tx-id:"+leg.sub.ID)
	}

	// The parent posting absorbs the sum; each sub-transaction credits its
	// destination, hence the sign flip on the children only.
	postings := make([]beancount.Posting, 0, 1+len(legs))
	postings = append(postings, beancount.Posting{
		Account:  parentPath,
		Amount:   beancount.AmountFromMinor(tx.Amount),
		Currency: e.currency,
	})
	for _, leg := range legs {
		postings = append(postings, beancount.Posting{
			Account:  leg.path,
			Amount:   beancount.AmountFromMinor(-leg.sub.Amount),
			Currency: e.currency,
			Comment:  leg.sub.Notes,
		})
	}

	e.ledger.Add(beancount.Transaction{
		Comments: comments,
		Date:     tx.Date,
		Payee:    e.payeeName(tx.Payee),
		Postings: postings,
	})

	e.markSplit(tx)
	e.summary.Exported++
}

// transferDestination resolves the account path on the far side of a
// sub-transaction transfer.
func (e *Exporter) transferDestination(sub *actual.Transaction) (string, bool) {
	partner, ok := e.data.TransactionByID(sub.TransferID)
	if !ok {
		slog.Warn("transfer partner not found", "sub_id", sub.ID, "transfer_id", sub.TransferID)
		return "", false
	}
	return e.accountPath(partner.Account)
}

// accountPath resolves an account id to its mapped Beancount path.
func (e *Exporter) accountPath(accountID string) (string, bool) {
	account, ok := e.data.AccountByID(accountID)
	if !ok {
		slog.Warn("account not found", "id", accountID)
		return "", false
	}
	path, ok := e.table.Account(account.Name)
	if !ok {
		slog.Warn("account has no mapping", "name", account.Name)
		return "", false
	}
	return path, true
}

// categoryPath resolves a category id to its mapped Beancount path.
func (e *Exporter) categoryPath(categoryID string) (string, bool) {
	category, ok := e.data.CategoryByID(categoryID)
	if !ok {
		slog.Warn("category not found", "id", categoryID)
		return "", false
	}
	path, ok := e.table.Category(category.Name)
	if !ok {
		slog.Warn("category has no mapping", "name", category.Name)
		return "", false
	}
	return path, true
}

// payeeName resolves a payee id to its display name. A missing payee is
// tolerated and renders as an empty string.
func (e *Exporter) payeeName(payeeID string) string {
	if payeeID == "" {
		return ""
	}
	payee, ok := e.data.PayeeByID(payeeID)
	if !ok {
		slog.Warn("payee not found", "id", payeeID)
		return ""
	}
	return payee.Name
}

// open emits an opening directive for a target account exactly once.
// Processing is chronological, so the date is the first date that touches
// the account.
func (e *Exporter) open(path, date string) {
	if e.opened[path] {
		return
	}
	e.opened[path] = true
	e.ledger.Add(beancount.Open{Date: date, Account: path, Currency: e.currency})
	e.summary.AccountsOpened++
}

// skip marks a transaction as processed without emitting a record.
func (e *Exporter) skip(id string) {
	e.processed[id] = true
	e.summary.Skipped++
}

// skipSplit drops a whole split: the parent and every child are marked
// processed as a unit so no partial record can surface later.
func (e *Exporter) skipSplit(tx *actual.Transaction) {
	e.markSplit(tx)
	e.summary.Skipped++
}

// markSplit marks a parent and all of its children as processed.
func (e *Exporter) markSplit(tx *actual.Transaction) {
	e.processed[tx.ID] = true
	for i := range tx.Subtransactions {
		e.processed[tx.Subtransactions[i].ID] = true
	}
}

// emitBalances appends one balance assertion per mapped account, dated
// today, using the live running balance.
func (e *Exporter) emitBalances(balances BalanceSource) error {
	for i := range e.data.Accounts {
		account := &e.data.Accounts[i]

		path, ok := e.table.Account(account.Name)
		if !ok {
			slog.Warn("account has no mapping; skipping balance", "name", account.Name)
			continue
		}

		minor, err := balances.AccountBalance(account.ID)
		if err != nil {
			return fmt.Errorf("failed to fetch balance for account %s: %w", account.Name, err)
		}

		e.ledger.Add(beancount.Balance{
			Comment:  "actual-account-id:" + account.ID,
			Date:     e.Today,
			Account:  path,
			Amount:   beancount.AmountFromMinor(minor),
			Currency: e.currency,
		})
		e.summary.Balances++
	}

	return nil
}
