package db

import (
	"database/sql"
	"fmt"
	"time"
)

// RunRecord represents one completed export run.
type RunRecord struct {
	ID                   int64
	SyncID               string
	OutputFile           string
	TransactionsTotal    int
	TransactionsExported int
	TransactionsSkipped  int
	AccountsOpened       int
	Balances             int
	ExportedAt           time.Time
}

// History manages export-run history operations.
type History struct {
	conn *Connection
}

// NewHistory creates a new History instance.
func NewHistory(conn *Connection) *History {
	return &History{conn: conn}
}

// RecordRun records a completed export run.
func (h *History) RecordRun(record RunRecord) error {
	query := `
		INSERT INTO export_runs (
			sync_id, output_file,
			transactions_total, transactions_exported, transactions_skipped,
			accounts_opened, balances
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := h.conn.Exec(query,
		record.SyncID,
		record.OutputFile,
		record.TransactionsTotal,
		record.TransactionsExported,
		record.TransactionsSkipped,
		record.AccountsOpened,
		record.Balances,
	)

	if err != nil {
		return fmt.Errorf("failed to record export run: %w", err)
	}

	return nil
}

// Runs retrieves the most recent export runs, newest first.
func (h *History) Runs(limit int) ([]RunRecord, error) {
	query := `
		SELECT id, sync_id, output_file,
			transactions_total, transactions_exported, transactions_skipped,
			accounts_opened, balances, exported_at
		FROM export_runs
		ORDER BY exported_at DESC, id DESC
		LIMIT ?
	`

	rows, err := h.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get export runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var record RunRecord
		if err := rows.Scan(
			&record.ID,
			&record.SyncID,
			&record.OutputFile,
			&record.TransactionsTotal,
			&record.TransactionsExported,
			&record.TransactionsSkipped,
			&record.AccountsOpened,
			&record.Balances,
			&record.ExportedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan export run: %w", err)
		}
		records = append(records, record)
	}

	return records, nil
}

// Stats represents export statistics.
type Stats struct {
	TotalRuns     int
	TotalExported int
	TotalSkipped  int
	LastExport    sql.NullString
}

// GetStats retrieves aggregate export statistics.
func (h *History) GetStats() (*Stats, error) {
	var stats Stats

	err := h.conn.QueryRow(`SELECT COUNT(*) FROM export_runs`).Scan(&stats.TotalRuns)
	if err != nil {
		return nil, fmt.Errorf("failed to get run count: %w", err)
	}

	err = h.conn.QueryRow(`
		SELECT COALESCE(SUM(transactions_exported), 0), COALESCE(SUM(transactions_skipped), 0)
		FROM export_runs
	`).Scan(&stats.TotalExported, &stats.TotalSkipped)
	if err != nil {
		return nil, fmt.Errorf("failed to get export totals: %w", err)
	}

	err = h.conn.QueryRow(`SELECT MAX(exported_at) FROM export_runs`).Scan(&stats.LastExport)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last export time: %w", err)
	}

	return &stats, nil
}

// GetMetadata retrieves a metadata value.
func (h *History) GetMetadata(key string) (string, error) {
	query := `SELECT value FROM export_metadata WHERE key = ?`

	var value string
	err := h.conn.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}

	return value, nil
}

// SetMetadata sets a metadata value.
func (h *History) SetMetadata(key, value string) error {
	query := `
		INSERT INTO export_metadata (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := h.conn.Exec(query, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}

	return nil
}
