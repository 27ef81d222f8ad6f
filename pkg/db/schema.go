// Package db provides SQLite storage for export-run history and metadata.
package db

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Export run history
-- One row per completed export run, used by the stats command.
CREATE TABLE IF NOT EXISTS export_runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    sync_id TEXT NOT NULL,                      -- Budget sync id on the Actual server
    output_file TEXT NOT NULL,                  -- Path of the written ledger artifact
    transactions_total INTEGER NOT NULL,        -- Transactions seen in the run
    transactions_exported INTEGER NOT NULL,     -- Records written
    transactions_skipped INTEGER NOT NULL,      -- Records dropped with a warning
    accounts_opened INTEGER NOT NULL,           -- Opening directives emitted
    balances INTEGER NOT NULL,                  -- Balance assertions emitted
    exported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_export_runs_sync
    ON export_runs(sync_id);

-- Export metadata table
-- Stores key-value metadata about export operations
CREATE TABLE IF NOT EXISTS export_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
