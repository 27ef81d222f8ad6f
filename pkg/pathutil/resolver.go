// Package pathutil provides path resolution for the ledger artifact and the
// history database.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// Resolver manages the output artifact and database paths.
type Resolver struct {
	outputFile   string
	databasePath string
}

// Config represents the configuration for Resolver.
type Config struct {
	// OutputFile is the path of the ledger artifact.
	OutputFile string
	// DatabasePath is the path to the SQLite history database.
	DatabasePath string
}

// New creates a new Resolver with the given configuration.
// If DatabasePath is empty, it defaults to
// {output dir}/.actualbean/history.db.
func New(config Config) *Resolver {
	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(filepath.Dir(config.OutputFile), ".actualbean", "history.db")
	}

	return &Resolver{
		outputFile:   config.OutputFile,
		databasePath: dbPath,
	}
}

// OutputFile returns the ledger artifact path.
func (r *Resolver) OutputFile() string {
	return r.outputFile
}

// DatabasePath returns the history database path.
func (r *Resolver) DatabasePath() string {
	return r.databasePath
}

// EnsureParentDir ensures the parent directory of a file exists.
func (r *Resolver) EnsureParentDir(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a file exists.
func (r *Resolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
