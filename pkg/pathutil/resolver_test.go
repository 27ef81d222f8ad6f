package pathutil

import (
	"path/filepath"
	"testing"
)

func TestDatabasePathDefault(t *testing.T) {
	resolver := New(Config{OutputFile: "/data/ledger.beancount"})

	expected := filepath.Join("/data", ".actualbean", "history.db")
	if got := resolver.DatabasePath(); got != expected {
		t.Errorf("DatabasePath() = %q, expected %q", got, expected)
	}
	if got := resolver.OutputFile(); got != "/data/ledger.beancount" {
		t.Errorf("OutputFile() = %q", got)
	}
}

func TestDatabasePathOverride(t *testing.T) {
	resolver := New(Config{
		OutputFile:   "/data/ledger.beancount",
		DatabasePath: "/var/lib/actualbean/history.db",
	})

	if got := resolver.DatabasePath(); got != "/var/lib/actualbean/history.db" {
		t.Errorf("DatabasePath() = %q, expected override", got)
	}
}

func TestEnsureParentDir(t *testing.T) {
	dir := t.TempDir()
	resolver := New(Config{OutputFile: filepath.Join(dir, "ledger.beancount")})

	nested := filepath.Join(dir, "a", "b", "file.txt")
	if err := resolver.EnsureParentDir(nested); err != nil {
		t.Fatalf("EnsureParentDir() failed: %v", err)
	}
	if !resolver.FileExists(filepath.Join(dir, "a", "b")) {
		t.Error("EnsureParentDir() did not create the directory")
	}
	if resolver.FileExists(nested) {
		t.Error("FileExists() true for a file that was never written")
	}
}
