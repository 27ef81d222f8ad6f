package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ACTUAL_SERVER_URL", "")
	t.Setenv("ACTUAL_PASSWORD", "secret")
	t.Setenv("ACTUAL_SYNC_ID", "budget-1")
	t.Setenv("EXPORT_CURRENCY", "")

	cfg, err := Load("/nonexistent-but-unused")
	if err == nil {
		t.Fatal("Load() expected error for missing .env path")
	}

	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Actual.ServerURL != "http://localhost:5006" {
		t.Errorf("ServerURL = %q, expected default", cfg.Actual.ServerURL)
	}
	if cfg.Export.Currency != "EUR" {
		t.Errorf("Currency = %q, expected EUR", cfg.Export.Currency)
	}
	if cfg.Actual.Password != "secret" {
		t.Errorf("Password = %q, expected secret", cfg.Actual.Password)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.Actual.ServerURL = "http://localhost:5006"

	err := cfg.Validate(
		[]string{"actual", "serverUrl"},
		[]string{"actual", "password"},
		[]string{"actual", "syncId"},
		[]string{"export", "mappingFile"},
	)
	if err == nil {
		t.Fatal("Validate() expected error for missing fields")
	}

	// Every missing key must be reported, not just the first.
	for _, want := range []string{"actual.password", "actual.syncId", "export.mappingFile"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q does not mention %s", err.Error(), want)
		}
	}
	if strings.Contains(err.Error(), "actual.serverUrl") {
		t.Errorf("Validate() error mentions serverUrl, which is set")
	}
}

func TestValidateComplete(t *testing.T) {
	cfg := &Config{
		Actual: ActualConfig{
			ServerURL: "http://localhost:5006",
			Password:  "secret",
			SyncID:    "budget-1",
		},
		Export: ExportConfig{
			OutputFile:  "./ledger.beancount",
			MappingFile: "./mapping.yaml",
			Currency:    "EUR",
		},
	}

	err := cfg.Validate(
		[]string{"actual", "serverUrl"},
		[]string{"actual", "password"},
		[]string{"actual", "syncId"},
		[]string{"export", "outputFile"},
		[]string{"export", "mappingFile"},
	)
	if err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
}
