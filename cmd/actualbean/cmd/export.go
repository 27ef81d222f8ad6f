package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rufex/actualbean/pkg/actual"
	"github.com/rufex/actualbean/pkg/config"
	"github.com/rufex/actualbean/pkg/db"
	"github.com/rufex/actualbean/pkg/exporter"
	"github.com/rufex/actualbean/pkg/mapping"
	"github.com/rufex/actualbean/pkg/pathutil"
	"github.com/spf13/cobra"
)

var (
	outputFile string
	dryRun     bool
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export Actual Budget transactions to Beancount",
	Long: `Export all transactions of a budget to a Beancount file.

This command:
1. Validates the account/category mapping against the fetched data
2. Renders every transaction as a balanced double-entry record
3. Synthesizes opening directives and closing balance assertions
4. Writes the ledger artifact in one pass
5. Records the run in the export history

Example:
  actualbean export
  actualbean export --output ledger.beancount --dry-run`,
	Run: runExport,
}

func init() {
	// Flags
	exportCmd.Flags().StringVar(&outputFile, "output", "", "Output file (overrides EXPORT_OUTPUT_FILE)")
	exportCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Dry run mode (print to stdout, no file writes)")
}

func runExport(cmd *cobra.Command, args []string) {
	slog.Info("Starting export", "dry_run", dryRun)

	// Load configuration
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	if outputFile != "" {
		cfg.Export.OutputFile = outputFile
	}

	// Validate required fields
	if err := cfg.Validate(
		[]string{"actual", "serverUrl"},
		[]string{"actual", "password"},
		[]string{"actual", "syncId"},
		[]string{"export", "outputFile"},
		[]string{"export", "mappingFile"},
		[]string{"export", "currency"},
	); err != nil {
		exitOnError(err, "invalid configuration")
	}

	// Load the name mapping
	table, err := mapping.Load(cfg.Export.MappingFile)
	exitOnError(err, "failed to load mapping file")

	// Initialize the Actual API client
	client := actual.NewClient(actual.ClientConfig{
		ServerURL: cfg.Actual.ServerURL,
		Password:  cfg.Actual.Password,
		SyncID:    cfg.Actual.SyncID,
		Timeout:   30 * time.Second,
	})
	exitOnError(client.Login(), "failed to log in to Actual server")
	defer client.Close()

	// Fetch the four collections
	slog.Info("Fetching budget data", "sync_id", cfg.Actual.SyncID)
	accounts, err := client.Accounts()
	exitOnError(err, "failed to fetch accounts")

	categories, err := client.Categories()
	exitOnError(err, "failed to fetch categories")

	payees, err := client.Payees()
	exitOnError(err, "failed to fetch payees")

	transactions, err := client.Transactions()
	exitOnError(err, "failed to fetch transactions")

	slog.Info("Fetched budget data",
		"accounts", len(accounts),
		"categories", len(categories),
		"payees", len(payees),
		"transactions", len(transactions),
	)

	data := exporter.NewDataset(accounts, categories, payees, transactions)

	// Every fetched name must be mapped before any output is produced.
	exitOnError(table.Validate(data.AccountNames(), data.CategoryNames()), "mapping file is incomplete")

	// Run the export
	exp := exporter.New(table, data, cfg.Export.Currency)
	summary, err := exp.Run(client)
	exitOnError(err, "export failed")

	slog.Info("Processed transactions",
		"total", summary.Transactions,
		"exported", summary.Exported,
		"skipped", summary.Skipped,
		"accounts_opened", summary.AccountsOpened,
		"balances", summary.Balances,
	)

	if dryRun {
		fmt.Printf("[DRY RUN] Would write to %s\n\n", cfg.Export.OutputFile)
		fmt.Print(exp.Ledger().String())
		return
	}

	paths := pathutil.New(pathutil.Config{
		OutputFile:   cfg.Export.OutputFile,
		DatabasePath: cfg.Export.DBPath,
	})

	// Write the artifact
	exitOnError(paths.EnsureParentDir(paths.OutputFile()), "failed to create output directory")
	exitOnError(exp.Ledger().WriteFile(paths.OutputFile()), "failed to write ledger file")
	slog.Info("Wrote ledger file", "path", paths.OutputFile())

	// Record the run
	exitOnError(paths.EnsureParentDir(paths.DatabasePath()), "failed to create database directory")
	conn, err := db.Open(paths.DatabasePath())
	exitOnError(err, "failed to open history database")
	defer conn.Close()

	history := db.NewHistory(conn)
	if err := history.RecordRun(db.RunRecord{
		SyncID:               cfg.Actual.SyncID,
		OutputFile:           paths.OutputFile(),
		TransactionsTotal:    summary.Transactions,
		TransactionsExported: summary.Exported,
		TransactionsSkipped:  summary.Skipped,
		AccountsOpened:       summary.AccountsOpened,
		Balances:             summary.Balances,
	}); err != nil {
		slog.Error("Failed to record export run", "error", err)
	}

	slog.Info("Export completed", "output", paths.OutputFile())
}
