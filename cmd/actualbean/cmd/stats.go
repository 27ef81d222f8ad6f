package cmd

import (
	"fmt"
	"log/slog"

	"github.com/rufex/actualbean/pkg/config"
	"github.com/rufex/actualbean/pkg/db"
	"github.com/rufex/actualbean/pkg/pathutil"
	"github.com/spf13/cobra"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display export statistics",
	Long: `Display statistics about past export runs.

Shows:
- Total number of export runs
- Total exported and skipped transactions
- Last export timestamp
- The most recent runs

Example:
  actualbean stats`,
	Run: runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	slog.Info("Loading configuration")

	// Load configuration
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	if err := cfg.Validate([]string{"export", "outputFile"}); err != nil {
		exitOnError(err, "invalid configuration")
	}

	paths := pathutil.New(pathutil.Config{
		OutputFile:   cfg.Export.OutputFile,
		DatabasePath: cfg.Export.DBPath,
	})

	// Open database connection
	dbPath := paths.DatabasePath()
	if !paths.FileExists(dbPath) {
		fmt.Println("No export history yet. Run 'actualbean export' first.")
		return
	}
	slog.Debug("Opening database", "path", dbPath)

	conn, err := db.Open(dbPath)
	exitOnError(err, "failed to open history database")
	defer conn.Close()

	history := db.NewHistory(conn)

	stats, err := history.GetStats()
	exitOnError(err, "failed to get statistics")

	// Display statistics
	fmt.Println("\n=== Export Statistics ===")
	fmt.Printf("Total runs:           %d\n", stats.TotalRuns)
	fmt.Printf("Transactions written: %d\n", stats.TotalExported)
	fmt.Printf("Transactions skipped: %d\n", stats.TotalSkipped)

	if stats.LastExport.Valid {
		fmt.Printf("Last export:          %s\n", stats.LastExport.String)
	} else {
		fmt.Printf("Last export:          (never)\n")
	}

	runs, err := history.Runs(5)
	exitOnError(err, "failed to get export runs")

	if len(runs) > 0 {
		fmt.Println("\nRecent runs:")
		for _, run := range runs {
			fmt.Printf("  %s  %s  exported=%d skipped=%d\n",
				run.ExportedAt.Format("2006-01-02 15:04:05"),
				run.OutputFile,
				run.TransactionsExported,
				run.TransactionsSkipped,
			)
		}
	}

	fmt.Println()
}
