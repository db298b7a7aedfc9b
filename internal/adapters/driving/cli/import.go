package cli

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/connectors/filesystem"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

var importCmd = &cobra.Command{
	Use:   "import [paths...]",
	Short: "Import report files and folders",
	Long: `Imports report files. Directories are walked for files with an extension
some adapter declares. Every outcome is recorded in the import journal, and
files unchanged since their last successful import are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

var (
	importForce   bool
	importWorkers int
)

func init() {
	importCmd.Flags().BoolVarP(&importForce, "force", "f", false, "Re-import files even when unchanged")
	importCmd.Flags().IntVarP(&importWorkers, "workers", "w", 0, "Concurrent workers (0 = configured default)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if batchImporter == nil {
		return errNotConfigured("import service")
	}
	if importWorkers < 0 {
		return fmt.Errorf("--workers must not be negative")
	}

	roots := make([]string, len(args))
	for i, arg := range args {
		roots[i] = filesystem.ResolvePath(arg)
	}

	st := stylesFor(cmd.OutOrStdout())
	var mu sync.Mutex
	opts := domain.BatchOptions{
		ImportOptions: domain.ImportOptions{Force: importForce},
		Workers:       importWorkers,
		Progress: func(rec domain.ImportRecord) {
			mu.Lock()
			defer mu.Unlock()
			printRecord(cmd, st.Status(rec.Status), rec)
		},
	}

	report, err := batchImporter.Run(cmd.Context(), roots, opts)
	if report != nil {
		printSummary(cmd, report)
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	if n := failures(report); n > 0 {
		return fmt.Errorf("%d file(s) could not be imported", n)
	}
	return nil
}

func printRecord(cmd *cobra.Command, status string, rec domain.ImportRecord) {
	switch rec.Status {
	case domain.ImportStatusImported:
		cmd.Printf("%-12s %s (%s, %d records, %d findings)\n",
			status, rec.Path, rec.Adapter, rec.Records, rec.Findings)
	case domain.ImportStatusSkipped:
		cmd.Printf("%-12s %s (unchanged)\n", status, rec.Path)
	default:
		cmd.Printf("%-12s %s: %s\n", status, rec.Path, rec.Error)
	}
}

func printSummary(cmd *cobra.Command, report *domain.BatchReport) {
	cmd.Printf("\nProcessed %d file(s) in %s:", report.Total(), formatDuration(report.Duration))
	for _, status := range domain.AllImportStatuses() {
		if n := report.Counts[status]; n > 0 {
			cmd.Printf(" %d %s", n, status)
		}
	}
	cmd.Println()
}

// failures counts files that were attempted and not imported.
func failures(report *domain.BatchReport) int {
	if report == nil {
		return 0
	}
	return report.Counts[domain.ImportStatusFailed] +
		report.Counts[domain.ImportStatusNoAdapter] +
		report.Counts[domain.ImportStatusUnsupported]
}
