package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/connectors/filesystem"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show import history",
	Long: `Lists the most recent entries of the import journal. Each entry records
which adapter handled a file and the outcome, never the records themselves.`,
	Args: cobra.NoArgs,
	RunE: runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Show the latest journal entry for a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old journal entries",
	Args:  cobra.NoArgs,
	RunE:  runJournalPrune,
}

var (
	journalLimit     int
	journalStatus    string
	journalOlderThan time.Duration
)

func init() {
	journalCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "Maximum number of entries (0 = all)")
	journalCmd.Flags().StringVarP(&journalStatus, "status", "s", "", "Only show entries with this status")
	journalPruneCmd.Flags().DurationVar(&journalOlderThan, "older-than", 30*24*time.Hour, "Delete entries older than this")

	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalPruneCmd)
	rootCmd.AddCommand(journalCmd)
}

func runJournalList(cmd *cobra.Command, _ []string) error {
	if journalService == nil {
		return errNotConfigured("journal")
	}

	filter := domain.JournalFilter{
		Status: domain.ImportStatus(journalStatus),
		Limit:  journalLimit,
	}
	records, err := journalService.List(cmd.Context(), filter)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("invalid --status %q or --limit %d", journalStatus, journalLimit)
		}
		return fmt.Errorf("failed to list journal: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No imports recorded.")
		return nil
	}

	st := stylesFor(cmd.OutOrStdout())
	rows := make([][]string, len(records))
	for i := range records {
		rec := &records[i]
		rows[i] = []string{
			formatTime(rec.StartedAt),
			st.Status(rec.Status),
			rec.Adapter,
			strconv.Itoa(rec.Records),
			strconv.Itoa(rec.Findings),
			rec.Path,
		}
	}
	cmd.Println(st.Table([]string{"STARTED", "STATUS", "ADAPTER", "RECORDS", "FINDINGS", "PATH"}, rows))
	cmd.Printf("Total: %d entries\n", len(records))
	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	if journalService == nil {
		return errNotConfigured("journal")
	}

	path := filesystem.ResolvePath(args[0])
	rec, err := journalService.Last(cmd.Context(), path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no journal entry for %s", path)
		}
		return fmt.Errorf("failed to get journal entry: %w", err)
	}

	st := stylesFor(cmd.OutOrStdout())
	cmd.Println(st.Title.Render(rec.Path))
	cmd.Printf("  Status: %s\n", st.Status(rec.Status))
	if rec.Adapter != "" {
		cmd.Printf("  Adapter: %s\n", rec.Adapter)
	}
	cmd.Printf("  Candidates: %d\n", rec.Candidates)
	cmd.Printf("  Records: %d\n", rec.Records)
	cmd.Printf("  Findings: %d\n", rec.Findings)
	cmd.Printf("  Size: %d bytes\n", rec.Size)
	cmd.Printf("  Modified: %s\n", formatTime(rec.ModTime))
	cmd.Printf("  Started: %s\n", formatTime(rec.StartedAt))
	cmd.Printf("  Duration: %s\n", formatDuration(rec.Duration))
	if rec.Error != "" {
		cmd.Printf("  Error: %s\n", st.Error.Render(rec.Error))
	}
	return nil
}

func runJournalPrune(cmd *cobra.Command, _ []string) error {
	if journalService == nil {
		return errNotConfigured("journal")
	}

	n, err := journalService.Prune(cmd.Context(), journalOlderThan)
	if err != nil {
		return fmt.Errorf("failed to prune journal: %w", err)
	}

	cmd.Printf("Deleted %d entries older than %s.\n", n, journalOlderThan)
	return nil
}
