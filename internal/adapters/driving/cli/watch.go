package cli

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/connectors/filesystem"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Import report files as they are written",
	Long: `Watches a directory tree and imports each report file once writes to it
have settled. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watcher == nil {
		return errNotConfigured("watch service")
	}

	dir := filesystem.ResolvePath(args[0])
	st := stylesFor(cmd.OutOrStdout())
	var mu sync.Mutex

	cmd.Printf("Watching %s (press Ctrl+C to stop)...\n", dir)
	err := watcher.Watch(cmd.Context(), dir, func(rec domain.ImportRecord) {
		mu.Lock()
		defer mu.Unlock()
		printRecord(cmd, st.Status(rec.Status), rec)
	})
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
