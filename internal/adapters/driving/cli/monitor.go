package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/logger"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Periodically import the monitored folders",
	Long: `Runs the folder-scan task in the foreground. The folders and interval
come from the monitor.* settings; monitor.enabled must be true.
Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runMonitor,
}

var monitorHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent folder-scan runs",
	Args:  cobra.NoArgs,
	RunE:  runMonitorHistory,
}

var monitorHistoryLimit int

func init() {
	monitorHistoryCmd.Flags().IntVarP(&monitorHistoryLimit, "limit", "n", 10, "Maximum number of runs")
	monitorCmd.AddCommand(monitorHistoryCmd)
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	if scheduler == nil {
		return errNotConfigured("scheduler")
	}
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		if !settings.Monitor.Enabled {
			return errors.New("monitoring is disabled; set monitor.folders and monitor.enabled first")
		}
		cmd.Printf("Monitoring %d folder(s) every %s (press Ctrl+C to stop)...\n",
			len(settings.Monitor.Folders), settings.Monitor.Interval)
	}

	defer func() {
		if err := scheduler.Stop(); err != nil {
			logger.Warn("scheduler stop: %v", err)
		}
	}()

	err := scheduler.Start(cmd.Context())
	if err != nil && !errors.Is(err, cmd.Context().Err()) {
		return fmt.Errorf("monitor failed: %w", err)
	}
	return nil
}

func runMonitorHistory(cmd *cobra.Command, _ []string) error {
	if scheduler == nil {
		return errNotConfigured("scheduler")
	}

	results, err := scheduler.History(cmd.Context(), monitorHistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}
	if len(results) == 0 {
		cmd.Println("No folder scans recorded.")
		return nil
	}

	st := stylesFor(cmd.OutOrStdout())
	rows := make([][]string, len(results))
	for i, r := range results {
		outcome := st.Success.Render("ok")
		if !r.Success {
			outcome = st.Error.Render(r.Error)
		}
		rows[i] = []string{
			formatTime(r.StartedAt),
			formatDuration(r.EndedAt.Sub(r.StartedAt)),
			strconv.Itoa(r.ItemsProcessed),
			outcome,
		}
	}
	cmd.Println(st.Table([]string{"STARTED", "DURATION", "IMPORTED", "RESULT"}, rows))
	return nil
}
