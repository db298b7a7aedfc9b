package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in config.toml.

Use "mqc settings set <key> <value>" to change a single key. List values
are comma-separated; an empty value clears the list.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings service")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	st := stylesFor(cmd.OutOrStdout())
	cmd.Println(st.Title.Render("Current Settings"))
	cmd.Println()

	cmd.Println(st.Label.Render("[Dispatch]"))
	cmd.Printf("  Workers: %d\n", settings.Dispatch.Workers)
	cmd.Printf("  Adapter timeout: %s\n", describeTimeout(settings.Dispatch.AdapterTimeout))
	cmd.Printf("  Rate limit: %s\n", describeRate(settings.Dispatch.RateLimit))
	cmd.Println()

	cmd.Println(st.Label.Render("[Adapters]"))
	cmd.Printf("  Disabled: %s\n", describeList(settings.Adapters.Disabled))
	cmd.Printf("  Example report name: %s\n", settings.Adapters.ExampleReportName)
	cmd.Printf("  CSV delimiter: %s\n", strconv.Quote(settings.Adapters.CSVDelimiter))
	cmd.Println()

	cmd.Println(st.Label.Render("[Journal]"))
	cmd.Printf("  Enabled: %t\n", settings.Journal.Enabled)
	cmd.Println()

	cmd.Println(st.Label.Render("[Monitor]"))
	cmd.Printf("  Enabled: %t\n", settings.Monitor.Enabled)
	cmd.Printf("  Folders: %s\n", describeList(settings.Monitor.Folders))
	cmd.Printf("  Interval: %s\n", settings.Monitor.Interval)
	cmd.Println()

	cmd.Println(st.Label.Render("[Post-processing]"))
	cmd.Printf("  Processors: %s\n", describeList(settings.PostProcess.Processors))

	if err := settingsService.Validate(); err != nil {
		cmd.Println()
		cmd.Println(st.Warning.Render("Warning: " + err.Error()))
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings service")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("%s updated.\n", key)
	return nil
}

func describeTimeout(d time.Duration) string {
	if d == 0 {
		return "none"
	}
	return d.String()
}

func describeRate(perSecond float64) string {
	if perSecond == 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%g files/s", perSecond)
}

func describeList(list []string) string {
	if len(list) == 0 {
		return "(none)"
	}
	return strings.Join(list, ", ")
}
