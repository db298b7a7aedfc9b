// Package cli provides the cobra command tree for the mqc binary.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driving"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Options carries the persistent flags to the bootstrap function.
type Options struct {
	// ConfigDir overrides the default configuration directory.
	ConfigDir string

	// Verbose enables debug logging.
	Verbose bool
}

// Services holds the driving ports the commands call into.
// Any field may be nil; commands that need a missing service fail with an error.
type Services struct {
	Catalog   driving.AdapterCatalog
	Reader    driving.Reader
	Importer  driving.Importer
	Batch     driving.BatchImporter
	Watcher   driving.Watcher
	Journal   driving.JournalService
	Settings  driving.SettingsService
	Scheduler driving.Scheduler
}

// BootstrapFunc builds the services once flags are parsed.
// The returned cleanup function runs after the command completes.
type BootstrapFunc func(opts Options) (*Services, func(), error)

var (
	bootstrap BootstrapFunc
	cleanup   func()
	opts      Options

	catalog         driving.AdapterCatalog
	reader          driving.Reader
	importer        driving.Importer
	batchImporter   driving.BatchImporter
	watcher         driving.Watcher
	journalService  driving.JournalService
	settingsService driving.SettingsService
	scheduler       driving.Scheduler
)

var rootCmd = &cobra.Command{
	Use:   "mqc",
	Short: "Read model quality reports with pluggable adapters",
	Long: `mqc reads the report files produced by model quality tools.

Each file is matched to the registered adapters declaring its extension.
Candidates are probed in priority order and the first one that accepts
the file reads it into data records and findings.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		runCleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Print adapter selection details")
	rootCmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", "", "Configuration directory (default ~/.mqc)")
}

// SetBootstrap registers the function that wires services before a command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices installs services directly, bypassing bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	catalog = s.Catalog
	reader = s.Reader
	importer = s.Importer
	batchImporter = s.Batch
	watcher = s.Watcher
	journalService = s.Journal
	settingsService = s.Settings
	scheduler = s.Scheduler
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer runCleanup()
	return rootCmd.ExecuteContext(ctx)
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(opts.Verbose)

	if bootstrap == nil || cmd == versionCmd {
		return nil
	}

	services, done, err := bootstrap(opts)
	if err != nil {
		return err
	}
	SetServices(services)
	cleanup = done
	return nil
}

func runCleanup() {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
}

// errNotConfigured reports a missing service.
func errNotConfigured(name string) error {
	return errors.New(name + " not configured")
}
