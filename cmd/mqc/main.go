// Command mqc reads model quality report files through registered adapters.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/adapters/driven/config/file"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/adapters/driven/storage/sqlite"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/adapters/driving/cli"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/connectors/filesystem"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/services"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/logger"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/postprocessors"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/readers"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetBootstrap(bootstrap)
	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// bootstrap is the composition root. It wires every service from the
// settings in the configuration directory.
func bootstrap(opts cli.Options) (*cli.Services, func(), error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, nil, err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := settingsService.Validate(); err != nil {
		logger.Warn("settings: %v", err)
	}

	adapters, err := readers.DefaultCatalog().BuildEnabled(*settings)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build adapters: %w", err)
	}
	registry := services.NewAdapterRegistry()
	if err := registry.RegisterAll(adapters...); err != nil {
		return nil, nil, fmt.Errorf("failed to register adapters: %w", err)
	}

	dispatcher := services.NewDispatchEngine(registry,
		services.WithAdapterTimeout(settings.Dispatch.AdapterTimeout),
		services.WithProbeHook(logProbe),
	)

	processors := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(processors)
	pipeline, err := processors.BuildPipeline(settings.PostProcess.Processors)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build post-processors: %w", err)
	}

	source := filesystem.New()
	store, err := sqlite.NewStore(filepath.Join(configDir, "data"))
	if err != nil {
		_ = source.Close()
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	var journal driven.ImportJournal
	if settings.Journal.Enabled {
		journal = store.JournalStore()
	}

	importer := services.NewImportService(dispatcher, source, journal, pipeline)
	batch := services.NewBatchService(importer, source, registry,
		services.WithWorkers(settings.Dispatch.Workers),
		services.WithRateLimit(settings.Dispatch.RateLimit),
	)

	svc := &cli.Services{
		Catalog:   registry,
		Reader:    services.NewReadService(dispatcher, source, pipeline),
		Importer:  importer,
		Batch:     batch,
		Watcher:   services.NewWatchService(importer, source, registry, services.DefaultWatchDebounce),
		Journal:   services.NewJournalService(store.JournalStore()),
		Settings:  settingsService,
		Scheduler: services.NewScheduler(settings.SchedulerConfig(), settings.Monitor.Folders, store.SchedulerStore(), batch),
	}

	cleanup := func() {
		if err := errors.Join(source.Close(), store.Close()); err != nil {
			logger.Warn("cleanup: %v", err)
		}
	}
	return svc, cleanup, nil
}

func logProbe(p domain.Probe) {
	switch {
	case p.Err != nil:
		logger.Debug("probe %s: fault after %s: %v", p.Adapter, p.Duration, p.Err)
	case p.Valid:
		logger.Debug("probe %s: accepted in %s", p.Adapter, p.Duration)
	default:
		logger.Debug("probe %s: rejected in %s", p.Adapter, p.Duration)
	}
}
