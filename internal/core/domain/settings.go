package domain

import "time"

// Default setting values.
const (
	DefaultWorkers           = 4
	DefaultAdapterTimeout    = 30 * time.Second
	DefaultMonitorInterval   = 15 * time.Minute
	DefaultExampleReportName = "Report.Example.xml"
	DefaultCSVDelimiter      = ","
)

// DispatchSettings controls the dispatch engine and batch workers.
type DispatchSettings struct {
	// Workers is the number of files dispatched concurrently in a batch.
	Workers int

	// AdapterTimeout bounds each IsValid and Read invocation. 0 disables it.
	AdapterTimeout time.Duration

	// RateLimit caps files started per second in a batch. 0 is unlimited.
	RateLimit float64
}

// AdapterSettings controls which built-in adapters are registered.
type AdapterSettings struct {
	// Disabled lists adapter names that are not registered.
	Disabled []string

	// ExampleReportName is the file name accepted by the Example adapter.
	ExampleReportName string

	// CSVDelimiter is the field separator of the CSV adapter.
	CSVDelimiter string
}

// IsDisabled reports whether the named adapter is disabled.
func (s AdapterSettings) IsDisabled(name string) bool {
	for _, d := range s.Disabled {
		if d == name {
			return true
		}
	}
	return false
}

// JournalSettings controls the import journal.
type JournalSettings struct {
	Enabled bool
}

// MonitorSettings controls periodic folder scans.
type MonitorSettings struct {
	Enabled  bool
	Folders  []string
	Interval time.Duration
}

// PostProcessSettings lists result processors applied after each dispatch.
type PostProcessSettings struct {
	Processors []string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Dispatch    DispatchSettings
	Adapters    AdapterSettings
	Journal     JournalSettings
	Monitor     MonitorSettings
	PostProcess PostProcessSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Dispatch: DispatchSettings{
			Workers:        DefaultWorkers,
			AdapterTimeout: DefaultAdapterTimeout,
		},
		Adapters: AdapterSettings{
			ExampleReportName: DefaultExampleReportName,
			CSVDelimiter:      DefaultCSVDelimiter,
		},
		Journal: JournalSettings{
			Enabled: true,
		},
		Monitor: MonitorSettings{
			Interval: DefaultMonitorInterval,
		},
		PostProcess: PostProcessSettings{
			Processors: []string{"timestamp"},
		},
	}
}

// SchedulerConfig derives the scheduler configuration from the monitor settings.
func (s AppSettings) SchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled: s.Monitor.Enabled && len(s.Monitor.Folders) > 0,
		TaskConfigs: map[string]TaskConfig{
			TaskIDFolderScan: {
				Enabled:  s.Monitor.Enabled,
				Interval: s.Monitor.Interval,
			},
		},
	}
}
