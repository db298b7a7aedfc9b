package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyWorkers           = "dispatch.workers"
	keyAdapterTimeout    = "dispatch.adapter_timeout_seconds"
	keyRateLimit         = "dispatch.rate_limit"
	keyAdaptersDisabled  = "adapters.disabled"
	keyExampleReportName = "adapters.example.report_name"
	keyCSVDelimiter      = "adapters.csv.delimiter"
	keyJournalEnabled    = "journal.enabled"
	keyMonitorEnabled    = "monitor.enabled"
	keyMonitorFolders    = "monitor.folders"
	keyMonitorInterval   = "monitor.interval_minutes"
	keyProcessors        = "postprocess.processors"
)

// maxWorkers bounds dispatch.workers.
const maxWorkers = 256

type keyKind int

const (
	kindInt keyKind = iota
	kindFloat
	kindBool
	kindString
	kindList
)

var settingKeys = map[string]keyKind{
	keyWorkers:           kindInt,
	keyAdapterTimeout:    kindInt,
	keyRateLimit:         kindFloat,
	keyAdaptersDisabled:  kindList,
	keyExampleReportName: kindString,
	keyCSVDelimiter:      kindString,
	keyJournalEnabled:    kindBool,
	keyMonitorEnabled:    kindBool,
	keyMonitorFolders:    kindList,
	keyMonitorInterval:   kindInt,
	keyProcessors:        kindList,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, filling unset keys with defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Dispatch: domain.DispatchSettings{
			Workers: s.getInt(keyWorkers, defaults.Dispatch.Workers),
			AdapterTimeout: time.Duration(
				s.getInt(keyAdapterTimeout, int(defaults.Dispatch.AdapterTimeout/time.Second)),
			) * time.Second,
			RateLimit: s.getFloat(keyRateLimit, defaults.Dispatch.RateLimit),
		},
		Adapters: domain.AdapterSettings{
			Disabled:          s.getList(keyAdaptersDisabled, defaults.Adapters.Disabled),
			ExampleReportName: s.getString(keyExampleReportName, defaults.Adapters.ExampleReportName),
			CSVDelimiter:      s.getString(keyCSVDelimiter, defaults.Adapters.CSVDelimiter),
		},
		Journal: domain.JournalSettings{
			Enabled: s.getBool(keyJournalEnabled, defaults.Journal.Enabled),
		},
		Monitor: domain.MonitorSettings{
			Enabled: s.getBool(keyMonitorEnabled, defaults.Monitor.Enabled),
			Folders: s.getList(keyMonitorFolders, defaults.Monitor.Folders),
			Interval: time.Duration(
				s.getInt(keyMonitorInterval, int(defaults.Monitor.Interval/time.Minute)),
			) * time.Minute,
		},
		PostProcess: domain.PostProcessSettings{
			Processors: s.getList(keyProcessors, defaults.PostProcess.Processors),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := validateSettings(settings); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyWorkers, settings.Dispatch.Workers},
		{keyAdapterTimeout, int(settings.Dispatch.AdapterTimeout / time.Second)},
		{keyRateLimit, settings.Dispatch.RateLimit},
		{keyAdaptersDisabled, nonNil(settings.Adapters.Disabled)},
		{keyExampleReportName, settings.Adapters.ExampleReportName},
		{keyCSVDelimiter, settings.Adapters.CSVDelimiter},
		{keyJournalEnabled, settings.Journal.Enabled},
		{keyMonitorEnabled, settings.Monitor.Enabled},
		{keyMonitorFolders, nonNil(settings.Monitor.Folders)},
		{keyMonitorInterval, int(settings.Monitor.Interval / time.Minute)},
		{keyProcessors, nonNil(settings.PostProcess.Processors)},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for key and persists it.
// List values are comma-separated; an empty value clears the list.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	var parsed any
	raw := value
	value = strings.TrimSpace(value)
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer: %w", key, value, domain.ErrInvalidInput)
		}
		parsed = n
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %q is not a number: %w", key, value, domain.ErrInvalidInput)
		}
		parsed = f
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %q is not a boolean: %w", key, value, domain.ErrInvalidInput)
		}
		parsed = b
	case kindString:
		// Untrimmed so a tab delimiter survives.
		parsed = raw
	case kindList:
		parsed = splitList(value)
	}

	// Validate the settings as they would be after the change.
	current, err := s.Get()
	if err != nil {
		return err
	}
	candidate := *current
	applySetting(&candidate, key, parsed)
	if err := validateSettings(&candidate); err != nil {
		return err
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the recognised setting keys in display order.
func (s *SettingsService) Keys() []string {
	return []string{
		keyWorkers,
		keyAdapterTimeout,
		keyRateLimit,
		keyAdaptersDisabled,
		keyExampleReportName,
		keyCSVDelimiter,
		keyJournalEnabled,
		keyMonitorEnabled,
		keyMonitorFolders,
		keyMonitorInterval,
		keyProcessors,
	}
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return validateSettings(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func validateSettings(settings *domain.AppSettings) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), domain.ErrInvalidInput)
	}

	switch {
	case settings.Dispatch.Workers < 1 || settings.Dispatch.Workers > maxWorkers:
		return invalid("%s must be between 1 and %d", keyWorkers, maxWorkers)
	case settings.Dispatch.AdapterTimeout < 0:
		return invalid("%s must not be negative", keyAdapterTimeout)
	case settings.Dispatch.RateLimit < 0:
		return invalid("%s must not be negative", keyRateLimit)
	case strings.TrimSpace(settings.Adapters.ExampleReportName) == "":
		return invalid("%s must not be empty", keyExampleReportName)
	case utf8.RuneCountInString(settings.Adapters.CSVDelimiter) != 1:
		return invalid("%s must be a single character", keyCSVDelimiter)
	case strings.ContainsAny(settings.Adapters.CSVDelimiter, "\"#\r\n"):
		return invalid("%s %q is reserved", keyCSVDelimiter, settings.Adapters.CSVDelimiter)
	case settings.Monitor.Interval < time.Minute:
		return invalid("%s must be at least 1", keyMonitorInterval)
	case settings.Monitor.Enabled && len(settings.Monitor.Folders) == 0:
		return invalid("%s requires %s", keyMonitorEnabled, keyMonitorFolders)
	}
	return nil
}

func applySetting(settings *domain.AppSettings, key string, value any) {
	switch key {
	case keyWorkers:
		settings.Dispatch.Workers = value.(int)
	case keyAdapterTimeout:
		settings.Dispatch.AdapterTimeout = time.Duration(value.(int)) * time.Second
	case keyRateLimit:
		settings.Dispatch.RateLimit = value.(float64)
	case keyAdaptersDisabled:
		settings.Adapters.Disabled = value.([]string)
	case keyExampleReportName:
		settings.Adapters.ExampleReportName = value.(string)
	case keyCSVDelimiter:
		settings.Adapters.CSVDelimiter = value.(string)
	case keyJournalEnabled:
		settings.Journal.Enabled = value.(bool)
	case keyMonitorEnabled:
		settings.Monitor.Enabled = value.(bool)
	case keyMonitorFolders:
		settings.Monitor.Folders = value.([]string)
	case keyMonitorInterval:
		settings.Monitor.Interval = time.Duration(value.(int)) * time.Minute
	case keyProcessors:
		settings.PostProcess.Processors = value.([]string)
	}
}

func splitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getList(key string, defaultVal []string) []string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetStringSlice(key)
}
