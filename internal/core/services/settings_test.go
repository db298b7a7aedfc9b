package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/adapters/driven/storage/memory"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Dispatch, settings.Dispatch)
	assert.Equal(t, defaults.Adapters.ExampleReportName, settings.Adapters.ExampleReportName)
	assert.Equal(t, defaults.Adapters.CSVDelimiter, settings.Adapters.CSVDelimiter)
	assert.True(t, settings.Journal.Enabled)
	assert.False(t, settings.Monitor.Enabled)
	assert.Equal(t, defaults.Monitor.Interval, settings.Monitor.Interval)
	assert.Equal(t, []string{"timestamp"}, settings.PostProcess.Processors)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		"dispatch.workers":                 8,
		"dispatch.adapter_timeout_seconds": int64(5),
		"dispatch.rate_limit":              2.5,
		"adapters.disabled":                []any{"csv"},
		"adapters.example.report_name":     "Custom.xml",
		"adapters.csv.delimiter":           ";",
		"journal.enabled":                  false,
		"monitor.enabled":                  true,
		"monitor.folders":                  []string{"/reports"},
		"monitor.interval_minutes":         30,
		"postprocess.processors":           []string{},
	})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, 8, settings.Dispatch.Workers)
	assert.Equal(t, 5*time.Second, settings.Dispatch.AdapterTimeout)
	assert.InDelta(t, 2.5, settings.Dispatch.RateLimit, 0.0001)
	assert.Equal(t, []string{"csv"}, settings.Adapters.Disabled)
	assert.Equal(t, "Custom.xml", settings.Adapters.ExampleReportName)
	assert.Equal(t, ";", settings.Adapters.CSVDelimiter)
	assert.False(t, settings.Journal.Enabled)
	assert.True(t, settings.Monitor.Enabled)
	assert.Equal(t, []string{"/reports"}, settings.Monitor.Folders)
	assert.Equal(t, 30*time.Minute, settings.Monitor.Interval)
	assert.Empty(t, settings.PostProcess.Processors)
}

func TestSettingsService_Get_ZeroTimeoutIsKept(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		"dispatch.adapter_timeout_seconds": 0,
	})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Zero(t, settings.Dispatch.AdapterTimeout)
}

func TestSettingsService_Get_RateLimitFromString(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		"dispatch.rate_limit": "4",
	})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.InDelta(t, 4.0, settings.Dispatch.RateLimit, 0.0001)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Dispatch.Workers = 2
	settings.Dispatch.AdapterTimeout = 10 * time.Second
	settings.Monitor.Enabled = true
	settings.Monitor.Folders = []string{"/data"}
	settings.Monitor.Interval = 5 * time.Minute

	err := service.Save(&settings)

	require.NoError(t, err)
	assert.Equal(t, 2, store.GetInt("dispatch.workers"))
	assert.Equal(t, 10, store.GetInt("dispatch.adapter_timeout_seconds"))
	assert.Equal(t, 5, store.GetInt("monitor.interval_minutes"))
	assert.True(t, store.GetBool("monitor.enabled"))
	assert.Equal(t, []string{"/data"}, store.GetStringSlice("monitor.folders"))
	assert.Equal(t, []string{}, store.GetStringSlice("adapters.disabled"))
}

func TestSettingsService_Save_RoundTrip(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings := domain.DefaultAppSettings()
	settings.Dispatch.RateLimit = 1.5
	settings.Adapters.Disabled = []string{"generic-xml"}
	settings.Adapters.CSVDelimiter = "\t"

	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.InDelta(t, 1.5, got.Dispatch.RateLimit, 0.0001)
	assert.Equal(t, []string{"generic-xml"}, got.Adapters.Disabled)
	assert.Equal(t, "\t", got.Adapters.CSVDelimiter)
}

func TestSettingsService_Save_Nil(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	err := service.Save(nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Save_RejectsInvalid(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Dispatch.Workers = 0

	err := service.Save(&settings)

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.Keys())
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		value  string
		verify func(t *testing.T, s *domain.AppSettings)
	}{
		{
			name:  "workers",
			key:   "dispatch.workers",
			value: " 12 ",
			verify: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, 12, s.Dispatch.Workers)
			},
		},
		{
			name:  "timeout",
			key:   "dispatch.adapter_timeout_seconds",
			value: "0",
			verify: func(t *testing.T, s *domain.AppSettings) {
				assert.Zero(t, s.Dispatch.AdapterTimeout)
			},
		},
		{
			name:  "rate limit",
			key:   "dispatch.rate_limit",
			value: "0.5",
			verify: func(t *testing.T, s *domain.AppSettings) {
				assert.InDelta(t, 0.5, s.Dispatch.RateLimit, 0.0001)
			},
		},
		{
			name:  "disabled adapters",
			key:   "adapters.disabled",
			value: "csv, generic-xml,,",
			verify: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, []string{"csv", "generic-xml"}, s.Adapters.Disabled)
			},
		},
		{
			name:  "tab delimiter",
			key:   "adapters.csv.delimiter",
			value: "\t",
			verify: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, "\t", s.Adapters.CSVDelimiter)
			},
		},
		{
			name:  "journal off",
			key:   "journal.enabled",
			value: "false",
			verify: func(t *testing.T, s *domain.AppSettings) {
				assert.False(t, s.Journal.Enabled)
			},
		},
		{
			name:  "clear processors",
			key:   "postprocess.processors",
			value: "",
			verify: func(t *testing.T, s *domain.AppSettings) {
				assert.Empty(t, s.PostProcess.Processors)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())

			require.NoError(t, service.Set(tt.key, tt.value))

			settings, err := service.Get()
			require.NoError(t, err)
			tt.verify(t, settings)
		})
	}
}

func TestSettingsService_Set_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "search.mode", "hybrid"},
		{"not an integer", "dispatch.workers", "many"},
		{"too many workers", "dispatch.workers", "1000"},
		{"negative timeout", "dispatch.adapter_timeout_seconds", "-1"},
		{"not a number", "dispatch.rate_limit", "fast"},
		{"not a boolean", "journal.enabled", "maybe"},
		{"long delimiter", "adapters.csv.delimiter", ";;"},
		{"comment marker delimiter", "adapters.csv.delimiter", "#"},
		{"quote delimiter", "adapters.csv.delimiter", `"`},
		{"empty report name", "adapters.example.report_name", "  "},
		{"monitor without folders", "monitor.enabled", "true"},
		{"zero interval", "monitor.interval_minutes", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store)

			err := service.Set(tt.key, tt.value)

			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, store.Keys())
		})
	}
}

func TestSettingsService_Set_MonitorAfterFolders(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.Set("monitor.folders", "/a,/b"))
	require.NoError(t, service.Set("monitor.enabled", "true"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.True(t, settings.SchedulerConfig().Enabled)
	assert.Equal(t, []string{"/a", "/b"}, settings.Monitor.Folders)
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	keys := service.Keys()

	assert.Len(t, keys, len(settingKeys))
	for _, key := range keys {
		assert.Contains(t, settingKeys, key)
	}
	assert.Equal(t, "dispatch.workers", keys[0])
}

func TestSettingsService_Validate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		service := NewSettingsService(memory.NewConfigStore())
		assert.NoError(t, service.Validate())
	})

	t.Run("stored invalid value", func(t *testing.T) {
		store := memory.NewConfigStoreWith(map[string]any{"dispatch.workers": -3})
		service := NewSettingsService(store)
		assert.ErrorIs(t, service.Validate(), domain.ErrInvalidInput)
	})
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
