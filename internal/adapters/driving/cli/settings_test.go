package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/adapters/driven/storage/memory"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/services"
)

func newTestSettings(t *testing.T, values map[string]any) *services.SettingsService {
	t.Helper()
	return services.NewSettingsService(memory.NewConfigStoreWith(values))
}

func TestSettingsCmd_HasSubcommands(t *testing.T) {
	var names []string
	for _, c := range settingsCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "show")
	assert.Contains(t, names, "set")
}

func TestSettingsShow_Defaults(t *testing.T) {
	setupServices(t, &Services{Settings: newTestSettings(t, nil)})

	out, err := executeCommand(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "[Dispatch]")
	assert.Contains(t, out, "Workers: 4")
	assert.Contains(t, out, "Adapter timeout: 30s")
	assert.Contains(t, out, "Rate limit: unlimited")
	assert.Contains(t, out, "Example report name: Report.Example.xml")
	assert.Contains(t, out, "Disabled: (none)")
	assert.Contains(t, out, "Processors: timestamp")
	assert.NotContains(t, out, "Warning:")
}

func TestSettingsCmd_DefaultsToShow(t *testing.T) {
	setupServices(t, &Services{Settings: newTestSettings(t, nil)})

	out, err := executeCommand(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[Monitor]")
}

func TestSettingsShow_WarnsOnInvalidStoredValue(t *testing.T) {
	setupServices(t, &Services{Settings: newTestSettings(t, map[string]any{
		"dispatch.workers": 0,
	})})

	out, err := executeCommand(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning: dispatch.workers must be between 1 and 256")
}

func TestSettingsSet(t *testing.T) {
	settings := newTestSettings(t, nil)
	setupServices(t, &Services{Settings: settings})

	out, err := executeCommand(t, "settings", "set", "dispatch.rate_limit", "2.5")

	require.NoError(t, err)
	assert.Contains(t, out, "dispatch.rate_limit updated.")

	got, err := settings.Get()
	require.NoError(t, err)
	assert.InDelta(t, 2.5, got.Dispatch.RateLimit, 0.0001)

	out, err = executeCommand(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Rate limit: 2.5 files/s")
}

func TestSettingsSet_Errors(t *testing.T) {
	setupServices(t, &Services{Settings: newTestSettings(t, nil)})

	_, err := executeCommand(t, "settings", "set", "search.mode", "hybrid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown setting "search.mode"`)

	_, err = executeCommand(t, "settings", "set", "dispatch.workers")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestDescribeHelpers(t *testing.T) {
	assert.Equal(t, "none", describeTimeout(0))
	assert.Equal(t, "unlimited", describeRate(0))
	assert.Equal(t, "0.5 files/s", describeRate(0.5))
	assert.Equal(t, "(none)", describeList(nil))
	assert.Equal(t, "a, b", describeList([]string{"a", "b"}))
}
