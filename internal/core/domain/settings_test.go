package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, DefaultWorkers, s.Dispatch.Workers)
	assert.Equal(t, 30*time.Second, s.Dispatch.AdapterTimeout)
	assert.Zero(t, s.Dispatch.RateLimit)
	assert.Empty(t, s.Adapters.Disabled)
	assert.Equal(t, "Report.Example.xml", s.Adapters.ExampleReportName)
	assert.Equal(t, ",", s.Adapters.CSVDelimiter)
	assert.True(t, s.Journal.Enabled)
	assert.False(t, s.Monitor.Enabled)
	assert.Equal(t, 15*time.Minute, s.Monitor.Interval)
	assert.Equal(t, []string{"timestamp"}, s.PostProcess.Processors)
}

func TestAdapterSettings_IsDisabled(t *testing.T) {
	s := AdapterSettings{Disabled: []string{"CSV"}}
	assert.True(t, s.IsDisabled("CSV"))
	assert.False(t, s.IsDisabled("Example"))
}

func TestAppSettings_SchedulerConfig(t *testing.T) {
	s := DefaultAppSettings()
	cfg := s.SchedulerConfig()
	assert.False(t, cfg.Enabled, "disabled without monitor folders")

	s.Monitor.Enabled = true
	s.Monitor.Folders = []string{"/data/in"}
	s.Monitor.Interval = 5 * time.Minute
	cfg = s.SchedulerConfig()

	assert.True(t, cfg.Enabled)
	task := cfg.GetTaskConfig(TaskIDFolderScan)
	assert.True(t, task.Enabled)
	assert.Equal(t, 5*time.Minute, task.Interval)
}
