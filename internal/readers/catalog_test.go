package readers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/services"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/readers/csv"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/readers/example"
)

func TestNewCatalog(t *testing.T) {
	c := NewCatalog()

	require.NotNil(t, c)
	assert.Empty(t, c.Names())
}

func TestCatalog_Build(t *testing.T) {
	c := NewCatalog()
	c.Register("custom", func(cfg map[string]any) (driven.Adapter, error) {
		return example.New(example.WithReportName(cfg["file"].(string))), nil
	})

	adapter, err := c.Build("custom", map[string]any{"file": "My.xml"})

	require.NoError(t, err)
	assert.Equal(t, "My.xml", adapter.(*example.Reader).ReportName())
}

func TestCatalog_Build_Unknown(t *testing.T) {
	_, err := NewCatalog().Build("missing", nil)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalog_Build_BuilderError(t *testing.T) {
	c := NewCatalog()
	c.Register("broken", func(map[string]any) (driven.Adapter, error) {
		return nil, errors.New("boom")
	})

	_, err := c.Build("broken", nil)

	assert.EqualError(t, err, "boom")
}

func TestRegisterDefaults(t *testing.T) {
	c := DefaultCatalog()

	assert.Equal(t, []string{"CSV", "Example", "Generic XML"}, c.Names())
	assert.True(t, c.Has("Example"))
	assert.False(t, c.Has("example"))
}

func TestBuildEnabled_Defaults(t *testing.T) {
	adapters, err := DefaultCatalog().BuildEnabled(domain.DefaultAppSettings())

	require.NoError(t, err)
	require.Len(t, adapters, 3)
	for _, a := range adapters {
		assert.Equal(t, a.Name(), driven.InfoOf(a).Name)
	}
}

func TestBuildEnabled_AppliesSettings(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Adapters.Disabled = []string{"Generic XML"}
	settings.Adapters.ExampleReportName = "Nightly.xml"
	settings.Adapters.CSVDelimiter = ";"

	adapters, err := DefaultCatalog().BuildEnabled(settings)

	require.NoError(t, err)
	require.Len(t, adapters, 2)
	assert.Equal(t, ';', adapters[0].(*csv.Reader).Delimiter())
	assert.Equal(t, "Nightly.xml", adapters[1].(*example.Reader).ReportName())
}

func TestBuildEnabled_UnknownDisabled(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Adapters.Disabled = []string{"Nope"}

	_, err := DefaultCatalog().BuildEnabled(settings)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildEnabled_BadDelimiter(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Adapters.CSVDelimiter = "::"

	_, err := DefaultCatalog().BuildEnabled(settings)

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorContains(t, err, "build CSV")
}

func TestBuildEnabled_CommentMarkerDelimiter(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Adapters.CSVDelimiter = "#"

	_, err := DefaultCatalog().BuildEnabled(settings)

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// The built-in adapters register cleanly and dispatch in priority order.
func TestBuiltins_Dispatch(t *testing.T) {
	adapters, err := DefaultCatalog().BuildEnabled(domain.DefaultAppSettings())
	require.NoError(t, err)

	registry := services.NewAdapterRegistry()
	require.NoError(t, registry.RegisterAll(adapters...))
	engine := services.NewDispatchEngine(registry)

	tests := []struct {
		name        string
		file        string
		content     string
		wantAdapter string
		wantErr     error
	}{
		{
			name:        "example report wins over generic",
			file:        "Report.Example.xml",
			content:     `<Report><Data value="1"/></Report>`,
			wantAdapter: "Example",
		},
		{
			name:        "other xml falls back to generic",
			file:        "other.xml",
			content:     `<R><M datasource="X" value="1"/></R>`,
			wantAdapter: "Generic XML",
		},
		{
			name:        "csv",
			file:        "m.csv",
			content:     "artifact,value\na,1\n",
			wantAdapter: "CSV",
		},
		{
			name:    "malformed xml",
			file:    "broken.xml",
			content: `<R>`,
			wantErr: domain.ErrNoValidAdapter,
		},
		{
			name:    "unsupported",
			file:    "notes.txt",
			content: "hello",
			wantErr: domain.ErrUnsupportedFileType,
		},
		{
			name:        "empty datasource attribute is skipped",
			file:        "unlabelled.xml",
			content:     `<R><M datasource="X"/><N datasource=""/></R>`,
			wantAdapter: "Generic XML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := domain.NewFileReaderContextFromBytes(tt.file, []byte(tt.content))

			outcome, err := engine.Dispatch(context.Background(), fc)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAdapter, outcome.Adapter)
			assert.Equal(t, tt.wantAdapter, outcome.Result.Adapter)
		})
	}
}
