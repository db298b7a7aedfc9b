package example

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
)

const sampleReport = `<?xml version="1.0" encoding="utf-8"?>
<Report>
  <Data artifact="src/app" measurement="Coverage" measure="Line" variable="percent" value="81.5" datetime="2024-05-01T10:00:00Z"/>
  <Data>
    <artifact>src/lib</artifact>
    <measurement>Tests</measurement>
    <measure>Count</measure>
    <value>120</value>
    <datasource>JUnit</datasource>
  </Data>
  <Finding artifact="src/app/main.go" state="open" description="Uncovered branch" subject_type="Function">
    <Subject>main</Subject>
    <Subject>run</Subject>
    <Data measurement="Coverage" value="0"/>
  </Finding>
</Report>`

func TestNew_Defaults(t *testing.T) {
	r := New()

	assert.Equal(t, Name, r.Name())
	assert.Equal(t, DataSource, r.DataSource())
	assert.Equal(t, domain.PriorityCustom, r.Priority())
	assert.Equal(t, []string{".xml"}, r.FileExtensions())
	assert.Equal(t, domain.DefaultExampleReportName, r.ReportName())
	assert.NoError(t, domain.ValidateDescription(r.Description()))
}

func TestInfoOf(t *testing.T) {
	info := driven.InfoOf(New())

	assert.Equal(t, "Example", info.Name)
	assert.Equal(t, Version, info.Version)
	assert.True(t, info.Handles("XML"))
}

func TestWithReportName(t *testing.T) {
	r := New(WithReportName("Custom.xml"))
	assert.Equal(t, "Custom.xml", r.ReportName())

	r = New(WithReportName(""))
	assert.Equal(t, domain.DefaultExampleReportName, r.ReportName())
}

func TestReader_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		opts     []Option
		want     bool
	}{
		{"default name", "Report.Example.xml", nil, true},
		{"other name", "Report.Other.xml", nil, false},
		{"case differs", "report.example.xml", nil, false},
		{"custom name", "Custom.xml", []Option{WithReportName("Custom.xml")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := domain.NewFileReaderContextFromBytes("/reports/"+tt.fileName, nil)

			ok, err := New(tt.opts...).IsValid(context.Background(), fc)

			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestReader_IsValid_DoesNotLoadContent(t *testing.T) {
	loads := 0
	fc := domain.NewFileReaderContext("/r/Report.Example.xml", func() ([]byte, error) {
		loads++
		return nil, nil
	})

	_, err := New().IsValid(context.Background(), fc)

	require.NoError(t, err)
	assert.Zero(t, loads)
}

func TestReader_Read(t *testing.T) {
	fc := domain.NewFileReaderContextFromBytes("Report.Example.xml", []byte(sampleReport))

	result, err := New().Read(context.Background(), fc)

	require.NoError(t, err)
	require.Len(t, result.Data, 2)

	first := result.Data[0]
	assert.Equal(t, "src/app", first.ArtifactPath)
	assert.Empty(t, first.DataSource)
	assert.Equal(t, "Coverage", first.Fields[domain.FieldMeasurement])
	assert.Equal(t, "Line", first.Fields[domain.FieldMeasure])
	assert.Equal(t, "percent", first.Fields[domain.FieldVariable])
	assert.Equal(t, 81.5, first.Fields[domain.FieldValue])
	assert.True(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC).Equal(first.DateTime))

	second := result.Data[1]
	assert.Equal(t, "src/lib", second.ArtifactPath)
	assert.Equal(t, "JUnit", second.DataSource)
	assert.Equal(t, int64(120), second.Fields[domain.FieldValue])
	assert.True(t, second.DateTime.IsZero())
	assert.NotContains(t, second.Fields, domain.FieldVariable)

	require.Len(t, result.Findings, 1)
	finding := result.Findings[0]
	assert.Equal(t, "src/app/main.go", finding.ArtifactPath)
	assert.Equal(t, "open", finding.State)
	assert.Equal(t, "Uncovered branch", finding.Description)
	assert.Equal(t, "Function", finding.SubjectType)
	assert.Equal(t, []string{"main", "run"}, finding.SubjectPath)
	require.Len(t, finding.Data, 1)
	assert.Equal(t, int64(0), finding.Data[0].Fields[domain.FieldValue])
}

func TestReader_Read_ResolvesDataSources(t *testing.T) {
	fc := domain.NewFileReaderContextFromBytes("Report.Example.xml", []byte(sampleReport))

	result, err := New().Read(context.Background(), fc)
	require.NoError(t, err)

	require.NoError(t, result.ResolveDataSources(DataSource))
	assert.Equal(t, "Example", result.Data[0].DataSource)
	assert.Equal(t, "JUnit", result.Data[1].DataSource)
	assert.Equal(t, "Example", result.Findings[0].Data[0].DataSource)
}

func TestReader_Read_EmptyReport(t *testing.T) {
	fc := domain.NewFileReaderContextFromBytes("Report.Example.xml", []byte(`<Report/>`))

	result, err := New().Read(context.Background(), fc)

	require.NoError(t, err)
	assert.True(t, result.IsEmpty())
	assert.NotNil(t, result.Data)
}

func TestReader_Read_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"malformed", `<Report><Data>`, "parse Report.Example.xml"},
		{"missing value", `<Report><Data measurement="x"/></Report>`, "data 0: missing value"},
		{"bad datetime", `<Report><Data value="1" datetime="soon"/></Report>`, "unrecognised timestamp"},
		{"bad finding", `<Report><Finding datetime="never"/></Report>`, "finding 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := domain.NewFileReaderContextFromBytes("Report.Example.xml", []byte(tt.content))

			_, err := New().Read(context.Background(), fc)

			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestReader_Read_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fc := domain.NewFileReaderContextFromBytes("Report.Example.xml", []byte(sampleReport))

	_, err := New().Read(ctx, fc)

	assert.ErrorIs(t, err, context.Canceled)
}
