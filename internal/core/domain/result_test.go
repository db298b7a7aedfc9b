package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdapterReadResult(t *testing.T) {
	r := NewAdapterReadResult()
	require.NotNil(t, r)
	assert.NotNil(t, r.Data)
	assert.True(t, r.IsEmpty())
	assert.Equal(t, 0, r.Len())
}

func TestAdapterReadResult_Add(t *testing.T) {
	r := NewAdapterReadResult()
	r.AddData(AdapterData{ArtifactPath: "a"}, AdapterData{ArtifactPath: "b"})
	r.AddFinding(AdapterFinding{Description: "quote"})

	assert.Equal(t, 2, r.Len())
	assert.Len(t, r.Findings, 1)
	assert.False(t, r.IsEmpty())
}

func TestAdapterReadResult_NilSafe(t *testing.T) {
	var r *AdapterReadResult
	assert.Equal(t, 0, r.Len())
	assert.True(t, r.IsEmpty())
}

func TestAdapterData_Field(t *testing.T) {
	d := AdapterData{Fields: map[string]any{FieldValue: 1.5}}

	v, ok := d.Field(FieldValue)
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)

	_, ok = d.Field(FieldMeasure)
	assert.False(t, ok)
}

func TestResolveDataSources_InheritsAdapterSource(t *testing.T) {
	r := NewAdapterReadResult()
	r.AddData(AdapterData{}, AdapterData{DataSource: "Other"})
	r.AddFinding(AdapterFinding{Data: []AdapterData{{}}})

	require.NoError(t, r.ResolveDataSources("Example"))

	assert.Equal(t, "Example", r.Data[0].DataSource)
	assert.Equal(t, "Other", r.Data[1].DataSource)
	assert.Equal(t, "Example", r.Findings[0].DataSource)
	assert.Equal(t, "Example", r.Findings[0].Data[0].DataSource)
}

func TestResolveDataSources_UnknownRequiresPerRecordSource(t *testing.T) {
	ok := NewAdapterReadResult()
	ok.AddData(AdapterData{DataSource: "A"}, AdapterData{DataSource: "B"})
	assert.NoError(t, ok.ResolveDataSources(DataSourceUnknown))

	missing := NewAdapterReadResult()
	missing.AddData(AdapterData{DataSource: "A"}, AdapterData{})
	err := missing.ResolveDataSources(DataSourceUnknown)
	assert.ErrorIs(t, err, ErrMissingDataSource)
	assert.Contains(t, err.Error(), "record 1")

	finding := NewAdapterReadResult()
	finding.AddFinding(AdapterFinding{})
	assert.ErrorIs(t, finding.ResolveDataSources(""), ErrMissingDataSource)
}

func TestResolveDataSources_EmptyResult(t *testing.T) {
	r := NewAdapterReadResult()
	assert.NoError(t, r.ResolveDataSources(DataSourceUnknown))
}
