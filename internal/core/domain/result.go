package domain

import (
	"fmt"
	"time"
)

// Well-known AdapterData field keys.
const (
	FieldMeasurement = "measurement"
	FieldMeasure     = "measure"
	FieldVariable    = "variable"
	FieldValue       = "value"
)

// AdapterData is one typed data record read from a report file.
type AdapterData struct {
	// DataSource labels the origin system of the record.
	// Empty means the owning adapter's data source.
	DataSource string `json:"data_source" yaml:"data_source"`

	// DateTime is when the value was measured.
	DateTime time.Time `json:"date_time,omitzero" yaml:"date_time,omitempty"`

	// ArtifactPath identifies the measured artifact.
	ArtifactPath string `json:"artifact_path,omitempty" yaml:"artifact_path,omitempty"`

	// Fields maps field names to values.
	Fields map[string]any `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Field returns a field value and whether it was set.
func (d AdapterData) Field(name string) (any, bool) {
	v, ok := d.Fields[name]
	return v, ok
}

// AdapterFinding is a finding about an artifact, optionally linked to data records.
type AdapterFinding struct {
	DataSource   string        `json:"data_source" yaml:"data_source"`
	DateTime     time.Time     `json:"date_time,omitzero" yaml:"date_time,omitempty"`
	ArtifactPath string        `json:"artifact_path,omitempty" yaml:"artifact_path,omitempty"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty"`
	State        string        `json:"state,omitempty" yaml:"state,omitempty"`
	SubjectType  string        `json:"subject_type,omitempty" yaml:"subject_type,omitempty"`
	SubjectPath  []string      `json:"subject_path,omitempty" yaml:"subject_path,omitempty"`
	Data         []AdapterData `json:"data,omitempty" yaml:"data,omitempty"`
}

// AdapterReadResult is the output of one adapter Read.
// Ownership passes to the caller once the dispatch returns.
type AdapterReadResult struct {
	// Adapter is the name of the adapter that produced the result.
	Adapter string `json:"adapter" yaml:"adapter"`

	// DataSource is the producing adapter's declared data source.
	DataSource string `json:"data_source" yaml:"data_source"`

	Data     []AdapterData    `json:"data" yaml:"data"`
	Findings []AdapterFinding `json:"findings,omitempty" yaml:"findings,omitempty"`
}

// NewAdapterReadResult creates an empty result.
func NewAdapterReadResult() *AdapterReadResult {
	return &AdapterReadResult{Data: []AdapterData{}}
}

// AddData appends data records.
func (r *AdapterReadResult) AddData(data ...AdapterData) {
	r.Data = append(r.Data, data...)
}

// AddFinding appends findings.
func (r *AdapterReadResult) AddFinding(findings ...AdapterFinding) {
	r.Findings = append(r.Findings, findings...)
}

// Len returns the number of data records.
func (r *AdapterReadResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Data)
}

// IsEmpty reports whether the result carries no data and no findings.
func (r *AdapterReadResult) IsEmpty() bool {
	return r == nil || (len(r.Data) == 0 && len(r.Findings) == 0)
}

// ResolveDataSources fills empty record data sources with the adapter's.
// When the adapter declares DataSourceUnknown (or nothing), every record and
// finding must name its own source; the first offender yields ErrMissingDataSource.
func (r *AdapterReadResult) ResolveDataSources(adapterDataSource string) error {
	mixed := adapterDataSource == "" || adapterDataSource == DataSourceUnknown

	resolve := func(ds *string, what string, idx int) error {
		if *ds != "" {
			return nil
		}
		if mixed {
			return fmt.Errorf("%s %d: %w", what, idx, ErrMissingDataSource)
		}
		*ds = adapterDataSource
		return nil
	}

	for i := range r.Data {
		if err := resolve(&r.Data[i].DataSource, "record", i); err != nil {
			return err
		}
	}
	for i := range r.Findings {
		if err := resolve(&r.Findings[i].DataSource, "finding", i); err != nil {
			return err
		}
		for j := range r.Findings[i].Data {
			if r.Findings[i].Data[j].DataSource == "" {
				r.Findings[i].Data[j].DataSource = r.Findings[i].DataSource
			}
		}
	}
	return nil
}
