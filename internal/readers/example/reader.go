// Package example provides the reference MQC adapter for Report.Example.xml files.
package example

import (
	"context"
	"fmt"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/readers/field"
)

// Ensure Reader implements the interfaces.
var (
	_ driven.Adapter   = (*Reader)(nil)
	_ driven.Versioned = (*Reader)(nil)
)

// Adapter metadata.
const (
	Name       = "Example"
	DataSource = "Example"
	Version    = "1.0.0"
)

// Reader reads example XML reports. A report looks like:
//
//	<Report>
//	  <Data artifact="src/app" measurement="Coverage" measure="Line" variable="percent" value="81.5"/>
//	  <Finding artifact="src/app/main.go" state="open" description="Uncovered branch"/>
//	</Report>
//
// Values may also be given as child elements instead of attributes.
type Reader struct {
	reportName string
}

// Option configures a Reader.
type Option func(*Reader)

// WithReportName sets the file name the reader accepts.
func WithReportName(name string) Option {
	return func(r *Reader) {
		if name != "" {
			r.reportName = name
		}
	}
}

// New creates an example reader.
func New(opts ...Option) *Reader {
	r := &Reader{reportName: domain.DefaultExampleReportName}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the adapter name.
func (r *Reader) Name() string { return Name }

// Description returns the adapter description.
func (r *Reader) Description() string {
	return "Reads " + r.reportName + " files produced by the example data source.\n" +
		"Each Data element becomes one record and each Finding element one finding."
}

// Priority places the reader ahead of the base adapters.
func (r *Reader) Priority() int { return domain.PriorityCustom }

// DataSource returns the data source label.
func (r *Reader) DataSource() string { return DataSource }

// FileExtensions returns the handled extensions.
func (r *Reader) FileExtensions() []string { return []string{".xml"} }

// Version returns the adapter version.
func (r *Reader) Version() string { return Version }

// ReportName returns the accepted file name.
func (r *Reader) ReportName() string { return r.reportName }

// IsValid accepts files named exactly like the configured report.
func (r *Reader) IsValid(_ context.Context, fc *domain.FileReaderContext) (bool, error) {
	return fc.Name() == r.reportName, nil
}

// Read parses the report.
func (r *Reader) Read(ctx context.Context, fc *domain.FileReaderContext) (*domain.AdapterReadResult, error) {
	doc, err := fc.XMLDocument()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", fc.Name(), err)
	}

	result := domain.NewAdapterReadResult()

	// Data nested in a Finding belongs to that finding, not to the result.
	var walk func(node *domain.XMLNode) error
	walk = func(node *domain.XMLNode) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch node.Name {
		case "Data":
			data, err := readData(node)
			if err != nil {
				return fmt.Errorf("data %d: %w", len(result.Data), err)
			}
			result.AddData(data)
			return nil
		case "Finding":
			finding, err := readFinding(node)
			if err != nil {
				return fmt.Errorf("finding %d: %w", len(result.Findings), err)
			}
			result.AddFinding(finding)
			return nil
		}
		for _, child := range node.Children {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(doc); err != nil {
		return nil, err
	}
	return result, nil
}

// dataFields are copied into AdapterData.Fields when present.
var dataFields = []string{
	domain.FieldMeasurement,
	domain.FieldMeasure,
	domain.FieldVariable,
	domain.FieldValue,
}

func readData(node *domain.XMLNode) (domain.AdapterData, error) {
	data := domain.AdapterData{
		DataSource:   lookup(node, field.DataSource),
		ArtifactPath: lookup(node, field.Artifact),
		Fields:       make(map[string]any, len(dataFields)),
	}

	for _, name := range dataFields {
		if v := lookup(node, name); v != "" {
			data.Fields[name] = field.Value(v)
		}
	}
	if _, ok := data.Fields[domain.FieldValue]; !ok {
		return data, fmt.Errorf("missing %s", domain.FieldValue)
	}

	if ts := lookup(node, field.DateTime); ts != "" {
		t, err := field.Time(ts)
		if err != nil {
			return data, err
		}
		data.DateTime = t
	}
	return data, nil
}

func readFinding(node *domain.XMLNode) (domain.AdapterFinding, error) {
	finding := domain.AdapterFinding{
		DataSource:   lookup(node, field.DataSource),
		ArtifactPath: lookup(node, field.Artifact),
		Description:  lookup(node, "description"),
		State:        lookup(node, "state"),
		SubjectType:  lookup(node, "subject_type"),
	}
	for _, s := range node.ChildrenNamed("Subject") {
		finding.SubjectPath = append(finding.SubjectPath, s.Text)
	}

	if ts := lookup(node, field.DateTime); ts != "" {
		t, err := field.Time(ts)
		if err != nil {
			return finding, err
		}
		finding.DateTime = t
	}

	for i, child := range node.ChildrenNamed("Data") {
		data, err := readData(child)
		if err != nil {
			return finding, fmt.Errorf("data %d: %w", i, err)
		}
		finding.Data = append(finding.Data, data)
	}
	return finding, nil
}

// lookup returns an attribute, or the text of a child element with the same name.
func lookup(node *domain.XMLNode, name string) string {
	if v, ok := node.Attr(name); ok {
		return v
	}
	return node.ChildText(name)
}
