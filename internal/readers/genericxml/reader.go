// Package genericxml provides a fallback adapter for XML reports that label
// each record with its own data source.
package genericxml

import (
	"context"
	"fmt"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/readers/field"
)

// Ensure Reader implements the interface.
var _ driven.Adapter = (*Reader)(nil)

// Name is the adapter name.
const Name = "Generic XML"

// Reader turns every element carrying a datasource attribute into a record.
// Its remaining attributes become fields; non-empty element text is stored as
// the value unless a value attribute is present.
type Reader struct{}

// New creates a generic XML reader.
func New() *Reader {
	return &Reader{}
}

// Name returns the adapter name.
func (r *Reader) Name() string { return Name }

// Description returns the adapter description.
func (r *Reader) Description() string {
	return "Fallback reader for well-formed XML reports.\n" +
		"Elements with a datasource attribute are imported as records."
}

// Priority places the reader at the bottom of the base adapter band.
func (r *Reader) Priority() int { return domain.PriorityBaseMin }

// DataSource is Unknown; every record names its own source.
func (r *Reader) DataSource() string { return domain.DataSourceUnknown }

// FileExtensions returns the handled extensions.
func (r *Reader) FileExtensions() []string { return []string{".xml"} }

// IsValid accepts any well-formed XML document.
func (r *Reader) IsValid(_ context.Context, fc *domain.FileReaderContext) (bool, error) {
	if _, err := fc.XMLDocument(); err != nil {
		return false, nil
	}
	return true, nil
}

// Read collects the labelled elements in document order.
func (r *Reader) Read(ctx context.Context, fc *domain.FileReaderContext) (*domain.AdapterReadResult, error) {
	doc, err := fc.XMLDocument()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", fc.Name(), err)
	}

	result := domain.NewAdapterReadResult()
	for _, node := range labelled(doc) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := toData(node)
		if err != nil {
			return nil, fmt.Errorf("element %s (record %d): %w", node.Name, len(result.Data), err)
		}
		result.AddData(data)
	}
	return result, nil
}

// labelled returns the elements with a non-empty datasource attribute.
func labelled(root *domain.XMLNode) []*domain.XMLNode {
	var out []*domain.XMLNode
	var walk func(*domain.XMLNode)
	walk = func(n *domain.XMLNode) {
		if ds, ok := dataSourceAttr(n); ok && ds != "" {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}

func dataSourceAttr(n *domain.XMLNode) (string, bool) {
	for name, v := range n.Attrs {
		if field.Key(name) == field.DataSource {
			return v, true
		}
	}
	return "", false
}

func toData(node *domain.XMLNode) (domain.AdapterData, error) {
	data := domain.AdapterData{
		Fields: map[string]any{"element": node.Name},
	}

	for name, raw := range node.Attrs {
		switch key := field.Key(name); key {
		case field.DataSource:
			data.DataSource = raw
		case field.Artifact:
			data.ArtifactPath = raw
		case field.DateTime:
			t, err := field.Time(raw)
			if err != nil {
				return data, err
			}
			data.DateTime = t
		default:
			data.Fields[key] = field.Value(raw)
		}
	}

	if _, ok := data.Fields[domain.FieldValue]; !ok && node.Text != "" {
		data.Fields[domain.FieldValue] = field.Value(node.Text)
	}
	return data, nil
}
