// Package csv provides an adapter for delimited measurement exports.
package csv

import (
	"bytes"
	"context"
	encsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/readers/field"
)

// Ensure Reader implements the interface.
var _ driven.Adapter = (*Reader)(nil)

// Adapter metadata.
const (
	Name       = "CSV"
	DataSource = "CSV"
	priority   = 50
)

// commentMarker starts a line that is skipped. It cannot be the delimiter.
const commentMarker = '#'

// Reader reads CSV and TSV files with a header row. Each subsequent row becomes
// one record; the artifact, datetime and datasource columns map onto the record
// itself and all other non-empty cells become fields.
type Reader struct {
	delimiter rune
}

// Option configures a Reader.
type Option func(*Reader)

// WithDelimiter sets the field separator for .csv files. .tsv files always use tabs.
// Zero and the comment marker leave the default in place.
func WithDelimiter(d rune) Option {
	return func(r *Reader) {
		if d != 0 && d != commentMarker {
			r.delimiter = d
		}
	}
}

// New creates a CSV reader.
func New(opts ...Option) *Reader {
	r := &Reader{delimiter: ','}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ParseDelimiter converts a single-character setting into a rune.
func ParseDelimiter(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter %q must be a single character: %w", s, domain.ErrInvalidInput)
	}
	d, _ := utf8.DecodeRuneInString(s)
	if d == '"' || d == '\r' || d == '\n' || d == commentMarker || d == utf8.RuneError {
		return 0, fmt.Errorf("delimiter %q is not allowed: %w", s, domain.ErrInvalidInput)
	}
	return d, nil
}

// Name returns the adapter name.
func (r *Reader) Name() string { return Name }

// Description returns the adapter description.
func (r *Reader) Description() string {
	return "Reads delimited measurement exports with a header row.\n" +
		"Rows may carry their own source in a datasource column."
}

// Priority returns the probe order.
func (r *Reader) Priority() int { return priority }

// DataSource returns the label used for rows without a datasource column.
func (r *Reader) DataSource() string { return DataSource }

// FileExtensions returns the handled extensions.
func (r *Reader) FileExtensions() []string { return []string{".csv", ".tsv"} }

// Delimiter returns the configured .csv separator.
func (r *Reader) Delimiter() rune { return r.delimiter }

// IsValid accepts files whose first row has at least one named column.
func (r *Reader) IsValid(_ context.Context, fc *domain.FileReaderContext) (bool, error) {
	data, err := fc.Bytes()
	if err != nil {
		return false, err
	}
	header, err := r.newReader(fc, data).Read()
	if err != nil {
		return false, nil
	}
	for _, col := range header {
		if field.Key(col) != "" {
			return true, nil
		}
	}
	return false, nil
}

// Read converts every row after the header into a record.
func (r *Reader) Read(ctx context.Context, fc *domain.FileReaderContext) (*domain.AdapterReadResult, error) {
	data, err := fc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", fc.Name(), err)
	}

	cr := r.newReader(fc, data)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	columns := make([]string, len(header))
	for i, col := range header {
		columns[i] = field.Key(col)
	}

	result := domain.NewAdapterReadResult()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		rec, err := toData(columns, row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		result.AddData(rec)
	}
	return result, nil
}

func (r *Reader) newReader(fc *domain.FileReaderContext, data []byte) *encsv.Reader {
	cr := encsv.NewReader(bytes.NewReader(data))
	cr.Comma = r.delimiter
	if fc.Extension() == ".tsv" {
		cr.Comma = '\t'
	}
	cr.Comment = commentMarker
	// Trimming would swallow empty fields between whitespace delimiters.
	cr.TrimLeadingSpace = !unicode.IsSpace(cr.Comma)
	return cr
}

func toData(columns, row []string) (domain.AdapterData, error) {
	rec := domain.AdapterData{Fields: make(map[string]any, len(columns))}
	for i, col := range columns {
		cell := row[i]
		if col == "" || cell == "" {
			continue
		}
		switch col {
		case field.DataSource:
			rec.DataSource = cell
		case field.Artifact:
			rec.ArtifactPath = cell
		case field.DateTime:
			t, err := field.Time(cell)
			if err != nil {
				return rec, err
			}
			rec.DateTime = t
		default:
			rec.Fields[col] = field.Value(cell)
		}
	}
	return rec, nil
}
