package mcp

import (
	"context"
	"slices"
	"time"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

// mockCatalog is a mock implementation of driving.AdapterCatalog.
type mockCatalog struct {
	adapters []domain.AdapterInfo
}

func (m *mockCatalog) List() []domain.AdapterInfo {
	return m.adapters
}

func (m *mockCatalog) Info(name string) (domain.AdapterInfo, error) {
	for _, a := range m.adapters {
		if a.Name == name {
			return a, nil
		}
	}
	return domain.AdapterInfo{}, domain.ErrNotFound
}

func (m *mockCatalog) Candidates(fileName string) []domain.AdapterInfo {
	ext := domain.ExtensionOf(fileName)
	var out []domain.AdapterInfo
	for _, a := range m.adapters {
		if a.Handles(ext) {
			out = append(out, a)
		}
	}
	return out
}

func (m *mockCatalog) SupportedExtensions() []string {
	var exts []string
	for _, a := range m.adapters {
		for _, e := range a.FileExtensions {
			if !slices.Contains(exts, e) {
				exts = append(exts, e)
			}
		}
	}
	slices.Sort(exts)
	return exts
}

func testCatalog() *mockCatalog {
	return &mockCatalog{adapters: []domain.AdapterInfo{
		{
			Name:           "Example",
			Description:    "Reads example reports",
			Priority:       domain.PriorityCustom,
			DataSource:     "Example",
			FileExtensions: []string{".xml"},
			Version:        "1.0.0",
		},
		{
			Name:           "CSV",
			Description:    "Reads CSV tables",
			Priority:       50,
			DataSource:     "CSV",
			FileExtensions: []string{".csv", ".tsv"},
		},
		{
			Name:           "Generic XML",
			Description:    "Reads tagged XML elements",
			Priority:       domain.PriorityBaseMin,
			DataSource:     domain.DataSourceUnknown,
			FileExtensions: []string{".xml"},
		},
	}}
}

// mockReader is a mock implementation of driving.Reader.
type mockReader struct {
	outcome *domain.DispatchOutcome
	err     error
	path    string
}

func (m *mockReader) ReadFile(_ context.Context, path string) (*domain.DispatchOutcome, error) {
	m.path = path
	return m.outcome, m.err
}

// mockJournal is a mock implementation of driving.JournalService.
type mockJournal struct {
	records []domain.ImportRecord
	filter  domain.JournalFilter
	err     error
}

func (m *mockJournal) List(_ context.Context, filter domain.JournalFilter) ([]domain.ImportRecord, error) {
	m.filter = filter
	return m.records, m.err
}

func (m *mockJournal) Last(_ context.Context, _ string) (*domain.ImportRecord, error) {
	return nil, domain.ErrNotFound
}

func (m *mockJournal) Prune(_ context.Context, _ time.Duration) (int, error) {
	return 0, m.err
}
