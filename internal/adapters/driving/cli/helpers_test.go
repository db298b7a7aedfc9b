package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

// executeCommand runs the root command with args and returns the combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// setupServices installs s for the duration of the test.
func setupServices(t *testing.T, s *Services) {
	t.Helper()
	SetServices(s)
	t.Cleanup(func() { SetServices(nil) })
}

func resetFlags() {
	opts = Options{}
	adaptersHTML = false
	readOutput = formatTable
	readExplain = false
	versionShort = false
	importForce = false
	importWorkers = 0
	journalLimit = 20
	journalStatus = ""
	journalOlderThan = 30 * 24 * time.Hour
	monitorHistoryLimit = 10
}

// --- Mock catalog ---

type mockCatalog struct {
	adapters []domain.AdapterInfo
}

func (m *mockCatalog) List() []domain.AdapterInfo { return m.adapters }

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

func (m *mockCatalog) SupportedExtensions() []string { return []string{".csv", ".xml"} }

func testCatalog() *mockCatalog {
	return &mockCatalog{adapters: []domain.AdapterInfo{
		{
			Name:           "Example",
			Description:    "Reads example reports.\nSee https://example.com/docs",
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

// --- Mock reader ---

type mockReader struct {
	outcome *domain.DispatchOutcome
	err     error
	path    string
}

func (m *mockReader) ReadFile(_ context.Context, path string) (*domain.DispatchOutcome, error) {
	m.path = path
	return m.outcome, m.err
}

// --- Mock batch importer ---

type mockBatch struct {
	mu      sync.Mutex
	roots   []string
	opts    domain.BatchOptions
	records []domain.ImportRecord
	err     error
}

func (m *mockBatch) Run(_ context.Context, roots []string, opts domain.BatchOptions) (*domain.BatchReport, error) {
	m.mu.Lock()
	m.roots = roots
	m.opts = opts
	m.mu.Unlock()

	report := &domain.BatchReport{Counts: make(map[domain.ImportStatus]int)}
	for _, rec := range m.records {
		if opts.Progress != nil {
			opts.Progress(rec)
		}
		report.Add(rec)
	}
	return report, m.err
}

// --- Mock watcher ---

type mockWatcher struct {
	records []domain.ImportRecord
	dir     string
	err     error
}

func (m *mockWatcher) Watch(_ context.Context, dir string, onRecord func(domain.ImportRecord)) error {
	m.dir = dir
	for _, rec := range m.records {
		onRecord(rec)
	}
	return m.err
}

// --- Mock journal ---

type mockJournal struct {
	records   []domain.ImportRecord
	last      *domain.ImportRecord
	filter    domain.JournalFilter
	olderThan time.Duration
	pruned    int
	err       error
}

func (m *mockJournal) List(_ context.Context, filter domain.JournalFilter) ([]domain.ImportRecord, error) {
	m.filter = filter
	return m.records, m.err
}

func (m *mockJournal) Last(_ context.Context, _ string) (*domain.ImportRecord, error) {
	if m.last == nil {
		return nil, domain.ErrNotFound
	}
	return m.last, m.err
}

func (m *mockJournal) Prune(_ context.Context, olderThan time.Duration) (int, error) {
	m.olderThan = olderThan
	return m.pruned, m.err
}

// --- Mock scheduler ---

type mockScheduler struct {
	started bool
	stopped bool
	history []domain.TaskResult
	limit   int
	err     error
}

func (m *mockScheduler) Start(_ context.Context) error {
	m.started = true
	return m.err
}

func (m *mockScheduler) Stop() error {
	m.stopped = true
	return nil
}

func (m *mockScheduler) History(_ context.Context, limit int) ([]domain.TaskResult, error) {
	m.limit = limit
	return m.history, m.err
}
