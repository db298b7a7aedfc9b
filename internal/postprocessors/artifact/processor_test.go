package artifact

import (
	"context"
	"testing"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

func TestProcessor_Name(t *testing.T) {
	if got := New().Name(); got != "artifact" {
		t.Errorf("expected 'artifact', got %q", got)
	}
}

func TestProcessor_Process(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"/reports/Report.Example.xml", "Report.Example"},
		{"/reports/coverage.CSV", "coverage"},
		{"/reports/noext", "noext"},
		{"/reports/.xml", ".xml"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			fc := domain.NewFileReaderContextFromBytes(tt.file, nil)
			result := domain.NewAdapterReadResult()
			result.AddData(domain.AdapterData{}, domain.AdapterData{ArtifactPath: "kept"})
			result.AddFinding(domain.AdapterFinding{Data: []domain.AdapterData{{}}})

			if err := New().Process(context.Background(), fc, result); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := result.Data[0].ArtifactPath; got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if got := result.Data[1].ArtifactPath; got != "kept" {
				t.Errorf("existing artifact overwritten: %q", got)
			}
			if got := result.Findings[0].ArtifactPath; got != tt.want {
				t.Errorf("finding: expected %q, got %q", tt.want, got)
			}
			if got := result.Findings[0].Data[0].ArtifactPath; got != tt.want {
				t.Errorf("finding data: expected %q, got %q", tt.want, got)
			}
		})
	}
}
