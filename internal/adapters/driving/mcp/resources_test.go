package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

func TestExtractAdapterName(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "simple name",
			uri:      "mqc://adapters/Example",
			expected: "Example",
		},
		{
			name:     "encoded space",
			uri:      "mqc://adapters/Generic%20XML",
			expected: "Generic XML",
		},
		{
			name:     "invalid prefix",
			uri:      "file://adapters/Example",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "mqc://adapters/Example/extra",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractAdapterName(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleAdaptersResource(t *testing.T) {
	server := newTestServer(t, &Ports{})

	result, err := server.handleAdaptersResource(context.Background(), makeReadResourceRequest("mqc://adapters"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	text := result.Contents[0].Text
	assert.Contains(t, text, `"name": "Example"`)
	assert.Contains(t, text, `"name": "Generic XML"`)
	assert.Less(t, strings.Index(text, "Example"), strings.Index(text, "Generic XML"))
}

func TestServer_handleAdaptersResource_Empty(t *testing.T) {
	server := newTestServer(t, &Ports{Catalog: &mockCatalog{}})

	result, err := server.handleAdaptersResource(context.Background(), makeReadResourceRequest("mqc://adapters"))

	require.NoError(t, err)
	assert.Equal(t, "[]", result.Contents[0].Text)
}

func TestServer_handleAdapterResource(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, &Ports{})

	t.Run("returns adapter", func(t *testing.T) {
		result, err := server.handleAdapterResource(ctx, makeReadResourceRequest("mqc://adapters/Generic%20XML"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, `"data_source": "Unknown"`)
	})

	t.Run("unknown adapter is not found", func(t *testing.T) {
		_, err := server.handleAdapterResource(ctx, makeReadResourceRequest("mqc://adapters/Missing"))

		require.Error(t, err)
	})

	t.Run("invalid URI is not found", func(t *testing.T) {
		_, err := server.handleAdapterResource(ctx, makeReadResourceRequest("mqc://invalid"))

		require.Error(t, err)
	})
}

func TestServer_handleJournalResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns recent imports", func(t *testing.T) {
		journal := &mockJournal{records: []domain.ImportRecord{{
			Path:      "/r/Report.xml",
			Adapter:   "Example",
			Status:    domain.ImportStatusImported,
			Records:   4,
			StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}}}
		server := newTestServer(t, &Ports{Journal: journal})

		result, err := server.handleJournalResource(ctx, makeReadResourceRequest("mqc://journal"))

		require.NoError(t, err)
		assert.Equal(t, journalLimit, journal.filter.Limit)
		text := result.Contents[0].Text
		assert.Contains(t, text, `"status": "imported"`)
		assert.Contains(t, text, `"started_at": "2026-01-02T03:04:05Z"`)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{Journal: &mockJournal{err: errors.New("database error")}})

		_, err := server.handleJournalResource(ctx, makeReadResourceRequest("mqc://journal"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing journal")
	})
}
