package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for mqc resources.
	uriScheme = "mqc://"

	// journalLimit caps the entries served by the journal resource.
	journalLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "adapters",
		Name:        "adapters",
		Description: "All registered report adapters in priority order",
		MIMEType:    "application/json",
	}, s.handleAdaptersResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "adapters/{name}",
		Name:        "adapter",
		Description: "Metadata of a single adapter",
		MIMEType:    "application/json",
	}, s.handleAdapterResource)

	if s.ports.Journal != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "journal",
			Name:        "journal",
			Description: "Most recent file imports",
			MIMEType:    "application/json",
		}, s.handleJournalResource)
	}
}

func (s *Server) handleAdaptersResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	infos := s.ports.Catalog.List()
	adapters := make([]AdapterOutput, len(infos))
	for i, info := range infos {
		adapters[i] = toAdapterOutput(info)
	}
	return jsonResource(req.Params.URI, adapters)
}

func (s *Server) handleAdapterResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractAdapterName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	info, err := s.ports.Catalog.Info(name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting adapter: %w", err)
	}
	return jsonResource(req.Params.URI, toAdapterOutput(info))
}

func (s *Server) handleJournalResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	records, err := s.ports.Journal.List(ctx, domain.JournalFilter{Limit: journalLimit})
	if err != nil {
		return nil, fmt.Errorf("listing journal: %w", err)
	}

	type entry struct {
		Path      string `json:"path"`
		Adapter   string `json:"adapter,omitempty"`
		Status    string `json:"status"`
		Records   int    `json:"records"`
		Findings  int    `json:"findings"`
		Error     string `json:"error,omitempty"`
		StartedAt string `json:"started_at"`
	}

	entries := make([]entry, len(records))
	for i := range records {
		entries[i] = entry{
			Path:      records[i].Path,
			Adapter:   records[i].Adapter,
			Status:    string(records[i].Status),
			Records:   records[i].Records,
			Findings:  records[i].Findings,
			Error:     records[i].Error,
			StartedAt: records[i].StartedAt.Format(time.RFC3339),
		}
	}
	return jsonResource(req.Params.URI, entries)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractAdapterName extracts the adapter name from a URI like mqc://adapters/{name}.
// Names containing spaces arrive percent-encoded.
func extractAdapterName(uri string) string {
	const prefix = uriScheme + "adapters/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil || strings.Contains(name, "/") {
		return ""
	}
	return name
}
