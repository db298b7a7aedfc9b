package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/connectors/filesystem"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

// defaultRecordLimit caps the records returned by read_file.
const defaultRecordLimit = 100

// AdapterOutput describes one registered adapter.
type AdapterOutput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Priority    int      `json:"priority"`
	DataSource  string   `json:"data_source"`
	Extensions  []string `json:"extensions"`
	Version     string   `json:"version,omitempty"`
}

// ListAdaptersInput is the input schema for the list_adapters tool.
type ListAdaptersInput struct {
	Extension string `json:"extension,omitempty" jsonschema:"only list adapters declaring this file extension, e.g. .xml"`
}

// ListAdaptersOutput is the output schema for the list_adapters tool.
type ListAdaptersOutput struct {
	Adapters []AdapterOutput `json:"adapters"`
	Count    int             `json:"count"`
}

// CandidatesInput is the input schema for the candidates tool.
type CandidatesInput struct {
	FileName string `json:"file_name" jsonschema:"the report file name or path"`
}

// CandidatesOutput is the output schema for the candidates tool.
type CandidatesOutput struct {
	FileName   string          `json:"file_name"`
	Extension  string          `json:"extension"`
	Candidates []AdapterOutput `json:"candidates"`
}

// ReadFileInput is the input schema for the read_file tool.
type ReadFileInput struct {
	Path  string `json:"path" jsonschema:"absolute path or file:// URI of the report file"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of data records to return (default 100)"`
}

// RecordOutput is one data record read from a file.
type RecordOutput struct {
	DataSource   string         `json:"data_source"`
	DateTime     string         `json:"date_time,omitempty"`
	ArtifactPath string         `json:"artifact_path,omitempty"`
	Fields       map[string]any `json:"fields,omitempty"`
}

// FindingOutput is one finding read from a file.
type FindingOutput struct {
	DataSource   string   `json:"data_source"`
	ArtifactPath string   `json:"artifact_path,omitempty"`
	Description  string   `json:"description,omitempty"`
	State        string   `json:"state,omitempty"`
	SubjectType  string   `json:"subject_type,omitempty"`
	SubjectPath  []string `json:"subject_path,omitempty"`
	Records      int      `json:"records"`
}

// ReadFileOutput is the output schema for the read_file tool.
type ReadFileOutput struct {
	Adapter      string          `json:"adapter"`
	DataSource   string          `json:"data_source"`
	Candidates   []string        `json:"candidates"`
	RecordCount  int             `json:"record_count"`
	FindingCount int             `json:"finding_count"`
	Records      []RecordOutput  `json:"records"`
	Findings     []FindingOutput `json:"findings,omitempty"`
	Truncated    bool            `json:"truncated"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_adapters",
		Description: "List the registered report adapters in priority order",
	}, s.handleListAdapters)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "candidates",
		Description: "Show which adapters would be probed for a file, in probe order",
	}, s.handleCandidates)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read_file",
		Description: "Read a report file with the first adapter that accepts it",
	}, s.handleReadFile)
}

func (s *Server) handleListAdapters(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListAdaptersInput,
) (*mcp.CallToolResult, ListAdaptersOutput, error) {
	ext := domain.NormaliseExtension(input.Extension)

	output := ListAdaptersOutput{Adapters: []AdapterOutput{}}
	for _, info := range s.ports.Catalog.List() {
		if ext != "" && !info.Handles(ext) {
			continue
		}
		output.Adapters = append(output.Adapters, toAdapterOutput(info))
	}
	output.Count = len(output.Adapters)

	return nil, output, nil
}

func (s *Server) handleCandidates(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CandidatesInput,
) (*mcp.CallToolResult, CandidatesOutput, error) {
	if input.FileName == "" {
		return nil, CandidatesOutput{}, domain.ErrInvalidInput
	}

	candidates := s.ports.Catalog.Candidates(input.FileName)
	output := CandidatesOutput{
		FileName:   input.FileName,
		Extension:  domain.ExtensionOf(input.FileName),
		Candidates: make([]AdapterOutput, len(candidates)),
	}
	for i, info := range candidates {
		output.Candidates[i] = toAdapterOutput(info)
	}

	return nil, output, nil
}

func (s *Server) handleReadFile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadFileInput,
) (*mcp.CallToolResult, ReadFileOutput, error) {
	if s.ports.Reader == nil {
		return nil, ReadFileOutput{}, ErrReaderUnavailable
	}
	if input.Path == "" {
		return nil, ReadFileOutput{}, domain.ErrInvalidInput
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultRecordLimit
	}

	outcome, err := s.ports.Reader.ReadFile(ctx, filesystem.ResolvePath(input.Path))
	if err != nil {
		return nil, ReadFileOutput{}, err
	}

	result := outcome.Result
	output := ReadFileOutput{
		Adapter:      outcome.Adapter,
		DataSource:   result.DataSource,
		Candidates:   append([]string{}, outcome.Candidates...),
		RecordCount:  len(result.Data),
		FindingCount: len(result.Findings),
		Records:      []RecordOutput{},
	}

	for i := range result.Data {
		if len(output.Records) == limit {
			output.Truncated = true
			break
		}
		output.Records = append(output.Records, toRecordOutput(result.Data[i]))
	}
	for i := range result.Findings {
		if len(output.Findings) == limit {
			output.Truncated = true
			break
		}
		f := result.Findings[i]
		output.Findings = append(output.Findings, FindingOutput{
			DataSource:   f.DataSource,
			ArtifactPath: f.ArtifactPath,
			Description:  f.Description,
			State:        f.State,
			SubjectType:  f.SubjectType,
			SubjectPath:  f.SubjectPath,
			Records:      len(f.Data),
		})
	}

	return nil, output, nil
}

func toAdapterOutput(info domain.AdapterInfo) AdapterOutput {
	return AdapterOutput{
		Name:        info.Name,
		Description: info.Description,
		Priority:    info.Priority,
		DataSource:  info.DataSource,
		Extensions:  info.FileExtensions,
		Version:     info.Version,
	}
}

func toRecordOutput(d domain.AdapterData) RecordOutput {
	out := RecordOutput{
		DataSource:   d.DataSource,
		ArtifactPath: d.ArtifactPath,
		Fields:       d.Fields,
	}
	if !d.DateTime.IsZero() {
		out.DateTime = d.DateTime.Format(time.RFC3339)
	}
	return out
}
