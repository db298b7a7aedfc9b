package cli

import (
	"github.com/spf13/cobra"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server over stdio.

The server exposes the adapter registry to MCP-compatible assistants:
  tools      list_adapters, candidates, read_file
  resources  mqc://adapters, mqc://adapters/{name}, mqc://journal

Client configuration example:
  {
    "mcpServers": {
      "mqc": {
        "command": "/path/to/mqc",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	ports := &mcp.Ports{
		Catalog: catalog,
		Reader:  reader,
		Journal: journalService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	return server.Run(cmd.Context())
}
