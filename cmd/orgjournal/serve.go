package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	journalmcp "github.com/gorewood/orgjournal/internal/mcp"
)

// newServeCmdInternal creates the serve command for running as an MCP server.
func newServeCmdInternal(deps cmdDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run orgjournal as a Model Context Protocol (MCP) server over stdio.

This exposes the journal as MCP tools that any MCP-capable agent
environment can use.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "orgjournal": {
        "command": "orgjournal",
        "args": ["serve"]
      }
    }
  }

Available tools: new_entry, last_entry, goto_day, read_day, month`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			server := journalmcp.NewServer(buildVersion(), s.journal,
				journalmcp.WithClock(deps.now),
				journalmcp.WithStatePath(s.statePath),
				journalmcp.WithLogger(s.log),
			)
			s.log.Debug("serving MCP on stdio")
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
