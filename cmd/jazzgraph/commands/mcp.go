package commands

import (
	"github.com/spf13/cobra"
	"github.com/teranos/jazzgraph/logger"
	"github.com/teranos/jazzgraph/mcpserver"
)

// McpCmd serves the graph tools over MCP on stdio
var McpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve influence graph tools over MCP (stdio)",
	Long: `Run a Model Context Protocol server on stdin/stdout.

Tools: find_influence_path, artist_neighborhood, artist_network, search_artists.
Logs go to stderr so stdout carries only protocol messages.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		c, _, err := loadCatalog(cmd, cfg)
		if err != nil {
			return err
		}
		opts, err := sessionOptions(cmd, cfg)
		if err != nil {
			return err
		}
		return mcpserver.New(c, opts, logger.ComponentLogger("mcp")).Serve()
	},
}
