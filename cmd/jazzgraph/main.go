package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/teranos/jazzgraph/cmd/jazzgraph/commands"
	"github.com/teranos/jazzgraph/logger"
)

var rootCmd = &cobra.Command{
	Use:   "jazzgraph",
	Short: "jazzgraph - Explore the jazz influence graph",
	Long: `jazzgraph - Who influenced whom, across a century of jazz.

jazzgraph builds a directed influence graph over a catalog of jazz artists,
filters it by era, genre or neighborhood, finds chains of influence between
artists and lays the result out for drawing.

Available commands:
  graph     - Build and lay out the filtered influence graph
  path      - Shortest chain of influence between two artists
  neighbors - Artists within N hops of an artist
  network   - Who influenced an artist, and whom they influenced
  search    - Find artists by name or instrument
  discover  - Pick a random album or artist
  explore   - Interactive session over the graph
  server    - Start the HTTP/WebSocket API
  mcp       - Serve graph tools over MCP (stdio)
  db        - Import and inspect the SQLite catalog snapshot
  am        - Manage configuration ("I am")

Examples:
  jazzgraph path king-oliver john-coltrane
  jazzgraph graph --focus miles-davis --depth 1
  jazzgraph neighbors bill-evans --depth 1 --json
  jazzgraph server -v`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(false, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")
	rootCmd.PersistentFlags().String("data", "", "Dataset directory with artists, albums and eras files (overrides config)")
	rootCmd.PersistentFlags().String("db", "", "SQLite catalog snapshot (overrides config)")

	rootCmd.AddCommand(commands.GraphCmd)
	rootCmd.AddCommand(commands.PathCmd)
	rootCmd.AddCommand(commands.NeighborsCmd)
	rootCmd.AddCommand(commands.NetworkCmd)
	rootCmd.AddCommand(commands.SearchCmd)
	rootCmd.AddCommand(commands.DiscoverCmd)
	rootCmd.AddCommand(commands.ExploreCmd)
	rootCmd.AddCommand(commands.ServerCmd)
	rootCmd.AddCommand(commands.McpCmd)
	rootCmd.AddCommand(commands.DbCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
