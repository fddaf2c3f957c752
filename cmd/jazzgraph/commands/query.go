package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/jazzgraph/catalog"
	"github.com/teranos/jazzgraph/display"
	"github.com/teranos/jazzgraph/explorer"
	"github.com/teranos/jazzgraph/graph"
)

// GraphCmd builds, lays out and prints the filtered influence graph
var GraphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Build and lay out the filtered influence graph",
	Long: `Build the influence graph, apply the era, genre and focus filters,
lay it out and print every node with its position.

Examples:
  jazzgraph graph                                  # whole catalog
  jazzgraph graph --era bebop
  jazzgraph graph --focus miles-davis --depth 1 --layout eras
  jazzgraph graph --from king-oliver --to john-coltrane --json`,
	Args: cobra.NoArgs,
	RunE: runGraph,
}

// PathCmd finds the shortest chain of influence between two artists
var PathCmd = &cobra.Command{
	Use:   "path FROM TO",
	Short: "Shortest chain of influence between two artists",
	Example: `  jazzgraph path king-oliver john-coltrane
  jazzgraph path miles-davis charlie-parker --json`,
	Args: cobra.ExactArgs(2),
	RunE: runPath,
}

// NeighborsCmd lists artists within N hops
var NeighborsCmd = &cobra.Command{
	Use:     "neighbors ARTIST",
	Aliases: []string{"neighborhood"},
	Short:   "Artists within N influence hops of an artist",
	Example: `  jazzgraph neighbors bill-evans --depth 1`,
	Args:    cobra.ExactArgs(1),
	RunE:    runNeighbors,
}

// NetworkCmd shows the mini influence network of one artist
var NetworkCmd = &cobra.Command{
	Use:     "network ARTIST",
	Short:   "Who influenced an artist, and whom they influenced",
	Example: `  jazzgraph network miles-davis`,
	Args:    cobra.ExactArgs(1),
	RunE:    runNetwork,
}

// SearchCmd finds artists by name or instrument
var SearchCmd = &cobra.Command{
	Use:     "search QUERY",
	Short:   "Find artists by name or instrument",
	Example: `  jazzgraph search saxophone --limit 20`,
	Args:    cobra.ExactArgs(1),
	RunE:    runSearch,
}

var (
	graphEra       string
	graphGenre     string
	graphFocus     string
	graphDepth     int
	graphLayout    string
	graphDirection string
	graphSelect    string
	graphFrom      string
	graphTo        string

	neighborsDepth int
	searchLimit    int
)

func init() {
	GraphCmd.Flags().StringVar(&graphEra, "era", "", "Keep artists whose eras include this era id")
	GraphCmd.Flags().StringVar(&graphGenre, "genre", "", "Keep artists with an album in this genre")
	GraphCmd.Flags().StringVar(&graphFocus, "focus", "", "Keep artists near this artist id")
	GraphCmd.Flags().IntVar(&graphDepth, "depth", -1, fmt.Sprintf("Focus depth, 0 to %d (default from config)", graph.MaxDepth))
	GraphCmd.Flags().StringVar(&graphLayout, "layout", "", "Layout: layered or eras (default from config)")
	GraphCmd.Flags().StringVar(&graphDirection, "direction", "", "Layered direction: TB, BT, LR, RL")
	GraphCmd.Flags().StringVar(&graphSelect, "select", "", "Highlight this artist and its edges")
	GraphCmd.Flags().StringVar(&graphFrom, "from", "", "Mark the influence path starting here (needs --to)")
	GraphCmd.Flags().StringVar(&graphTo, "to", "", "Mark the influence path ending here (needs --from)")

	NeighborsCmd.Flags().IntVar(&neighborsDepth, "depth", -1, fmt.Sprintf("Number of hops, 0 to %d (default from config)", graph.MaxDepth))
	SearchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum results (default from config)")
}

func runGraph(cmd *cobra.Command, args []string) error {
	e, err := newSession(cmd)
	if err != nil {
		return err
	}

	f := graph.Filter{FocusArtistID: graphFocus, Depth: graphDepth, Era: graphEra, Genre: graphGenre}
	if f.Depth < 0 {
		f.Depth = 0
		if f.HasFocus() {
			f.Depth = e.Options().DefaultDepth
		}
	}
	if err := e.SetFilter(f); err != nil {
		return err
	}
	if graphLayout != "" || graphDirection != "" {
		layout := graphLayout
		if layout == "" {
			layout = e.State().Layout
		}
		if err := e.SetLayout(layout, graphDirection); err != nil {
			return err
		}
	}
	if graphSelect != "" {
		if err := e.Select(graphSelect); err != nil {
			return err
		}
	}
	if (graphFrom == "") != (graphTo == "") {
		return fmt.Errorf("--from and --to must be given together")
	}
	var res explorer.PathResult
	if graphFrom != "" {
		if res, err = e.FindPath(graphFrom, graphTo); err != nil {
			return err
		}
	}

	g, err := e.View(cmd.Context())
	if err != nil {
		return err
	}
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(g)
	}
	if err := display.GraphSummary(os.Stdout, g); err != nil {
		return err
	}
	if graphFrom != "" {
		return display.Path(os.Stdout, res)
	}
	return nil
}

func runPath(cmd *cobra.Command, args []string) error {
	e, err := newSession(cmd)
	if err != nil {
		return err
	}
	res, err := e.FindPath(args[0], args[1])
	if err != nil {
		return err
	}
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(res)
	}
	return display.Path(os.Stdout, res)
}

func runNeighbors(cmd *cobra.Command, args []string) error {
	e, err := newSession(cmd)
	if err != nil {
		return err
	}
	artists, err := e.Neighborhood(args[0], neighborsDepth)
	if err != nil {
		return err
	}
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(artists)
	}
	depth := neighborsDepth
	if depth < 0 {
		depth = e.Options().DefaultDepth
	}
	pterm.Info.Printf("%d artist(s) within %d hop(s) of %s\n", len(artists), depth, args[0])
	return display.ArtistTable(os.Stdout, artists)
}

func runNetwork(cmd *cobra.Command, args []string) error {
	e, err := newSession(cmd)
	if err != nil {
		return err
	}
	mg, err := e.Network(args[0])
	if err != nil {
		return err
	}
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(mg)
	}
	return display.Network(os.Stdout, mg)
}

func runSearch(cmd *cobra.Command, args []string) error {
	e, err := newSession(cmd)
	if err != nil {
		return err
	}
	results := e.Search(args[0], searchLimit)
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(results)
	}
	if len(results) == 0 {
		pterm.Warning.Printf("No artists match %q\n", args[0])
		return nil
	}
	return display.ArtistTable(os.Stdout, pointers(results))
}

func pointers(artists []catalog.Artist) []*catalog.Artist {
	out := make([]*catalog.Artist, len(artists))
	for i := range artists {
		out[i] = &artists[i]
	}
	return out
}
