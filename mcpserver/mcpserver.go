// Package mcpserver exposes influence-graph queries as Model Context Protocol tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/teranos/jazzgraph/catalog"
	"github.com/teranos/jazzgraph/explorer"
	"github.com/teranos/jazzgraph/graph"
	grapherr "github.com/teranos/jazzgraph/graph/error"
	"github.com/teranos/jazzgraph/version"
	"go.uber.org/zap"
)

// MCPServer serves the catalog over MCP
type MCPServer struct {
	catalog *catalog.Catalog
	opts    explorer.Options
	logger  *zap.SugaredLogger
	server  *server.MCPServer
}

// New creates an MCP server with all tools registered
func New(c *catalog.Catalog, opts explorer.Options, log *zap.SugaredLogger) *MCPServer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &MCPServer{
		catalog: c,
		opts:    opts,
		logger:  log.Named("mcp"),
	}
	s.server = server.NewMCPServer(
		"jazzgraph",
		version.Get().Version,
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// registerTools registers the graph query tools
func (s *MCPServer) registerTools() {
	pathTool := mcp.NewTool("find_influence_path",
		mcp.WithDescription("Find the shortest chain of influence between two jazz artists"),
		mcp.WithString("from",
			mcp.Required(),
			mcp.Description("Artist id the chain starts at, e.g. king-oliver"),
		),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Artist id the chain ends at, e.g. john-coltrane"),
		),
	)
	s.server.AddTool(pathTool, s.handleFindPath)

	neighborhoodTool := mcp.NewTool("artist_neighborhood",
		mcp.WithDescription("List the artists within a number of influence hops of an artist"),
		mcp.WithString("artist",
			mcp.Required(),
			mcp.Description("Artist id at the center"),
		),
		mcp.WithNumber("depth",
			mcp.Description(fmt.Sprintf("Number of hops, 0 to %d (default: %d)", graph.MaxDepth, s.opts.DefaultDepth)),
		),
	)
	s.server.AddTool(neighborhoodTool, s.handleNeighborhood)

	networkTool := mcp.NewTool("artist_network",
		mcp.WithDescription("Show who influenced an artist and whom they influenced"),
		mcp.WithString("artist",
			mcp.Required(),
			mcp.Description("Artist id"),
		),
	)
	s.server.AddTool(networkTool, s.handleNetwork)

	searchTool := mcp.NewTool("search_artists",
		mcp.WithDescription("Search artists by name or instrument"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive text to match"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum results (default: %d)", s.opts.SearchLimit)),
		),
	)
	s.server.AddTool(searchTool, s.handleSearch)
}

// session creates a fresh explorer; MCP tool calls share no state
func (s *MCPServer) session() *explorer.Explorer {
	return explorer.New(s.catalog, s.opts, s.logger)
}

// handleFindPath handles find_influence_path tool calls
func (s *MCPServer) handleFindPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	from, err := request.RequireString("from")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := request.RequireString("to")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.session().FindPath(from, to)
	if err != nil {
		return toolError(err), nil
	}
	if !res.Found {
		return mcp.NewToolResultText(fmt.Sprintf("No influence path from %s to %s", from, to)), nil
	}

	names := make([]string, len(res.Artists))
	for i, a := range res.Artists {
		names[i] = a.Name
	}
	text := fmt.Sprintf("%d degree(s) of separation:\n%s", res.Degrees, strings.Join(names, " -> "))
	return withJSON(text, res)
}

// handleNeighborhood handles artist_neighborhood tool calls
func (s *MCPServer) handleNeighborhood(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	artist, err := request.RequireString("artist")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	depth := request.GetInt("depth", s.opts.DefaultDepth)
	if depth < 0 {
		return mcp.NewToolResultError(fmt.Sprintf("depth must be between 0 and %d", graph.MaxDepth)), nil
	}

	artists, err := s.session().Neighborhood(artist, depth)
	if err != nil {
		return toolError(err), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d artist(s) within %d hop(s) of %s:\n", len(artists), depth, artist)
	for _, a := range artists {
		fmt.Fprintf(&b, "- %s (%s)\n", a.Name, a.ID)
	}
	return withJSON(b.String(), artists)
}

// handleNetwork handles artist_network tool calls
func (s *MCPServer) handleNetwork(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	artist, err := request.RequireString("artist")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	mg, err := s.session().Network(artist)
	if err != nil {
		return toolError(err), nil
	}
	if !mg.HasConnections {
		return mcp.NewToolResultText("No known influence connections for " + artist), nil
	}

	var influencers, influenced []string
	for _, n := range mg.Nodes {
		switch n.Role {
		case graph.RoleInfluencer:
			influencers = append(influencers, n.Artist.Name)
		case graph.RoleInfluenced:
			influenced = append(influenced, n.Artist.Name)
		}
	}
	text := fmt.Sprintf("Influenced by: %s (+%d more)\nInfluenced: %s (+%d more)",
		strings.Join(influencers, ", "), mg.HiddenInfluencers,
		strings.Join(influenced, ", "), mg.HiddenInfluenced)
	return withJSON(text, mg)
}

// handleSearch handles search_artists tool calls
func (s *MCPServer) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := s.session().Search(query, request.GetInt("limit", 0))
	if len(results) == 0 {
		return mcp.NewToolResultText("No artists match " + query), nil
	}

	var b strings.Builder
	for _, a := range results {
		fmt.Fprintf(&b, "- %s (%s): %s\n", a.Name, a.ID, strings.Join(a.Instruments, ", "))
	}
	return withJSON(b.String(), results)
}

// withJSON returns text followed by the JSON encoding of v
func withJSON(text string, v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text + "\n\n" + string(data)), nil
}

func toolError(err error) *mcp.CallToolResult {
	if ge, ok := grapherr.As(err); ok {
		return mcp.NewToolResultError(ge.ToUIMessage())
	}
	return mcp.NewToolResultError(err.Error())
}

// Serve runs the server on stdio until the client disconnects
func (s *MCPServer) Serve() error {
	s.logger.Debugw("Serving MCP on stdio", "artists", len(s.catalog.Artists))
	return server.ServeStdio(s.server)
}
