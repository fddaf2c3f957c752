package mcpserver

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/jazzgraph/explorer"
	jgtest "github.com/teranos/jazzgraph/internal/testing"
	"go.uber.org/zap/zaptest"
)

func newTestServer(t *testing.T) *MCPServer {
	t.Helper()
	return New(jgtest.DefaultCatalog(t), explorer.DefaultOptions(), zaptest.NewLogger(t).Sugar())
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func TestFindPathTool(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleFindPath(ctx, call(map[string]any{"from": "king-oliver", "to": "john-coltrane"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "4 degree(s)")
	assert.Contains(t, text, "King Oliver -> Louis Armstrong")

	res, err = s.handleFindPath(ctx, call(map[string]any{"from": "king-oliver", "to": "nobody"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "nobody")

	res, err = s.handleFindPath(ctx, call(map[string]any{"from": "king-oliver"}))
	require.NoError(t, err)
	assert.True(t, res.IsError, "missing argument")
}

func TestNeighborhoodTool(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleNeighborhood(ctx, call(map[string]any{"artist": "bill-evans", "depth": float64(1)}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "5 artist(s) within 1 hop(s)")

	res, err = s.handleNeighborhood(ctx, call(map[string]any{"artist": "bill-evans", "depth": float64(99)}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleNeighborhood(ctx, call(map[string]any{"artist": "bill-evans", "depth": float64(-1)}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestNetworkTool(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleNetwork(context.Background(), call(map[string]any{"artist": "miles-davis"}))
	require.NoError(t, err)
	text := resultText(t, res)
	assert.Contains(t, text, "Influenced by: Charlie Parker")
	assert.Contains(t, text, "John Coltrane")

	res, err = s.handleNetwork(context.Background(), call(map[string]any{"artist": "nobody"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestSearchTool(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleSearch(context.Background(), call(map[string]any{"query": "trumpet", "limit": float64(2)}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "trumpet")

	res, err = s.handleSearch(context.Background(), call(map[string]any{"query": "theremin"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "No artists match")
}
