package explorer

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/jazzgraph/am"
	"github.com/teranos/jazzgraph/catalog"
	"github.com/teranos/jazzgraph/errors"
	"github.com/teranos/jazzgraph/graph"
	grapherr "github.com/teranos/jazzgraph/graph/error"
	jgtest "github.com/teranos/jazzgraph/internal/testing"
	"go.uber.org/zap/zaptest"
)

func newTestExplorer(t *testing.T, c *catalog.Catalog) *Explorer {
	t.Helper()
	return New(c, DefaultOptions(), zaptest.NewLogger(t).Sugar())
}

func viewIDs(t *testing.T, e *Explorer) []string {
	t.Helper()
	g, err := e.View(context.Background())
	require.NoError(t, err)
	var ids []string
	for _, n := range g.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestSetFilterAndClearFocus(t *testing.T) {
	e := newTestExplorer(t, jgtest.ChainCatalog(t))

	require.NoError(t, e.SetFilter(graph.Filter{FocusArtistID: "a", Depth: 1, Era: catalog.EraBebop}))
	assert.Equal(t, []string{"a", "b"}, viewIDs(t, e))

	e.ClearFocus()
	state := e.State()
	assert.Empty(t, state.Filter.FocusArtistID)
	assert.Equal(t, catalog.EraBebop, state.Filter.Era, "other filters survive")
	assert.Equal(t, []string{"a", "b", "c"}, viewIDs(t, e))
}

func TestSetFilterRejectsInvalid(t *testing.T) {
	e := newTestExplorer(t, jgtest.ChainCatalog(t))
	require.NoError(t, e.SetFilter(graph.Filter{Era: catalog.EraBebop}))

	err := e.SetFilter(graph.Filter{FocusArtistID: "ghost"})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
	assert.Equal(t, catalog.EraBebop, e.State().Filter.Era, "state unchanged")
}

func TestFocusUsesDefaultDepth(t *testing.T) {
	e := newTestExplorer(t, jgtest.ChainCatalog(t))

	require.NoError(t, e.Focus("a"))
	assert.Equal(t, graph.Filter{FocusArtistID: "a", Depth: 2}, e.State().Filter)

	require.NoError(t, e.SetFilter(graph.Filter{FocusArtistID: "a", Depth: 1}))
	require.NoError(t, e.Focus("d"))
	assert.Equal(t, 1, e.State().Filter.Depth, "explicit depth kept")

	assert.Error(t, e.Focus("nobody"))
}

func TestFindPath(t *testing.T) {
	e := newTestExplorer(t, jgtest.ChainCatalog(t))

	res, err := e.FindPath("d", "a")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, []string{"d", "c", "b", "a"}, res.Path)
	assert.Equal(t, 3, res.Degrees)
	require.Len(t, res.Artists, 4)
	assert.Equal(t, "d", res.Artists[0].ID)

	g, err := e.View(context.Background())
	require.NoError(t, err)
	for _, n := range g.Nodes {
		assert.True(t, n.OnPath, n.ID)
	}
	for _, edge := range g.Edges {
		assert.True(t, edge.OnPath, edge.ID)
	}

	e.ClearPath()
	assert.Empty(t, e.State().Path)
}

func TestFindPathNotConnected(t *testing.T) {
	e := newTestExplorer(t, jgtest.ChainCatalog(t))
	_, err := e.FindPath("a", "d")
	require.NoError(t, err)

	res, err := e.FindPath("a", "z")
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Nil(t, res.Path)
	assert.Equal(t, -1, res.Degrees)
	assert.Empty(t, e.State().Path, "a failed lookup clears the shown path")
}

func TestFindPathUnknownArtist(t *testing.T) {
	e := newTestExplorer(t, jgtest.ChainCatalog(t))

	_, err := e.FindPath("a", "sun-ra")

	ge, ok := grapherr.As(err)
	require.True(t, ok)
	assert.Equal(t, grapherr.CategoryQuery, ge.Category)
	assert.Equal(t, grapherr.SubcategoryUnknownArtist, ge.Subcategory)
	assert.Equal(t, "sun-ra", ge.Context["artist"])
}

func TestSelect(t *testing.T) {
	e := newTestExplorer(t, jgtest.ChainCatalog(t))

	require.NoError(t, e.Select("c"))
	g, err := e.View(context.Background())
	require.NoError(t, err)

	var highlighted []string
	for _, edge := range g.Edges {
		if edge.Highlighted {
			highlighted = append(highlighted, edge.ID)
			assert.Equal(t, graph.HighlightColor, edge.Color)
		}
	}
	assert.Equal(t, []string{"b->c", "c->d"}, highlighted)

	require.NoError(t, e.Select(""))
	assert.Empty(t, e.State().Selected)
	assert.Error(t, e.Select("ghost"))
}

func TestSetLayout(t *testing.T) {
	e := newTestExplorer(t, jgtest.ChainCatalog(t))

	require.NoError(t, e.SetLayout(graph.LayoutEras, ""))
	g, err := e.View(context.Background())
	require.NoError(t, err)
	assert.Equal(t, graph.LayoutEras, g.Meta.Layout)

	require.NoError(t, e.SetLayout(graph.LayoutLayered, "lr"))
	assert.Equal(t, graph.LeftRight, e.Options().Layered.Direction)

	assert.Error(t, e.SetLayout("force", ""))
	assert.Error(t, e.SetLayout(graph.LayoutLayered, "up"))
}

func TestSearch(t *testing.T) {
	e := newTestExplorer(t, jgtest.DefaultCatalog(t))

	got := e.Search("saxophone", 0)
	assert.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), DefaultOptions().SearchLimit)

	assert.Len(t, e.Search("saxophone", 1), 1)
	assert.Empty(t, e.Search("theremin", 0))
}

func TestNetworkAndNeighborhood(t *testing.T) {
	e := newTestExplorer(t, jgtest.ChainCatalog(t))

	mini, err := e.Network("b")
	require.NoError(t, err)
	assert.Len(t, mini.Nodes, 3)

	_, err = e.Network("ghost")
	assert.True(t, errors.IsNotFoundError(err))

	near, err := e.Neighborhood("b", 1)
	require.NoError(t, err)
	var ids []string
	for _, a := range near {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)

	near, err = e.Neighborhood("a", -1)
	require.NoError(t, err)
	assert.Len(t, near, 3, "default depth 2")

	_, err = e.Neighborhood("a", graph.MaxDepth+1)
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &am.Config{}
	cfg.Graph.DefaultDepth = 3
	cfg.Graph.Layout = graph.LayoutEras
	cfg.Graph.Direction = "rl"
	cfg.Graph.NodeSpacing = 10
	cfg.Mini.MaxPerSide = 4
	cfg.Search.ResultLimit = 5

	opts, err := OptionsFromConfig(cfg, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, opts.DefaultDepth)
	assert.Equal(t, graph.RightLeft, opts.Layered.Direction)
	assert.Equal(t, 10.0, opts.Layered.NodeSpacing)
	assert.Equal(t, 4, opts.Mini.MaxPerSide)
	assert.Equal(t, 5, opts.SearchLimit)
	assert.Equal(t, 2, opts.Verbosity)

	cfg.Graph.Direction = "sideways"
	_, err = OptionsFromConfig(cfg, 0)
	assert.Error(t, err)
}

func TestConcurrentUse(t *testing.T) {
	e := newTestExplorer(t, jgtest.DefaultCatalog(t))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = e.Focus("miles-davis")
				_, _ = e.FindPath("king-oliver", "robert-glasper")
			} else {
				e.ClearFocus()
				e.ClearPath()
			}
			_, err := e.View(context.Background())
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
}
