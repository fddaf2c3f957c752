package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/jazzgraph/catalog"
	jgtest "github.com/teranos/jazzgraph/internal/testing"
)

func miniByID(m *MiniGraph) map[string]MiniNode {
	out := make(map[string]MiniNode, len(m.Nodes))
	for _, n := range m.Nodes {
		out[n.ID] = n
	}
	return out
}

func TestMiniNetworkDefaultCatalog(t *testing.T) {
	c := jgtest.DefaultCatalog(t)
	bill, ok := c.Artist("bill-evans")
	require.True(t, ok)

	mini := MiniNetwork(bill, c.Index(), c.EraMap(), DefaultMiniOptions())

	require.NotNil(t, mini)
	assert.True(t, mini.HasConnections)
	require.Len(t, mini.Nodes, 5)

	center := mini.Nodes[0]
	assert.Equal(t, "bill-evans", center.ID)
	assert.Equal(t, RoleCenter, center.Role)
	assert.Equal(t, Position{}, center.Position)

	nodes := miniByID(mini)
	assert.Equal(t, Position{X: -45, Y: -80}, nodes["bud-powell"].Position)
	assert.Equal(t, Position{X: 45, Y: -80}, nodes["miles-davis"].Position)
	assert.Equal(t, RoleInfluencer, nodes["miles-davis"].Role)
	assert.Equal(t, Position{X: -45, Y: 80}, nodes["herbie-hancock"].Position)
	assert.Equal(t, Position{X: 45, Y: 80}, nodes["keith-jarrett"].Position)
	assert.Equal(t, RoleInfluenced, nodes["keith-jarrett"].Role)

	var ids []string
	for _, e := range mini.Edges {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{
		"bud-powell->bill-evans", "miles-davis->bill-evans",
		"bill-evans->herbie-hancock", "bill-evans->keith-jarrett",
	}, ids)
}

func TestMiniNetworkRowCentering(t *testing.T) {
	c := jgtest.DefaultCatalog(t)
	miles, _ := c.Artist("miles-davis")

	mini := MiniNetwork(miles, c.Index(), c.EraMap(), DefaultMiniOptions())

	var xs []float64
	for _, n := range mini.Nodes {
		if n.Role == RoleInfluenced {
			xs = append(xs, n.Position.X)
		}
	}
	assert.Equal(t, []float64{-180, -90, 0, 90, 180}, xs)
	assert.Zero(t, mini.HiddenInfluenced)
}

func TestMiniNetworkTruncatesAfterResolving(t *testing.T) {
	artists := []catalog.Artist{
		jgtest.Artist("hub", nil, nil, []string{"ghost", "p1", "p2", "p3", "p4", "p5", "p6", "p7"}),
	}
	for _, id := range []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7"} {
		artists = append(artists, jgtest.Artist(id, nil, []string{"hub"}, nil))
	}
	c := jgtest.NewCatalog(t, artists, nil, nil)
	hub, _ := c.Artist("hub")

	mini := MiniNetwork(hub, c.Index(), c.EraMap(), DefaultMiniOptions())

	nodes := miniByID(mini)
	require.Len(t, mini.Nodes, 6, "center plus five")
	for _, id := range []string{"p1", "p2", "p3", "p4", "p5"} {
		assert.Contains(t, nodes, id)
	}
	assert.NotContains(t, nodes, "ghost")
	assert.NotContains(t, nodes, "p6")
	assert.Equal(t, 2, mini.HiddenInfluencers)
	assert.Equal(t, -180.0, nodes["p1"].Position.X)
	assert.Equal(t, 180.0, nodes["p5"].Position.X)
}

func TestMiniNetworkNoConnections(t *testing.T) {
	c := jgtest.ChainCatalog(t)
	z, _ := c.Artist("z")

	mini := MiniNetwork(z, c.Index(), c.EraMap(), DefaultMiniOptions())

	assert.False(t, mini.HasConnections)
	assert.Len(t, mini.Nodes, 1)
	assert.Empty(t, mini.Edges)
}

func TestMiniNetworkOnlyDanglingRelations(t *testing.T) {
	c := jgtest.NewCatalog(t, []catalog.Artist{
		jgtest.Artist("lonely", nil, []string{"ghost"}, nil),
	}, nil, nil)
	lonely, _ := c.Artist("lonely")

	mini := MiniNetwork(lonely, c.Index(), c.EraMap(), DefaultMiniOptions())

	assert.True(t, mini.HasConnections, "declared relations count even when unresolvable")
	assert.Len(t, mini.Nodes, 1)
}

func TestMiniNetworkPlacesEachArtistOnce(t *testing.T) {
	// both declare each other in both directions
	c := jgtest.NewCatalog(t, []catalog.Artist{
		jgtest.Artist("x", nil, []string{"y", "x"}, []string{"y", "y"}),
		jgtest.Artist("y", nil, []string{"x"}, []string{"x"}),
	}, nil, nil)
	x, _ := c.Artist("x")

	mini := MiniNetwork(x, c.Index(), c.EraMap(), DefaultMiniOptions())

	require.Len(t, mini.Nodes, 2)
	assert.Equal(t, RoleInfluencer, mini.Nodes[1].Role)
	require.Len(t, mini.Edges, 1)
	assert.Equal(t, "y->x", mini.Edges[0].ID)
}

func TestMiniNetworkNilArtist(t *testing.T) {
	assert.Nil(t, MiniNetwork(nil, nil, nil, DefaultMiniOptions()))
}
