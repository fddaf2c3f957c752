package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/jazzgraph/catalog"
	grapherr "github.com/teranos/jazzgraph/graph/error"
	jgtest "github.com/teranos/jazzgraph/internal/testing"
)

func testNode(id string, size Size) Node {
	w, h := Footprint(size)
	return Node{ID: id, Size: size, Width: w, Height: h}
}

func testEdge(source, target string) Edge {
	return Edge{ID: edgeID(source, target), Source: source, Target: target}
}

func byID(nodes []Node) map[string]Node {
	out := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		out[n.ID] = n
	}
	return out
}

func centerY(n Node) float64 { return n.Position.Y + n.Height/2 }
func centerX(n Node) float64 { return n.Position.X + n.Width/2 }

func TestLayeredLayoutEmpty(t *testing.T) {
	out := LayeredLayout(nil, nil, DefaultLayoutOptions())
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestLayeredLayoutSingleNode(t *testing.T) {
	out := LayeredLayout([]Node{testNode("solo", SizeSM)}, nil, DefaultLayoutOptions())

	require.Len(t, out, 1)
	assert.Equal(t, Position{X: 50, Y: 50}, out[0].Position, "margins only")
}

func TestLayeredLayoutChain(t *testing.T) {
	nodes := []Node{testNode("A", SizeSM), testNode("B", SizeMD), testNode("C", SizeXL)}
	edges := []Edge{testEdge("A", "B"), testEdge("B", "C")}

	out := byID(LayeredLayout(nodes, edges, DefaultLayoutOptions()))

	a, b, c := out["A"], out["B"], out["C"]
	assert.Less(t, centerY(a), centerY(b))
	assert.Less(t, centerY(b), centerY(c))

	// one node per rank, so ranks are separated by the rank thickness plus 100
	assert.Equal(t, 50.0, a.Position.Y)
	assert.Equal(t, 50.0+70+100, b.Position.Y)
	assert.Equal(t, 50.0+70+100+80+100, c.Position.Y)

	// ranks are centered against the widest (200)
	assert.InDelta(t, centerX(a), centerX(c), 1e-9)
	assert.InDelta(t, 50.0+100, centerX(c), 1e-9)
}

func TestLayeredLayoutDoesNotModifyInput(t *testing.T) {
	nodes := []Node{testNode("A", SizeSM), testNode("B", SizeSM)}
	LayeredLayout(nodes, []Edge{testEdge("A", "B")}, DefaultLayoutOptions())

	assert.Equal(t, Position{}, nodes[0].Position)
	assert.Equal(t, Position{}, nodes[1].Position)
}

func TestLayeredLayoutNoOverlapWithinRank(t *testing.T) {
	nodes := []Node{
		testNode("root", SizeXL),
		testNode("a", SizeSM), testNode("b", SizeMD), testNode("c", SizeLG), testNode("d", SizeXL),
	}
	edges := []Edge{
		testEdge("root", "a"), testEdge("root", "b"), testEdge("root", "c"), testEdge("root", "d"),
	}

	out := LayeredLayout(nodes, edges, DefaultLayoutOptions())
	assertNoOverlap(t, out, 0)
}

func assertNoOverlap(t *testing.T, nodes []Node, gap float64) {
	t.Helper()
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			overlapX := a.Position.X < b.Position.X+b.Width+gap && b.Position.X < a.Position.X+a.Width+gap
			overlapY := a.Position.Y < b.Position.Y+b.Height && b.Position.Y < a.Position.Y+a.Height
			if overlapX && overlapY {
				t.Errorf("%s %+v overlaps %s %+v", a.ID, a.Position, b.ID, b.Position)
			}
		}
	}
}

func TestLayeredLayoutDirections(t *testing.T) {
	nodes := []Node{testNode("A", SizeSM), testNode("B", SizeSM)}
	edges := []Edge{testEdge("A", "B")}

	tests := []struct {
		direction Direction
		check     func(a, b Node) bool
	}{
		{TopBottom, func(a, b Node) bool { return centerY(a) < centerY(b) && centerX(a) == centerX(b) }},
		{BottomTop, func(a, b Node) bool { return centerY(a) > centerY(b) && centerX(a) == centerX(b) }},
		{LeftRight, func(a, b Node) bool { return centerX(a) < centerX(b) && centerY(a) == centerY(b) }},
		{RightLeft, func(a, b Node) bool { return centerX(a) > centerX(b) && centerY(a) == centerY(b) }},
	}

	for _, tt := range tests {
		opts := DefaultLayoutOptions()
		opts.Direction = tt.direction
		out := byID(LayeredLayout(nodes, edges, opts))
		if !tt.check(out["A"], out["B"]) {
			t.Errorf("%s: A at %+v, B at %+v", tt.direction, out["A"].Position, out["B"].Position)
		}
	}
}

func TestLayeredLayoutCycle(t *testing.T) {
	nodes := []Node{testNode("a", SizeSM), testNode("b", SizeSM), testNode("c", SizeSM)}
	edges := []Edge{testEdge("a", "b"), testEdge("b", "c"), testEdge("c", "a")}

	out := LayeredLayout(nodes, edges, DefaultLayoutOptions())

	require.Len(t, out, 3)
	assertNoOverlap(t, out, 0)
	for _, n := range out {
		assert.False(t, math.IsNaN(n.Position.X) || math.IsNaN(n.Position.Y))
	}
}

func TestLayeredLayoutIgnoresUnknownEndpoints(t *testing.T) {
	nodes := []Node{testNode("a", SizeSM)}
	out := LayeredLayout(nodes, []Edge{testEdge("a", "ghost"), testEdge("a", "a")}, DefaultLayoutOptions())

	require.Len(t, out, 1)
	assert.Equal(t, Position{X: 50, Y: 50}, out[0].Position)
}

func TestLayeredLayoutFillsMissingFootprint(t *testing.T) {
	out := LayeredLayout([]Node{{ID: "bare", Size: SizeLG}}, nil, DefaultLayoutOptions())

	assert.Equal(t, 180.0, out[0].Width)
	assert.Equal(t, 90.0, out[0].Height)
}

// Every edge of an acyclic graph points down the ranks and no two nodes overlap.
func TestLayeredLayoutDefaultCatalog(t *testing.T) {
	g := Build(jgtest.DefaultCatalog(t), Filter{})
	out := byID(LayeredLayout(g.Nodes, g.Edges, DefaultLayoutOptions()))

	require.Len(t, out, len(g.Nodes))
	assertNoOverlap(t, LayeredLayout(g.Nodes, g.Edges, DefaultLayoutOptions()), 0)

	for _, e := range g.Edges {
		if centerY(out[e.Source]) >= centerY(out[e.Target]) {
			t.Errorf("edge %s does not point down: %v -> %v", e.ID, out[e.Source].Position, out[e.Target].Position)
		}
	}
}

func TestLayeredLayoutSourceTightening(t *testing.T) {
	// late joins the chain only at its last step; it should sit one rank above c, not at the top
	nodes := []Node{testNode("a", SizeSM), testNode("b", SizeSM), testNode("c", SizeSM), testNode("late", SizeSM)}
	edges := []Edge{testEdge("a", "b"), testEdge("b", "c"), testEdge("late", "c")}

	out := byID(LayeredLayout(nodes, edges, DefaultLayoutOptions()))

	assert.Equal(t, centerY(out["b"]), centerY(out["late"]))
}

func TestLayeredLayoutReducesCrossings(t *testing.T) {
	// Input order crosses a1->b2 with a2->b1; ordering sweeps should untangle it
	nodes := []Node{
		testNode("a1", SizeSM), testNode("a2", SizeSM),
		testNode("b1", SizeSM), testNode("b2", SizeSM),
	}
	edges := []Edge{testEdge("a1", "b2"), testEdge("a2", "b1")}

	out := byID(LayeredLayout(nodes, edges, DefaultLayoutOptions()))

	a1Left := centerX(out["a1"]) < centerX(out["a2"])
	b2Left := centerX(out["b2"]) < centerX(out["b1"])
	assert.Equal(t, a1Left, b2Left, "edges cross")
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"", TopBottom}, {"tb", TopBottom}, {" LR ", LeftRight}, {"rl", RightLeft}, {"BT", BottomTop},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseDirection("diagonal")
	require.Error(t, err)
	ge, ok := grapherr.As(err)
	require.True(t, ok)
	assert.Equal(t, grapherr.CategoryLayout, ge.Category)
	assert.Equal(t, grapherr.SubcategoryLayoutDirection, ge.Subcategory)
}

func TestApplyLayout(t *testing.T) {
	g := Build(jgtest.ChainCatalog(t), Filter{})

	require.NoError(t, ApplyLayout(g, "", DefaultLayoutOptions()))
	assert.Equal(t, LayoutLayered, g.Meta.Layout)

	require.NoError(t, ApplyLayout(g, "ERAS", DefaultLayoutOptions()))
	assert.Equal(t, LayoutEras, g.Meta.Layout)

	err := ApplyLayout(g, "force", DefaultLayoutOptions())
	ge, ok := grapherr.As(err)
	require.True(t, ok)
	assert.Equal(t, grapherr.SubcategoryLayoutName, ge.Subcategory)
}

func TestRadialLayout(t *testing.T) {
	center := testNode("center", SizeXL)
	center.Position = Position{X: 99, Y: 99}
	around := []Node{testNode("n0", SizeSM), testNode("n1", SizeSM), testNode("n2", SizeSM), testNode("n3", SizeSM)}

	out := RadialLayout(center, around, 0)

	require.Len(t, out, 5)
	assert.Equal(t, Position{}, out[0].Position)

	want := []Position{{0, -150}, {150, 0}, {0, 150}, {-150, 0}}
	for i, w := range want {
		p := out[i+1].Position
		assert.InDelta(t, w.X, p.X, 1e-9, "n%d x", i)
		assert.InDelta(t, w.Y, p.Y, 1e-9, "n%d y", i)
		assert.InDelta(t, 150.0, math.Hypot(p.X, p.Y), 1e-9)
	}

	assert.Len(t, RadialLayout(center, nil, 80), 1)
}

func TestEraBandLayout(t *testing.T) {
	c := jgtest.NewCatalog(t, []catalog.Artist{
		jgtest.Artist("swing1", []string{catalog.EraSwing}, []string{"bop1"}, nil),
		jgtest.Artist("bop1", []string{catalog.EraBebop}, nil, []string{"swing1"}),
		jgtest.Artist("bop2", []string{catalog.EraBebop}, []string{"bop1"}, nil),
		jgtest.Artist("noera", nil, []string{"bop1"}, nil),
		jgtest.Artist("odd", []string{"ragtime"}, []string{"bop1"}, nil),
	}, nil, jgtest.Eras())
	g := Build(c, Filter{})

	out := byID(EraBandLayout(g.Nodes))

	assert.Equal(t, Position{X: 400, Y: 150}, out["swing1"].Position)
	assert.Equal(t, Position{X: 310, Y: 300}, out["bop1"].Position)
	assert.Equal(t, Position{X: 490, Y: 300}, out["bop2"].Position)
	assert.Equal(t, Position{X: 310, Y: 1050}, out["noera"].Position)
	assert.Equal(t, Position{X: 490, Y: 1050}, out["odd"].Position)
}

func TestLayeredLayoutIsDeterministic(t *testing.T) {
	c := jgtest.DefaultCatalog(t)

	for _, dir := range []Direction{TopBottom, BottomTop, LeftRight, RightLeft} {
		t.Run(string(dir), func(t *testing.T) {
			opts := DefaultLayoutOptions()
			opts.Direction = dir

			first := Build(c, Filter{})
			second := Build(c, Filter{})
			a := LayeredLayout(first.Nodes, first.Edges, opts)
			b := LayeredLayout(second.Nodes, second.Edges, opts)

			require.Len(t, b, len(a))
			for i := range a {
				assert.Equal(t, a[i].ID, b[i].ID)
				assert.Equal(t, a[i].Position, b[i].Position, "node %s", a[i].ID)
			}
		})
	}
}

func TestMiniNetworkIsDeterministic(t *testing.T) {
	c := jgtest.DefaultCatalog(t)
	miles, ok := c.Artist("miles-davis")
	require.True(t, ok)

	first := MiniNetwork(miles, c.Index(), c.EraMap(), DefaultMiniOptions())
	second := MiniNetwork(miles, c.Index(), c.EraMap(), DefaultMiniOptions())
	assert.Equal(t, first, second)
}

func TestEraBandLayoutIsDeterministic(t *testing.T) {
	c := jgtest.DefaultCatalog(t)
	g := Build(c, Filter{})
	assert.Equal(t, EraBandLayout(g.Nodes), EraBandLayout(g.Nodes))
}
