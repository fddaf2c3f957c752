package graph

import (
	"sort"
	"strings"

	grapherr "github.com/teranos/jazzgraph/graph/error"
)

// Direction is the rank axis of the layered layout
type Direction string

const (
	TopBottom Direction = "TB"
	BottomTop Direction = "BT"
	LeftRight Direction = "LR"
	RightLeft Direction = "RL"
)

// Layout names accepted by ApplyLayout
const (
	LayoutLayered = "layered"
	LayoutEras    = "eras"
)

// Layered layout defaults
const (
	DefaultNodeSpacing = 50
	DefaultRankSpacing = 100
	DefaultMargin      = 50

	orderingSweeps = 8
)

// ParseDirection accepts TB, BT, LR or RL in any case; "" means TB
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToUpper(strings.TrimSpace(s))); d {
	case "":
		return TopBottom, nil
	case TopBottom, BottomTop, LeftRight, RightLeft:
		return d, nil
	default:
		return "", grapherr.Invalid(grapherr.CategoryLayout, grapherr.SubcategoryLayoutDirection,
			"Direction must be TB, BT, LR or RL", "unknown layout direction %q", s).
			WithContext("direction", s)
	}
}

func (d Direction) horizontal() bool {
	return d == LeftRight || d == RightLeft
}

func (d Direction) reversed() bool {
	return d == BottomTop || d == RightLeft
}

// LayoutOptions tunes the layered layout
type LayoutOptions struct {
	Direction   Direction `json:"direction"`
	NodeSpacing float64   `json:"nodeSpacing"`
	RankSpacing float64   `json:"rankSpacing"`
	MarginX     float64   `json:"marginX"`
	MarginY     float64   `json:"marginY"`
}

// DefaultLayoutOptions returns top-to-bottom ranks with 50/100 spacing and 50 margins
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		Direction:   TopBottom,
		NodeSpacing: DefaultNodeSpacing,
		RankSpacing: DefaultRankSpacing,
		MarginX:     DefaultMargin,
		MarginY:     DefaultMargin,
	}
}

// normalized replaces an empty direction and negative distances with defaults
func (o LayoutOptions) normalized() LayoutOptions {
	if o.Direction == "" {
		o.Direction = TopBottom
	}
	if o.NodeSpacing < 0 {
		o.NodeSpacing = DefaultNodeSpacing
	}
	if o.RankSpacing < 0 {
		o.RankSpacing = DefaultRankSpacing
	}
	if o.MarginX < 0 {
		o.MarginX = DefaultMargin
	}
	if o.MarginY < 0 {
		o.MarginY = DefaultMargin
	}
	return o
}

// ApplyLayout positions g's nodes in place with the named layout
func ApplyLayout(g *Graph, name string, opts LayoutOptions) error {
	switch strings.ToLower(name) {
	case "", LayoutLayered:
		g.Nodes = LayeredLayout(g.Nodes, g.Edges, opts)
		g.Meta.Layout = LayoutLayered
	case LayoutEras:
		g.Nodes = EraBandLayout(g.Nodes)
		g.Meta.Layout = LayoutEras
	default:
		return grapherr.Invalid(grapherr.CategoryLayout, grapherr.SubcategoryLayoutName,
			"Layout must be layered or eras", "unknown layout %q", name).
			WithContext("layout", name)
	}
	return nil
}

type link struct {
	from, to int
}

// LayeredLayout assigns every node a top-left position in a layered drawing:
// cycles are broken, nodes ranked along the edge direction, ranks reordered to
// reduce crossings and packed without overlap. Input slices are not modified.
func LayeredLayout(nodes []Node, edges []Edge, opts LayoutOptions) []Node {
	out := make([]Node, len(nodes))
	copy(out, nodes)
	if len(out) == 0 {
		return out
	}
	opts = opts.normalized()

	index := make(map[string]int, len(out))
	for i := range out {
		if out[i].Width == 0 || out[i].Height == 0 {
			out[i].Width, out[i].Height = Footprint(out[i].Size)
		}
		if _, dup := index[out[i].ID]; !dup {
			index[out[i].ID] = i
		}
	}

	seen := make(map[link]struct{})
	var links []link
	for _, e := range edges {
		u, ok := index[e.Source]
		if !ok {
			continue
		}
		v, ok := index[e.Target]
		if !ok || u == v {
			continue
		}
		l := link{u, v}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		links = append(links, l)
	}

	dag := breakCycles(len(out), links)
	rank := assignRanks(len(out), dag)
	layers := orderLayers(len(out), dag, rank)
	placeLayers(out, layers, opts)
	return out
}

// breakCycles reverses DFS back edges, visiting nodes and edges in input order.
// The result is acyclic and free of duplicates.
func breakCycles(n int, links []link) []link {
	adj := make([][]int, n)
	for _, l := range links {
		adj[l.from] = append(adj[l.from], l.to)
	}

	const (
		unvisited = iota
		onStack
		done
	)
	state := make([]int, n)
	seen := make(map[link]struct{}, len(links))
	dag := make([]link, 0, len(links))
	add := func(l link) {
		if _, dup := seen[l]; dup {
			return
		}
		seen[l] = struct{}{}
		dag = append(dag, l)
	}

	var visit func(u int)
	visit = func(u int) {
		state[u] = onStack
		for _, v := range adj[u] {
			switch state[v] {
			case onStack:
				add(link{v, u})
			case unvisited:
				add(link{u, v})
				visit(v)
			default:
				add(link{u, v})
			}
		}
		state[u] = done
	}
	for u := 0; u < n; u++ {
		if state[u] == unvisited {
			visit(u)
		}
	}
	return dag
}

// assignRanks gives each node its longest-path distance from a source (Kahn's
// algorithm), then moves every source down to sit one rank above its nearest successor.
func assignRanks(n int, dag []link) []int {
	succ := make([][]int, n)
	inDegree := make([]int, n)
	for _, l := range dag {
		succ[l.from] = append(succ[l.from], l.to)
		inDegree[l.to]++
	}

	sources := make([]bool, n)
	queue := make([]int, 0, n)
	for u := 0; u < n; u++ {
		if inDegree[u] == 0 {
			sources[u] = true
			queue = append(queue, u)
		}
	}

	rank := make([]int, n)
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range succ[u] {
			if rank[u]+1 > rank[v] {
				rank[v] = rank[u] + 1
			}
			inDegree[v]--
			if inDegree[v] == 0 {
				queue = append(queue, v)
			}
		}
	}

	for u := 0; u < n; u++ {
		if !sources[u] || len(succ[u]) == 0 {
			continue
		}
		nearest := rank[succ[u][0]]
		for _, v := range succ[u][1:] {
			if rank[v] < nearest {
				nearest = rank[v]
			}
		}
		rank[u] = nearest - 1
	}

	lowest := rank[0]
	for _, r := range rank {
		if r < lowest {
			lowest = r
		}
	}
	for u := range rank {
		rank[u] -= lowest
	}
	return rank
}

// orderLayers splits long edges with virtual nodes and runs alternating
// barycenter sweeps, keeping the ordering with the fewest crossings.
// Returned layers hold real node indices only.
func orderLayers(n int, dag []link, rank []int) [][]int {
	maxRank := 0
	for _, r := range rank {
		if r > maxRank {
			maxRank = r
		}
	}

	rankOf := append([]int(nil), rank...)
	up := make([][]int, n)
	down := make([][]int, n)
	connect := func(a, b int) {
		down[a] = append(down[a], b)
		up[b] = append(up[b], a)
	}
	virtual := func(r int) int {
		rankOf = append(rankOf, r)
		up = append(up, nil)
		down = append(down, nil)
		return len(rankOf) - 1
	}

	for _, l := range dag {
		prev := l.from
		for r := rank[l.from] + 1; r < rank[l.to]; r++ {
			v := virtual(r)
			connect(prev, v)
			prev = v
		}
		connect(prev, l.to)
	}

	layers := make([][]int, maxRank+1)
	for v, r := range rankOf {
		layers[r] = append(layers[r], v)
	}

	pos := make([]float64, len(rankOf))
	reindex := func(layer []int) {
		for i, v := range layer {
			pos[v] = float64(i)
		}
	}
	for _, layer := range layers {
		reindex(layer)
	}

	best := cloneLayers(layers)
	bestCrossings := countCrossings(layers, down, pos)

	for sweep := 0; sweep < orderingSweeps && bestCrossings > 0; sweep++ {
		if sweep%2 == 0 {
			for r := 1; r <= maxRank; r++ {
				sortByBarycenter(layers[r], up, pos)
				reindex(layers[r])
			}
		} else {
			for r := maxRank - 1; r >= 0; r-- {
				sortByBarycenter(layers[r], down, pos)
				reindex(layers[r])
			}
		}
		if c := countCrossings(layers, down, pos); c < bestCrossings {
			bestCrossings = c
			best = cloneLayers(layers)
		}
	}

	for r, layer := range best {
		kept := layer[:0]
		for _, v := range layer {
			if v < n {
				kept = append(kept, v)
			}
		}
		best[r] = kept
	}
	return best
}

// sortByBarycenter orders a layer by the mean position of each node's
// neighbors in the fixed adjacent layer. Nodes without neighbors keep their slot.
func sortByBarycenter(layer []int, fixed [][]int, pos []float64) {
	bary := make(map[int]float64, len(layer))
	for _, v := range layer {
		if len(fixed[v]) == 0 {
			bary[v] = pos[v]
			continue
		}
		sum := 0.0
		for _, u := range fixed[v] {
			sum += pos[u]
		}
		bary[v] = sum / float64(len(fixed[v]))
	}
	sort.SliceStable(layer, func(i, j int) bool {
		return bary[layer[i]] < bary[layer[j]]
	})
}

func countCrossings(layers [][]int, down [][]int, pos []float64) int {
	total := 0
	for r := 0; r+1 < len(layers); r++ {
		var segs [][2]float64
		for _, u := range layers[r] {
			for _, v := range down[u] {
				segs = append(segs, [2]float64{pos[u], pos[v]})
			}
		}
		for i := 0; i < len(segs); i++ {
			for j := i + 1; j < len(segs); j++ {
				a, b := segs[i], segs[j]
				if (a[0] < b[0] && a[1] > b[1]) || (a[0] > b[0] && a[1] < b[1]) {
					total++
				}
			}
		}
	}
	return total
}

func cloneLayers(layers [][]int) [][]int {
	out := make([][]int, len(layers))
	for i, l := range layers {
		out[i] = append([]int(nil), l...)
	}
	return out
}

// placeLayers packs each rank along its axis with NodeSpacing gaps, centers
// ranks against the widest one and separates ranks by their thickest node plus RankSpacing.
func placeLayers(nodes []Node, layers [][]int, opts LayoutOptions) {
	horizontal := opts.Direction.horizontal()
	along := func(n *Node) float64 {
		if horizontal {
			return n.Height
		}
		return n.Width
	}
	across := func(n *Node) float64 {
		if horizontal {
			return n.Width
		}
		return n.Height
	}

	extent := make([]float64, len(layers))
	thickness := make([]float64, len(layers))
	widest := 0.0
	for r, layer := range layers {
		for i, v := range layer {
			extent[r] += along(&nodes[v])
			if i > 0 {
				extent[r] += opts.NodeSpacing
			}
			if t := across(&nodes[v]); t > thickness[r] {
				thickness[r] = t
			}
		}
		if extent[r] > widest {
			widest = extent[r]
		}
	}

	start := make([]float64, len(layers))
	total := 0.0
	for r := range layers {
		if r > 0 {
			total += opts.RankSpacing
		}
		start[r] = total
		total += thickness[r]
	}

	for r, layer := range layers {
		cursor := (widest - extent[r]) / 2
		for _, v := range layer {
			n := &nodes[v]
			centerAlong := cursor + along(n)/2
			cursor += along(n) + opts.NodeSpacing

			centerAcross := start[r] + thickness[r]/2
			if opts.Direction.reversed() {
				centerAcross = total - centerAcross
			}

			cx, cy := centerAlong, centerAcross
			if horizontal {
				cx, cy = centerAcross, centerAlong
			}
			n.Position = Position{
				X: opts.MarginX + cx - n.Width/2,
				Y: opts.MarginY + cy - n.Height/2,
			}
		}
	}
}
