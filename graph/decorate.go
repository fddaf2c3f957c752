package graph

// Highlight marks selectedID and the edges touching it; their other endpoints
// become Highlighted. An id not in the graph clears the selection.
func Highlight(g *Graph, selectedID string) {
	touched := IDSet{}
	for i := range g.Edges {
		e := &g.Edges[i]
		e.Highlighted = selectedID != "" && (e.Source == selectedID || e.Target == selectedID)
		if e.Highlighted {
			touched.Add(e.Source)
			touched.Add(e.Target)
		}
		restyle(e)
	}
	for i := range g.Nodes {
		n := &g.Nodes[i]
		n.Selected = selectedID != "" && n.ID == selectedID
		n.Highlighted = !n.Selected && touched.Has(n.ID)
	}
}

// MarkPath flags the nodes of path and the edges joining consecutive steps in
// either direction. Off-path nodes are dimmed while a path is shown.
// An empty path clears all path flags.
func MarkPath(g *Graph, path []string) {
	onPath := make(IDSet, len(path))
	for _, id := range path {
		onPath.Add(id)
	}
	steps := make(map[string]struct{}, 2*len(path))
	for i := 0; i+1 < len(path); i++ {
		steps[edgeID(path[i], path[i+1])] = struct{}{}
		steps[edgeID(path[i+1], path[i])] = struct{}{}
	}

	for i := range g.Nodes {
		n := &g.Nodes[i]
		n.OnPath = onPath.Has(n.ID)
		n.Dimmed = len(path) > 0 && !n.OnPath
	}
	for i := range g.Edges {
		e := &g.Edges[i]
		_, e.OnPath = steps[e.ID]
		restyle(e)
	}
}

func restyle(e *Edge) {
	switch {
	case e.Highlighted:
		e.Color, e.Width = HighlightColor, emphasisEdgeWidth
	case e.OnPath:
		e.Color, e.Width = PathColor, emphasisEdgeWidth
	default:
		e.Color, e.Width = EdgeColor, edgeWidth
	}
}
