package graph

import (
	"strings"
	"time"

	"github.com/teranos/jazzgraph/catalog"
	"github.com/teranos/jazzgraph/logger"
)

// Build builds the influence graph for f without logging
func Build(c *catalog.Catalog, f Filter) *Graph {
	return silent.Build(c, f)
}

// Build derives the filtered node and edge sets from the catalog.
// Positions are left zero; run a layout over the result.
func (b *Builder) Build(c *catalog.Catalog, f Filter) *Graph {
	start := time.Now()
	idx := c.Index()
	eras := c.EraMap()

	g := emptyGraph(idx, f)

	genres := genresByArtist(c.Albums)
	wantGenre := strings.ToLower(f.Genre)

	var neighborhood IDSet
	if f.HasFocus() {
		neighborhood = Neighborhood(f.FocusArtistID, f.Depth, idx)
	}

	survivors := make([]*catalog.Artist, 0, len(c.Artists))
	for i := range c.Artists {
		a := &c.Artists[i]
		if !a.HasRelations() {
			continue
		}
		g.Meta.Stats.Candidates++

		if f.Era != "" && !containsString(a.Eras, f.Era) {
			continue
		}
		if wantGenre != "" {
			if _, ok := genres[a.ID][wantGenre]; !ok {
				continue
			}
		}
		if neighborhood != nil && !neighborhood.Has(a.ID) {
			continue
		}
		survivors = append(survivors, a)
	}

	present := make(IDSet, len(survivors))
	for _, a := range survivors {
		if present.Has(a.ID) {
			continue
		}
		present.Add(a.ID)
		g.Nodes = append(g.Nodes, newNode(a, eras))
	}

	g.Edges = buildEdges(survivors, present)

	g.Meta.Stats.TotalNodes = len(g.Nodes)
	g.Meta.Stats.TotalEdges = len(g.Edges)

	if logger.ShouldOutput(b.verbosity, logger.OutputFilters) {
		b.logger.Debugw("Built influence graph",
			logger.FieldFocus, f.FocusArtistID,
			logger.FieldDepth, f.Depth,
			logger.FieldEra, f.Era,
			logger.FieldGenre, f.Genre,
			"candidates", g.Meta.Stats.Candidates,
			logger.FieldNodes, len(g.Nodes),
			logger.FieldEdges, len(g.Edges),
			logger.FieldDurationMS, time.Since(start).Milliseconds(),
		)
	}

	return g
}

func newNode(a *catalog.Artist, eras map[string]*catalog.Era) Node {
	count := a.InfluenceCount()
	size := SizeFor(count)
	w, h := Footprint(size)

	primary := a.PrimaryEra()
	return Node{
		ID:             a.ID,
		Artist:         a,
		Era:            eras[primary],
		Color:          ColorFor(primary),
		InfluenceCount: count,
		Size:           size,
		Width:          w,
		Height:         h,
	}
}

// buildEdges emits influencedBy-driven edges before influences-driven ones per artist.
// A pair already connected in either direction is skipped.
func buildEdges(survivors []*catalog.Artist, present IDSet) []Edge {
	edges := []Edge{}
	seen := make(map[string]struct{})

	add := func(source, target string) {
		if source == target || !present.Has(source) || !present.Has(target) {
			return
		}
		id := edgeID(source, target)
		if _, ok := seen[id]; ok {
			return
		}
		if _, ok := seen[edgeID(target, source)]; ok {
			return
		}
		seen[id] = struct{}{}
		edges = append(edges, Edge{ID: id, Source: source, Target: target, Color: EdgeColor, Width: edgeWidth})
	}

	for _, a := range survivors {
		for _, inf := range a.InfluencedBy {
			add(inf, a.ID)
		}
		for _, inf := range a.Influences {
			add(a.ID, inf)
		}
	}
	return edges
}

func edgeID(source, target string) string {
	return source + "->" + target
}

// genresByArtist unions lower-cased album genres per owning artist
func genresByArtist(albums []catalog.Album) map[string]map[string]struct{} {
	out := make(map[string]map[string]struct{})
	for _, al := range albums {
		set, ok := out[al.ArtistID]
		if !ok {
			set = make(map[string]struct{})
			out[al.ArtistID] = set
		}
		for _, g := range al.Genres {
			set[strings.ToLower(g)] = struct{}{}
		}
	}
	return out
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
