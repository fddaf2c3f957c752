package graph

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/teranos/jazzgraph/catalog"
	grapherr "github.com/teranos/jazzgraph/graph/error"
	"github.com/teranos/jazzgraph/logger"
	"go.uber.org/zap"
)

// MaxDepth bounds focus expansion
const MaxDepth = 6

// View is everything needed to render one graph: filters, layout and decorations
type View struct {
	Filter   Filter        `json:"filter"`
	Layout   string        `json:"layout,omitempty"`
	Options  LayoutOptions `json:"options"`
	Selected string        `json:"selected,omitempty"`
	Path     []string      `json:"path,omitempty"`
}

// Validate checks the filter against the catalog
func (f Filter) Validate(c *catalog.Catalog) error {
	if f.Era != "" {
		if _, ok := c.Era(f.Era); !ok && !catalog.IsKnownEra(f.Era) {
			return grapherr.Invalid(grapherr.CategoryQuery, grapherr.SubcategoryUnknownEra,
				"Unknown era "+f.Era, "unknown era %q", f.Era).
				WithContext(logger.FieldEra, f.Era)
		}
	}
	if f.Depth < 0 || f.Depth > MaxDepth {
		return grapherr.Invalid(grapherr.CategoryQuery, grapherr.SubcategoryInvalidDepth,
			"Depth must be between 0 and "+strconv.Itoa(MaxDepth), "depth %d out of range", f.Depth).
			WithContext(logger.FieldDepth, f.Depth)
	}
	if f.HasFocus() {
		if _, ok := c.Artist(f.FocusArtistID); !ok {
			return grapherr.UnknownArtist(f.FocusArtistID)
		}
	}
	return nil
}

// BuildView validates, builds, lays out and decorates a graph.
// On failure it returns an empty graph whose Meta.Config describes the error.
func (b *Builder) BuildView(ctx context.Context, c *catalog.Catalog, v View) (*Graph, error) {
	log := logger.LoggerFromContext(ctx, b.logger)

	if err := v.Filter.Validate(c); err != nil {
		return failed(log, c, v.Filter, err), err
	}

	g := b.Build(c, v.Filter)

	start := time.Now()
	if err := ApplyLayout(g, v.Layout, v.Options); err != nil {
		return failed(log, c, v.Filter, err), err
	}
	if logger.ShouldOutput(b.verbosity, logger.OutputTiming) {
		log.Debugw("Layout complete",
			"layout", g.Meta.Layout,
			logger.FieldNodes, len(g.Nodes),
			logger.FieldDurationMS, time.Since(start).Milliseconds(),
		)
	}

	if v.Selected != "" {
		Highlight(g, v.Selected)
	}
	if len(v.Path) > 0 {
		MarkPath(g, v.Path)
	}

	if logger.ShouldOutput(b.verbosity, logger.OutputGraphDump) {
		log.Debugw("Graph nodes", "ids", nodeIDs(g))
	}
	return g, nil
}

func failed(log *zap.SugaredLogger, c *catalog.Catalog, f Filter, err error) *Graph {
	g := emptyGraph(c.Index(), f)
	if ge, ok := grapherr.As(err); ok {
		log.Warnw("Graph query rejected", ge.ToLogFields()...)
		g.Meta.Config = ge.ToGraphMeta()
	} else {
		log.Warnw("Graph query rejected", logger.FieldError, err)
		g.Meta.Config = map[string]string{"error": err.Error()}
	}
	return g
}

func nodeIDs(g *Graph) []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// ParseQuery reads a filter from shell-style key=value words:
//
//	focus=miles-davis depth=2 era=bebop genre="hard bop"
//
// Keys are focus, depth, era and genre. A bare word is taken as the focus artist.
// An empty query is the empty filter.
func ParseQuery(query string) (Filter, error) {
	var f Filter
	query = strings.TrimSpace(query)
	if query == "" {
		return f, nil
	}

	words, err := shellquote.Split(query)
	if err != nil {
		return f, grapherr.New(grapherr.CategoryQuery, err, "Unbalanced quotes in query").
			WithSubcategory(grapherr.SubcategoryInvalidSyntax).
			WithContext(logger.FieldQuery, query)
	}

	for _, w := range words {
		key, value, ok := strings.Cut(w, "=")
		if !ok {
			f.FocusArtistID = w
			continue
		}
		switch strings.ToLower(key) {
		case "focus", "artist":
			f.FocusArtistID = value
		case "depth":
			d, err := strconv.Atoi(value)
			if err != nil {
				return f, grapherr.Invalid(grapherr.CategoryQuery, grapherr.SubcategoryInvalidDepth,
					"Depth must be a number", "depth %q is not a number", value)
			}
			f.Depth = d
		case "era":
			f.Era = value
		case "genre":
			f.Genre = value
		default:
			return f, grapherr.Invalid(grapherr.CategoryQuery, grapherr.SubcategoryInvalidSyntax,
				"Unknown query key "+key, "unknown query key %q", key).
				WithContext(logger.FieldQuery, query)
		}
	}
	return f, nil
}
