// Package explorer is the interactive query session over the influence graph:
// the current filter, the shown path and the selected artist.
package explorer

import (
	"context"
	"sync"

	"github.com/teranos/jazzgraph/catalog"
	"github.com/teranos/jazzgraph/graph"
	grapherr "github.com/teranos/jazzgraph/graph/error"
	"github.com/teranos/jazzgraph/logger"
	"go.uber.org/zap"
)

// PathResult is the outcome of FindPath. Found is false when the artists are not connected.
type PathResult struct {
	From    string            `json:"from"`
	To      string            `json:"to"`
	Found   bool              `json:"found"`
	Path    []string          `json:"path"`
	Artists []*catalog.Artist `json:"artists"`
	Degrees int               `json:"degrees"`
}

// State is a snapshot of the session
type State struct {
	Filter   graph.Filter `json:"filter"`
	Layout   string       `json:"layout"`
	Selected string       `json:"selected,omitempty"`
	Path     []string     `json:"path,omitempty"`
}

// Explorer holds one user's view state. Safe for concurrent use.
type Explorer struct {
	catalog *catalog.Catalog
	builder *graph.Builder
	logger  *zap.SugaredLogger

	mu       sync.Mutex
	opts     Options
	filter   graph.Filter
	path     []string
	selected string
}

// New creates a session with no filters over c
func New(c *catalog.Catalog, opts Options, log *zap.SugaredLogger) *Explorer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Explorer{
		catalog: c,
		builder: graph.NewBuilder(opts.Verbosity, log),
		logger:  log.Named("explorer"),
		opts:    opts,
	}
}

// Catalog returns the catalog the session reads
func (e *Explorer) Catalog() *catalog.Catalog {
	return e.catalog
}

// SetOptions swaps the session defaults, for example after a config reload.
// Filters, path and selection are kept.
func (e *Explorer) SetOptions(opts Options) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts = opts
}

// Options returns the current session defaults
func (e *Explorer) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

// SetFilter replaces all filters. An invalid filter leaves the session unchanged.
func (e *Explorer) SetFilter(f graph.Filter) error {
	if err := f.Validate(e.catalog); err != nil {
		e.logger.Debugw("Filter rejected", logger.FieldError, err)
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter = f
	e.logger.Debugw("Filter set",
		logger.FieldFocus, f.FocusArtistID,
		logger.FieldDepth, f.Depth,
		logger.FieldEra, f.Era,
		logger.FieldGenre, f.Genre,
	)
	return nil
}

// Focus centers the view on artistID, keeping the era and genre filters.
// The depth stays as set, or becomes the default depth when no focus was active.
func (e *Explorer) Focus(artistID string) error {
	if _, ok := e.catalog.Artist(artistID); !ok {
		return grapherr.UnknownArtist(artistID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.filter.HasFocus() {
		e.filter.Depth = e.opts.DefaultDepth
	}
	e.filter.FocusArtistID = artistID
	return nil
}

// ClearFocus drops the focus filter only
func (e *Explorer) ClearFocus() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter.FocusArtistID = ""
}

// FindPath looks up the shortest influence chain between two artists and
// shows it. When they are not connected the shown path is cleared.
func (e *Explorer) FindPath(from, to string) (PathResult, error) {
	idx := e.catalog.Index()
	for _, id := range []string{from, to} {
		if _, ok := idx[id]; !ok {
			return PathResult{}, grapherr.UnknownArtist(id).
				WithContext(logger.FieldFrom, from).
				WithContext(logger.FieldTo, to)
		}
	}

	path := graph.ShortestPath(from, to, idx)
	res := PathResult{
		From:    from,
		To:      to,
		Found:   path != nil,
		Path:    path,
		Degrees: graph.Degrees(path),
	}
	for _, id := range path {
		res.Artists = append(res.Artists, idx[id])
	}

	e.mu.Lock()
	e.path = path
	e.mu.Unlock()

	e.logger.Debugw("Path lookup",
		logger.FieldFrom, from,
		logger.FieldTo, to,
		"found", res.Found,
		"degrees", res.Degrees,
	)
	return res, nil
}

// ClearPath hides the shown path
func (e *Explorer) ClearPath() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.path = nil
}

// Select highlights artistID and its edges. An empty id clears the selection.
func (e *Explorer) Select(artistID string) error {
	if artistID != "" {
		if _, ok := e.catalog.Artist(artistID); !ok {
			return grapherr.UnknownArtist(artistID)
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selected = artistID
	return nil
}

// SetLayout switches between the layered and era-band layouts.
// An empty direction keeps the current one.
func (e *Explorer) SetLayout(name, direction string) error {
	switch name {
	case graph.LayoutLayered, graph.LayoutEras:
	default:
		return grapherr.Invalid(grapherr.CategoryLayout, grapherr.SubcategoryLayoutName,
			"Layout must be layered or eras", "unknown layout %q", name)
	}

	var dir graph.Direction
	if direction != "" {
		d, err := graph.ParseDirection(direction)
		if err != nil {
			return err
		}
		dir = d
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Layout = name
	if dir != "" {
		e.opts.Layered.Direction = dir
	}
	return nil
}

// Search finds artists by name or instrument. limit <= 0 uses the session default.
func (e *Explorer) Search(query string, limit int) []catalog.Artist {
	if limit <= 0 {
		limit = e.Options().SearchLimit
	}
	return e.catalog.SearchArtists(query, limit)
}

// State returns a copy of the session state
func (e *Explorer) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		Filter:   e.filter,
		Layout:   e.layoutName(),
		Selected: e.selected,
		Path:     append([]string(nil), e.path...),
	}
}

func (e *Explorer) layoutName() string {
	if e.opts.Layout == "" {
		return graph.LayoutLayered
	}
	return e.opts.Layout
}

// View builds the graph for the current state
func (e *Explorer) View(ctx context.Context) (*graph.Graph, error) {
	e.mu.Lock()
	v := graph.View{
		Filter:   e.filter,
		Layout:   e.layoutName(),
		Options:  e.opts.Layered,
		Selected: e.selected,
		Path:     append([]string(nil), e.path...),
	}
	e.mu.Unlock()

	return e.builder.BuildView(ctx, e.catalog, v)
}

// Network builds the mini influence network of one artist
func (e *Explorer) Network(artistID string) (*graph.MiniGraph, error) {
	a, ok := e.catalog.Artist(artistID)
	if !ok {
		return nil, grapherr.UnknownArtist(artistID)
	}
	return graph.MiniNetwork(a, e.catalog.Index(), e.catalog.EraMap(), e.Options().Mini), nil
}

// Neighborhood lists the artists within depth hops of artistID, focus first,
// the rest in catalog order. depth < 0 uses the default depth.
func (e *Explorer) Neighborhood(artistID string, depth int) ([]*catalog.Artist, error) {
	if _, ok := e.catalog.Artist(artistID); !ok {
		return nil, grapherr.UnknownArtist(artistID)
	}
	if depth < 0 {
		depth = e.Options().DefaultDepth
	}
	if depth > graph.MaxDepth {
		return nil, grapherr.Invalid(grapherr.CategoryQuery, grapherr.SubcategoryInvalidDepth,
			"Depth out of range", "depth %d out of range", depth)
	}

	set := graph.Neighborhood(artistID, depth, e.catalog.Index())
	focus, _ := e.catalog.Artist(artistID)
	out := []*catalog.Artist{focus}
	for i := range e.catalog.Artists {
		a := &e.catalog.Artists[i]
		if a.ID != artistID && set.Has(a.ID) {
			out = append(out, a)
		}
	}
	return out, nil
}
