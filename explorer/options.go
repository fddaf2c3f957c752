package explorer

import (
	"github.com/teranos/jazzgraph/am"
	"github.com/teranos/jazzgraph/catalog"
	"github.com/teranos/jazzgraph/graph"
)

// Options are the session defaults, usually taken from am.toml
type Options struct {
	DefaultDepth int
	Layout       string
	Layered      graph.LayoutOptions
	Mini         graph.MiniOptions
	SearchLimit  int
	Verbosity    int
}

// DefaultOptions matches the am.toml defaults
func DefaultOptions() Options {
	return Options{
		DefaultDepth: 2,
		Layout:       graph.LayoutLayered,
		Layered:      graph.DefaultLayoutOptions(),
		Mini:         graph.DefaultMiniOptions(),
		SearchLimit:  catalog.DefaultSearchLimit,
	}
}

// OptionsFromConfig converts loaded configuration into session options
func OptionsFromConfig(cfg *am.Config, verbosity int) (Options, error) {
	dir, err := graph.ParseDirection(cfg.Graph.Direction)
	if err != nil {
		return Options{}, err
	}
	return Options{
		DefaultDepth: cfg.Graph.DefaultDepth,
		Layout:       cfg.Graph.Layout,
		Layered: graph.LayoutOptions{
			Direction:   dir,
			NodeSpacing: cfg.Graph.NodeSpacing,
			RankSpacing: cfg.Graph.RankSpacing,
			MarginX:     cfg.Graph.MarginX,
			MarginY:     cfg.Graph.MarginY,
		},
		Mini: graph.MiniOptions{
			MaxPerSide: cfg.Mini.MaxPerSide,
			Spacing:    cfg.Mini.Spacing,
			RowOffset:  cfg.Mini.RowOffset,
		},
		SearchLimit: cfg.Search.ResultLimit,
		Verbosity:   verbosity,
	}, nil
}
