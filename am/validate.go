package am

import (
	"strings"

	"github.com/teranos/jazzgraph/errors"
)

var validDirections = map[string]bool{"TB": true, "BT": true, "LR": true, "RL": true}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.Newf("server.port must be between 0 and 65535, got %d", c.Server.Port)
	}
	// 0 = limiter disabled
	if c.Server.RateLimit < 0 {
		return errors.Newf("server.rate_limit must be >= 0, got %f", c.Server.RateLimit)
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		return errors.Newf("server.rate_burst must be >= 1 when rate_limit is set, got %d", c.Server.RateBurst)
	}

	if c.Graph.DefaultDepth < 0 || c.Graph.DefaultDepth > MaxFocusDepth {
		return errors.Newf("graph.default_depth must be between 0 and %d, got %d", MaxFocusDepth, c.Graph.DefaultDepth)
	}
	if c.Graph.Direction != "" && !validDirections[strings.ToUpper(c.Graph.Direction)] {
		return errors.WithHint(
			errors.Newf("graph.direction %q is not a layout direction", c.Graph.Direction),
			"use TB, BT, LR or RL")
	}
	if c.Graph.Layout != "" && c.Graph.Layout != LayoutLayered && c.Graph.Layout != LayoutEras {
		return errors.Newf("graph.layout must be %q or %q, got %q", LayoutLayered, LayoutEras, c.Graph.Layout)
	}
	if c.Graph.NodeSpacing < 0 || c.Graph.RankSpacing < 0 {
		return errors.New("graph.node_spacing and graph.rank_spacing must be >= 0")
	}
	if c.Graph.MarginX < 0 || c.Graph.MarginY < 0 {
		return errors.New("graph.margin_x and graph.margin_y must be >= 0")
	}

	if c.Mini.MaxPerSide < 0 {
		return errors.Newf("mini.max_per_side must be >= 0, got %d", c.Mini.MaxPerSide)
	}
	if c.Search.ResultLimit < 0 {
		return errors.Newf("search.result_limit must be >= 0, got %d", c.Search.ResultLimit)
	}

	return nil
}
