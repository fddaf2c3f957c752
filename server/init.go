package server

import (
	"context"

	"github.com/teranos/jazzgraph/am"
	"github.com/teranos/jazzgraph/catalog"
	"github.com/teranos/jazzgraph/errors"
	"github.com/teranos/jazzgraph/explorer"
	"github.com/teranos/jazzgraph/logger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config is what the server needs from am.toml
type Config struct {
	AllowedOrigins []string
	RateLimit      float64 // requests per second, 0 disables limiting
	RateBurst      int
}

// ConfigFrom extracts the server settings from loaded configuration
func ConfigFrom(cfg *am.Config) Config {
	return Config{
		AllowedOrigins: cfg.GetServerAllowedOrigins(),
		RateLimit:      cfg.Server.RateLimit,
		RateBurst:      cfg.Server.RateBurst,
	}
}

// New creates a server over c. A nil log uses the global logger.
func New(c *catalog.Catalog, cfg Config, opts explorer.Options, log *zap.SugaredLogger) (*Server, error) {
	if c == nil {
		return nil, errors.New("catalog cannot be nil")
	}
	if opts.Verbosity < 0 || opts.Verbosity > logger.VerbosityAll {
		return nil, errors.Newf("verbosity must be 0-%d, got %d", logger.VerbosityAll, opts.Verbosity)
	}
	if cfg.RateLimit < 0 || cfg.RateBurst < 0 {
		return nil, errors.Newf("rate limit and burst must be >= 0, got %v/%d", cfg.RateLimit, cfg.RateBurst)
	}
	if log == nil {
		log = logger.Logger
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		catalog:        c,
		allowedOrigins: cfg.AllowedOrigins,
		logger:         log.Named("server"),
		opts:           opts,
		clients:        make(map[*Client]bool),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		reload:         make(chan struct{}, 1),
		ctx:            ctx,
		cancel:         cancel,
	}
	s.verbosity.Store(int32(opts.Verbosity))

	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst == 0 {
			burst = int(cfg.RateLimit) + 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	s.handler = s.routes()

	if logger.ShouldOutput(opts.Verbosity, logger.OutputConfig) {
		s.logger.Debugw("Server configured",
			"allowed_origins", cfg.AllowedOrigins,
			"rate_limit", cfg.RateLimit,
			"rate_burst", cfg.RateBurst,
			"layout", opts.Layout,
			"default_depth", opts.DefaultDepth,
		)
	}
	return s, nil
}
