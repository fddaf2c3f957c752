package graph

import (
	"go.uber.org/zap"
)

// Builder builds influence graphs from a catalog snapshot.
// It holds no per-query state and is safe for concurrent use.
type Builder struct {
	verbosity int
	logger    *zap.SugaredLogger
}

// NewBuilder creates a graph builder
func NewBuilder(verbosity int, logger *zap.SugaredLogger) *Builder {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Builder{
		verbosity: verbosity,
		logger:    logger.Named("graph.builder"),
	}
}

var silent = NewBuilder(0, nil)
