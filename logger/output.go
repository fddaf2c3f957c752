package logger

// OutputCategory defines a category of output that can be enabled/disabled.
//
// Log levels filter by severity; categories filter by kind of information.
//
//	0 (default) - results, errors with hints
//	1 (-v)      - + startup, dataset summary, server status
//	2 (-vv)     - + filter details, layout timing, config loaded, HTTP requests
//	3 (-vvv)    - + traversal frontiers, SQL statements
//	4 (-vvvv)   - + full graph and message dumps
type OutputCategory int

const (
	// Level 0 - always shown
	OutputResults OutputCategory = iota
	OutputErrors

	// Level 1 (-v)
	OutputStartup
	OutputDataset
	OutputServerStatus

	// Level 2 (-vv)
	OutputFilters
	OutputTiming
	OutputConfig
	OutputHTTPCalls

	// Level 3 (-vvv)
	OutputTraversal
	OutputSQLQueries

	// Level 4 (-vvvv)
	OutputGraphDump
	OutputMessageBody
)

var categoryLevels = map[OutputCategory]int{
	OutputResults: VerbosityUser,
	OutputErrors:  VerbosityUser,

	OutputStartup:      VerbosityInfo,
	OutputDataset:      VerbosityInfo,
	OutputServerStatus: VerbosityInfo,

	OutputFilters:   VerbosityDebug,
	OutputTiming:    VerbosityDebug,
	OutputConfig:    VerbosityDebug,
	OutputHTTPCalls: VerbosityDebug,

	OutputTraversal:  VerbosityTrace,
	OutputSQLQueries: VerbosityTrace,

	OutputGraphDump:   VerbosityAll,
	OutputMessageBody: VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

var categoryNames = map[OutputCategory]string{
	OutputResults:      "results",
	OutputErrors:       "errors",
	OutputStartup:      "startup",
	OutputDataset:      "dataset",
	OutputServerStatus: "server-status",
	OutputFilters:      "filters",
	OutputTiming:       "timing",
	OutputConfig:       "config",
	OutputHTTPCalls:    "http",
	OutputTraversal:    "traversal",
	OutputSQLQueries:   "sql",
	OutputGraphDump:    "graph-dump",
	OutputMessageBody:  "message-body",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
