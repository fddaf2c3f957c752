package am

// Config represents the jazzgraph configuration (am.toml)
type Config struct {
	Data     DataConfig     `mapstructure:"data"`
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Graph    GraphConfig    `mapstructure:"graph"`
	Mini     MiniConfig     `mapstructure:"mini"`
	Search   SearchConfig   `mapstructure:"search"`
}

// DataConfig selects where the catalog is read from.
// Empty Dir means the dataset embedded in the binary.
type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

// DatabaseConfig configures the optional SQLite catalog snapshot.
// When Path is set and the file holds a snapshot, it wins over Data.Dir.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig configures the HTTP/WebSocket API
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RateLimit      float64  `mapstructure:"rate_limit"` // requests per second, 0 disables limiting
	RateBurst      int      `mapstructure:"rate_burst"`
}

// GraphConfig configures the influence graph view
type GraphConfig struct {
	DefaultDepth int     `mapstructure:"default_depth"` // focus depth when a filter names a focus but no depth
	Layout       string  `mapstructure:"layout"`        // "layered" or "eras"
	Direction    string  `mapstructure:"direction"`     // TB, BT, LR, RL
	NodeSpacing  float64 `mapstructure:"node_spacing"`
	RankSpacing  float64 `mapstructure:"rank_spacing"`
	MarginX      float64 `mapstructure:"margin_x"`
	MarginY      float64 `mapstructure:"margin_y"`
}

// MiniConfig configures the per-artist mini influence network
type MiniConfig struct {
	MaxPerSide int     `mapstructure:"max_per_side"`
	Spacing    float64 `mapstructure:"spacing"`
	RowOffset  float64 `mapstructure:"row_offset"`
}

// SearchConfig configures artist search
type SearchConfig struct {
	ResultLimit int `mapstructure:"result_limit"`
}

// Server port constants
const (
	DefaultServerPort = 8770
	MaxFocusDepth     = 6
)

// Layout names accepted by graph.layout
const (
	LayoutLayered = "layered"
	LayoutEras    = "eras"
)

// File system permission constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)
