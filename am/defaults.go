package am

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data.dir", "")
	v.SetDefault("database.path", "")

	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.allowed_origins", []string{
		"http://localhost",
		"https://localhost",
		"http://127.0.0.1",
		"https://127.0.0.1",
	})
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.rate_burst", 40)

	v.SetDefault("graph.default_depth", 2)
	v.SetDefault("graph.layout", LayoutLayered)
	v.SetDefault("graph.direction", "TB")
	v.SetDefault("graph.node_spacing", 50.0)
	v.SetDefault("graph.rank_spacing", 100.0)
	v.SetDefault("graph.margin_x", 50.0)
	v.SetDefault("graph.margin_y", 50.0)

	v.SetDefault("mini.max_per_side", 5)
	v.SetDefault("mini.spacing", 90.0)
	v.SetDefault("mini.row_offset", 80.0)

	v.SetDefault("search.result_limit", 8)
}

// BindEnvVars binds the settings people commonly override per shell
func BindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("data.dir", "JAZZGRAPH_DATA_DIR")
	_ = v.BindEnv("database.path", "JAZZGRAPH_DATABASE_PATH")
	_ = v.BindEnv("server.port", "JAZZGRAPH_SERVER_PORT")
}

// GetServerAllowedOrigins returns the allowed CORS origins
func (c *Config) GetServerAllowedOrigins() []string {
	if len(c.Server.AllowedOrigins) == 0 {
		return []string{
			"http://localhost",
			"https://localhost",
			"http://127.0.0.1",
			"https://127.0.0.1",
		}
	}
	return c.Server.AllowedOrigins
}

// GetServerPort returns the configured port, falling back to DefaultServerPort
func (c *Config) GetServerPort() int {
	if c.Server.Port == 0 {
		return DefaultServerPort
	}
	return c.Server.Port
}
