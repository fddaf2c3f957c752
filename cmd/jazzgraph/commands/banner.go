package commands

import (
	"github.com/pterm/pterm"
	"github.com/teranos/jazzgraph/logger"
	"github.com/teranos/jazzgraph/version"
)

// printStartupBanner prints the server startup message
func printStartupBanner(verbosity int, src source, addr, configPath string) {
	info := version.Get()

	pterm.DefaultHeader.WithFullWidth().Println("jazzgraph")

	rows := [][]string{
		{"Version", info.Version + " (commit " + info.Short() + ")"},
		{"Built", info.BuildTime},
		{"Verbosity", logger.LevelName(verbosity)},
		{"Catalog", src.String()},
		{"Listening", "http://" + addr},
		{"WebSocket", "ws://" + addr + "/ws"},
	}
	if configPath != "" {
		rows = append(rows, []string{"Config", configPath + " (watched)"})
	}
	_ = pterm.DefaultTable.WithData(rows).Render()

	pterm.Info.Println("Try GET /api/path?from=king-oliver&to=john-coltrane")
	pterm.Info.Println("Press Ctrl+C to stop")
}
