package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/jazzgraph/am"
	"github.com/teranos/jazzgraph/errors"
	"github.com/teranos/jazzgraph/logger"
	"github.com/teranos/jazzgraph/server"
)

// ServerCmd starts the HTTP/WebSocket API
var ServerCmd = &cobra.Command{
	Use:     "server",
	Aliases: []string{"serve"},
	Short:   "Start the HTTP/WebSocket influence graph API",
	Long: `Serve the influence graph over HTTP and WebSocket.

Each WebSocket client gets its own session; HTTP requests are stateless.
When a config file is present it is watched and layout settings are
applied to connected clients without a restart.`,
	RunE: runServer,
}

var (
	serverPort    int
	serverNoWatch bool
)

func init() {
	ServerCmd.Flags().IntVar(&serverPort, "port", 0, "Port to listen on (default from config)")
	ServerCmd.Flags().BoolVar(&serverNoWatch, "no-watch", false, "Do not hot-reload the config file")
}

func runServer(cmd *cobra.Command, args []string) error {
	// default to Info for server
	verbosity, _ := cmd.Flags().GetCount("verbose")
	if verbosity == 0 {
		verbosity = 1
		if err := logger.Initialize(false, verbosity); err != nil {
			return err
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, src, err := loadCatalog(cmd, cfg)
	if err != nil {
		return err
	}
	opts, err := sessionOptions(cmd, cfg)
	if err != nil {
		return err
	}
	opts.Verbosity = verbosity

	srv, err := server.New(c, server.ConfigFrom(cfg), opts, logger.ComponentLogger("server"))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	configPath := am.ActiveConfigPath()
	if configPath != "" && !serverNoWatch {
		if err := srv.WatchConfig(configPath); err != nil {
			pterm.Warning.Printf("Config hot reload disabled: %v\n", err)
			configPath = ""
		}
	}

	port := serverPort
	if port == 0 {
		port = cfg.GetServerPort()
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(port, func(addr string) {
			printStartupBanner(verbosity, src, addr, configPath)
		})
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err == nil {
			return nil
		}
		return errors.Wrap(err, "server failed to start")
	case <-sigChan:
		pterm.Info.Println("\nShutting down gracefully (press Ctrl+C again to force)...")

		shutdownDone := make(chan error, 1)
		go func() {
			shutdownDone <- srv.Stop()
		}()

		select {
		case err := <-shutdownDone:
			if err != nil {
				return fmt.Errorf("shutdown error: %w", err)
			}
			pterm.Success.Println("Server stopped cleanly")
			return nil
		case <-sigChan:
			pterm.Warning.Println("\nForce shutdown - exiting immediately")
			os.Exit(1)
			return nil
		}
	}
}
