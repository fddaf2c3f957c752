package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/teranos/jazzgraph/am"
	"github.com/teranos/jazzgraph/errors"
	"github.com/teranos/jazzgraph/explorer"
	"github.com/teranos/jazzgraph/logger"
)

// getState returns the current server state
func (s *Server) getState() ServerState {
	return ServerState(s.state.Load())
}

// setState atomically updates the server state
func (s *Server) setState(newState ServerState) {
	s.state.Store(int32(newState))
	s.logger.Infow("Server state changed", "new_state", stateString(newState))
}

// stateString returns human-readable state name
func stateString(state ServerState) string {
	switch state {
	case ServerStateRunning:
		return "running"
	case ServerStateDraining:
		return "draining"
	case ServerStateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Start serves on port, or on a fallback port when it is taken.
// ready, when non-nil, receives the bound address before serving begins.
// Returns nil after Stop.
func (s *Server) Start(port int, ready func(addr string)) error {
	actualPort, err := findAvailablePort(port)
	if err != nil {
		return errors.Wrap(err, "failed to find available port")
	}
	if actualPort != port {
		s.logger.Infow("Port in use, using alternative",
			"requested_port", port,
			"actual_port", actualPort,
		)
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", actualPort))
	if err != nil {
		return errors.Wrapf(err, "failed to listen on port %d", actualPort)
	}
	return s.Serve(ln, ready)
}

// Serve runs the hub and serves HTTP on ln until Stop
func (s *Server) Serve(ln net.Listener, ready func(addr string)) error {
	s.startedAt = time.Now()
	s.setState(ServerStateRunning)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Run()
	}()

	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return s.ctx },
	}

	addr := ln.Addr().String()
	if logger.ShouldOutput(int(s.verbosity.Load()), logger.OutputServerStatus) {
		s.logger.Infow("Server ready",
			logger.FieldAddress, addr,
			"artists", len(s.catalog.Artists),
		)
	}
	if ready != nil {
		ready(addr)
	}

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "http server failed")
	}
	return nil
}

// WatchConfig reloads layout and session settings when the config file changes.
// The catalog is never reloaded.
func (s *Server) WatchConfig(path string) error {
	watcher, err := am.NewConfigWatcher(path)
	if err != nil {
		return errors.Wrapf(err, "failed to watch %s", path)
	}
	watcher.OnReload(func(cfg *am.Config) error {
		opts, err := explorer.OptionsFromConfig(cfg, int(s.verbosity.Load()))
		if err != nil {
			return err
		}
		s.ApplyOptions(opts)
		return nil
	})
	watcher.Start()
	am.SetGlobalWatcher(watcher)
	s.configWatcher = watcher

	s.logger.Infow("Watching config for changes", logger.FieldFile, path)
	return nil
}

// Stop gracefully shuts down the server and cleans up resources
func (s *Server) Stop() error {
	s.logger.Infow("Initiating server shutdown")
	s.setState(ServerStateDraining)

	// Close connections before cancelling so the pumps exit on their own
	s.mu.Lock()
	clientsToClose := make([]*Client, 0, len(s.clients))
	for client := range s.clients {
		clientsToClose = append(clientsToClose, client)
	}
	s.mu.Unlock()
	for _, client := range clientsToClose {
		_ = client.conn.Close()
	}

	var shutdownErr error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		shutdownErr = s.httpServer.Shutdown(ctx)
		cancel()
	}

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.logger.Debugw("All goroutines stopped cleanly")
	case <-time.After(ShutdownTimeout):
		s.logger.Warnw("Goroutine shutdown timed out, forcing exit", "timeout", ShutdownTimeout)
	}

	if s.configWatcher != nil {
		if err := s.configWatcher.Stop(); err != nil {
			s.logger.Warnw("Failed to stop config watcher", logger.FieldError, err)
		}
	}

	s.setState(ServerStateStopped)
	s.logger.Infow("Server shutdown complete", "dropped_messages", s.drops.Load())

	if shutdownErr != nil {
		return errors.Wrap(shutdownErr, "http shutdown")
	}
	return nil
}
