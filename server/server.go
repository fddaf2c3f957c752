package server

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/teranos/jazzgraph/am"
	"github.com/teranos/jazzgraph/catalog"
	"github.com/teranos/jazzgraph/explorer"
	"github.com/teranos/jazzgraph/logger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Server serves the influence graph over HTTP and one explorer session per WebSocket client
type Server struct {
	catalog        *catalog.Catalog
	allowedOrigins []string
	limiter        *rate.Limiter     // nil when rate limiting is disabled
	configWatcher  *am.ConfigWatcher // nil unless WatchConfig was called
	logger         *zap.SugaredLogger
	verbosity      atomic.Int32
	startedAt      time.Time

	optsMu sync.RWMutex
	opts   explorer.Options

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	reload     chan struct{} // pending options reload, capacity 1
	mu         sync.RWMutex

	httpServer *http.Server
	handler    http.Handler

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	drops  atomic.Int64 // messages dropped on full client queues
	state  atomic.Int32
}

// Options returns the session defaults new clients start from
func (s *Server) Options() explorer.Options {
	s.optsMu.RLock()
	defer s.optsMu.RUnlock()
	return s.opts
}

// newSession creates an explorer for one client or request
func (s *Server) newSession(log *zap.SugaredLogger) *explorer.Explorer {
	return explorer.New(s.catalog, s.Options(), log)
}

// ClientCount returns the number of connected WebSocket clients
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// handleClientRegister handles a new client connection and sends its initial graph
func (s *Server) handleClientRegister(client *Client) {
	s.mu.Lock()
	if len(s.clients) >= MaxClients {
		s.mu.Unlock()
		s.logger.Warnw("Max clients reached, rejecting connection",
			logger.FieldClientID, client.id,
			"max_clients", MaxClients,
		)
		client.close()
		_ = client.conn.Close()
		return
	}
	s.clients[client] = true
	total := len(s.clients)
	s.mu.Unlock()

	s.logger.Infow("Client connected",
		logger.FieldClientID, client.id,
		"total_clients", total,
	)
	client.pushGraph()
}

// handleClientUnregister handles a client disconnection.
// The hub is the only goroutine that closes client queues.
func (s *Server) handleClientUnregister(client *Client) {
	s.mu.Lock()
	_, ok := s.clients[client]
	delete(s.clients, client)
	total := len(s.clients)
	s.mu.Unlock()

	if !ok {
		return
	}
	client.close()
	s.logger.Infow("Client disconnected",
		logger.FieldClientID, client.id,
		"total_clients", total,
	)
}

// handleReload applies the current session defaults to every client and pushes fresh graphs
func (s *Server) handleReload() {
	opts := s.Options()
	s.mu.RLock()
	clients := make([]*Client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.RUnlock()

	for _, c := range clients {
		c.session.SetOptions(opts)
		c.pushGraph()
	}
	s.logger.Infow("Layout settings reloaded", "clients", len(clients))
}

// Run starts the server hub event loop
func (s *Server) Run() {
	for {
		select {
		case <-s.ctx.Done():
			s.logger.Debugw("Server hub stopping due to context cancellation")
			return
		case client := <-s.register:
			s.handleClientRegister(client)
		case client := <-s.unregister:
			s.handleClientUnregister(client)
		case <-s.reload:
			s.handleReload()
		}
	}
}

// ApplyOptions replaces the session defaults. Connected clients pick them up
// through the hub and receive a fresh graph.
func (s *Server) ApplyOptions(opts explorer.Options) {
	s.optsMu.Lock()
	s.opts = opts
	s.optsMu.Unlock()
	s.verbosity.Store(int32(opts.Verbosity))

	select {
	case s.reload <- struct{}{}:
	default:
		// a reload is already pending and will read the new options
	}
}
