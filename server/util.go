package server

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/teranos/jazzgraph/errors"
)

// fallbackPortStart is the first of ten ports tried when the requested one is taken
const fallbackPortStart = 8771

// upgrader creates a WebSocket upgrader with origin checking against the allowed origins
func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
		CheckOrigin:     s.checkOrigin,
	}
}

// checkOrigin validates the request origin against configured allowed origins.
// Prefix matching allows any port number.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// No origin header: direct clients, curl, tests
	if origin == "" {
		return true
	}
	return originAllowed(origin, s.allowedOrigins)
}

func originAllowed(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == "*" || strings.HasPrefix(origin, a) {
			return true
		}
	}
	return false
}

// isPortAvailable checks if a port is available for binding
func isPortAvailable(port int) bool {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	_ = listener.Close() // best-effort check, the real bind happens later
	return true
}

// findAvailablePort tries the requested port, then ten fallback ports
func findAvailablePort(requestedPort int) (int, error) {
	if isPortAvailable(requestedPort) {
		return requestedPort, nil
	}
	for i := 0; i < 10; i++ {
		port := fallbackPortStart + i
		if port != requestedPort && isPortAvailable(port) {
			return port, nil
		}
	}
	return 0, errors.Newf("no available ports found (tried %d and range %d-%d)",
		requestedPort, fallbackPortStart, fallbackPortStart+9)
}
