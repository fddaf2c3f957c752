package server

import (
	"time"

	"github.com/teranos/jazzgraph/catalog"
)

const (
	// MaxClients is the maximum number of concurrent WebSocket clients
	MaxClients = 100
	// MaxClientMessageQueueSize is the size of per-client message queues
	MaxClientMessageQueueSize = 64
	// ShutdownTimeout is how long to wait for graceful shutdown
	ShutdownTimeout = 10 * time.Second
	// ReadHeaderTimeout bounds slow clients on the HTTP listener
	ReadHeaderTimeout = 5 * time.Second
)

// ServerState represents the server lifecycle state
type ServerState int

const (
	ServerStateRunning  ServerState = iota // Normal operation
	ServerStateDraining                    // Graceful shutdown in progress
	ServerStateStopped                     // Shutdown complete
)

// Client message types
const (
	MsgSetFilter  = "set_filter"
	MsgFocus      = "focus"
	MsgFindPath   = "find_path"
	MsgClearFocus = "clear_focus"
	MsgClearPath  = "clear_path"
	MsgSelect     = "select"
	MsgSetLayout  = "set_layout"
	MsgSearch     = "search"
	MsgPing       = "ping"
)

// Server message types
const (
	MsgGraph  = "graph"
	MsgPath   = "path"
	MsgResult = "search"
	MsgError  = "error"
	MsgPong   = "pong"
)

// ClientMessage is a message from a WebSocket client
type ClientMessage struct {
	Type      string `json:"type"`                // set_filter, focus, find_path, clear_focus, clear_path, select, set_layout, search, ping
	Focus     string `json:"focus,omitempty"`     // set_filter, focus
	Depth     *int   `json:"depth,omitempty"`     // set_filter; nil with a focus means the default depth
	Era       string `json:"era,omitempty"`       // set_filter
	Genre     string `json:"genre,omitempty"`     // set_filter
	From      string `json:"from,omitempty"`      // find_path
	To        string `json:"to,omitempty"`        // find_path
	Artist    string `json:"artist,omitempty"`    // select
	Layout    string `json:"layout,omitempty"`    // set_layout
	Direction string `json:"direction,omitempty"` // set_layout
	Query     string `json:"query,omitempty"`     // search
	Limit     int    `json:"limit,omitempty"`     // search
}

// ServerMessage is sent to WebSocket clients
type ServerMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// ErrorPayload is the body of error responses, over HTTP and WebSocket
type ErrorPayload struct {
	Error       string `json:"error"`
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
}

// HealthResponse is returned by /health
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	Clients   int    `json:"clients"`
	Artists   int    `json:"artists"`
	Albums    int    `json:"albums"`
	Uptime    string `json:"uptime"`
}

// NeighborhoodResponse is returned by /api/neighborhood
type NeighborhoodResponse struct {
	Focus   string            `json:"focus"`
	Depth   int               `json:"depth"`
	Artists []*catalog.Artist `json:"artists"`
}

// ArtistResponse is returned by /api/artists/{id}
type ArtistResponse struct {
	Artist *catalog.Artist `json:"artist"`
	Eras   []catalog.Era   `json:"eras"`
	Albums []catalog.Album `json:"albums"`
}

// RelatedArtistsResponse is returned by /api/artists/{id}/related
type RelatedArtistsResponse struct {
	Artist       string            `json:"artist"`
	InfluencedBy []*catalog.Artist `json:"influencedBy"`
	Influences   []*catalog.Artist `json:"influences"`
}

// ErasResponse is returned by /api/eras
type ErasResponse struct {
	Eras  []catalog.Era      `json:"eras"`
	Stats []catalog.EraStats `json:"stats"`
}
