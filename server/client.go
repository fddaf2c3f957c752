package server

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/teranos/jazzgraph/explorer"
	"github.com/teranos/jazzgraph/graph"
	grapherr "github.com/teranos/jazzgraph/graph/error"
	"github.com/teranos/jazzgraph/logger"
	"go.uber.org/zap"
)

// WebSocket timeouts, after the gorilla chat example
const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024
)

// Client is one WebSocket connection with its own explorer session
type Client struct {
	server  *Server
	conn    *websocket.Conn
	session *explorer.Explorer
	logger  *zap.SugaredLogger
	ctx     context.Context // carries the client id for logging
	id      string

	mu     sync.Mutex // guards send against close
	send   chan ServerMessage
	closed bool
}

func newClient(s *Server, conn *websocket.Conn) *Client {
	id := uuid.New().String()
	log := s.logger.With(logger.FieldClientID, id)
	return &Client{
		server:  s,
		conn:    conn,
		session: s.newSession(log),
		logger:  log,
		ctx:     logger.WithClientID(context.Background(), id),
		id:      id,
		send:    make(chan ServerMessage, MaxClientMessageQueueSize),
	}
}

// readPump handles reading messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		select {
		case c.server.unregister <- c:
		case <-c.server.ctx.Done():
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			c.handleReadError(err)
			return
		}

		if logger.ShouldOutput(int(c.server.verbosity.Load()), logger.OutputMessageBody) {
			c.logger.Debugw("Received WebSocket message", "body", string(raw))
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError(grapherr.New(grapherr.CategoryWebSocket, err, "Message is not valid JSON").
				WithSubcategory(grapherr.SubcategoryWSMessage))
			continue
		}
		c.routeMessage(&msg)
	}
}

// handleReadError logs unexpected WebSocket read errors.
// Expected closure codes are ignored.
func (c *Client) handleReadError(err error) {
	if websocket.IsUnexpectedCloseError(err,
		websocket.CloseGoingAway,
		websocket.CloseNormalClosure,
		websocket.CloseAbnormalClosure,
		websocket.CloseNoStatusReceived,
	) {
		graphErr := grapherr.New(
			grapherr.CategoryWebSocket,
			err,
			"WebSocket connection closed unexpectedly",
		).WithSubcategory(grapherr.SubcategoryWSRead)

		c.logger.Warnw("WebSocket read error", graphErr.ToLogFields()...)
	}
}

// routeMessage dispatches one client message to the session.
// State changes answer with a fresh graph, lookups with their own message type.
func (c *Client) routeMessage(msg *ClientMessage) {
	var err error
	switch msg.Type {
	case MsgSetFilter:
		err = c.session.SetFilter(c.filterFrom(msg))
	case MsgFocus:
		err = c.session.Focus(msg.Focus)
	case MsgClearFocus:
		c.session.ClearFocus()
	case MsgClearPath:
		c.session.ClearPath()
	case MsgSelect:
		err = c.session.Select(msg.Artist)
	case MsgSetLayout:
		layout := strings.ToLower(msg.Layout)
		if layout == "" {
			layout = c.session.State().Layout
		}
		err = c.session.SetLayout(layout, msg.Direction)
	case MsgFindPath:
		c.handleFindPath(msg)
		return
	case MsgSearch:
		c.enqueue(ServerMessage{Type: MsgResult, Data: c.session.Search(msg.Query, msg.Limit)})
		return
	case MsgPing:
		c.enqueue(ServerMessage{Type: MsgPong})
		return
	default:
		err = grapherr.Invalid(grapherr.CategoryWebSocket, grapherr.SubcategoryWSMessage,
			"Unknown message type "+msg.Type, "unknown message type %q", msg.Type)
	}

	if err != nil {
		c.sendError(err)
		return
	}
	c.pushGraph()
}

// filterFrom builds a filter; a focus without depth gets the session default depth
func (c *Client) filterFrom(msg *ClientMessage) graph.Filter {
	f := graph.Filter{FocusArtistID: msg.Focus, Era: msg.Era, Genre: msg.Genre}
	switch {
	case msg.Depth != nil:
		f.Depth = *msg.Depth
	case f.HasFocus():
		f.Depth = c.session.Options().DefaultDepth
	}
	return f
}

// handleFindPath answers with the path result, then the graph with the path marked
func (c *Client) handleFindPath(msg *ClientMessage) {
	res, err := c.session.FindPath(msg.From, msg.To)
	if err != nil {
		c.sendError(err)
		return
	}
	c.enqueue(ServerMessage{Type: MsgPath, Data: res})
	c.pushGraph()
}

// pushGraph builds the session view and queues it. A failed build still
// sends the empty graph carrying the error metadata.
func (c *Client) pushGraph() {
	g, err := c.session.View(c.ctx)
	if err != nil {
		c.logger.Debugw("View failed", logger.FieldError, err)
	}
	if logger.ShouldOutput(int(c.server.verbosity.Load()), logger.OutputGraphDump) {
		c.logger.Debugw("Graph queued",
			logger.FieldNodes, len(g.Nodes),
			logger.FieldEdges, len(g.Edges),
		)
	}
	c.enqueue(ServerMessage{Type: MsgGraph, Data: g})
}

func (c *Client) sendError(err error) {
	if ge, ok := grapherr.As(err); ok {
		c.logger.Debugw("Client request rejected", ge.ToLogFields()...)
	} else {
		c.logger.Debugw("Client request rejected", logger.FieldError, err)
	}
	c.enqueue(ServerMessage{Type: MsgError, Data: errorPayload(err)})
}

// enqueue queues msg without blocking. A full queue drops the message.
func (c *Client) enqueue(msg ServerMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- msg:
	default:
		total := c.server.drops.Add(1)
		c.logger.Warnw("Client queue full, dropping message",
			"type", msg.Type,
			"total_drops", total,
		)
	}
}

// writePump writes queued messages and keeps the connection alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.server.ctx.Done():
			return
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				graphErr := grapherr.New(
					grapherr.CategoryWebSocket,
					err,
					"Failed to send message to client",
				).WithSubcategory(grapherr.SubcategoryWSWrite)

				c.logger.Warnw("WebSocket write error", graphErr.ToLogFields()...)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// close closes the send queue once; later enqueues are dropped
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
