package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/constants"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/game"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/logging"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The client is served from anywhere during local play.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message types a stream client may send.
const (
	StreamPress   = "press"
	StreamEnter   = "enter"
	StreamRelease = "release"
)

var errUnknownStreamMessage = errors.New("unknown stream message type")

// StreamMessage is one drag event from a client.
type StreamMessage struct {
	Type string `json:"type"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

type streamEvent struct {
	Type     string            `json:"type"`
	Snapshot *service.Snapshot `json:"snapshot,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// Hub fans session snapshots out to every connected stream client.
type Hub struct {
	session *service.Session
	mu      sync.Mutex
	clients map[*streamClient]struct{}
}

// NewHub subscribes a hub to session.
func NewHub(session *service.Session) *Hub {
	h := &Hub{session: session, clients: make(map[*streamClient]struct{})}
	session.Subscribe(h.Broadcast)
	return h
}

type streamClient struct {
	ws   *websocket.Conn
	send chan []byte
}

// Broadcast queues snap for every client. Clients that cannot keep up are
// dropped.
func (h *Hub) Broadcast(snap service.Snapshot) {
	b, err := json.Marshal(streamEvent{Type: "state", Snapshot: &snap})
	if err != nil {
		logging.Error("failed to encode snapshot", err, nil)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- b:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

func (h *Hub) register(c *streamClient) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	return len(h.clients)
}

func (h *Hub) unregister(c *streamClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Clients returns the number of connected stream clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Stream upgrades the request to a websocket, sends the current snapshot and
// then every later one. Incoming drag events are forwarded to the session.
func (h *Hub) Stream(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error(constants.ErrFailedUpgradeStream, err, nil)
		return
	}
	client := &streamClient{ws: ws, send: make(chan []byte, sendBuffer)}
	n := h.register(client)
	logging.Info("stream client connected", logging.Fields{constants.LogFieldClients: n})

	go client.writePump()

	snap := h.session.Snapshot()
	if b, err := json.Marshal(streamEvent{Type: "state", Snapshot: &snap}); err == nil {
		h.sendTo(client, b)
	}
	h.readPump(c.Request.Context(), client)
}

func (h *Hub) readPump(ctx context.Context, c *streamClient) {
	defer func() {
		h.unregister(c)
		c.ws.Close()
		logging.Info("stream client disconnected", logging.Fields{constants.LogFieldClients: h.Clients()})
	}()
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Warn("stream read failed", logging.Fields{"error": err.Error()})
			}
			return
		}
		var msg StreamMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			h.sendError(c, constants.ErrInvalidRequest)
			continue
		}
		if err := h.handle(ctx, msg); err != nil {
			h.sendError(c, err.Error())
		}
	}
}

// handle forwards one drag event. The resulting snapshot reaches the client
// through Broadcast.
func (h *Hub) handle(ctx context.Context, msg StreamMessage) error {
	pos := game.Position{Row: msg.Row, Col: msg.Col}
	var err error
	switch msg.Type {
	case StreamPress:
		_, err = h.session.Press(pos)
	case StreamEnter:
		_, err = h.session.Enter(pos)
	case StreamRelease:
		_, err = h.session.Release(ctx)
	default:
		return errUnknownStreamMessage
	}
	return err
}

func (h *Hub) sendError(c *streamClient, msg string) {
	b, err := json.Marshal(streamEvent{Type: "error", Error: msg})
	if err != nil {
		return
	}
	h.sendTo(c, b)
}

// sendTo queues b for one client unless it is gone or its buffer is full.
func (h *Hub) sendTo(c *streamClient, b []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- b:
	default:
	}
}

func (c *streamClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := c.ws.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			if _, err := w.Write(message); err != nil {
				return
			}
			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
