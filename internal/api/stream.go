package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/vietddude/stacksyield/internal/core/domain"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = pongWait * 9 / 10
	sendBuffer   = 16
)

// Event is a message pushed to stream clients.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type streamClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Stream pushes bridge transaction updates to websocket clients. It
// implements bridge.Listener.
type Stream struct {
	upgrader websocket.Upgrader
	clients  map[string]*streamClient
	mu       sync.RWMutex
	log      *slog.Logger
}

// NewStream creates an empty stream. checkOrigin may be nil to accept any origin.
func NewStream(checkOrigin func(r *http.Request) bool) *Stream {
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &Stream{
		upgrader: websocket.Upgrader{CheckOrigin: checkOrigin},
		clients:  make(map[string]*streamClient),
		log:      slog.Default().With("component", "stream"),
	}
}

// OnTransaction broadcasts tx. Clients with a full buffer are dropped.
func (s *Stream) OnTransaction(tx domain.BridgeTransaction) {
	data, err := json.Marshal(Event{Type: "transaction", Data: tx})
	if err != nil {
		s.log.Error("Failed to encode transaction event", "id", tx.ID, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.clients {
		select {
		case c.send <- data:
		default:
			s.log.Warn("Dropping slow stream client", "client", id)
			delete(s.clients, id)
			close(c.send)
		}
	}
}

// Len returns the number of connected clients.
func (s *Stream) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Close disconnects all clients.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.clients {
		delete(s.clients, id)
		close(c.send)
	}
}

func (s *Stream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	c := &streamClient{id: uuid.NewString(), conn: conn, send: make(chan []byte, sendBuffer)}
	s.mu.Lock()
	s.clients[c.id] = c
	s.mu.Unlock()
	s.log.Debug("Stream client connected", "client", c.id)

	go s.writer(c)
	s.reader(c)
}

func (s *Stream) remove(c *streamClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c.id]; ok {
		delete(s.clients, c.id)
		close(c.send)
	}
}

func (s *Stream) writer(c *streamClient) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.remove(c)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.remove(c)
				return
			}
		}
	}
}

// reader drains the connection until it closes; clients only listen.
func (s *Stream) reader(c *streamClient) {
	defer s.remove(c)

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.Debug("Stream client read error", "client", c.id, "error", err)
			}
			return
		}
	}
}
