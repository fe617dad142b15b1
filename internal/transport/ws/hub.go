package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"medprep/internal/logging"
)

// Server message types not produced by services
const (
	MsgSimilarQuestions = "similar_questions"
	MsgError            = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func encodeMessage(msgType string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&Message{Type: msgType, Payload: data})
}

// Hub fans dashboard events out to every connected tutor and admin
type Hub struct {
	conns map[*Connection]struct{}
	mu    sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once

	log zerolog.Logger
}

// Connection is one dashboard WebSocket
type Connection struct {
	StaffID string
	Send    chan []byte
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
		log:        logging.Component("ws"),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.conns[conn] = struct{}{}
			h.mu.Unlock()
			h.log.Debug().Str("staff_id", conn.StaffID).Msg("dashboard connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.conns[conn]; ok {
				delete(h.conns, conn)
				close(conn.Send)
				h.log.Debug().Str("staff_id", conn.StaffID).Msg("dashboard disconnected")
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.conns {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for conn := range h.conns {
				delete(h.conns, conn)
				close(conn.Send)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a connection. It reports false once the hub is closed.
func (h *Hub) Register(conn *Connection) bool {
	select {
	case h.register <- conn:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a connection and closes its Send channel
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Clients is the number of connected dashboards
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast sends an event to every dashboard (implements service.Broadcaster).
// It never blocks the caller; events are dropped when the hub is saturated.
func (h *Hub) Broadcast(msgType string, payload interface{}) {
	data, err := encodeMessage(msgType, payload)
	if err != nil {
		h.log.Error().Err(err).Str("type", msgType).Msg("failed to encode broadcast")
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	default:
		h.log.Warn().Str("type", msgType).Msg("broadcast queue full, event dropped")
	}
}

// Close disconnects every dashboard and stops the hub
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}
