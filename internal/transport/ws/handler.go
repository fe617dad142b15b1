package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"medprep/internal/debounce"
	"medprep/internal/logging"
	"medprep/internal/similarity"
	"medprep/internal/transport/rest/middleware"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// SimilarityChecker runs the advisory duplicate check for a draft title
type SimilarityChecker interface {
	CheckSimilarity(ctx context.Context, title string, threshold int) ([]similarity.Match, error)
}

// clientMessage is what the question editor sends while the author types:
//
//	{"type":"draft","title":"Why medicine?"}
type clientMessage struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Threshold int    `json:"threshold,omitempty"`
}

type draftTitle struct {
	title     string
	threshold int
}

// Handler handles WebSocket connections. Both endpoints sit behind
// middleware.RequireStaff, which reads the token query param.
type Handler struct {
	hub      *Hub
	checker  SimilarityChecker
	delay    time.Duration
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewHandler creates a new WebSocket handler. Similarity checks run once the
// author has paused typing for delay.
func NewHandler(hub *Hub, checker SimilarityChecker, delay time.Duration, allowedOrigins []string) *Handler {
	return &Handler{
		hub:     hub,
		checker: checker,
		delay:   delay,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		log: logging.Component("ws"),
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// DashboardWS handles GET /v1/ws/dashboard
func (h *Handler) DashboardWS(w http.ResponseWriter, r *http.Request) {
	staffID := middleware.GetStaffID(r.Context())

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("upgrade failed")
		return
	}

	conn := &Connection{
		StaffID: staffID,
		Send:    make(chan []byte, 256),
	}
	if !h.hub.Register(conn) {
		wsConn.Close()
		return
	}

	go h.writePump(wsConn, conn.Send, nil)
	go h.readPump(wsConn, nil, func() { h.hub.Unregister(conn) })
}

// SimilarityWS handles GET /v1/ws/similarity. Every draft title restarts the
// quiet interval; only the latest title is checked.
func (h *Handler) SimilarityWS(w http.ResponseWriter, r *http.Request) {
	staffID := middleware.GetStaffID(r.Context())

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("upgrade failed")
		return
	}

	send := make(chan []byte, 16)
	done := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())

	reply := func(msgType string, payload interface{}) {
		data, err := encodeMessage(msgType, payload)
		if err != nil {
			return
		}
		select {
		case send <- data:
		case <-done:
		default:
		}
	}

	checks := debounce.New(h.delay, func(d draftTitle) {
		matches, err := h.checker.CheckSimilarity(ctx, d.title, d.threshold)
		if err != nil {
			if ctx.Err() == nil {
				h.log.Warn().Err(err).Str("staff_id", staffID).Msg("similarity check failed")
				reply(MsgError, map[string]string{"message": "similarity check unavailable"})
			}
			return
		}
		reply(MsgSimilarQuestions, map[string]interface{}{
			"title":   d.title,
			"matches": matches,
		})
	})

	onMessage := func(data []byte) {
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			reply(MsgError, map[string]string{"message": "invalid message"})
			return
		}
		switch msg.Type {
		case "draft":
			checks.Push(draftTitle{title: msg.Title, threshold: msg.Threshold})
		default:
			reply(MsgError, map[string]string{"message": "unknown message type"})
		}
	}

	go h.writePump(wsConn, send, done)
	go h.readPump(wsConn, onMessage, func() {
		checks.Stop()
		cancel()
		close(done)
	})
}

func (h *Handler) readPump(wsConn *websocket.Conn, onMessage func([]byte), onClose func()) {
	defer func() {
		onClose()
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn().Err(err).Msg("read failed")
			}
			break
		}
		if onMessage != nil {
			onMessage(data)
		}
	}
}

// writePump owns all writes to wsConn. It stops when send is closed or done
// fires.
func (h *Handler) writePump(wsConn *websocket.Conn, send <-chan []byte, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-done:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			wsConn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
