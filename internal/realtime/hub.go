// Package realtime pushes presence changes to connected clients over
// WebSocket. Delivery is fire-and-forget: a client that misses an event
// re-fetches the full presence snapshot on reconnect, so the hub keeps no
// replay log and drops clients that cannot keep up.
package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mssola/useragent"

	"gateway/internal/platform/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	// sendBuffer bounds per-client queued events. A full buffer means the
	// client is too slow and gets dropped.
	sendBuffer = 16
)

// Event is the wire shape of a server-to-client push.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans events out to every connected client. All client-set mutations
// happen on the Run goroutine; handlers only exchange channel messages.
type Hub struct {
	log     *slog.Logger
	metrics *metrics.Metrics

	upgrader   websocket.Upgrader
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	clients    map[*client]struct{}
	done       chan struct{}
}

// NewHub builds a hub that accepts upgrades only from the allowed origins.
// Requests without an Origin header (non-browser clients) are accepted.
func NewHub(allowedOrigins []string, log *slog.Logger, m *metrics.Metrics) *Hub {
	h := &Hub{
		log:        log,
		metrics:    m,
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 64),
		clients:    make(map[*client]struct{}),
		done:       make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}
	return h
}

// Run owns the client set until ctx is cancelled. It must be running before
// ServeHTTP accepts connections.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				c.conn.Close()
			}
			h.clients = make(map[*client]struct{})
			h.setGauge()
			return nil
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.setGauge()
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.setGauge()
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow client: drop it rather than block the fan-out.
					delete(h.clients, c)
					close(c.send)
					h.setGauge()
				}
			}
		}
	}
}

// Broadcast queues an event for every connected client. It never blocks the
// caller: when the hub is shut down or saturated the event is simply lost,
// which the reconnect-and-refetch contract allows.
func (h *Hub) Broadcast(event string, data any) {
	payload, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		h.log.Error("marshal realtime event", "event", event, "error", err)
		return
	}
	select {
	case h.broadcast <- payload:
	case <-h.done:
	default:
		h.log.Warn("realtime broadcast dropped", "event", event)
	}
}

// ServeHTTP upgrades the request and wires the connection into the hub.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.log.Warn("websocket upgrade rejected", "remote", r.RemoteAddr, "error", err)
		return
	}

	ua := useragent.New(r.UserAgent())
	browser, version := ua.Browser()
	h.log.Info("realtime client connected",
		"remote", r.RemoteAddr, "browser", browser, "version", version, "os", ua.OS())

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	h.readPump(c)
}

// readPump discards inbound frames; the channel is server-to-client only.
// It keeps the connection's read side alive for pong handling and detects
// disconnects.
func (h *Hub) readPump(c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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

func (h *Hub) setGauge() {
	if h.metrics != nil {
		h.metrics.ConnectedClients.Set(float64(len(h.clients)))
	}
}
