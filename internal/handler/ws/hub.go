// Package ws pushes workflow registry events to dashboard clients over
// WebSocket connections.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/coderbuddy/backend/internal/model/workflow"
	"github.com/coderbuddy/backend/internal/service/monitor"
)

type outgoingMessage struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Hub fans registry events out to connected clients. It decouples the
// registry's synchronous notification from socket writes so a slow client
// never stalls a workflow transition.
type Hub struct {
	mon        *monitor.Service
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       chan struct{}
	clients    map[*client]struct{}
	upgrader   websocket.Upgrader
}

// NewHub creates a hub. Call Run before serving connections.
func NewHub(mon *monitor.Service) *Hub {
	return &Hub{
		mon:        mon,
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
		clients:    make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Run subscribes to the registry and dispatches events until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	sub := h.mon.Subscribe(func(event monitor.Event) {
		payload, err := json.Marshal(outgoingMessage{
			Type:      "workflow_update",
			Data:      event,
			Timestamp: time.Now().Unix(),
		})
		if err != nil {
			log.Printf("[ws] marshal event failed: %v", err)
			return
		}
		// The registry lock is held here, so never block.
		select {
		case h.broadcast <- payload:
		default:
			log.Printf("[ws] broadcast queue full, dropping %s", event.Type)
		}
	})
	defer sub.Unsubscribe()
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				c.closeSend()
				c.conn.Close()
				delete(h.clients, c)
			}
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			log.Printf("[ws] client connected, total=%d", len(h.clients))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				c.closeSend()
				log.Printf("[ws] client disconnected, total=%d", len(h.clients))
			}
		case payload := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- payload:
				default:
					// Slow consumer, drop the connection.
					delete(h.clients, c)
					c.closeSend()
					c.conn.Close()
					log.Printf("[ws] dropped slow client, total=%d", len(h.clients))
				}
			}
		}
	}
}

// HandleWebSocket upgrades the request and serves the event feed.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 32),
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()

	c.welcome()
}

// statusSummary snapshots the registry for get_status requests.
func (h *Hub) statusSummary(ctx context.Context) map[string]any {
	sessions := h.mon.RecentSessions(ctx, 0)
	running := 0
	for _, s := range sessions {
		if s.Status == workflow.StatusRunning {
			running++
		}
	}
	return map[string]any{
		"sessions": len(sessions),
		"running":  running,
	}
}
