package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second
	sendQueue = 32
)

// TokenResolver maps a session token to a user id
type TokenResolver func(token string) (string, bool)

type envelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// writePump drains the send queue; it exits when the queue is closed or a write fails
func (c *client) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Hub keeps every open socket per user and pushes events to them
type Hub struct {
	resolve  TokenResolver
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
}

func NewHub(resolve TokenResolver) *Hub {
	return &Hub{
		resolve: resolve,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[string]map[*client]struct{}),
	}
}

// ServeHTTP upgrades /ws?token=... and holds the socket until the peer leaves
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.resolve(r.URL.Query().Get("token"))
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendQueue)}
	data, _ := json.Marshal(envelope{Type: "connected"})
	c.send <- data
	h.add(userID, c)
	defer h.remove(userID, c)
	go c.writePump()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws: user %s: %v", userID, err)
			}
			return
		}
	}
}

// Push queues {"type": eventType, "payload": payload} for every socket of the user without waiting
// on the network. A socket whose queue is full is dropped.
func (h *Hub) Push(userID, eventType string, payload interface{}) {
	if !h.IsOnline(userID) {
		return
	}

	data, err := json.Marshal(envelope{Type: eventType, Payload: payload})
	if err != nil {
		log.Printf("ws: encode %s: %v", eventType, err)
		return
	}

	var stalled []*client
	h.mu.RLock()
	for c := range h.clients[userID] {
		select {
		case c.send <- data:
		default:
			stalled = append(stalled, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stalled {
		log.Printf("ws: user %s: send queue full, dropping socket", userID)
		h.remove(userID, c)
		c.conn.Close()
	}
}

func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

// Close drops every socket
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, userID)
	}
}

func (h *Hub) add(userID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[userID]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[userID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) remove(userID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, userID)
	}
}
