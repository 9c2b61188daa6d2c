package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections for sessions. Admin connections (owner
// and co-admin) and participant connections are tracked separately so events
// can be fanned out to either audience.
type Hub struct {
	adminConns       map[string]map[*Connection]struct{} // sessionID -> conns
	participantConns map[string]map[*Connection]struct{}

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection subscribed to one session.
type Connection struct {
	SessionID string
	IsAdmin   bool
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	SessionID string
	AdminOnly bool
	Message   *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		adminConns:       make(map[string]map[*Connection]struct{}),
		participantConns: make(map[string]map[*Connection]struct{}),
		register:         make(chan *Connection),
		unregister:       make(chan *Connection),
		broadcast:        make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			conns := h.connsFor(conn)
			if conns[conn.SessionID] == nil {
				conns[conn.SessionID] = make(map[*Connection]struct{})
			}
			conns[conn.SessionID][conn] = struct{}{}
			h.mu.Unlock()
			log.Printf("ws: connection registered for session %s (admin=%v)", conn.SessionID, conn.IsAdmin)

		case conn := <-h.unregister:
			h.mu.Lock()
			conns := h.connsFor(conn)
			if set, ok := conns[conn.SessionID]; ok {
				if _, ok := set[conn]; ok {
					delete(set, conn)
					close(conn.Send)
					if len(set) == 0 {
						delete(conns, conn.SessionID)
					}
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)

			for conn := range h.adminConns[msg.SessionID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			if !msg.AdminOnly {
				for conn := range h.participantConns[msg.SessionID] {
					select {
					case conn.Send <- data:
					default:
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) connsFor(conn *Connection) map[string]map[*Connection]struct{} {
	if conn.IsAdmin {
		return h.adminConns
	}
	return h.participantConns
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToSession sends an event to every subscriber of a session
// (implements service.Broadcaster)
func (h *Hub) BroadcastToSession(sessionID, event string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		SessionID: sessionID,
		Message: &Message{
			Type:    MessageType(event),
			Payload: data,
		},
	}
}

// BroadcastToAdmins sends an event to the session's admin connections only
// (implements service.Broadcaster)
func (h *Hub) BroadcastToAdmins(sessionID, event string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		SessionID: sessionID,
		AdminOnly: true,
		Message: &Message{
			Type:    MessageType(event),
			Payload: data,
		},
	}
}
