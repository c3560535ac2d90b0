package cartstream

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"nadir/cart"
	"nadir/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Client is one websocket subscriber to a session's cart events.
type Client struct {
	Conn    *websocket.Conn
	Send    chan []byte
	Session string
}

type broadcastMsg struct {
	Session string
	Data    []byte
}

// Hub fans cart events out to the websocket clients watching each session.
// It implements cart.Notifier, so the store publishes straight into it.
type Hub struct {
	sessions   map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	quit       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		quit:       make(chan struct{}),
	}
}

// Publish marshals the event and queues it for every client watching the
// session. A full hub queue drops the event rather than blocking the
// mutating request.
func (h *Hub) Publish(evt cart.Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		log.Println("cartstream marshal error:", err)
		return
	}
	select {
	case h.broadcast <- broadcastMsg{Session: evt.SessionID, Data: data}:
	case <-h.quit:
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.sessions[c.Session] == nil {
				h.sessions[c.Session] = make(map[*Client]bool)
			}
			h.sessions[c.Session][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.sessions[c.Session]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.sessions[m.Session] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.sessions[m.Session], c)
				}
			}
			h.mu.Unlock()

		case <-h.quit:
			h.mu.Lock()
			for _, conns := range h.sessions {
				for c := range conns {
					close(c.Send)
				}
			}
			h.sessions = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return
		}
	}
}

// Stop closes every client channel and ends the Run loop.
func (h *Hub) Stop() {
	close(h.quit)
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// WebSocketHandler upgrades the connection and streams the session's cart
// events until the client goes away.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		session := middleware.SessionID(r)
		if session == "" {
			http.Error(w, "Missing session", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("cartstream upgrade:", err)
			return
		}
		client := &Client{
			Conn:    conn,
			Send:    make(chan []byte, 256),
			Session: session,
		}

		hub.register <- client
		go writePump(client)
		go readPump(client, hub)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump only watches for the close frame; clients never send data.
func readPump(c *Client, hub *Hub) {
	defer func() {
		select {
		case hub.unregister <- c:
		case <-hub.quit:
		}
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
