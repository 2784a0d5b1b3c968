package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"pos-backend/middlewares"
	"pos-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 32
)

// Client is one connected back-office screen.
type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	UserID uint
}

// OrderHub fans order events out to every connected client.
type OrderHub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.Mutex
	upgrader   websocket.Upgrader
}

// NewOrderHub accepts browser connections only from the given origins.
// Requests without an Origin header (non-browser clients) are allowed.
func NewOrderHub(allowedOrigins ...string) *OrderHub {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &OrderHub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
	}
}

// Run owns the client set until Stop is called.
func (h *OrderHub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if h.clients[c] {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.Send <- data:
				default:
					// slow reader, drop it
					delete(h.clients, c)
					close(c.Send)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *OrderHub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Clients reports how many sockets are registered.
func (h *OrderHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish implements services.OrderPublisher. It never blocks the caller;
// events are dropped when the hub is stopped or backed up.
func (h *OrderHub) Publish(ev services.OrderEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("ws: encode %s: %v", ev.Type, err)
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	default:
		log.Printf("ws: broadcast queue full, dropped %s", ev.Type)
	}
}

// WS route: /ws/orders
func (h *OrderHub) HandleWebSocket(c *gin.Context) {
	var userID uint
	if id, ok := middlewares.CurrentIdentity(c); ok {
		userID = id.UserID
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}
	client := &Client{Conn: conn, Send: make(chan []byte, sendBuffer), UserID: userID}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go h.writePump(client)
	go h.readPump(client)
}

func (h *OrderHub) writePump(c *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only watches for the client going away; the feed is one-way.
func (h *OrderHub) readPump(c *Client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
