package web

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/umputun/snaapy/app/enum"
	"github.com/umputun/snaapy/app/theme"
)

const (
	wsWriteTimeout = 2 * time.Second
	wsQueueSize    = 16 // pending messages per client before it's dropped as stuck
)

// themeMessage is pushed to live clients on connect and on every theme change.
type themeMessage struct {
	Theme string `json:"theme"`
}

// wsClient is a connected page. Messages are queued and written by the client's own
// writer goroutine, so a slow socket never holds up the theme store.
type wsClient struct {
	id    string
	conn  *websocket.Conn
	queue chan themeMessage
	done  chan struct{}
	once  sync.Once
}

func newWSClient(conn *websocket.Conn) *wsClient {
	return &wsClient{
		id:    uuid.NewString(),
		conn:  conn,
		queue: make(chan themeMessage, wsQueueSize),
		done:  make(chan struct{}),
	}
}

// enqueue adds msg without blocking, false if the queue is full.
func (c *wsClient) enqueue(msg themeMessage) bool {
	select {
	case c.queue <- msg:
		return true
	default:
		return false
	}
}

// close stops the writer and closes the connection, safe to call more than once.
func (c *wsClient) close() {
	c.once.Do(func() {
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// writeLoop writes queued messages in order until the client is closed or a write fails.
func (c *wsClient) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.queue:
			if err := c.write(msg); err != nil {
				log.Printf("[DEBUG] theme client %s write failed: %v", c.id, err)
				c.close()
				return
			}
		}
	}
}

func (c *wsClient) write(msg themeMessage) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("write theme message: %w", err)
	}
	return nil
}

// Hub keeps open pages in sync with the theme store, each page
// updates its data-theme attribute from the pushed messages.
type Hub struct {
	theme    *theme.Consumer
	upgrader websocket.Upgrader
	unsub    func()

	mu      sync.RWMutex
	clients map[string]*wsClient
}

// NewHub makes a hub subscribed to theme changes.
func NewHub(consumer *theme.Consumer) *Hub {
	h := &Hub{
		theme:    consumer,
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		clients:  make(map[string]*wsClient),
	}
	h.unsub = consumer.Subscribe(h.broadcast)
	return h
}

// ServeWS upgrades the request and keeps the client registered until it disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WARN] websocket upgrade failed: %v", err)
		return
	}

	c := newWSClient(conn)
	h.add(c)
	defer func() {
		h.remove(c.id)
		c.close()
	}()
	go c.writeLoop()

	// clients don't send anything, read only to notice the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close unsubscribes from the store and disconnects all clients.
func (h *Hub) Close() {
	h.unsub()
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		c.close()
		delete(h.clients, id)
	}
}

// add registers c and queues the current theme under the hub lock. A broadcast
// either sees c and queues after it, or ran before and the current theme already has its value.
func (h *Hub) add(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	c.enqueue(themeMessage{Theme: h.theme.Theme().String()})
	log.Printf("[DEBUG] theme client %s connected, %d total", c.id, len(h.clients))
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

// broadcast runs as a theme subscriber, in the order changes were made.
// It only queues, clients with a full queue are dropped.
func (h *Hub) broadcast(t enum.Theme) {
	msg := themeMessage{Theme: t.String()}
	var stuck []*wsClient
	h.mu.RLock()
	for _, c := range h.clients {
		if !c.enqueue(msg) {
			stuck = append(stuck, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stuck {
		log.Printf("[DEBUG] dropping stuck theme client %s", c.id)
		h.remove(c.id)
		c.close()
	}
}
