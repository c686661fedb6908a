package inspect

import (
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gorilla/websocket"
)

const (
	// clientSendBuffer is how many events may queue per client before the
	// client is considered too slow and dropped.
	clientSendBuffer = 256

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// client is one connected inspector session.
type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	// kinds filters which event kinds this client receives.
	// An empty set means all kinds.
	kinds mapset.Set[string]

	closeOnce sync.Once
}

func newClient(id string, conn *websocket.Conn) *client {
	return &client{
		id:    id,
		conn:  conn,
		send:  make(chan []byte, clientSendBuffer),
		kinds: mapset.NewSet[string](),
	}
}

// wants reports whether the client's filter admits kind.
func (c *client) wants(kind string) bool {
	return c.kinds.Cardinality() == 0 || c.kinds.Contains(kind)
}

// setFilter replaces the client's kind filter.
func (c *client) setFilter(kinds []string) {
	next := mapset.NewSet[string](kinds...)
	c.kinds.Clear()
	c.kinds.Append(next.ToSlice()...)
}

// close shuts the send channel exactly once; the write pump closes the
// connection when it drains.
func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// writePump drains the send channel onto the connection, pinging idle
// clients to detect dead peers.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound messages and returns when the peer closes.
func (c *client) readPump(onClose func()) {
	defer onClose()
	c.conn.SetReadLimit(1 << 16)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// hub tracks connected clients and fans events out to them.
type hub struct {
	mu      sync.RWMutex
	clients map[string]*client
}

func newHub() *hub {
	return &hub{clients: make(map[string]*client)}
}

func (h *hub) add(c *client) {
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
}

func (h *hub) remove(id string) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
	}
	h.mu.Unlock()
	if ok {
		c.close()
	}
}

func (h *hub) get(id string) (*client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[id]
	return c, ok
}

func (h *hub) hasClients() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients) > 0
}

// broadcast delivers payload to every client whose filter admits kind.
// A client whose buffer is full is dropped rather than allowed to stall
// the reactive graph.
func (h *hub) broadcast(kind string, payload []byte) {
	h.mu.RLock()
	var slow []string
	for id, c := range h.clients {
		if !c.wants(kind) {
			continue
		}
		select {
		case c.send <- payload:
		default:
			slow = append(slow, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range slow {
		h.remove(id)
	}
}
