package websocket

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/ikkim/catalog-admin/internal/search"
	"github.com/ikkim/catalog-admin/pkg/logger"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 16 * 1024

	sendBuffer = 256
)

// Conn wraps the websocket connection
type Conn struct {
	*websocket.Conn
}

// Client is one dashboard session
type Client struct {
	ID   string
	Hub  *Hub
	Conn *Conn
	Send chan []byte

	// ctx carries the session's token and logger for searches; cancelled on close
	ctx       context.Context
	cancel    context.CancelFunc
	debouncer *search.Debouncer
	searchSeq uint64

	mu     sync.RWMutex
	topics map[string]bool
	closed bool

	MessageCount  int       // messages seen in the current one-second window
	LastResetTime time.Time // start of that window
	RateMu        sync.Mutex
}

// NewClient builds a session around conn. ctx should carry the forwarded token.
func NewClient(ctx context.Context, hub *Hub, conn *websocket.Conn) *Client {
	id := uuid.NewString()
	ctx = logger.NewContext(ctx, logger.FromContext(ctx).WithContext(logger.Fields{"client_id": id}))
	ctx, cancel := context.WithCancel(ctx)
	return &Client{
		ID:            id,
		Hub:           hub,
		Conn:          &Conn{Conn: conn},
		Send:          make(chan []byte, sendBuffer),
		ctx:           ctx,
		cancel:        cancel,
		debouncer:     hub.newDebouncer(),
		topics:        make(map[string]bool),
		LastResetTime: time.Now(),
	}
}

// Serve registers the session and starts its pumps
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn) *Client {
	client := NewClient(ctx, h, conn)
	h.Register(client)

	go client.WritePump()
	go client.ReadPump()

	return client
}

// ReadPump reads messages from the session until it closes
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.FromContext(c.ctx).Error("WebSocket read error", err)
			}
			break
		}

		c.Hub.HandleClientMessage(c, message)
	}
}

// WritePump writes queued messages and keeps the connection alive with pings
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// the hub closed the channel
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.FromContext(c.ctx).Error("Failed to write message", err)
				return
			}

			// drain what queued up meanwhile, one frame per message
			n := len(c.Send)
			for i := 0; i < n; i++ {
				msg, ok := <-c.Send
				if !ok {
					return
				}
				if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					logger.FromContext(c.ctx).Error("Failed to write queued message", err)
					return
				}
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// allow applies the per-second message budget
func (c *Client) allow(now time.Time) bool {
	c.RateMu.Lock()
	defer c.RateMu.Unlock()

	if now.Sub(c.LastResetTime) >= time.Second {
		c.MessageCount = 0
		c.LastResetTime = now
	}
	c.MessageCount++
	return c.MessageCount <= maxMessagesPerSecond
}

func (c *Client) setTopics(topics []string, on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range topics {
		if on {
			c.topics[t] = true
		} else {
			delete(c.topics, t)
		}
	}
}

// Topics lists the session's subscriptions in sorted order
func (c *Client) Topics() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	topics := make([]string, 0, len(c.topics))
	for t := range c.topics {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics
}

func (c *Client) subscribed(topics []string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range topics {
		if c.topics[t] {
			return true
		}
	}
	return false
}

// trySend queues data without blocking. It fails when the buffer is full or
// the session is closed.
func (c *Client) trySend(data []byte) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) sendJSON(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.FromContext(c.ctx).Error("Failed to marshal message", err)
		return
	}
	if !c.trySend(data) {
		logger.FromContext(c.ctx).Warn("Dropped message for session", logger.Fields{"client_id": c.ID})
	}
}

func (c *Client) nextSearch() uint64 {
	return atomic.AddUint64(&c.searchSeq, 1)
}

func (c *Client) currentSearch(seq uint64) bool {
	return atomic.LoadUint64(&c.searchSeq) == seq
}

// close releases the session; only the hub calls it
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.debouncer.Stop()
	c.cancel()
	close(c.Send)
}
