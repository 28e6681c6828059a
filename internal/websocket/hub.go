package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ikkim/catalog-admin/internal/app/service"
	"github.com/ikkim/catalog-admin/internal/cache"
	"github.com/ikkim/catalog-admin/internal/search"
	"github.com/ikkim/catalog-admin/pkg/backend"
	"github.com/ikkim/catalog-admin/pkg/logger"
)

const (
	// Rate limiting: messages accepted per session per second
	maxMessagesPerSecond = 10

	searchTimeout = 10 * time.Second
)

// Searcher answers live search queries
type Searcher interface {
	Search(ctx context.Context, entity cache.Entity, query string, limit int) (*service.SearchResult, error)
}

// Hub tracks dashboard sessions and fans server events out to them by topic.
// Topics are entity names.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *BroadcastMessage

	searcher    Searcher
	searchWait  time.Duration
	searchLimit int

	mu sync.RWMutex
}

// BroadcastMessage goes once to every session subscribed to any of Topics
type BroadcastMessage struct {
	Topics  []string
	Message []byte
}

func NewHub(searcher Searcher, searchWait time.Duration, searchLimit int) *Hub {
	if searchLimit <= 0 {
		searchLimit = service.DefaultSearchLimit
	}
	return &Hub{
		clients:     make(map[*Client]bool),
		register:    make(chan *Client, 256),
		unregister:  make(chan *Client, 256),
		broadcast:   make(chan *BroadcastMessage, 1024),
		searcher:    searcher,
		searchWait:  searchWait,
		searchLimit: searchLimit,
	}
}

// Run serves registrations and broadcasts until ctx is done
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				client.close()
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("WebSocket client registered", logger.Fields{
				"client_id":      client.ID,
				"total_sessions": total,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.close()
			}
			remaining := len(h.clients)
			h.mu.Unlock()
			logger.Info("WebSocket client unregistered", logger.Fields{
				"client_id":          client.ID,
				"remaining_sessions": remaining,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				if !client.subscribed(message.Topics) {
					continue
				}
				if !client.trySend(message.Message) {
					// slow consumer; drop the session instead of blocking the hub
					go h.Unregister(client)
					logger.Warn("Client send buffer full, disconnecting", logger.Fields{
						"client_id": client.ID,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// ClientCount is the number of registered sessions
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish queues message for every session subscribed to one of topics.
// Messages are dropped when the hub is saturated or has no sessions.
func (h *Hub) Publish(topics []string, message interface{}) error {
	if h.ClientCount() == 0 {
		return nil
	}

	data, err := json.Marshal(message)
	if err != nil {
		logger.Error("Failed to marshal message", err)
		return err
	}

	select {
	case h.broadcast <- &BroadcastMessage{Topics: topics, Message: data}:
	default:
		logger.Warn("Broadcast channel full, message dropped", logger.Fields{
			"topics": topics,
		})
	}
	return nil
}

// Invalidated broadcasts dropped cache tags to the sessions showing those entities.
// It has the shape of a cache.Listener.
func (h *Hub) Invalidated(_ context.Context, tags []cache.Tag) {
	seen := map[string]bool{}
	var topics []string
	for _, tag := range tags {
		if e, ok := tag.Entity(); ok && !seen[string(e)] {
			seen[string(e)] = true
			topics = append(topics, string(e))
		}
	}
	if len(topics) == 0 {
		return
	}
	_ = h.Publish(topics, InvalidateMessage{Type: TypeInvalidate, Tags: tags})
}

// BroadcastLowStock alerts inventory screens about SKUs at or under threshold
func (h *Hub) BroadcastLowStock(items []service.InventoryRow) {
	if len(items) == 0 {
		return
	}
	_ = h.Publish([]string{string(cache.Inventory)}, LowStockMessage{
		Type:  TypeLowStock,
		Items: items,
		Count: len(items),
	})
}

// HandleClientMessage dispatches one message read from a session
func (h *Hub) HandleClientMessage(client *Client, message []byte) {
	log := logger.FromContext(client.ctx)

	if !client.allow(time.Now()) {
		log.Warn("Rate limit exceeded", logger.Fields{
			"client_id": client.ID,
		})
		return
	}

	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Warn("Failed to parse client message", logger.Fields{
			"client_id": client.ID,
			"error":     err.Error(),
		})
		client.sendJSON(ErrorMessage{Type: TypeError, Message: "Malformed message"})
		return
	}

	switch msg.Type {
	case TypeSubscribe, TypeUnsubscribe:
		topics := make([]string, 0, len(msg.Topics))
		for _, t := range msg.Topics {
			if _, ok := cache.ParseEntity(t); ok {
				topics = append(topics, t)
			}
		}
		client.setTopics(topics, msg.Type == TypeSubscribe)
		client.sendJSON(SubscribedMessage{Type: TypeSubscribed, Topics: client.Topics()})

	case TypeSearch:
		entity, ok := cache.ParseEntity(msg.Entity)
		if !ok {
			client.sendJSON(ErrorMessage{Type: TypeError, Message: "Unknown search entity"})
			return
		}
		limit := msg.Limit
		if limit <= 0 || limit > h.searchLimit {
			limit = h.searchLimit
		}
		seq := client.nextSearch()
		query := msg.Query
		client.debouncer.Trigger(func() {
			h.runSearch(client, seq, entity, query, limit)
		})

	default:
		client.sendJSON(ErrorMessage{Type: TypeError, Message: "Unknown message type"})
	}
}

func (h *Hub) runSearch(client *Client, seq uint64, entity cache.Entity, query string, limit int) {
	if h.searcher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(client.ctx, searchTimeout)
	defer cancel()

	result, err := h.searcher.Search(ctx, entity, query, limit)
	if !client.currentSearch(seq) {
		// a newer query was typed while this one ran
		return
	}
	if err != nil {
		logger.FromContext(ctx).Warn("Live search failed", logger.Fields{
			"client_id": client.ID,
			"entity":    string(entity),
			"error":     err.Error(),
		})
		client.sendJSON(ErrorMessage{Type: TypeError, Message: backend.MessageOf(err, "Search failed")})
		return
	}
	client.sendJSON(SearchResultsMessage{Type: TypeSearchResults, SearchResult: result})
}

// newDebouncer is the per-session search debouncer
func (h *Hub) newDebouncer() *search.Debouncer {
	return search.NewDebouncer(h.searchWait)
}
