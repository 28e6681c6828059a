package websocket

import (
	"github.com/ikkim/catalog-admin/internal/app/service"
	"github.com/ikkim/catalog-admin/internal/cache"
)

// Message types exchanged with dashboard sessions
const (
	TypeSubscribe     = "subscribe"
	TypeUnsubscribe   = "unsubscribe"
	TypeSearch        = "search"
	TypeSubscribed    = "subscribed"
	TypeInvalidate    = "invalidate"
	TypeLowStock      = "low_stock"
	TypeSearchResults = "search_results"
	TypeError         = "error"
)

// ClientMessage is anything a session sends to the hub
type ClientMessage struct {
	Type   string   `json:"type"`
	Topics []string `json:"topics,omitempty"`
	Entity string   `json:"entity,omitempty"`
	Query  string   `json:"query,omitempty"`
	Limit  int      `json:"limit,omitempty"`
}

type SubscribedMessage struct {
	Type   string   `json:"type"`
	Topics []string `json:"topics"`
}

// InvalidateMessage tells open screens which cached reads went stale
type InvalidateMessage struct {
	Type string      `json:"type"`
	Tags []cache.Tag `json:"tags"`
}

type LowStockMessage struct {
	Type  string                 `json:"type"`
	Items []service.InventoryRow `json:"items"`
	Count int                    `json:"count"`
}

type SearchResultsMessage struct {
	Type string `json:"type"`
	*service.SearchResult
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
