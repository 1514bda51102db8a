// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

// Package websocket pushes calendar refresh events to connected browser
// clients so month views update without polling.
package websocket

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/almanarr/internal/logging"
	"github.com/tomtom215/almanarr/internal/metrics"
	"github.com/tomtom215/almanarr/internal/models"
)

// Message types for WebSocket communication.
const (
	MessageTypePing              = "ping"
	MessageTypePong              = "pong"
	MessageTypeCalendarRefreshed = "calendar_refreshed"
)

// Message is one WebSocket frame payload.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub. Call RunWithContext to start it.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan Message, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// RunWithContext runs the hub until the context is canceled, then closes
// every connected client and returns ctx.Err(). Designed for suture
// supervision: a supervisor restart gets a clean hub with no orphaned
// connections.
//
// Channel selection is prioritized: shutdown first, then client lifecycle
// events, then broadcasts. Go's select picks randomly among ready cases,
// which would otherwise let a broadcast race a pending unregister.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.register(client)
			continue
		case client := <-h.Unregister:
			h.unregister(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.register(client)
		case client := <-h.Unregister:
			h.unregister(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	count := len(h.clients)
	h.mu.Unlock()

	metrics.WebSocketClients.Set(float64(count))
	logging.Info().Int("total_clients", count).Msg("websocket client connected")
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	count := len(h.clients)
	h.mu.Unlock()

	metrics.WebSocketClients.Set(float64(count))
	logging.Info().Int("total_clients", count).Msg("websocket client disconnected")
}

func (h *Hub) shutdown(ctx context.Context) {
	count := h.ClientCount()
	h.closeAllClients()

	reason := "context_canceled"
	if ctx.Err() == context.DeadlineExceeded {
		reason = "context_deadline"
	}
	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", reason).
		Int("clients_closed", count).
		Msg("websocket hub stopped")
}

// broadcastToClients delivers a message to every connected client in client
// ID order. Clients with a full send buffer are dropped; a stuck client
// must not block the rest.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	var toRemove []*Client
	for _, client := range clients {
		select {
		case client.send <- message:
		default:
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		close(client.send)
		delete(h.clients, client)
	}
	if len(toRemove) > 0 {
		metrics.WebSocketClients.Set(float64(len(h.clients)))
		logging.Warn().Int("dropped", len(toRemove)).Msg("dropped slow websocket clients")
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	for _, client := range clients {
		close(client.send)
		delete(h.clients, client)
	}
	metrics.WebSocketClients.Set(0)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastJSON queues a message for all connected clients. Messages are
// dropped when the broadcast queue is full.
func (h *Hub) BroadcastJSON(messageType string, data interface{}) {
	message := Message{
		Type: messageType,
		Data: data,
	}
	select {
	case h.broadcast <- message:
	default:
		logging.Warn().Str("message_type", messageType).Msg("broadcast channel full, dropping message")
	}
}

// CalendarRefreshedData is the payload of a calendar_refreshed message.
type CalendarRefreshedData struct {
	Timestamp  string `json:"timestamp"`
	TotalItems int    `json:"totalItems"`
	DurationMs int64  `json:"durationMs"`
	Error      string `json:"error,omitempty"`
}

// NotifyCalendarRefreshed broadcasts a refresh completion to all clients.
// It implements the refresh notifier consumed by the aggregation manager.
func (h *Hub) NotifyCalendarRefreshed(status models.RefreshStatus) {
	data := CalendarRefreshedData{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		TotalItems: status.TotalItems,
		DurationMs: status.LastRefreshMs,
		Error:      status.LastError,
	}

	message := Message{
		Type: MessageTypeCalendarRefreshed,
		Data: data,
	}
	select {
	case h.broadcast <- message:
		logging.Debug().
			Int("clients", h.ClientCount()).
			Int("total_items", status.TotalItems).
			Msg("broadcast calendar_refreshed")
	default:
		logging.Warn().Msg("broadcast channel full, dropping calendar_refreshed message")
	}
}
