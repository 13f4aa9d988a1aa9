package websocket

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"messaging-service/pkg/logger"

	"golang.org/x/time/rate"
)

var (
	ErrClientDisconnected = errors.New("client disconnected")
	ErrSendBufferFull     = errors.New("send buffer full")
	ErrHubStopped         = errors.New("hub stopped")
)

// Presence is told when a user's connections come and go.
type Presence interface {
	SetUserOnline(ctx context.Context, userID string) error
	SetUserOffline(ctx context.Context, userID string) error
}

// Handler processes one inbound frame for a client. Frames from one client
// are handled one at a time, in arrival order.
type Handler interface {
	Handle(ctx context.Context, c *Client, msg *Message)
}

type HubOptions struct {
	SendBuffer   int
	EventsPerSec float64
	EventBurst   int
}

// Hub owns one namespace: its connection registry and its rooms. Rooms are
// broadcast topics; a client may be in any number of them.
type Hub struct {
	namespace string
	registry  *Registry
	Metrics   *Metrics

	// room id -> subscribed clients
	rooms map[string]map[*Client]struct{}
	mu    sync.RWMutex

	register   chan *Client
	unregister chan *Client

	presence Presence
	handler  Handler
	opts     HubOptions

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(namespace string, presence Presence, opts HubOptions) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 256
	}

	return &Hub{
		namespace:  namespace,
		registry:   NewRegistry(),
		Metrics:    NewMetrics(),
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		presence:   presence,
		opts:       opts,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// SetHandler installs the event handler. It must be called before Run.
func (h *Hub) SetHandler(handler Handler) {
	h.handler = handler
}

func (h *Hub) Namespace() string {
	return h.namespace
}

func (h *Hub) Registry() *Registry {
	return h.registry
}

func (h *Hub) Run() {
	log := logger.L().With().Str(logger.FieldNamespace, h.namespace).Logger()
	log.Info().Msg("websocket hub started")

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-h.ctx.Done():
			log.Info().Msg("websocket hub shutting down")
			return
		}
	}
}

// Stop ends Run and disconnects every client.
func (h *Hub) Stop() {
	h.cancel()
	for _, c := range h.registry.Snapshot() {
		c.close()
	}
}

// Register queues c for registration with the Run loop.
func (h *Hub) Register(c *Client) error {
	select {
	case h.register <- c:
		return nil
	case <-h.ctx.Done():
		return ErrHubStopped
	case <-time.After(5 * time.Second):
		return fmt.Errorf("timeout registering client %s", c.id)
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.ctx.Done():
		// Run is gone; clean up inline
		h.unregisterClient(c)
	case <-time.After(5 * time.Second):
		lg := logger.L()
		lg.Warn().Str(logger.FieldClientID, c.id).Msg("timeout sending unregister request")
	}
}

func (h *Hub) registerClient(c *Client) {
	h.registry.Register(c)
	h.Metrics.RecordConnect()
	n := h.registry.Len()

	lg := logger.L()
	lg.Info().
		Str(logger.FieldNamespace, h.namespace).
		Str(logger.FieldClientID, c.id).
		Str(logger.FieldUserID, c.userID).
		Int("connections", n).
		Msg("client registered")

	if h.presence != nil && c.userID != "" {
		if err := h.presence.SetUserOnline(h.ctx, c.userID); err != nil {
			lg := logger.L()
			lg.Error().Err(err).Str(logger.FieldUserID, c.userID).Msg("failed to set user online")
		}
	}

	greeting, err := NewMessage(EventConnection, fmt.Sprintf("%d clients connected successfully to the server", n))
	if err == nil {
		_ = c.SendMessage(greeting)
	}
}

func (h *Hub) unregisterClient(c *Client) {
	if !h.registry.Unregister(c) {
		return
	}
	h.Metrics.RecordDisconnect()

	for _, roomID := range c.Rooms() {
		h.Leave(c, roomID)
	}
	c.close()

	if h.presence != nil && c.userID != "" {
		// h.ctx may already be cancelled during shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := h.presence.SetUserOffline(ctx, c.userID); err != nil {
			lg := logger.L()
			lg.Error().Err(err).Str(logger.FieldUserID, c.userID).Msg("failed to set user offline")
		}
		cancel()
	}

	lg := logger.L()
	lg.Info().
		Str(logger.FieldNamespace, h.namespace).
		Str(logger.FieldClientID, c.id).
		Str(logger.FieldUserID, c.userID).
		Int("connections", h.registry.Len()).
		Msg("client unregistered")
}

// Join subscribes c to roomID.
func (h *Hub) Join(c *Client, roomID string) {
	h.mu.Lock()
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]struct{})
	}
	h.rooms[roomID][c] = struct{}{}
	h.mu.Unlock()

	c.addRoom(roomID)
}

func (h *Hub) Leave(c *Client, roomID string) {
	h.mu.Lock()
	if members, ok := h.rooms[roomID]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
	h.mu.Unlock()

	c.removeRoom(roomID)
}

// RoomSize returns the number of clients subscribed to roomID.
func (h *Hub) RoomSize(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// Publish sends msg to every subscriber of roomID and returns how many
// accepted it. Delivery is best effort: a subscriber that cannot take the
// frame is skipped.
func (h *Hub) Publish(roomID string, msg *Message) int {
	start := time.Now()

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.rooms[roomID]))
	for c := range h.rooms[roomID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range targets {
		if err := c.SendMessage(msg); err != nil {
			lg := logger.L()
			lg.Debug().Err(err).
				Str(logger.FieldRoomID, roomID).
				Str(logger.FieldClientID, c.id).
				Str(logger.FieldEvent, msg.Event.String()).
				Msg("broadcast skipped client")
			continue
		}
		delivered++
	}

	h.Metrics.RecordBroadcast(len(targets), delivered, time.Since(start))
	return delivered
}

func (h *Hub) newLimiter() *rate.Limiter {
	if h.opts.EventsPerSec <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := h.opts.EventBurst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(h.opts.EventsPerSec), burst)
}
