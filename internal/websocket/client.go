package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"messaging-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum frame size allowed from peer
	maxMessageSize = 64 * 1024
)

type Client struct {
	id     string
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID string
	rooms  map[string]struct{}
	mu     sync.RWMutex

	limiter *rate.Limiter
	log     zerolog.Logger

	// ctx is cancelled when the connection goes away. Event handling runs on
	// a separate context so a disconnect never aborts a half-done write.
	ctx    context.Context
	cancel context.CancelFunc
	closed int32

	wg sync.WaitGroup
}

// NewClient wraps conn for hub. conn may be nil for an in-process client
// whose frames are read straight off Send().
func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.New().String()

	return &Client{
		id:      id,
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, hub.opts.SendBuffer),
		userID:  userID,
		rooms:   make(map[string]struct{}),
		limiter: hub.newLimiter(),
		log: logger.L().With().
			Str(logger.FieldNamespace, hub.namespace).
			Str(logger.FieldClientID, id).
			Str(logger.FieldUserID, userID).
			Logger(),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (c *Client) GetID() string {
	return c.id
}

func (c *Client) GetUserID() string {
	return c.userID
}

// Send exposes the outbound queue; each element is one encoded frame.
func (c *Client) Send() <-chan []byte {
	return c.send
}

// Done is closed once the client has been closed.
func (c *Client) Done() <-chan struct{} {
	return c.ctx.Done()
}

func (c *Client) Rooms() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rooms := make([]string, 0, len(c.rooms))
	for roomID := range c.rooms {
		rooms = append(rooms, roomID)
	}
	return rooms
}

func (c *Client) IsInRoom(roomID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.rooms[roomID]
	return ok
}

func (c *Client) addRoom(roomID string) {
	c.mu.Lock()
	c.rooms[roomID] = struct{}{}
	c.mu.Unlock()
}

func (c *Client) removeRoom(roomID string) {
	c.mu.Lock()
	delete(c.rooms, roomID)
	c.mu.Unlock()
}

func (c *Client) isClosed() bool {
	return atomic.LoadInt32(&c.closed) == 1
}

// close marks the client closed and cancels its context. The send channel is
// never closed, so concurrent senders cannot panic.
func (c *Client) close() {
	if atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		c.cancel()
		c.log.Debug().Msg("client marked as closed")
	}
}

// SendMessage queues msg without blocking. A client whose buffer is full is
// too slow to keep up and is disconnected.
func (c *Client) SendMessage(msg *Message) error {
	if c.isClosed() {
		return ErrClientDisconnected
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case c.send <- data:
		return nil
	case <-c.ctx.Done():
		return ErrClientDisconnected
	default:
		c.log.Warn().Msg("send buffer full, closing client")
		c.close()
		return ErrSendBufferFull
	}
}

func (c *Client) sendError(code, message, field string) {
	msg, err := NewMessage(EventError, ErrorData{Code: code, Message: message, Field: field})
	if err != nil {
		return
	}
	if err := c.SendMessage(msg); err != nil {
		c.log.Debug().Err(err).Str("code", code).Msg("failed to deliver error frame")
	}
}

// handleFrame decodes and dispatches one inbound frame. It is the body of
// the read loop, split out so it can be driven without a socket.
func (c *Client) handleFrame(ctx context.Context, raw []byte) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.log.Debug().Err(err).Msg("failed to unmarshal frame")
		c.sendError(ErrCodeInvalidMessage, "Invalid message format", "")
		return
	}
	if !msg.Event.IsInbound() {
		c.sendError(ErrCodeInvalidMessage, "Unknown event: "+msg.Event.String(), "")
		return
	}
	if !c.limiter.Allow() {
		c.sendError(ErrCodeRateLimited, "Too many events, slow down", "")
		return
	}
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	msg.Timestamp = time.Now().Unix()

	c.log.Debug().Str(logger.FieldEvent, msg.Event.String()).Msg("received frame")
	if c.hub.handler != nil {
		c.hub.handler.Handle(ctx, c, &msg)
	}
}

func (c *Client) readPump() {
	c.wg.Add(1)
	defer func() {
		c.wg.Done()
		c.close()
		c.hub.Unregister(c)

		if err := c.conn.Close(); err != nil {
			c.log.Debug().Err(err).Msg("error closing connection")
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		if c.isClosed() {
			return websocket.ErrCloseSent
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	handleCtx := logger.WithLogger(context.Background(), c.log)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.log.Error().Err(err).Msg("websocket error")
			} else {
				c.log.Debug().Err(err).Msg("websocket connection closed")
			}
			return
		}

		c.handleFrame(handleCtx, raw)
	}
}

func (c *Client) writePump() {
	c.wg.Add(1)
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		c.wg.Done()
		ticker.Stop()
		// unblocks readPump if the writer gave up first
		c.conn.Close()
		c.log.Debug().Msg("writePump finished")
	}()

	for {
		select {
		case frame := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.log.Debug().Err(err).Msg("error writing frame")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.Debug().Err(err).Msg("error sending ping")
				return
			}

		case <-c.ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// ServeWS upgrades the request and attaches the connection to hub on
// behalf of userID.
func ServeWS(hub *Hub, upgrader *websocket.Upgrader, w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		lg := logger.L()
		lg.Error().Err(err).Str(logger.FieldUserID, userID).Msg("failed to upgrade websocket connection")
		return
	}

	client := NewClient(hub, conn, userID)
	if err := hub.Register(client); err != nil {
		client.log.Error().Err(err).Msg("failed to register client")
		conn.Close()
		return
	}
	client.log.Info().Msg("new websocket connection established")

	go client.writePump()
	go client.readPump()
}
