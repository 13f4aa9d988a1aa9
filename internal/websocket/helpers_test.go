package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"messaging-service/internal/database"
	"messaging-service/internal/models"
	"messaging-service/internal/repositories/postgres"
	"messaging-service/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePresence struct {
	mu      sync.Mutex
	online  map[string]int
	offline []string
}

func newFakePresence() *fakePresence {
	return &fakePresence{online: make(map[string]int)}
}

func (p *fakePresence) SetUserOnline(_ context.Context, userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.online[userID]++
	return nil
}

func (p *fakePresence) SetUserOffline(_ context.Context, userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.online[userID]--
	p.offline = append(p.offline, userID)
	return nil
}

func (p *fakePresence) count(userID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.online[userID]
}

func newRunningHub(t *testing.T, namespace string, presence Presence, opts HubOptions) *Hub {
	t.Helper()
	hub := NewHub(namespace, presence, opts)
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

// connect registers an in-process client and drains the greeting.
func connect(t *testing.T, hub *Hub, userID string) *Client {
	t.Helper()
	c := NewClient(hub, nil, userID)
	require.NoError(t, hub.Register(c))
	frame := readFrame(t, c)
	require.Equal(t, EventConnection, frame.Event)
	return c
}

func readFrame(t *testing.T, c *Client) *Message {
	t.Helper()
	select {
	case raw := <-c.Send():
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		return &msg
	case <-time.After(2 * time.Second):
		t.Fatal("no frame received")
		return nil
	}
}

func assertNoFrame(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.Send():
		t.Fatalf("unexpected frame: %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func decodeData[T any](t *testing.T, msg *Message) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(msg.Data, &out))
	return out
}

func frame(t *testing.T, event EventType, data interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	b, err := json.Marshal(Message{ID: uuid.New().String(), Event: event, Data: raw})
	require.NoError(t, err)
	return b
}

type stack struct {
	db       *gorm.DB
	messages *services.MessageService
	threads  *services.ThreadService
	rooms    *services.RoomService
	profiles *services.ProfileService
}

func newStack(t *testing.T) *stack {
	t.Helper()
	db, err := database.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	msgRepo := postgres.NewMessageRepository(db)
	replyRepo := postgres.NewReplyRepository(db)
	return &stack{
		db:       db,
		messages: services.NewMessageService(msgRepo, replyRepo, postgres.NewMembershipRepository(db), nil),
		threads:  services.NewThreadService(msgRepo, replyRepo),
		rooms:    services.NewRoomService(postgres.NewRoomRepository(db)),
		profiles: services.NewProfileService(postgres.NewProfileRepository(db), nil),
	}
}

func (s *stack) broadcaster(hub *Hub) *Broadcaster {
	return NewBroadcaster(hub, s.rooms, s.messages, s.threads, s.profiles)
}

func (s *stack) addMember(t *testing.T, groupID, userID string) {
	t.Helper()
	require.NoError(t, s.db.Create(&models.GroupMember{GroupID: groupID, UserID: userID, Status: true}).Error)
}

func newID() string { return uuid.New().String() }
