package websocket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectHandlerErrors(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	hub := newRunningHub(t, "chats", nil, HubOptions{})
	hub.SetHandler(NewDirectHandler(s.broadcaster(hub)))
	c := connect(t, hub, newID())

	tests := []struct {
		name  string
		raw   []byte
		code  string
		field string
	}{
		{"NotJSON", []byte("{nope"), ErrCodeInvalidMessage, ""},
		{"UnknownEvent", frame(t, "DELETE_EVERYTHING", nil), ErrCodeInvalidMessage, ""},
		{"OutboundEventFromClient", frame(t, EventUserJoinedConfirmation, nil), ErrCodeInvalidMessage, ""},
		{"WrongPayloadShape", frame(t, EventUserJoined, []string{"x"}), ErrCodeInvalidMessage, ""},
		{"MissingPeer", frame(t, EventUserJoined, DirectJoinData{UserID: newID()}), ErrCodeValidation, "peerUserId"},
		{"BadType", frame(t, EventSendMessage, DirectSendData{SenderID: newID(), ReceiverID: newID(), Type: "VIDEO", Content: "x"}), ErrCodeValidation, "type"},
		{"TypingWithoutUser", frame(t, EventUserTyping, TypingData{RoomID: "r"}), ErrCodeValidation, "userId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.handleFrame(ctx, tt.raw)
			got := readFrame(t, c)
			require.Equal(t, EventError, got.Event)
			data := decodeData[ErrorData](t, got)
			assert.Equal(t, tt.code, data.Code)
			assert.Equal(t, tt.field, data.Field)
		})
	}
}

func TestGroupHandlerForbidden(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	hub := newRunningHub(t, "group-chats", nil, HubOptions{})
	hub.SetHandler(NewGroupHandler(s.broadcaster(hub)))
	c := connect(t, hub, newID())

	c.handleFrame(ctx, frame(t, EventSendMessage, GroupSendData{SenderID: newID(), GroupID: newID(), Type: "TEXT", Content: "x"}))
	got := readFrame(t, c)
	require.Equal(t, EventError, got.Event)
	assert.Equal(t, ErrCodeForbidden, decodeData[ErrorData](t, got).Code)
}

func TestGetActiveUsers(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	hub := newRunningHub(t, "chats", nil, HubOptions{})
	hub.SetHandler(NewDirectHandler(s.broadcaster(hub)))

	c := connect(t, hub, "u2")
	connect(t, hub, "u1")
	connect(t, hub, "u2")

	c.handleFrame(ctx, frame(t, EventGetActiveUsers, nil))
	got := readFrame(t, c)
	require.Equal(t, EventActiveUsers, got.Event)
	data := decodeData[ActiveUsersData](t, got)
	assert.Equal(t, []string{"u1", "u2"}, data.Users)
	assert.Equal(t, 2, data.Count)
}

func TestInboundRateLimit(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	hub := newRunningHub(t, "chats", nil, HubOptions{EventsPerSec: 0.001, EventBurst: 1})
	hub.SetHandler(NewDirectHandler(s.broadcaster(hub)))
	c := connect(t, hub, "u")

	c.handleFrame(ctx, frame(t, EventGetActiveUsers, nil))
	assert.Equal(t, EventActiveUsers, readFrame(t, c).Event)

	c.handleFrame(ctx, frame(t, EventGetActiveUsers, nil))
	got := readFrame(t, c)
	require.Equal(t, EventError, got.Event)
	assert.Equal(t, ErrCodeRateLimited, decodeData[ErrorData](t, got).Code)
}
