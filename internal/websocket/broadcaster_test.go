package websocket

import (
	"context"
	"testing"

	"messaging-service/internal/models"
	"messaging-service/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnJoinPublishesThreadToRoom(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	hub := newRunningHub(t, "chats", nil, HubOptions{})
	b := s.broadcaster(hub)

	alice, bob := newID(), newID()
	_, err := s.messages.SendDirectMessage(ctx, services.SendDirectMessageInput{SenderID: alice, ReceiverID: bob, Type: "TEXT", Content: "earlier"})
	require.NoError(t, err)

	aliceConn := connect(t, hub, alice)
	roomID, err := b.OnJoin(ctx, aliceConn, alice, bob)
	require.NoError(t, err)
	assert.True(t, aliceConn.IsInRoom(roomID))

	got := readFrame(t, aliceConn)
	assert.Equal(t, EventUserJoinedConfirmation, got.Event)
	data := decodeData[ThreadData[models.DirectMessage]](t, got)
	assert.Equal(t, roomID, data.RoomID)
	require.Len(t, data.Messages, 1)
	assert.Equal(t, "earlier", data.Messages[0].Content)

	// the peer joining from the other side lands in the same room and both
	// subscribers see the confirmation
	bobConn := connect(t, hub, bob)
	peerRoom, err := b.OnJoin(ctx, bobConn, bob, alice)
	require.NoError(t, err)
	assert.Equal(t, roomID, peerRoom)
	assert.Equal(t, EventUserJoinedConfirmation, readFrame(t, aliceConn).Event)
	assert.Equal(t, EventUserJoinedConfirmation, readFrame(t, bobConn).Event)

	_, err = b.OnJoin(ctx, nil, alice, "")
	ve, ok := models.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "peerUserId", ve.Field)
}

func TestOnSendBroadcastsAndAcknowledges(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	hub := newRunningHub(t, "chats", nil, HubOptions{})
	b := s.broadcaster(hub)

	alice, bob := newID(), newID()
	aliceConn := connect(t, hub, alice)
	bobConn := connect(t, hub, bob)
	roomID, err := b.OnJoin(ctx, aliceConn, alice, bob)
	require.NoError(t, err)
	readFrame(t, aliceConn)
	_, err = b.OnJoin(ctx, bobConn, bob, alice)
	require.NoError(t, err)
	readFrame(t, aliceConn)
	readFrame(t, bobConn)

	msg, err := b.OnSend(ctx, aliceConn, services.SendDirectMessageInput{SenderID: alice, ReceiverID: bob, Type: "TEXT", Content: "hi bob"}, roomID)
	require.NoError(t, err)

	// bob gets the refreshed thread
	thread := decodeData[ThreadData[models.DirectMessage]](t, readFrame(t, bobConn))
	require.Len(t, thread.Messages, 1)
	assert.Equal(t, msg.ID, thread.Messages[0].ID)

	// alice gets the thread and then her acknowledgement
	assert.Equal(t, EventUserJoinedConfirmation, readFrame(t, aliceConn).Event)
	ack := readFrame(t, aliceConn)
	assert.Equal(t, EventSendMessageConfirmation, ack.Event)
	assert.Equal(t, roomID, decodeData[SentData](t, ack).RoomID)

	t.Run("EmptyRoomIDResolvesFromPair", func(t *testing.T) {
		_, err := b.OnSend(ctx, nil, services.SendDirectMessageInput{SenderID: bob, ReceiverID: alice, Type: "TEXT", Content: "hey"}, "")
		require.NoError(t, err)
		thread := decodeData[ThreadData[models.DirectMessage]](t, readFrame(t, aliceConn))
		assert.Equal(t, roomID, thread.RoomID)
		assert.Len(t, thread.Messages, 2)
		readFrame(t, bobConn)
	})

	t.Run("InvalidSendPublishesNothing", func(t *testing.T) {
		_, err := b.OnSend(ctx, aliceConn, services.SendDirectMessageInput{SenderID: alice, ReceiverID: bob, Type: "GIF", Content: "x"}, roomID)
		ve, ok := models.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "type", ve.Field)
		assertNoFrame(t, bobConn)
	})
}

func TestGroupJoinAndSend(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	hub := newRunningHub(t, "group-chats", nil, HubOptions{})
	b := s.broadcaster(hub)

	group, member, outsider := newID(), newID(), newID()
	s.addMember(t, group, member)

	memberConn := connect(t, hub, member)
	roomID, err := b.OnGroupJoin(ctx, memberConn, group)
	require.NoError(t, err)
	assert.Equal(t, group, roomID)
	assert.Empty(t, decodeData[ThreadData[models.GroupMessage]](t, readFrame(t, memberConn)).Messages)

	_, err = b.OnGroupSend(ctx, memberConn, services.SendGroupMessageInput{GroupID: group, SenderID: member, Type: "TEXT", Content: "hello all"}, "")
	require.NoError(t, err)
	thread := decodeData[ThreadData[models.GroupMessage]](t, readFrame(t, memberConn))
	assert.Equal(t, group, thread.RoomID)
	assert.Len(t, thread.Messages, 1)
	assert.Equal(t, EventSendMessageConfirmation, readFrame(t, memberConn).Event)

	_, err = b.OnGroupSend(ctx, nil, services.SendGroupMessageInput{GroupID: group, SenderID: outsider, Type: "TEXT", Content: "let me in"}, "")
	assert.True(t, models.IsForbidden(err))
	assertNoFrame(t, memberConn)

	_, err = b.OnGroupJoin(ctx, memberConn, "not-a-uuid")
	_, ok := models.AsValidationError(err)
	assert.True(t, ok)
	assert.False(t, memberConn.IsInRoom("not-a-uuid"))
}

func TestOnTyping(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	hub := newRunningHub(t, "chats", nil, HubOptions{})
	b := s.broadcaster(hub)

	known := newID()
	require.NoError(t, s.db.Create(&models.UserProfile{UserID: known, FirstName: "Ada", LastName: "Lovelace"}).Error)

	watcher := connect(t, hub, newID())
	hub.Join(watcher, "room-9")

	text, err := b.OnTyping(ctx, "room-9", known)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace is typing...", text)
	notice := decodeData[TypingNoticeData](t, readFrame(t, watcher))
	assert.Equal(t, "Ada Lovelace is typing...", notice.Message)
	assert.Equal(t, "room-9", notice.RoomID)

	text, err = b.OnTyping(ctx, "room-9", newID())
	require.NoError(t, err)
	assert.Equal(t, "User is typing...", text)
	readFrame(t, watcher)

	_, err = b.OnTyping(ctx, "", known)
	ve, ok := models.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "roomId", ve.Field)

	var n int64
	require.NoError(t, s.db.Model(&models.DirectMessage{}).Count(&n).Error)
	assert.Zero(t, n, "typing is never persisted")
}
