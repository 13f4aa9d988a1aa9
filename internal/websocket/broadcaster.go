package websocket

import (
	"context"
	"errors"
	"strings"

	"messaging-service/internal/models"
	"messaging-service/internal/services"
	"messaging-service/pkg/logger"
	"messaging-service/pkg/pagination"
)

const fallbackDisplayName = "User"

type RoomResolver interface {
	ResolveRoom(ctx context.Context, userA, userB string) (*models.ChatRoom, error)
}

type MessageStore interface {
	SendDirectMessage(ctx context.Context, in services.SendDirectMessageInput) (*models.DirectMessage, error)
	SendGroupMessage(ctx context.Context, in services.SendGroupMessageInput) (*models.GroupMessage, error)
}

type ThreadReader interface {
	FindDirectThread(ctx context.Context, userID, peerUserID string, page *pagination.Request) (*pagination.Result[models.DirectMessage], error)
	FindGroupThread(ctx context.Context, groupID string, page *pagination.Request, typeFilter models.MessageType) (*pagination.Result[models.GroupMessage], error)
}

type ProfileLookup interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}

// Broadcaster turns join, send and typing commands into room-scoped
// publishes on one hub. Emission is fire-and-forget: nothing is retried and
// subscribers that miss a frame are not told.
type Broadcaster struct {
	hub      *Hub
	rooms    RoomResolver
	store    MessageStore
	threads  ThreadReader
	profiles ProfileLookup
}

func NewBroadcaster(hub *Hub, rooms RoomResolver, store MessageStore, threads ThreadReader, profiles ProfileLookup) *Broadcaster {
	return &Broadcaster{
		hub:      hub,
		rooms:    rooms,
		store:    store,
		threads:  threads,
		profiles: profiles,
	}
}

func (b *Broadcaster) Hub() *Hub {
	return b.hub
}

// OnJoin resolves the direct room for the pair, subscribes joiner to it and
// publishes the whole thread to the room. joiner may be nil when the call
// does not come from a live connection.
func (b *Broadcaster) OnJoin(ctx context.Context, joiner *Client, userID, peerUserID string) (string, error) {
	room, err := b.rooms.ResolveRoom(ctx, userID, peerUserID)
	if err != nil {
		return "", err
	}
	if joiner != nil {
		b.hub.Join(joiner, room.RoomID)
	}

	thread, err := b.threads.FindDirectThread(ctx, userID, peerUserID, nil)
	if err != nil {
		return "", err
	}

	b.publish(ctx, room.RoomID, EventUserJoinedConfirmation, ThreadData[models.DirectMessage]{
		Messages: thread.Data,
		RoomID:   room.RoomID,
	})
	return room.RoomID, nil
}

// OnSend persists the message, then publishes the refreshed thread to roomID
// and acknowledges the sender. An empty roomID is resolved from the pair.
func (b *Broadcaster) OnSend(ctx context.Context, sender *Client, in services.SendDirectMessageInput, roomID string) (*models.DirectMessage, error) {
	msg, err := b.store.SendDirectMessage(ctx, in)
	if err != nil {
		return nil, err
	}

	thread, err := b.threads.FindDirectThread(ctx, in.ReceiverID, in.SenderID, nil)
	if err != nil {
		return nil, err
	}

	if roomID == "" {
		room, err := b.rooms.ResolveRoom(ctx, in.SenderID, in.ReceiverID)
		if err != nil {
			return nil, err
		}
		roomID = room.RoomID
	}

	b.publish(ctx, roomID, EventUserJoinedConfirmation, ThreadData[models.DirectMessage]{
		Messages: thread.Data,
		RoomID:   roomID,
	})
	b.ack(ctx, sender, SentData{Message: msg, RoomID: roomID})
	return msg, nil
}

// OnGroupJoin subscribes joiner to the group's room, whose id is the group
// id, and publishes the group thread to it.
func (b *Broadcaster) OnGroupJoin(ctx context.Context, joiner *Client, groupID string) (string, error) {
	thread, err := b.threads.FindGroupThread(ctx, groupID, nil, "")
	if err != nil {
		return "", err
	}
	if joiner != nil {
		b.hub.Join(joiner, groupID)
	}

	b.publish(ctx, groupID, EventUserJoinedConfirmation, ThreadData[models.GroupMessage]{
		Messages: thread.Data,
		RoomID:   groupID,
	})
	return groupID, nil
}

func (b *Broadcaster) OnGroupSend(ctx context.Context, sender *Client, in services.SendGroupMessageInput, roomID string) (*models.GroupMessage, error) {
	msg, err := b.store.SendGroupMessage(ctx, in)
	if err != nil {
		return nil, err
	}

	thread, err := b.threads.FindGroupThread(ctx, in.GroupID, nil, "")
	if err != nil {
		return nil, err
	}

	if roomID == "" {
		roomID = in.GroupID
	}

	b.publish(ctx, roomID, EventUserJoinedConfirmation, ThreadData[models.GroupMessage]{
		Messages: thread.Data,
		RoomID:   roomID,
	})
	b.ack(ctx, sender, SentData{Message: msg, RoomID: roomID})
	return msg, nil
}

// OnTyping publishes "<name> is typing..." to roomID. Nothing is stored.
func (b *Broadcaster) OnTyping(ctx context.Context, roomID, userID string) (string, error) {
	if strings.TrimSpace(roomID) == "" {
		return "", models.NewRequiredFieldError("roomId")
	}
	if strings.TrimSpace(userID) == "" {
		return "", models.NewRequiredFieldError("userId")
	}

	text := b.displayName(ctx, userID) + " is typing..."
	b.publish(ctx, roomID, EventUserTypingConfirmation, TypingNoticeData{Message: text, RoomID: roomID})
	return text, nil
}

func (b *Broadcaster) displayName(ctx context.Context, userID string) string {
	if b.profiles == nil {
		return fallbackDisplayName
	}
	name, err := b.profiles.DisplayName(ctx, userID)
	if err != nil || name == "" {
		if err != nil && !errors.Is(err, models.ErrRecordNotFound) {
			lg := logger.Ctx(ctx)
			lg.Debug().Err(err).Str(logger.FieldUserID, userID).Msg("display name lookup failed")
		}
		return fallbackDisplayName
	}
	return name
}

func (b *Broadcaster) publish(ctx context.Context, roomID string, event EventType, data interface{}) {
	msg, err := NewMessage(event, data)
	if err != nil {
		lg := logger.Ctx(ctx)
		lg.Debug().Err(err).Str(logger.FieldEvent, event.String()).Msg("failed to encode broadcast")
		return
	}
	n := b.hub.Publish(roomID, msg)
	lg := logger.Ctx(ctx)
	lg.Debug().
		Str(logger.FieldRoomID, roomID).
		Str(logger.FieldEvent, event.String()).
		Int("delivered", n).
		Msg("broadcast")
}

func (b *Broadcaster) ack(ctx context.Context, sender *Client, data SentData) {
	if sender == nil {
		return
	}
	msg, err := NewMessage(EventSendMessageConfirmation, data)
	if err != nil {
		return
	}
	if err := sender.SendMessage(msg); err != nil {
		lg := logger.Ctx(ctx)
		lg.Debug().Err(err).Msg("failed to acknowledge send")
	}
}
