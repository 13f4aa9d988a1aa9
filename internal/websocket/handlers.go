package websocket

import (
	"context"
	"errors"

	"messaging-service/internal/models"
	"messaging-service/internal/services"
	"messaging-service/pkg/logger"
)

// DirectHandler serves the direct chat namespace.
type DirectHandler struct {
	b *Broadcaster
}

func NewDirectHandler(b *Broadcaster) *DirectHandler {
	return &DirectHandler{b: b}
}

func (h *DirectHandler) Handle(ctx context.Context, c *Client, msg *Message) {
	var err error

	switch msg.Event {
	case EventUserJoined:
		var p DirectJoinData
		if err = msg.Decode(&p); err == nil {
			_, err = h.b.OnJoin(ctx, c, p.UserID, p.PeerUserID)
		}

	case EventSendMessage:
		var p DirectSendData
		if err = msg.Decode(&p); err == nil {
			_, err = h.b.OnSend(ctx, c, services.SendDirectMessageInput{
				SenderID:   p.SenderID,
				ReceiverID: p.ReceiverID,
				Type:       p.Type,
				Content:    p.Content,
			}, p.RoomID)
		}

	default:
		err = handleShared(ctx, h.b, c, msg)
	}

	replyError(ctx, c, msg, err)
}

// GroupHandler serves the group chat namespace.
type GroupHandler struct {
	b *Broadcaster
}

func NewGroupHandler(b *Broadcaster) *GroupHandler {
	return &GroupHandler{b: b}
}

func (h *GroupHandler) Handle(ctx context.Context, c *Client, msg *Message) {
	var err error

	switch msg.Event {
	case EventUserJoined:
		var p GroupJoinData
		if err = msg.Decode(&p); err == nil {
			_, err = h.b.OnGroupJoin(ctx, c, p.GroupID)
		}

	case EventSendMessage:
		var p GroupSendData
		if err = msg.Decode(&p); err == nil {
			_, err = h.b.OnGroupSend(ctx, c, services.SendGroupMessageInput{
				GroupID:  p.GroupID,
				SenderID: p.SenderID,
				Type:     p.Type,
				Content:  p.Content,
			}, p.RoomID)
		}

	default:
		err = handleShared(ctx, h.b, c, msg)
	}

	replyError(ctx, c, msg, err)
}

var errUnknownEvent = errors.New("unknown event")

// handleShared covers the events both namespaces treat the same way.
func handleShared(ctx context.Context, b *Broadcaster, c *Client, msg *Message) error {
	switch msg.Event {
	case EventUserTyping:
		var p TypingData
		if err := msg.Decode(&p); err != nil {
			return err
		}
		_, err := b.OnTyping(ctx, p.RoomID, p.UserID)
		return err

	case EventGetActiveUsers:
		users := b.hub.Registry().ActiveUserIDs()
		reply, err := NewMessage(EventActiveUsers, ActiveUsersData{Users: users, Count: len(users)})
		if err != nil {
			return err
		}
		return c.SendMessage(reply)

	default:
		return errUnknownEvent
	}
}

// replyError reports a failed command to the caller only.
func replyError(ctx context.Context, c *Client, msg *Message, err error) {
	if err == nil {
		return
	}

	code, text, field := ErrCodeInternal, "Internal server error", ""
	if ve, ok := models.AsValidationError(err); ok {
		code, text, field = ErrCodeValidation, ve.Error(), ve.Field
	} else if models.IsNotFound(err) {
		code, text = ErrCodeNotFound, err.Error()
	} else if models.IsForbidden(err) {
		code, text = ErrCodeForbidden, err.Error()
	} else if errors.Is(err, errUnknownEvent) {
		code, text = ErrCodeInvalidMessage, "Unknown event: "+msg.Event.String()
	} else if errors.Is(err, ErrInvalidPayload) {
		code, text = ErrCodeInvalidMessage, err.Error()
	} else if errors.Is(err, ErrClientDisconnected) || errors.Is(err, ErrSendBufferFull) {
		return
	}

	log := logger.Ctx(ctx)
	ev := log.Debug()
	if code == ErrCodeInternal {
		ev = log.Error()
	}
	ev.Err(err).Str(logger.FieldEvent, msg.Event.String()).Str("code", code).Msg("event failed")

	c.sendError(code, text, field)
}
