package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"messaging-service/internal/models"
	"messaging-service/internal/repositories/postgres"
	"messaging-service/pkg/logger"
)

type SendDirectMessageInput struct {
	SenderID   string
	ReceiverID string
	Type       string
	Content    string
}

type SendGroupMessageInput struct {
	GroupID  string
	SenderID string
	Type     string
	Content  string
}

// ReplyInput is shared by direct and group replies; ParentMessageID names a
// DirectMessage or a GroupMessage respectively.
type ReplyInput struct {
	SenderID        string
	ParentMessageID string
	Type            string
	Content         string
}

// MembershipChecker answers whether a user may post to a group.
type MembershipChecker interface {
	IsActiveMember(ctx context.Context, groupID, userID string) (bool, error)
}

// Notifier receives a NEW_MESSAGE notification after each successful send.
type Notifier interface {
	NotifyNewMessage(ctx context.Context, n Notification) error
}

type MessageService struct {
	messages *postgres.MessageRepository
	replies  *postgres.ReplyRepository
	members  MembershipChecker
	notifier Notifier
	now      func() time.Time
}

func NewMessageService(messages *postgres.MessageRepository, replies *postgres.ReplyRepository, members MembershipChecker, notifier Notifier) *MessageService {
	return &MessageService{
		messages: messages,
		replies:  replies,
		members:  members,
		notifier: notifier,
		now:      time.Now,
	}
}

// WithClock replaces the creation-time source, for tests.
func (s *MessageService) WithClock(now func() time.Time) *MessageService {
	s.now = now
	return s
}

func (s *MessageService) SendDirectMessage(ctx context.Context, in SendDirectMessageInput) (*models.DirectMessage, error) {
	mt, err := validateMessage(
		[]field{{"senderId", in.SenderID}, {"receiverId", in.ReceiverID}, {"type", in.Type}, {"content", in.Content}},
		in.Type,
		[]field{{"senderId", in.SenderID}, {"receiverId", in.ReceiverID}},
	)
	if err != nil {
		return nil, err
	}

	msg := &models.DirectMessage{
		Type:       mt,
		Content:    in.Content,
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		IsRead:     false,
		Status:     true,
		CreatedAt:  s.now(),
	}
	if err := s.messages.CreateDirectMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.notify(ctx, Notification{
		Type:        NotificationNewMessage,
		MessageID:   msg.ID,
		SenderID:    msg.SenderID,
		RecipientID: msg.ReceiverID,
		MessageType: msg.Type,
		CreatedAt:   msg.CreatedAt,
	})
	return msg, nil
}

func (s *MessageService) ReplyToDirectMessage(ctx context.Context, in ReplyInput) (*models.DirectMessageReply, error) {
	mt, err := validateMessage(
		[]field{{"senderId", in.SenderID}, {"chatMessageId", in.ParentMessageID}, {"type", in.Type}, {"content", in.Content}},
		in.Type,
		[]field{{"senderId", in.SenderID}, {"chatMessageId", in.ParentMessageID}},
	)
	if err != nil {
		return nil, err
	}

	if _, err := s.messages.FindDirectMessageByID(ctx, in.ParentMessageID); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("chat message", in.ParentMessageID)
		}
		return nil, err
	}

	reply := &models.DirectMessageReply{
		Type:            mt,
		Content:         in.Content,
		SenderID:        in.SenderID,
		ParentMessageID: in.ParentMessageID,
		Status:          true,
		CreatedAt:       s.now(),
	}
	if err := s.replies.CreateDirectReply(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *MessageService) SendGroupMessage(ctx context.Context, in SendGroupMessageInput) (*models.GroupMessage, error) {
	mt, err := validateMessage(
		[]field{{"groupId", in.GroupID}, {"senderId", in.SenderID}, {"type", in.Type}, {"content", in.Content}},
		in.Type,
		[]field{{"groupId", in.GroupID}, {"senderId", in.SenderID}},
	)
	if err != nil {
		return nil, err
	}

	ok, err := s.members.IsActiveMember(ctx, in.GroupID, in.SenderID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewForbiddenError("sender is not part of this group")
	}

	msg := &models.GroupMessage{
		GroupID:   in.GroupID,
		Type:      mt,
		Content:   in.Content,
		SenderID:  in.SenderID,
		IsRead:    false,
		Status:    true,
		CreatedAt: s.now(),
	}
	if err := s.messages.CreateGroupMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.notify(ctx, Notification{
		Type:        NotificationNewMessage,
		MessageID:   msg.ID,
		SenderID:    msg.SenderID,
		GroupID:     msg.GroupID,
		MessageType: msg.Type,
		CreatedAt:   msg.CreatedAt,
	})
	return msg, nil
}

func (s *MessageService) ReplyToGroupMessage(ctx context.Context, in ReplyInput) (*models.GroupMessageReply, error) {
	mt, err := validateMessage(
		[]field{{"senderId", in.SenderID}, {"groupChatMessageId", in.ParentMessageID}, {"type", in.Type}, {"content", in.Content}},
		in.Type,
		[]field{{"senderId", in.SenderID}, {"groupChatMessageId", in.ParentMessageID}},
	)
	if err != nil {
		return nil, err
	}

	if _, err := s.messages.FindGroupMessageByID(ctx, in.ParentMessageID); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("group chat message", in.ParentMessageID)
		}
		return nil, err
	}

	reply := &models.GroupMessageReply{
		GroupMessageID: in.ParentMessageID,
		SenderID:       in.SenderID,
		Type:           mt,
		Content:        in.Content,
		Status:         true,
		CreatedAt:      s.now(),
	}
	if err := s.replies.CreateGroupReply(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// notify hands n to the notifier without waiting. The send has already
// committed, so a failed notification is only logged.
func (s *MessageService) notify(ctx context.Context, n Notification) {
	if s.notifier == nil {
		return
	}
	log := logger.Ctx(ctx)
	go func() {
		if err := s.notifier.NotifyNewMessage(context.WithoutCancel(ctx), n); err != nil {
			log.Warn().Err(fmt.Errorf("notify %s: %w", n.MessageID, err)).Msg("new message notification dropped")
		}
	}()
}
