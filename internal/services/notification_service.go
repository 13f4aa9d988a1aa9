package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"messaging-service/internal/models"
)

const NotificationNewMessage = "NEW_MESSAGE"

// Notification is the event published for downstream consumers (push,
// unread counters). RecipientID is set for direct messages, GroupID for
// group messages.
type Notification struct {
	Type        string             `json:"type"`
	MessageID   string             `json:"messageId"`
	SenderID    string             `json:"senderId"`
	RecipientID string             `json:"recipientId,omitempty"`
	GroupID     string             `json:"groupId,omitempty"`
	MessageType models.MessageType `json:"messageType"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// key partitions notifications so one conversation stays ordered.
func (n Notification) key() string {
	if n.GroupID != "" {
		return n.GroupID
	}
	low, high := models.NormalizePair(n.SenderID, n.RecipientID)
	return low + ":" + high
}

// Publisher delivers an encoded notification to the message bus.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
	Close() error
}

type NotificationService struct {
	publisher Publisher
}

func NewNotificationService(publisher Publisher) *NotificationService {
	return &NotificationService{publisher: publisher}
}

func (s *NotificationService) NotifyNewMessage(ctx context.Context, n Notification) error {
	if n.Type == "" {
		n.Type = NotificationNewMessage
	}
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	return s.publisher.Publish(ctx, n.key(), data)
}

func (s *NotificationService) Close() error {
	return s.publisher.Close()
}
