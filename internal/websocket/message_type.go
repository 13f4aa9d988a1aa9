package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType names an inbound command or an outbound notification.
type EventType string

const (
	// Inbound
	EventUserJoined     EventType = "USER_JOINED"
	EventSendMessage    EventType = "SEND_MESSAGE"
	EventUserTyping     EventType = "USER_TYPING"
	EventGetActiveUsers EventType = "GET_ACTIVE_USERS"

	// Outbound
	EventConnection              EventType = "connection"
	EventUserJoinedConfirmation  EventType = "USER_JOINED_CONFIRMATION"
	EventSendMessageConfirmation EventType = "SEND_MESSAGE_CONFIRMATION"
	EventUserTypingConfirmation  EventType = "USER_TYPING_CONFIRMATION"
	EventActiveUsers             EventType = "ACTIVE_USERS"
	EventError                   EventType = "error"
)

// String returns the string representation of the EventType
func (et EventType) String() string {
	return string(et)
}

// IsInbound reports whether clients may send this event.
func (et EventType) IsInbound() bool {
	switch et {
	case EventUserJoined, EventSendMessage, EventUserTyping, EventGetActiveUsers:
		return true
	default:
		return false
	}
}

// Error codes carried by EventError frames.
const (
	ErrCodeInvalidMessage = "INVALID_MESSAGE"
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeRateLimited    = "RATE_LIMITED"
	ErrCodeInternal       = "INTERNAL_ERROR"
)

// ErrInvalidPayload marks a frame whose data does not fit its event.
var ErrInvalidPayload = errors.New("invalid payload")

// Message is the JSON envelope of every frame in both directions.
type Message struct {
	ID        string          `json:"id"`
	Event     EventType       `json:"event"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// Decode unmarshals the frame payload into dest. An absent payload decodes
// as an empty object.
func (m *Message) Decode(dest interface{}) error {
	if len(m.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(m.Data, dest); err != nil {
		return fmt.Errorf("%w for %s: %v", ErrInvalidPayload, m.Event, err)
	}
	return nil
}

// NewMessage builds an outbound frame with a fresh id.
func NewMessage(event EventType, data interface{}) (*Message, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", event, err)
	}
	return &Message{
		ID:        uuid.New().String(),
		Event:     event,
		Data:      raw,
		Timestamp: time.Now().Unix(),
	}, nil
}

/** -------------------- inbound payloads -------------------- */

type DirectJoinData struct {
	UserID     string `json:"userId"`
	PeerUserID string `json:"peerUserId"`
}

type GroupJoinData struct {
	GroupID string `json:"groupId"`
}

type DirectSendData struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Type       string `json:"type"`
	Content    string `json:"content"`
	RoomID     string `json:"roomId"`
}

type GroupSendData struct {
	SenderID string `json:"senderId"`
	GroupID  string `json:"groupId"`
	Type     string `json:"type"`
	Content  string `json:"content"`
	RoomID   string `json:"roomId"`
}

type TypingData struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

/** -------------------- outbound payloads -------------------- */

// ThreadData carries a room's whole thread, oldest first.
type ThreadData[T any] struct {
	Messages []T    `json:"messages"`
	RoomID   string `json:"roomId"`
}

type SentData struct {
	Message interface{} `json:"message"`
	RoomID  string      `json:"roomId"`
}

type TypingNoticeData struct {
	Message string `json:"message"`
	RoomID  string `json:"roomId"`
}

type ActiveUsersData struct {
	Users []string `json:"users"`
	Count int      `json:"count"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
